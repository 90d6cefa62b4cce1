package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const releaseVersion = "0.1.0"

// Config holds everything settable by flag or ENDGAME_* environment variable.
type Config struct {
	logLevel  string
	logFile   string
	wordsFile string

	bind          string
	port          int
	dbPath        string
	jwtSecret     string
	jwtExpiryDays int
	cookieName    string
	clientOrigin  string
	dailySalt     string
	secureCookies bool

	sessionTimeout time.Duration
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.jwtExpiryDays < 1 {
		return errors.New("--jwt-expires-days must be at least 1")
	}
	if c.sessionTimeout < time.Minute {
		return errors.New("--session-timeout must be at least 1m")
	}
	if _, err := zerolog.ParseLevel(c.logLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.logLevel, err)
	}
	return nil
}

// setupLogging sets the global zerolog level and output.
// With quiet set and no log file, logs are discarded (terminal mode).
func (c *Config) setupLogging(quiet bool) (io.Closer, error) {
	lvl, err := zerolog.ParseLevel(c.logLevel)
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(lvl)

	switch {
	case c.logFile != "":
		f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
		return f, nil
	case quiet:
		log.Logger = zerolog.New(io.Discard)
	}
	return io.NopCloser(nil), nil
}

// bindFlags lets ENDGAME_* variables fill any flag not given on the command line.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}

func newRootCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("ENDGAME")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:     "endgame",
		Short:   "Assembly: Endgame, a word guessing game where every wrong letter costs a programming language.",
		Args:    cobra.NoArgs,
		Version: releaseVersion,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			bindFlags(v, cmd.Flags())
			return cfg.validate()
		},
	}

	pfs := root.PersistentFlags()
	pfs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
	pfs.StringVar(&cfg.logLevel, "log-level", "info", "trace|debug|info|warn|error (env: ENDGAME_LOG_LEVEL)")
	pfs.StringVar(&cfg.logFile, "log-file", "", "write logs to this file instead of stderr (env: ENDGAME_LOG_FILE)")
	pfs.StringVar(&cfg.wordsFile, "words-file", "", "word pool, one word per line; embedded list when empty (env: ENDGAME_WORDS_FILE)")

	root.AddCommand(newServeCmd(cfg), newPlayCmd(cfg))

	root.CompletionOptions.HiddenDefaultCmd = true
	root.SetHelpCommand(&cobra.Command{Hidden: true})
	root.SetVersionTemplate("endgame v{{.Version}}\n")

	root.SilenceErrors = true
	root.SilenceUsage = true

	return root
}

func newServeCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: ENDGAME_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 5175, "port to listen on (env: ENDGAME_PORT)")
	fs.StringVar(&cfg.dbPath, "db", "./data/endgame.db", "SQLite database path; empty disables accounts and daily mode (env: ENDGAME_DB)")
	fs.StringVar(&cfg.jwtSecret, "jwt-secret", "", "HS256 signing secret (env: ENDGAME_JWT_SECRET)")
	fs.IntVar(&cfg.jwtExpiryDays, "jwt-expires-days", 14, "session lifetime in days (env: ENDGAME_JWT_EXPIRES_DAYS)")
	fs.StringVar(&cfg.cookieName, "cookie-name", "endgame_token", "auth cookie name (env: ENDGAME_COOKIE_NAME)")
	fs.StringVar(&cfg.clientOrigin, "client-origin", "http://localhost:5173", "allowed CORS origin (env: ENDGAME_CLIENT_ORIGIN)")
	fs.StringVar(&cfg.dailySalt, "daily-salt", "local_dev_salt", "salt for the word of the day (env: ENDGAME_DAILY_SALT)")
	fs.BoolVar(&cfg.secureCookies, "secure-cookies", false, "mark cookies Secure and SameSite=None (env: ENDGAME_SECURE_COOKIES)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 60*time.Minute, "time before idle games are dropped (env: ENDGAME_SESSION_TIMEOUT)")

	return cmd
}

func newPlayCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return play(cmd.Context(), cfg)
		},
	}
}
