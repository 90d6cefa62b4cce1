package main

import (
	"context"
	"database/sql"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/taha3313/AssemblyEndgame/internal/db"
	"github.com/taha3313/AssemblyEndgame/internal/httpserver"
	"github.com/taha3313/AssemblyEndgame/internal/store"
	"github.com/taha3313/AssemblyEndgame/internal/telemetry"
	"github.com/taha3313/AssemblyEndgame/internal/tui"
	"github.com/taha3313/AssemblyEndgame/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := newRootCmd(cfg).Execute(); err != nil {
		log.Fatal().Err(err).Msg("endgame exited")
	}
}

func serve(ctx context.Context, cfg *Config) error {
	closer, err := cfg.setupLogging(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown := startTelemetry(ctx)
	defer shutdown()

	if err := words.Init(cfg.wordsFile); err != nil {
		return err
	}

	var conn *sql.DB
	if cfg.dbPath != "" {
		conn, err = db.Open(cfg.dbPath)
		if err != nil {
			return err
		}
		defer conn.Close()
		if err := db.Migrate(conn); err != nil {
			return err
		}
	} else {
		log.Warn().Msg("no database configured, accounts and daily mode disabled")
	}

	srv := httpserver.New(httpserver.Config{
		JWTSecret:      cfg.jwtSecret,
		JWTExpiryDays:  cfg.jwtExpiryDays,
		CookieName:     cfg.cookieName,
		ClientOrigin:   cfg.clientOrigin,
		DailySalt:      cfg.dailySalt,
		SecureCookies:  cfg.secureCookies,
		SessionTimeout: cfg.sessionTimeout,
	}, store.NewMemoryStore(), conn)

	addr := net.JoinHostPort(cfg.bind, strconv.Itoa(cfg.port))
	log.Info().Str("addr", addr).Int("words", words.Stats()).Msg("starting server")
	return srv.Start(ctx, addr)
}

func play(ctx context.Context, cfg *Config) error {
	closer, err := cfg.setupLogging(true)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stop()

	shutdown := startTelemetry(ctx)
	defer shutdown()

	if err := words.Init(cfg.wordsFile); err != nil {
		return err
	}

	screen, err := tui.NewScreen()
	if err != nil {
		return err
	}
	return tui.New(screen, words.Random, nil).Run(ctx)
}

// startTelemetry installs tracing when configured. Failure is not fatal.
func startTelemetry(ctx context.Context) func() {
	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("telemetry setup failed, running without traces")
		return func() {}
	}
	return func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn().Err(err).Msg("telemetry shutdown")
		}
	}
}
