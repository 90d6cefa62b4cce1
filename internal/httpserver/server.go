// internal/httpserver/server.go
//
// HTTP server wiring for the game backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/lives", "/debug/words".
//   - Game endpoints (optional auth): /game/new, /game/{id}, /game/{id}/guess, /game/{id}/reset.
//   - Daily challenge endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints (require auth): /auth/*, /stats/me, /games/mine.
//
// Notes:
//   - Running games live in the session store only; the database records
//     finished rounds and user stats. Without a database the game routes
//     still work and auth/daily routes are not mounted.
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Games and daily sessions idle for longer than SessionTimeout are
//     swept while the server runs.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/taha3313/AssemblyEndgame/internal/game"
	"github.com/taha3313/AssemblyEndgame/internal/lives"
	"github.com/taha3313/AssemblyEndgame/internal/store"
	"github.com/taha3313/AssemblyEndgame/internal/words"
)

// Config carries the server settings resolved by the command line layer.
type Config struct {
	JWTSecret     string
	JWTExpiryDays int
	CookieName    string
	ClientOrigin  string
	DailySalt     string
	SecureCookies bool
	// SessionTimeout is how long an untouched game is kept in memory.
	SessionTimeout time.Duration

	// Supplier draws target words for regular games; words.Random when nil.
	Supplier game.WordSupplier
	// Pool is the list the daily word is picked from; words.All when nil.
	Pool func() []string
	// Farewell produces the farewell line for a lost language; lives.Farewell when nil.
	Farewell func(string) string
	// Now is the clock used for daily keys and timestamps; time.Now when nil.
	Now func() time.Time
}

func (c *Config) setDefaults() {
	if c.JWTSecret == "" {
		c.JWTSecret = "dev_secret_change_me"
		log.Warn().Msg("JWT secret not set, using development default")
	}
	if c.JWTExpiryDays <= 0 {
		c.JWTExpiryDays = 14
	}
	if c.CookieName == "" {
		c.CookieName = "endgame_token"
	}
	if c.ClientOrigin == "" {
		c.ClientOrigin = "http://localhost:5173"
	}
	if c.DailySalt == "" {
		c.DailySalt = "local_dev_salt"
	}
	if c.SessionTimeout <= 0 {
		c.SessionTimeout = 60 * time.Minute
	}
	if c.Supplier == nil {
		c.Supplier = words.Random
	}
	if c.Pool == nil {
		c.Pool = words.All
	}
	if c.Farewell == nil {
		c.Farewell = lives.Farewell
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}

// Server bundles router, session store, and optional DB handle.
type Server struct {
	r     *chi.Mux
	cfg   Config
	store store.Store
	db    *sql.DB
	daily *dailyServer // nil without a database

	primed sync.Map // game id -> *words.Primed, fixed-answer games only
}

// New constructs a Server, installs middleware, and registers routes.
// db may be nil.
func New(cfg Config, st store.Store, db *sql.DB) *Server {
	cfg.setDefaults()
	s := &Server{r: chi.NewRouter(), cfg: cfg, store: st, db: db}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // zerolog access log
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"assembly-endgame","endpoints":["/health","/lives","POST /game/new","POST /game/{id}/guess","POST /game/{id}/reset","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/lives", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(lives.All())
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"words": words.Stats()})
	})

	// Game endpoints: OPTIONAL AUTH (guests can play)
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		s.mountGame(r)
		if s.db != nil {
			s.mountDaily(r)
		}
	})

	if s.db != nil {
		s.mountAuthRoutes()
	}

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errs := make(chan error, 1)
	go func() { errs <- hs.ListenAndServe() }()
	go s.janitor(ctx)

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// janitor sweeps idle sessions until ctx is cancelled.
func (s *Server) janitor(ctx context.Context) {
	t := time.NewTicker(max(s.cfg.SessionTimeout/4, time.Second))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.sweep(ctx)
		}
	}
}

// sweep drops games untouched for SessionTimeout, and daily sessions that
// are idle or belong to a previous day.
func (s *Server) sweep(ctx context.Context) {
	now := s.cfg.Now()
	cutoff := now.Add(-s.cfg.SessionTimeout)

	ids, err := s.store.Idle(ctx, cutoff)
	if err != nil {
		log.Warn().Err(err).Msg("list idle games")
		return
	}
	for _, id := range ids {
		if err := s.store.Delete(ctx, id); err != nil {
			log.Warn().Err(err).Str("gameId", id).Msg("delete idle game")
			continue
		}
		s.primed.Delete(id)
	}

	dropped := 0
	if s.daily != nil {
		dropped = s.daily.sweep(now, cutoff)
	}
	if len(ids) > 0 || dropped > 0 {
		log.Debug().Int("games", len(ids)).Int("daily", dropped).Msg("swept idle sessions")
	}
}

// writeJSON sends v as the JSON body with status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError sends {"error": code} with status.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger writes one debug line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Str("requestId", chimw.GetReqID(r.Context())).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
