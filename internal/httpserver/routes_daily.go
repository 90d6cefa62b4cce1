// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new          → start today's game (creates or reuses session)
//   - POST /daily/{id}/guess   → guess one letter in today's game
//   - GET  /daily/leaderboard  → top 20 winners for today (or ?date=YYYY-MM-DD)
//
// Each owner plays once per day (enforced by DB + in-memory session).
// The word is picked deterministically from date + salt, and both wins and
// losses are persisted when the round ends.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/taha3313/AssemblyEndgame/internal/daily"
	"github.com/taha3313/AssemblyEndgame/internal/game"
	"github.com/taha3313/AssemblyEndgame/internal/lives"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	mu       sync.Mutex               // guards sessions and the games in them
	sessions map[string]*dailySession // keyed by owner|date
}

// dailySession holds transient state for today's game of one owner.
type dailySession struct {
	game      *game.Game
	owner     string
	date      string
	wordIndex int
	start     time.Time
	touched   time.Time
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		sessions: make(map[string]*dailySession),
	}
	s.daily = dd
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/{id}/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns today's date key, word index and word.
func (d *dailyServer) today() (date string, idx int, word string) {
	now := d.srv.cfg.Now()
	word, idx = daily.Word(now, d.srv.cfg.DailySalt, d.srv.cfg.Pool())
	return daily.DateKey(now), idx, word
}

// ownerID returns the user ID if logged in, otherwise the anonymous ID.
func (d *dailyServer) ownerID(w http.ResponseWriter, r *http.Request) string {
	userID, anonID := d.srv.owner(w, r)
	if userID != "" {
		return userID
	}
	return anonID
}

// dailyRes is returned by /daily/new and /daily/{id}/guess.
type dailyRes struct {
	gameRes
	Date   string `json:"date"`
	Played bool   `json:"played"`
}

// playedRes is returned by /daily/new when today's round is already done.
type playedRes struct {
	Date   string `json:"date"`
	Played bool   `json:"played"`
}

// handleNew creates or reuses today's session.
// If the owner already has a result for today → Played=true and no game.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	owner := d.ownerID(w, r)
	date, idx, word := d.today()
	if word == "" {
		writeError(w, http.StatusServiceUnavailable, "no_words")
		return
	}

	if played, err := d.store.AlreadyPlayed(r.Context(), owner, date); err != nil {
		log.Error().Err(err).Msg("daily already played")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	} else if played {
		_ = json.NewEncoder(w).Encode(playedRes{Date: date, Played: true})
		return
	}

	key := owner + "|" + date
	d.mu.Lock()
	sess, ok := d.sessions[key]
	if !ok {
		sess = &dailySession{
			game:      game.New(func() string { return word }, lives.Count()),
			owner:     owner,
			date:      date,
			wordIndex: idx,
			start:     d.srv.cfg.Now(),
		}
		d.sessions[key] = sess
	}
	sess.touched = d.srv.cfg.Now()
	v := sess.game.View()
	d.mu.Unlock()

	_ = json.NewEncoder(w).Encode(dailyRes{gameRes: d.srv.response(sess.game.ID, v), Date: date})
}

// handleGuess applies one letter to today's session.
// Finishing the round persists the result and drops the session.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	owner := d.ownerID(w, r)
	id := chi.URLParam(r, "id")

	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	letter, err := parseLetter(req.Letter)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_letter")
		return
	}

	date, _, _ := d.today()
	key := owner + "|" + date

	d.mu.Lock()
	sess, ok := d.sessions[key]
	if !ok || sess.game.ID != id {
		d.mu.Unlock()
		writeError(w, http.StatusConflict, "no_session")
		return
	}
	if sess.game.View().IsOver {
		d.mu.Unlock()
		writeError(w, http.StatusConflict, "game_over")
		return
	}
	accepted := sess.game.GuessLetter(letter)
	sess.touched = d.srv.cfg.Now()
	v := sess.game.View()
	if v.IsOver {
		delete(d.sessions, key)
	}
	d.mu.Unlock()

	if accepted && v.IsOver {
		err := d.store.InsertResult(r.Context(), daily.Result{
			UserID:       owner,
			Date:         date,
			WordIndex:    sess.wordIndex,
			Won:          v.IsWon,
			WrongGuesses: v.WrongGuessCount,
			ElapsedMs:    int(d.srv.cfg.Now().Sub(sess.start).Milliseconds()),
		})
		if err != nil {
			log.Warn().Err(err).Str("owner", owner).Msg("insert daily result")
		}
	}

	res := dailyRes{gameRes: d.srv.response(id, v), Date: date, Played: v.IsOver}
	res.Accepted = &accepted
	_ = json.NewEncoder(w).Encode(res)
}

// sweep drops sessions from another day or untouched since cutoff.
// It returns how many were dropped.
func (d *dailyServer) sweep(now, cutoff time.Time) int {
	today := daily.DateKey(now)
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for key, sess := range d.sessions {
		if sess.date != today || sess.touched.Before(cutoff) {
			delete(d.sessions, key)
			n++
		}
	}
	return n
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _, _ = d.today()
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date")
		return
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
