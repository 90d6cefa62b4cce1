// internal/httpserver/routes_game.go
//
// Regular game endpoints:
//   - POST /game/new          → start a game (optional fixed answer)
//   - GET  /game/{id}         → current board
//   - POST /game/{id}/guess   → guess one letter
//   - POST /game/{id}/reset   → new word, guesses cleared (same game id)
//
// The answer is only sent once the round is over. Rounds played on an
// answer chosen by the client are not recorded.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/taha3313/AssemblyEndgame/internal/board"
	"github.com/taha3313/AssemblyEndgame/internal/game"
	"github.com/taha3313/AssemblyEndgame/internal/lives"
	"github.com/taha3313/AssemblyEndgame/internal/store"
	"github.com/taha3313/AssemblyEndgame/internal/telemetry"
	"github.com/taha3313/AssemblyEndgame/internal/words"
)

var (
	errGameOver      = errors.New("game over")
	errInvalidLetter = errors.New("invalid letter")
)

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Get("/game/{id}", s.handleGetGame)
	r.Post("/game/{id}/guess", s.handleGuess)
	r.Post("/game/{id}/reset", s.handleReset)
}

// newGameReq is the optional body of POST /game/new.
type newGameReq struct {
	Answer string `json:"answer"` // optional fixed first word (testing)
}

// gameRes is the common response for every game endpoint.
type gameRes struct {
	GameID   string      `json:"gameId"`
	State    string      `json:"state"` // "playing" | "won" | "lost"
	Word     string      `json:"word,omitempty"`
	Accepted *bool       `json:"accepted,omitempty"` // guess endpoints only
	Board    board.Board `json:"board"`
}

// guessReq is the body of a guess.
type guessReq struct {
	Letter string `json:"letter"`
}

func (s *Server) response(id string, v game.View) gameRes {
	res := gameRes{
		GameID: id,
		State:  v.State(),
		Board:  board.Build(v, lives.All(), s.cfg.Farewell),
	}
	if v.IsOver {
		res.Word = v.Word
	}
	return res
}

// handleNewGame creates a new in-memory game.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := telemetry.Tracer("http").Start(r.Context(), "game.new")
	defer span.End()

	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	supply := s.cfg.Supplier
	var primed *words.Primed
	if req.Answer != "" {
		answer := strings.ToLower(strings.TrimSpace(req.Answer))
		if !isWord(answer) {
			writeError(w, http.StatusBadRequest, "invalid_answer")
			return
		}
		primed = words.Prime(answer, s.cfg.Supplier)
		supply = primed.Next
	}

	g := game.New(supply, lives.Count())
	if primed != nil {
		s.primed.Store(g.ID, primed)
	}
	if err := s.store.Save(ctx, g); err != nil {
		s.primed.Delete(g.ID)
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	span.SetAttributes(attribute.String("game.id", g.ID))
	log.Debug().Str("gameId", g.ID).Msg("new game")

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(s.response(g.ID, g.View()))
}

// handleGetGame returns the current board.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var v game.View
	err := s.store.Update(r.Context(), id, func(g *game.Game) error {
		v = g.View()
		return nil
	})
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	_ = json.NewEncoder(w).Encode(s.response(id, v))
}

// handleGuess applies one letter. Finishing a round records the result.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	ctx, span := telemetry.Tracer("http").Start(r.Context(), "game.guess")
	defer span.End()

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
	span.SetAttributes(attribute.String("game.id", id), attribute.String("game.letter", string(letter)))

	var (
		v        game.View
		accepted bool
		chosen   bool
	)
	err = s.store.Update(ctx, id, func(g *game.Game) error {
		if g.View().IsOver {
			return errGameOver
		}
		accepted = g.GuessLetter(letter)
		v = g.View()
		chosen = s.chosenAnswer(id)
		return nil
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
		return
	case errors.Is(err, errGameOver):
		writeError(w, http.StatusConflict, "game_over")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	span.SetAttributes(attribute.String("game.state", v.State()), attribute.Int("game.wrong", v.WrongGuessCount))

	if accepted && v.IsOver && !chosen {
		userID, anonID := s.owner(w, r)
		s.recordResult(ctx, id, userID, anonID, v)
	}

	res := s.response(id, v)
	res.Accepted = &accepted
	_ = json.NewEncoder(w).Encode(res)
}

// handleReset draws a new word for an existing game.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	ctx, span := telemetry.Tracer("http").Start(r.Context(), "game.reset")
	defer span.End()

	id := chi.URLParam(r, "id")
	var v game.View
	err := s.store.Update(ctx, id, func(g *game.Game) error {
		g.NewGame()
		v = g.View()
		if !s.chosenAnswer(id) {
			s.primed.Delete(id)
		}
		return nil
	})
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	span.SetAttributes(attribute.String("game.id", id))
	_ = json.NewEncoder(w).Encode(s.response(id, v))
}

// parseLetter accepts exactly one letter a–z, case-insensitive.
func parseLetter(s string) (rune, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if utf8.RuneCountInString(s) != 1 {
		return 0, errInvalidLetter
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r < 'a' || r > 'z' {
		return 0, errInvalidLetter
	}
	return r, nil
}

// isWord reports whether s is a non-empty run of a–z.
func isWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// chosenAnswer reports whether game id is on the answer the client picked.
// Callers hold the store lock for id.
func (s *Server) chosenAnswer(id string) bool {
	p, ok := s.primed.Load(id)
	return ok && p.(*words.Primed).OnFirst()
}
