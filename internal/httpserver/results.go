package httpserver

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/taha3313/AssemblyEndgame/internal/game"
)

// resultRow is one finished round as listed by /games/mine.
type resultRow struct {
	GameID       string `json:"gameId"`
	Word         string `json:"word"`
	Status       string `json:"status"`
	Guesses      int    `json:"guesses"`
	WrongGuesses int    `json:"wrongGuesses"`
	FinishedAt   string `json:"finishedAt"`
}

// recordResult stores a finished round and, for signed-in players, bumps
// their stats. Best effort: failures are logged, never surfaced.
func (s *Server) recordResult(ctx context.Context, gameID, userID, anonID string, v game.View) {
	if s.db == nil {
		return
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Warn().Err(err).Str("gameId", gameID).Msg("begin result tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO results (game_id, user_id, anonymous_id, word, status, guesses, wrong_guesses, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		gameID, nullable(userID), nullable(anonID), v.Word, v.State(), len(v.Guessed), v.WrongGuessCount,
		s.cfg.Now().UTC().Format(time.RFC3339),
	); err != nil {
		log.Warn().Err(err).Str("gameId", gameID).Msg("insert result")
		return
	}
	if userID != "" {
		if err := bumpStats(ctx, tx, userID, v.IsWon); err != nil {
			log.Warn().Err(err).Str("user", userID).Msg("bump stats")
			return
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Str("gameId", gameID).Msg("commit result")
	}
}

// bumpStats increments games played; updates wins and streak based on result (within tx).
func bumpStats(ctx context.Context, tx *sql.Tx, userID string, won bool) error {
	var gp, wins, streak int
	row := tx.QueryRowContext(ctx, `SELECT games_played, wins, streak FROM users WHERE id=?`, userID)
	if err := row.Scan(&gp, &wins, &streak); err != nil {
		return err
	}
	gp++
	if won {
		wins++
		streak++
	} else {
		streak = 0
	}
	_, err := tx.ExecContext(ctx, `UPDATE users SET games_played=?, wins=?, streak=? WHERE id=?`, gp, wins, streak, userID)
	return err
}

// recentResults lists a user's latest finished rounds, newest first.
func (s *Server) recentResults(ctx context.Context, userID string, limit int) ([]resultRow, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT game_id, word, status, guesses, wrong_guesses, finished_at
        FROM results WHERE user_id=? ORDER BY finished_at DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []resultRow{}
	for rows.Next() {
		var rr resultRow
		if err := rows.Scan(&rr.GameID, &rr.Word, &rr.Status, &rr.Guesses, &rr.WrongGuesses, &rr.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

// nullable maps "" to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
