// internal/game/engine.go
//
// Core game engine for a single session.
// Responsibilities:
//   - Draw target words from an injected WordSupplier.
//   - Accumulate distinct guessed letters in insertion order.
//   - Derive wrong-guess count, remaining attempts and won/lost on every read.
//   - Reset to a fresh word on NewGame.
//
// Notes:
//   - The engine is letter-agnostic; alphabet validation is a caller concern.
//   - Guesses made after the game is over are ignored here as well as by the
//     keyboard, so callers cannot push a finished game further.
//   - A Game is owned by one actor at a time; it does no locking.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"unicode"
)

// New constructs a game drawing its first word from supply.
// lifeCount is the number of life tokens; the game is lost once
// lifeCount-1 wrong guesses have been made. At least one wrong guess is
// always allowed.
func New(supply WordSupplier, lifeCount int) *Game {
	maxWrong := lifeCount - 1
	if maxWrong < 1 {
		maxWrong = 1
	}
	g := &Game{
		ID:       randomID(),
		supply:   supply,
		maxWrong: maxWrong,
	}
	g.NewGame()
	return g
}

// NewGame draws a fresh target word and clears all guesses.
// It may be called at any time, including mid-game.
func (g *Game) NewGame() {
	g.word = strings.ToLower(g.supply())
	g.guessed = []rune{}
}

// GuessLetter records letter as guessed.
// Returns false (and changes nothing) when the letter was already guessed
// or the game is over.
func (g *Game) GuessLetter(letter rune) bool {
	letter = unicode.ToLower(letter)
	if g.has(letter) || g.View().IsOver {
		return false
	}
	g.guessed = append(g.guessed, letter)
	return true
}

// View derives the read-only snapshot of the current state.
func (g *Game) View() View {
	v := View{
		Word:            g.word,
		Guessed:         append([]rune(nil), g.guessed...),
		MaxWrongGuesses: g.maxWrong,
	}

	for _, r := range g.guessed {
		if !strings.ContainsRune(g.word, r) {
			v.WrongGuessCount++
		}
	}
	v.RemainingAttempts = v.MaxWrongGuesses - v.WrongGuessCount

	v.IsWon = true
	for _, r := range g.word {
		if !g.has(r) {
			v.IsWon = false
			break
		}
	}
	v.IsLost = v.WrongGuessCount >= v.MaxWrongGuesses
	v.IsOver = v.IsWon || v.IsLost

	if n := len(g.guessed); n > 0 {
		v.LastGuessed = g.guessed[n-1]
		v.HasLastGuess = true
		v.IsLastGuessWrong = !strings.ContainsRune(g.word, v.LastGuessed)
	}
	return v
}

// has reports whether r was already guessed.
func (g *Game) has(r rune) bool {
	for _, x := range g.guessed {
		if x == r {
			return true
		}
	}
	return false
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
