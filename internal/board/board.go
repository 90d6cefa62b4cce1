// internal/board/board.go
//
// Rendering model for a game view.
// Build turns a game.View plus the lives table into everything a front end
// (HTTP client or terminal) needs to draw: language chips, masked word,
// on-screen keyboard, status banner and screen-reader announcements.
//
// Notes:
//   - Build is pure apart from the injected farewell provider.
//   - The target word only appears in Letters once it is revealed.

package board

import (
	"fmt"
	"strings"

	"github.com/taha3313/AssemblyEndgame/internal/game"
	"github.com/taha3313/AssemblyEndgame/internal/lives"
)

// Alphabet is the on-screen keyboard, in display order.
const Alphabet = "abcdefghijklmnopqrstuvwxyz"

// Status kinds.
const (
	StatusNone     = ""
	StatusWon      = "won"
	StatusLost     = "lost"
	StatusFarewell = "farewell"
)

// Effects.
const (
	EffectConfetti  = "confetti"
	EffectParticles = "particles"
	EffectFlash     = "flash"
)

// Chip is one life token as drawn.
type Chip struct {
	lives.Life
	Lost bool `json:"lost"`
}

// Letter is one cell of the target word. Char is empty while hidden.
type Letter struct {
	Char   string `json:"char"`
	Missed bool   `json:"missed"` // revealed only because the game was lost
}

// Key is one on-screen keyboard button.
type Key struct {
	Letter   string `json:"letter"`
	Correct  bool   `json:"correct"`
	Wrong    bool   `json:"wrong"`
	Guessed  bool   `json:"guessed"`
	Disabled bool   `json:"disabled"`
}

// Status is the banner above the chips.
type Status struct {
	Kind    string `json:"kind"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
}

// Board is the full rendering model.
type Board struct {
	Header           string   `json:"header"`
	AttemptsLeft     int      `json:"attemptsLeft"`
	Status           Status   `json:"status"`
	Chips            []Chip   `json:"chips"`
	Letters          []Letter `json:"letters"`
	Keys             []Key    `json:"keys"`
	Announcement     string   `json:"announcement"`
	WordAnnouncement string   `json:"wordAnnouncement"`
	Effects          []string `json:"effects"`
	ShowNewGame      bool     `json:"showNewGame"`
}

// Build derives the board for v. farewell maps a language name to its
// farewell line; lives.Farewell is the usual choice.
func Build(v game.View, table []lives.Life, farewell func(string) string) Board {
	b := Board{
		Header: fmt.Sprintf("Guess the word within %d attempts to keep the programming world safe from Assembly!",
			v.MaxWrongGuesses),
		AttemptsLeft: v.RemainingAttempts,
		Chips:        make([]Chip, 0, len(table)),
		Letters:      make([]Letter, 0, len(v.Word)),
		Keys:         make([]Key, 0, len(Alphabet)),
		Effects:      []string{},
		ShowNewGame:  v.IsOver,
	}

	for i, l := range table {
		b.Chips = append(b.Chips, Chip{Life: l, Lost: i < v.WrongGuessCount})
	}

	for _, r := range v.Word {
		guessed := v.HasGuessed(r)
		var l Letter
		if guessed || v.IsLost {
			l.Char = strings.ToUpper(string(r))
		}
		l.Missed = v.IsLost && !guessed
		b.Letters = append(b.Letters, l)
	}

	for _, r := range Alphabet {
		guessed := v.HasGuessed(r)
		b.Keys = append(b.Keys, Key{
			Letter:   strings.ToUpper(string(r)),
			Guessed:  guessed,
			Correct:  guessed && v.InWord(r),
			Wrong:    guessed && !v.InWord(r),
			Disabled: v.IsOver,
		})
	}

	b.Status = status(v, table, farewell)
	b.Announcement = announce(v)
	b.WordAnnouncement = announceWord(v)

	if v.IsLastGuessWrong {
		b.Effects = append(b.Effects, EffectFlash)
	}
	if v.IsWon {
		b.Effects = append(b.Effects, EffectConfetti)
	}
	if v.IsLost {
		b.Effects = append(b.Effects, EffectParticles)
	}
	return b
}

func status(v game.View, table []lives.Life, farewell func(string) string) Status {
	switch {
	case v.IsWon:
		return Status{Kind: StatusWon, Title: "You win!", Message: "Well done! 🎉"}
	case v.IsLost:
		return Status{Kind: StatusLost, Title: "Game over!", Message: "You lose! Better start learning Assembly 😭"}
	case v.IsLastGuessWrong:
		i := v.WrongGuessCount - 1
		if i < 0 || i >= len(table) || farewell == nil {
			return Status{Kind: StatusNone}
		}
		return Status{Kind: StatusFarewell, Message: farewell(table[i].Name)}
	}
	return Status{Kind: StatusNone}
}

// announce is the live-region text for the most recent guess.
func announce(v game.View) string {
	left := fmt.Sprintf("You have %d attempts left.", v.RemainingAttempts)
	if !v.HasLastGuess {
		return left
	}
	letter := string(v.LastGuessed)
	if v.IsLastGuessWrong {
		return fmt.Sprintf("Sorry, the letter %s is not in the word. %s", letter, left)
	}
	return fmt.Sprintf("Correct! The letter %s is in the word. %s", letter, left)
}

// announceWord spells the word with unguessed letters as "blank.".
func announceWord(v game.View) string {
	parts := make([]string, 0, len(v.Word))
	for _, r := range v.Word {
		if v.HasGuessed(r) {
			parts = append(parts, string(r)+".")
		} else {
			parts = append(parts, "blank.")
		}
	}
	return "Current word: " + strings.Join(parts, " ")
}
