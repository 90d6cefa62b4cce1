// internal/game/types.go
//
// Core type definitions for the game engine.
// Defines:
//   - WordSupplier: injectable source of target words.
//   - Game: state for a single play-through (target word + guessed letters).
//   - View: read-only snapshot derived from a Game on every read.

package game

// WordSupplier returns a lowercase, non-empty target word.
// Selection policy (random, daily, fixed) belongs to the supplier.
type WordSupplier func() string

// Game holds the state of a single hangman-style session.
// Only the target word and the guessed letters are stored; everything else
// is derived in View.
type Game struct {
	ID      string // Unique game identifier (random hex string).
	word    string
	guessed []rune // insertion ordered, no duplicates

	supply   WordSupplier
	maxWrong int
}

// View is the derived state of a game at one point in time.
// It shares nothing with the Game it came from.
type View struct {
	Word              string // target word (lowercase)
	Guessed           []rune // guessed letters in the order they were made
	MaxWrongGuesses   int
	WrongGuessCount   int
	RemainingAttempts int
	IsWon             bool
	IsLost            bool
	IsOver            bool
	LastGuessed       rune // zero when HasLastGuess is false
	HasLastGuess      bool
	IsLastGuessWrong  bool
}

// Possible values of View.State.
const (
	StatePlaying = "playing"
	StateWon     = "won"
	StateLost    = "lost"
)
