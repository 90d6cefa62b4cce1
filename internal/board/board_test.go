package board

import (
	"strings"
	"testing"

	"github.com/taha3313/AssemblyEndgame/internal/game"
	"github.com/taha3313/AssemblyEndgame/internal/lives"
)

func farewellFor(name string) string { return "bye " + name }

func play(word string, guesses string) game.View {
	g := game.New(func() string { return word }, lives.Count())
	for _, r := range guesses {
		g.GuessLetter(r)
	}
	return g.View()
}

func hasEffect(b Board, e string) bool {
	for _, x := range b.Effects {
		if x == e {
			return true
		}
	}
	return false
}

func TestFreshBoard(t *testing.T) {
	b := Build(play("react", ""), lives.All(), farewellFor)

	if b.AttemptsLeft != 8 {
		t.Errorf("Expected 8 attempts left, got %d", b.AttemptsLeft)
	}
	if !strings.Contains(b.Header, "within 8 attempts") {
		t.Errorf("Unexpected header %q", b.Header)
	}
	if len(b.Letters) != 5 {
		t.Fatalf("Expected 5 letters, got %d", len(b.Letters))
	}
	for i, l := range b.Letters {
		if l.Char != "" {
			t.Errorf("Letter %d should be hidden, got %q", i, l.Char)
		}
	}
	if len(b.Keys) != 26 || b.Keys[0].Letter != "A" {
		t.Errorf("Unexpected keyboard %v", b.Keys)
	}
	if b.Status.Kind != StatusNone || b.ShowNewGame || len(b.Effects) != 0 {
		t.Errorf("Fresh board should be quiet: %+v", b)
	}
	if b.Announcement != "You have 8 attempts left." {
		t.Errorf("Unexpected announcement %q", b.Announcement)
	}
	if b.WordAnnouncement != "Current word: blank. blank. blank. blank. blank." {
		t.Errorf("Unexpected word announcement %q", b.WordAnnouncement)
	}
}

func TestWrongGuessShowsFarewell(t *testing.T) {
	b := Build(play("react", "rz"), lives.All(), farewellFor)

	if b.Status.Kind != StatusFarewell || b.Status.Message != "bye HTML" {
		t.Errorf("Expected farewell to HTML, got %+v", b.Status)
	}
	if !b.Chips[0].Lost || b.Chips[1].Lost {
		t.Errorf("Only the first chip should be lost: %+v", b.Chips[:2])
	}
	if !hasEffect(b, EffectFlash) {
		t.Error("Expected flash effect after a wrong guess")
	}
	if b.Letters[0].Char != "R" {
		t.Errorf("Expected R revealed, got %q", b.Letters[0].Char)
	}
	if b.Announcement != "Sorry, the letter z is not in the word. You have 7 attempts left." {
		t.Errorf("Unexpected announcement %q", b.Announcement)
	}

	keys := map[string]Key{}
	for _, k := range b.Keys {
		keys[k.Letter] = k
	}
	if !keys["R"].Correct || keys["R"].Wrong {
		t.Errorf("R should be correct: %+v", keys["R"])
	}
	if !keys["Z"].Wrong || keys["Z"].Correct {
		t.Errorf("Z should be wrong: %+v", keys["Z"])
	}
	if keys["A"].Guessed || keys["A"].Disabled {
		t.Errorf("A should be untouched: %+v", keys["A"])
	}
}

func TestCorrectGuessClearsFarewell(t *testing.T) {
	b := Build(play("react", "rze"), lives.All(), farewellFor)

	if b.Status.Kind != StatusNone {
		t.Errorf("Expected no status after a correct guess, got %+v", b.Status)
	}
	if hasEffect(b, EffectFlash) {
		t.Error("Flash should clear after a correct guess")
	}
	if b.Announcement != "Correct! The letter e is in the word. You have 7 attempts left." {
		t.Errorf("Unexpected announcement %q", b.Announcement)
	}
	if b.WordAnnouncement != "Current word: r. e. blank. blank. blank." {
		t.Errorf("Unexpected word announcement %q", b.WordAnnouncement)
	}
}

func TestWonBoard(t *testing.T) {
	b := Build(play("react", "react"), lives.All(), farewellFor)

	if b.Status.Kind != StatusWon || b.Status.Title != "You win!" {
		t.Errorf("Expected win status, got %+v", b.Status)
	}
	if !hasEffect(b, EffectConfetti) || hasEffect(b, EffectParticles) {
		t.Errorf("Expected confetti only, got %v", b.Effects)
	}
	if !b.ShowNewGame {
		t.Error("Expected new game button")
	}
	for _, k := range b.Keys {
		if !k.Disabled {
			t.Fatalf("Key %s should be disabled", k.Letter)
		}
	}
}

func TestLostBoardRevealsWord(t *testing.T) {
	b := Build(play("react", "rbdfghijk"), lives.All(), farewellFor)

	if b.Status.Kind != StatusLost || b.Status.Title != "Game over!" {
		t.Fatalf("Expected lost status, got %+v", b.Status)
	}
	if b.AttemptsLeft != 0 {
		t.Errorf("Expected 0 attempts left, got %d", b.AttemptsLeft)
	}
	var word strings.Builder
	for i, l := range b.Letters {
		word.WriteString(l.Char)
		if i == 0 && l.Missed {
			t.Error("Guessed letter R should not be marked missed")
		}
		if i > 0 && !l.Missed {
			t.Errorf("Letter %d should be marked missed", i)
		}
	}
	if word.String() != "REACT" {
		t.Errorf("Expected REACT revealed, got %q", word.String())
	}
	lost := 0
	for _, c := range b.Chips {
		if c.Lost {
			lost++
		}
	}
	if lost != 8 || b.Chips[8].Lost {
		t.Errorf("Expected all but Assembly lost, got %d lost", lost)
	}
	if !hasEffect(b, EffectParticles) {
		t.Errorf("Expected particles, got %v", b.Effects)
	}
}

func TestFarewellOutOfRange(t *testing.T) {
	short := lives.All()[:0]
	b := Build(play("react", "z"), short, farewellFor)
	if b.Status.Kind != StatusNone {
		t.Errorf("Expected no farewell without a matching life, got %+v", b.Status)
	}
}
