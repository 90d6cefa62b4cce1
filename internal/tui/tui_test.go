package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newTestApp(t *testing.T, words ...string) *App {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := wrapScreen(sim)
	if err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	sim.SetSize(100, 20)
	t.Cleanup(screen.Close)

	i := 0
	supply := func() string {
		w := words[i%len(words)]
		i++
		return w
	}
	return New(screen, supply, func(name string) string { return "bye " + name })
}

func key(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func press(a *App, keys ...*tcell.EventKey) {
	for _, k := range keys {
		a.handleKey(context.Background(), k)
	}
}

func rowText(s *Screen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := s.screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#E2680F", true},
		{"2ED3E9", true},
		{"#FFF", false},
		{"#GGGGGG", false},
		{"", false},
	}
	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if (err == nil) != tt.valid {
			t.Errorf("ParseHexColor(%q) error = %v, want valid=%v", tt.input, err, tt.valid)
		}
	}

	c, _ := ParseHexColor("#102030")
	r, g, b := c.RGB()
	if r != 0x10 || g != 0x20 || b != 0x30 {
		t.Errorf("Expected (16,32,48), got (%d,%d,%d)", r, g, b)
	}
}

func TestKeysGuessLetters(t *testing.T) {
	a := newTestApp(t, "react")
	press(a, key('R'), key('z'), key('1'), key('z'))

	v := a.game.View()
	if got := string(v.Guessed); got != "rz" {
		t.Errorf("Expected guesses 'rz', got %q", got)
	}
	if b := a.Board(); b.Status.Message != "bye HTML" {
		t.Errorf("Expected farewell to HTML, got %+v", b.Status)
	}
}

func TestKeysIgnoredAfterGameOver(t *testing.T) {
	a := newTestApp(t, "go", "css")
	press(a, key('g'), key('o'))
	if !a.game.View().IsWon {
		t.Fatal("Expected a win")
	}

	press(a, key('x'))
	if got := string(a.game.View().Guessed); got != "go" {
		t.Errorf("Letters after game over should be ignored, got %q", got)
	}

	press(a, tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	v := a.game.View()
	if v.Word != "css" || len(v.Guessed) != 0 {
		t.Errorf("Enter should start a fresh game, got %+v", v)
	}
}

func TestEnterIgnoredMidGame(t *testing.T) {
	a := newTestApp(t, "react", "css")
	press(a, key('r'), tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if a.game.View().Word != "react" {
		t.Error("Enter must not reset a running game")
	}
}

func TestEscapeQuits(t *testing.T) {
	a := newTestApp(t, "react")
	press(a, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if a.running {
		t.Error("Escape should stop the loop")
	}
}

func TestFarewellStableAcrossRedraws(t *testing.T) {
	a := newTestApp(t, "react")
	n := 0
	a.farewell = func(name string) string {
		n++
		return name
	}
	press(a, key('z'))
	a.Board()
	a.Board()
	if n != 1 {
		t.Errorf("Expected one farewell draw, got %d", n)
	}
	press(a, key('q'))
	a.Board()
	if n != 2 {
		t.Errorf("Expected a new farewell after another lost life, got %d draws", n)
	}
}

func TestRender(t *testing.T) {
	a := newTestApp(t, "react")
	press(a, key('r'))
	a.renderer.Render(a.Board())

	if row := rowText(a.screen, rowTitle, 40); !strings.Contains(row, "Assembly: Endgame") {
		t.Errorf("Missing title, got %q", row)
	}
	if row := rowText(a.screen, rowAttempts, 40); !strings.Contains(row, "8 attempts left") {
		t.Errorf("Missing attempts, got %q", row)
	}
	if row := rowText(a.screen, rowChips, 100); !strings.Contains(row, "HTML") || !strings.Contains(row, "Assembly") {
		t.Errorf("Missing chips, got %q", row)
	}
	if row := rowText(a.screen, rowWord, 40); !strings.Contains(row, "R") || !strings.Contains(row, "_") {
		t.Errorf("Expected R revealed and blanks, got %q", row)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	a := newTestApp(t, "react")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := a.Run(ctx); err != nil {
		t.Errorf("Run returned %v", err)
	}
	if a.running {
		t.Error("Expected loop to stop after cancellation")
	}
}
