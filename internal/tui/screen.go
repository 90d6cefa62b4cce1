// Package tui is the terminal front end: it draws the board with tcell and
// turns key presses into guesses.
package tui

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Screen wraps tcell.Screen with a simplified interface.
type Screen struct {
	screen tcell.Screen
	once   sync.Once
}

// NewScreen creates and initializes the terminal screen.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return wrapScreen(s)
}

// wrapScreen initializes s; tests pass a simulation screen.
func wrapScreen(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close finalizes the screen and restores terminal state.
// Calling it more than once is safe.
func (s *Screen) Close() { s.once.Do(s.screen.Fini) }

// PollEvent waits for and returns the next terminal event.
func (s *Screen) PollEvent() tcell.Event { return s.screen.PollEvent() }

// Interrupt wakes a blocked PollEvent.
func (s *Screen) Interrupt() { _ = s.screen.PostEvent(tcell.NewEventInterrupt(nil)) }

func (s *Screen) Clear() { s.screen.Clear() }

func (s *Screen) Show() { s.screen.Show() }

func (s *Screen) Sync() { s.screen.Sync() }

// SetContent sets a single cell's content at the given position.
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// Text draws str starting at (x, y) and returns the x after it.
func (s *Screen) Text(x, y int, str string, style tcell.Style) int {
	for _, r := range str {
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
