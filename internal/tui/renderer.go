package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/taha3313/AssemblyEndgame/internal/board"
)

// Layout rows.
const (
	rowTitle    = 0
	rowHeader   = 1
	rowAttempts = 3
	rowStatus   = 4
	rowChips    = 6
	rowWord     = 8
	rowKeys     = 10 // three keyboard rows
	rowHelp     = 14
)

// keyRows splits the alphabet into keyboard rows.
var keyRows = [][2]int{{0, 9}, {9, 18}, {18, 26}}

// Renderer draws a board.Board to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws b and flushes the screen.
func (r *Renderer) Render(b board.Board) {
	s := r.screen
	s.Clear()

	plain := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	s.Text(1, rowTitle, "Assembly: Endgame", plain.Bold(true))
	s.Text(1, rowHeader, b.Header, plain.Dim(true))
	s.Text(1, rowAttempts, fmt.Sprintf("%d attempts left", b.AttemptsLeft), plain.Bold(true))

	r.renderStatus(b.Status)
	r.renderChips(b.Chips)
	r.renderWord(b.Letters)
	r.renderKeys(b.Keys)

	help := "a-z: guess  Esc: quit"
	if b.ShowNewGame {
		help = "Enter: new game  Esc: quit"
	}
	s.Text(1, rowHelp, help, plain.Dim(true))

	s.Show()
}

func (r *Renderer) renderStatus(st board.Status) {
	var style tcell.Style
	switch st.Kind {
	case board.StatusWon:
		style = tcell.StyleDefault.Background(colorCorrect).Foreground(tcell.ColorWhite)
	case board.StatusLost:
		style = tcell.StyleDefault.Background(colorWrong).Foreground(tcell.ColorWhite)
	case board.StatusFarewell:
		style = tcell.StyleDefault.Background(colorFarewell).Foreground(tcell.ColorWhite).Italic(true)
	default:
		return
	}
	text := st.Message
	if st.Title != "" {
		text = st.Title + " " + st.Message
	}
	r.screen.Text(1, rowStatus, " "+text+" ", style)
}

func (r *Renderer) renderChips(chips []board.Chip) {
	x := 1
	for _, c := range chips {
		style := tcell.StyleDefault.
			Background(hexOr(c.BackgroundColor, tcell.ColorGray)).
			Foreground(hexOr(c.Color, tcell.ColorWhite))
		if c.Lost {
			style = tcell.StyleDefault.Background(colorDead).Foreground(tcell.ColorGray).StrikeThrough(true)
		}
		x = r.screen.Text(x, rowChips, " "+c.Name+" ", style) + 1
	}
}

func (r *Renderer) renderWord(letters []board.Letter) {
	x := 1
	for _, l := range letters {
		style := tcell.StyleDefault.Background(colorDead).Foreground(tcell.ColorWhite).Bold(true)
		if l.Missed {
			style = style.Foreground(colorMissed)
		}
		ch := '_'
		if l.Char != "" {
			ch = []rune(l.Char)[0]
		}
		r.screen.SetContent(x, rowWord, ' ', style)
		r.screen.SetContent(x+1, rowWord, ch, style)
		r.screen.SetContent(x+2, rowWord, ' ', style)
		x += 4
	}
}

func (r *Renderer) renderKeys(keys []board.Key) {
	for row, span := range keyRows {
		x := 1
		for _, k := range keys[span[0]:min(span[1], len(keys))] {
			style := tcell.StyleDefault.Background(colorKey).Foreground(tcell.ColorBlack)
			switch {
			case k.Correct:
				style = style.Background(colorCorrect)
			case k.Wrong:
				style = style.Background(colorWrong)
			}
			if k.Disabled {
				style = style.Dim(true)
			}
			x = r.screen.Text(x, rowKeys+row, " "+k.Letter+" ", style) + 1
		}
	}
}
