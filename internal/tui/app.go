package tui

import (
	"context"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/taha3313/AssemblyEndgame/internal/board"
	"github.com/taha3313/AssemblyEndgame/internal/game"
	"github.com/taha3313/AssemblyEndgame/internal/lives"
	"github.com/taha3313/AssemblyEndgame/internal/telemetry"
)

// App runs one terminal session. The engine is owned by the event loop
// and touched from nowhere else.
type App struct {
	screen   *Screen
	renderer *Renderer
	game     *game.Game
	table    []lives.Life
	farewell func(string) string
	running  bool

	// one farewell line per lost life so redraws don't reshuffle it
	farewellAt   int
	farewellText string

	round trace.Span
}

// New builds an App drawing words from supply.
func New(screen *Screen, supply game.WordSupplier, farewell func(string) string) *App {
	if farewell == nil {
		farewell = lives.Farewell
	}
	return &App{
		screen:   screen,
		renderer: NewRenderer(screen),
		game:     game.New(supply, lives.Count()),
		table:    lives.All(),
		farewell: farewell,
		running:  true,
	}
}

// Run executes the main loop until the player quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.screen.Close()

	stop := context.AfterFunc(ctx, a.screen.Interrupt)
	defer stop()

	a.startRound(ctx)
	for a.running {
		a.renderer.Render(a.Board())
		ev := a.screen.PollEvent()
		if ev == nil {
			break
		}
		a.handleEvent(ctx, ev)
	}
	a.endRound()
	return nil
}

// Board derives the board for the current state.
func (a *App) Board() board.Board {
	return board.Build(a.game.View(), a.table, a.cachedFarewell)
}

func (a *App) cachedFarewell(name string) string {
	wrong := a.game.View().WrongGuessCount
	if a.farewellAt != wrong || a.farewellText == "" {
		a.farewellAt = wrong
		a.farewellText = a.farewell(name)
	}
	return a.farewellText
}

func (a *App) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a.handleKey(ctx, ev)
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventInterrupt:
		a.running = false
	}
}

// handleKey maps keys to game actions. Letters are ignored once the round
// is over, like a disabled keyboard.
func (a *App) handleKey(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.running = false

	case tcell.KeyEnter:
		if a.game.View().IsOver {
			a.endRound()
			a.game.NewGame()
			a.startRound(ctx)
		}

	case tcell.KeyRune:
		r := unicode.ToLower(ev.Rune())
		if r < 'a' || r > 'z' || a.game.View().IsOver {
			return
		}
		if a.game.GuessLetter(r) {
			v := a.game.View()
			log.Debug().Str("letter", string(r)).Int("wrong", v.WrongGuessCount).Msg("guess")
			if a.round != nil {
				a.round.AddEvent("guess", trace.WithAttributes(
					attribute.String("letter", string(r)),
					attribute.Bool("correct", !v.IsLastGuessWrong),
				))
			}
			if v.IsOver {
				a.endRound()
			}
		}
	}
}

func (a *App) startRound(ctx context.Context) {
	_, a.round = telemetry.Tracer("tui").Start(ctx, "game.round")
	log.Info().Str("gameId", a.game.ID).Msg("round started")
}

// endRound closes the round span once; later calls are no-ops.
func (a *App) endRound() {
	if a.round == nil {
		return
	}
	v := a.game.View()
	a.round.SetAttributes(
		attribute.String("game.state", v.State()),
		attribute.Int("game.wrong", v.WrongGuessCount),
		attribute.Int("game.guesses", len(v.Guessed)),
	)
	a.round.End()
	a.round = nil
	log.Info().Str("gameId", a.game.ID).Str("state", v.State()).Msg("round ended")
}
