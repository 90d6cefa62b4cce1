// internal/store/memory.go
//
// In-memory session store for running games.
// Games are ephemeral by design: state is lost when the process restarts.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID in a map.
//   - A game is only mutated inside Update, under the store lock, so one
//     engine never sees two concurrent guesses.
//   - Get hands out the pointer for read-only use (View).
//   - Save and Update stamp the game as touched; Idle lists games not
//     touched since a cutoff so the owner can Delete them.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/taha3313/AssemblyEndgame/internal/game"
)

// ErrNotFound is returned for unknown game IDs.
var ErrNotFound = errors.New("store: game not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or replaces a game.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Update runs fn on the stored game while holding exclusive access.
	// The error from fn is returned unchanged.
	Update(ctx context.Context, id string, fn func(g *game.Game) error) error

	// Delete drops a game. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Idle lists the IDs of games last saved or updated before cutoff.
	Idle(ctx context.Context, cutoff time.Time) ([]string, error)
}

// Option configures the memory store.
type Option func(*memory)

// WithClock sets the clock used to stamp games; time.Now by default.
func WithClock(now func() time.Time) Option {
	return func(m *memory) { m.now = now }
}

type entry struct {
	game    *game.Game
	touched time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex
	games map[string]*entry // keyed by Game.ID
	now   func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore(opts ...Option) Store {
	m := &memory{games: make(map[string]*entry), now: time.Now}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = &entry{game: g, touched: m.now()}
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.games[id]; ok {
		return e.game, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Update(ctx context.Context, id string, fn func(g *game.Game) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.games[id]
	if !ok {
		return ErrNotFound
	}
	e.touched = m.now()
	return fn(e.game)
}

func (m *memory) Idle(ctx context.Context, cutoff time.Time) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []string
	for id, e := range m.games {
		if e.touched.Before(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}
