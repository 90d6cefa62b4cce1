// internal/words/words.go
//
// Provides the word pool the game draws target words from.
//
// Responsibilities:
//   - Load the pool from a file, or fall back to the embedded default list.
//   - Supply uniformly random words (crypto/rand) as a game.WordSupplier.
//   - Prime a supplier with a chosen first word (fixed-answer games).
//
// Constraints:
//   • Words must be alphabetic (a–z) after lowercasing.
//   • Blank lines and lines starting with "#" are skipped.
//   • Initialization is run once (sync.Once).

package words

import (
	"bufio"
	"crypto/rand"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
	"sync"
)

// fallbackWord is returned by Random when no pool is loaded.
const fallbackWord = "react"

//go:embed words.txt
var embeddedWords string

var (
	initOnce   sync.Once
	pool       []string
	initialErr error
)

// ErrEmpty is returned when a word source yields no usable words.
var ErrEmpty = errors.New("words: pool is empty")

// Init loads the word pool exactly once.
// An empty path selects the embedded default list.
func Init(path string) error {
	initOnce.Do(func() {
		var list []string
		if path == "" {
			list = parse(strings.NewReader(embeddedWords))
		} else {
			f, err := os.Open(path)
			if err != nil {
				initialErr = fmt.Errorf("open word file: %w", err)
				return
			}
			defer f.Close()
			list = parse(f)
		}
		if len(list) == 0 {
			initialErr = ErrEmpty
			return
		}
		pool = list
	})
	return initialErr
}

// parse reads one word per line, lowercases and trims each,
// and keeps only non-empty alphabetic words.
func parse(r io.Reader) []string {
	var out []string
	seen := make(map[string]struct{})
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Random returns a cryptographically random word from the pool.
// If the pool is not loaded, falls back to "react".
func Random() string {
	if len(pool) == 0 {
		return fallbackWord
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(pool))))
	return pool[nBig.Int64()]
}

// All returns the loaded pool in file order.
func All() []string { return pool }

// Stats returns the number of loaded words.
func Stats() int { return len(pool) }

// Primed hands out a chosen word on the first draw and defers to next
// afterwards. It is not safe for concurrent use; the game owning it
// serializes draws.
type Primed struct {
	first string
	next  func() string
	draws int
}

// Prime returns a Primed supplier. first is lowercased.
func Prime(first string, next func() string) *Primed {
	return &Primed{first: strings.ToLower(first), next: next}
}

// Next draws the next word.
func (p *Primed) Next() string {
	p.draws++
	if p.draws == 1 {
		return p.first
	}
	return p.next()
}

// OnFirst reports whether the most recent draw was the primed word.
func (p *Primed) OnFirst() bool { return p.draws == 1 }
