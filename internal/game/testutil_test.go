package game

import (
	"math/rand"
	"testing"

	"github.com/peterkuimelis/mpdeck/internal/log"
)

// firstRand always picks the first candidate and never shuffles, so tests
// can predict every choice.
type firstRand struct{}

func (firstRand) Intn(n int) int { return 0 }

func (firstRand) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// newTestEngine builds an engine with a fixed seed and an inspectable logger.
func newTestEngine(t *testing.T) (*Engine, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	e := NewEngine(EngineConfig{Seed: 42, Logger: logger})
	return e, logger
}

func cards(labels ...string) []Card {
	out := make([]Card, len(labels))
	for i, l := range labels {
		out[i] = Card(l)
	}
	return out
}

// countCards builds a multiset of card labels.
func countCards(cs []Card) map[Card]int {
	m := make(map[Card]int)
	for _, c := range cs {
		m[c]++
	}
	return m
}

func assertCards(t *testing.T, what string, got []Card, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: got %v, want %v", what, got, want)
	}
	for i := range want {
		if string(got[i]) != want[i] {
			t.Fatalf("%s: got %v, want %v", what, got, want)
		}
	}
}
