package game

import (
	"errors"
	"math"
	"testing"
)

func TestDrawFromFullPool(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		s := NewDeckSlot(1, BaseDeck, 6, 10)
		hand, err := s.Draw(seeded(seed))
		if err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}
		if len(hand) != 6 {
			t.Fatalf("seed %d: hand has %d cards, want 6", seed, len(hand))
		}
		// BaseDeck has no duplicate labels, so sampling without replacement
		// must give six different cards.
		seen := make(map[Card]bool)
		for _, c := range hand {
			if seen[c] {
				t.Fatalf("seed %d: %s drawn twice from a pool without duplicates", seed, c)
			}
			seen[c] = true
		}
		if len(s.Cards) != len(BaseDeck) {
			t.Errorf("seed %d: pool changed size to %d", seed, len(s.Cards))
		}
	}
}

func TestDrawRespectsPoolMultiplicity(t *testing.T) {
	pool := cards("A", "A", "B", "C", "C", "C", "D")
	for seed := int64(1); seed <= 50; seed++ {
		s := NewDeckSlot(1, pool, 5, 10)
		hand, err := s.Draw(seeded(seed))
		if err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}
		have := countCards(pool)
		for c, n := range countCards(hand) {
			if n > have[c] {
				t.Fatalf("seed %d: %s appears %d times in hand but %d times in pool", seed, c, n, have[c])
			}
		}
	}
}

func TestDrawPadsUndersizedPool(t *testing.T) {
	s := NewDeckSlot(1, cards("A", "B"), 6, 10)

	hand, err := s.Draw(seeded(7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Cards) != 6 {
		t.Fatalf("pool not padded: %d cards, want 6", len(s.Cards))
	}
	if s.Cards[0] != "A" || s.Cards[1] != "B" {
		t.Errorf("padding must append, pool starts with %v", s.Cards[:2])
	}
	for _, c := range s.Cards {
		if c != "A" && c != "B" {
			t.Fatalf("padding introduced unknown card %s", c)
		}
	}

	// With the pool exactly hand-sized, the hand is a permutation of it.
	want := countCards(s.Cards)
	got := countCards(hand)
	for c, n := range want {
		if got[c] != n {
			t.Fatalf("hand %v is not a permutation of padded pool %v", hand, s.Cards)
		}
	}

	// Padding persists: a second draw does not grow the pool further.
	if _, err := s.Draw(seeded(8)); err != nil {
		t.Fatalf("second draw: %v", err)
	}
	if len(s.Cards) != 6 {
		t.Errorf("pool grew on second draw: %d cards", len(s.Cards))
	}
}

func TestDrawEmptyPool(t *testing.T) {
	s := NewDeckSlot(2, nil, 6, 10)

	_, err := s.Draw(seeded(1))
	if !errors.Is(err, ErrInsufficientPool) {
		t.Fatalf("expected ErrInsufficientPool, got %v", err)
	}
	if len(s.Cards) != 0 || len(s.Hand) != 0 {
		t.Errorf("empty-pool draw mutated slot: cards=%v hand=%v", s.Cards, s.Hand)
	}
}

func TestReplaceIsSequential(t *testing.T) {
	s := NewDeckSlot(1, cards("A", "B", "C", "D", "E"), 4, 10)
	s.Hand = cards("A", "B", "C", "D")

	hand, err := s.Replace(seeded(3), []int{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Position 1 can only become E. Position 2 then sees hand [E B C D]
	// and can only become A.
	assertCards(t, "hand", hand, "E", "A", "C", "D")
}

func TestReplaceFallsBackToWholePool(t *testing.T) {
	s := NewDeckSlot(1, cards("A", "B"), 2, 10)
	s.Hand = cards("A", "B")

	hand, err := s.Replace(firstRand{}, []int{2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Every pool value is already in hand, so the pick comes from the full
	// pool and may duplicate a card.
	assertCards(t, "hand", hand, "A", "A")
}

func TestReplaceIgnoresOutOfRangePositions(t *testing.T) {
	s := NewDeckSlot(1, BaseDeck, 4, 10)
	s.Hand = cards("A", "B", "C", "D")

	hand, err := s.Replace(seeded(1), []int{0, 5, 99})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertCards(t, "hand", hand, "A", "B", "C", "D")
}

func TestReplaceErrors(t *testing.T) {
	s := NewDeckSlot(1, BaseDeck, 4, 10)
	if _, err := s.Replace(seeded(1), []int{1}); !errors.Is(err, ErrNoHandDrawn) {
		t.Errorf("expected ErrNoHandDrawn, got %v", err)
	}

	s.Hand = cards("A", "B", "C", "D")
	if _, err := s.Replace(seeded(1), nil); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("expected ErrEmptySelection, got %v", err)
	}
}

func TestAdjustMPClamps(t *testing.T) {
	tests := []struct {
		name    string
		current int
		op      MPOp
		want    int
	}{
		{"overcap", 8, Relative(5), 10},
		{"overdraw", 5, Relative(-20), 0},
		{"spend", 7, Relative(-3), 4},
		{"gain", 2, Relative(3), 5},
		{"reset", 1, ResetToMax(), 10},
		{"huge overcap", 5, Relative(math.MaxInt), 10},
		{"huge overdraw", 5, Relative(math.MinInt), 0},
		{"exact refill", 4, Relative(6), 10},
		{"exact drain", 4, Relative(-4), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewDeckSlot(1, nil, 6, 10)
			s.CurrentMP = tt.current
			if got := s.AdjustMP(tt.op); got != tt.want {
				t.Errorf("AdjustMP(%s) from %d = %d, want %d", tt.op, tt.current, got, tt.want)
			}
			if s.CurrentMP != tt.want {
				t.Errorf("CurrentMP = %d, want %d", s.CurrentMP, tt.want)
			}
		})
	}
}

func TestSetMaxMPResetsCurrent(t *testing.T) {
	s := NewDeckSlot(1, nil, 6, 10)
	s.CurrentMP = 3

	if err := s.SetMaxMP(15); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.MaxMP != 15 || s.CurrentMP != 15 {
		t.Errorf("got %d/%d, want 15/15", s.CurrentMP, s.MaxMP)
	}

	for _, n := range []int{0, 101, -1} {
		if err := s.SetMaxMP(n); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("SetMaxMP(%d): expected ErrOutOfRange, got %v", n, err)
		}
	}
	if s.MaxMP != 15 {
		t.Errorf("rejected SetMaxMP changed MaxMP to %d", s.MaxMP)
	}
}

func TestSetHandSizeKeepsExistingHand(t *testing.T) {
	s := NewDeckSlot(1, BaseDeck, 6, 10)
	if _, err := s.Draw(seeded(1)); err != nil {
		t.Fatalf("draw: %v", err)
	}

	if err := s.SetHandSize(3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Hand) != 6 {
		t.Errorf("hand resized to %d on settings change", len(s.Hand))
	}

	for _, n := range []int{0, 21} {
		if err := s.SetHandSize(n); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("SetHandSize(%d): expected ErrOutOfRange, got %v", n, err)
		}
	}

	hand, err := s.Draw(seeded(2))
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	if len(hand) != 3 {
		t.Errorf("next draw has %d cards, want 3", len(hand))
	}
}

func TestRemoveCardsDescending(t *testing.T) {
	s := NewDeckSlot(1, cards("A", "B", "C", "D", "E"), 6, 10)

	removed, err := s.RemoveCards([]int{1, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertCards(t, "removed", removed, "A", "C")
	assertCards(t, "pool", s.Cards, "B", "D", "E")
}

func TestRemoveCardsDeduplicates(t *testing.T) {
	s := NewDeckSlot(1, cards("A", "B", "C"), 6, 10)

	removed, err := s.RemoveCards([]int{3, 3, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertCards(t, "removed", removed, "A", "C")
	assertCards(t, "pool", s.Cards, "B")
}

func TestRemoveCardsValidatesBeforeMutating(t *testing.T) {
	s := NewDeckSlot(1, cards("A", "B", "C"), 6, 10)

	if _, err := s.RemoveCards([]int{1, 4}); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	assertCards(t, "pool", s.Cards, "A", "B", "C")

	if _, err := s.RemoveCards(nil); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("expected ErrEmptySelection, got %v", err)
	}

	empty := NewDeckSlot(2, nil, 6, 10)
	if _, err := empty.RemoveCards([]int{1}); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange on empty pool, got %v", err)
	}
}

func TestAddCardAndRename(t *testing.T) {
	s := NewDeckSlot(3, nil, 6, 10)
	if s.Name != "Deck 3" {
		t.Errorf("default name = %q, want %q", s.Name, "Deck 3")
	}

	c, err := s.AddCard("  Reverse - 2 Mp ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != "Reverse - 2 Mp" {
		t.Errorf("card not trimmed: %q", c)
	}
	if _, err := s.AddCard("   "); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation for blank card, got %v", err)
	}
	assertCards(t, "pool", s.Cards, "Reverse - 2 Mp")

	if err := s.Rename("Aggro"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if err := s.Rename(""); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation for blank name, got %v", err)
	}
	if s.Name != "Aggro" {
		t.Errorf("name = %q, want Aggro", s.Name)
	}
}

func TestReplaceBoundedByDrawnHand(t *testing.T) {
	s := NewDeckSlot(1, cards("A", "B", "C", "D", "E", "F", "G", "H"), 3, 10)
	s.Hand = cards("A", "B", "C")

	// The next draw would deal six, but the hand on the table still has three.
	if err := s.SetHandSize(6); err != nil {
		t.Fatalf("set hand size: %v", err)
	}
	hand, err := s.Replace(seeded(4), []int{3, 5, 6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hand) != 3 {
		t.Fatalf("hand grew to %d cards", len(hand))
	}
	if hand[0] != "A" || hand[1] != "B" {
		t.Errorf("unselected positions changed: %v", hand)
	}
	if hand[2] == "A" || hand[2] == "B" || hand[2] == "C" {
		t.Errorf("position 3 not replaced from cards outside the hand: %v", hand)
	}

	// Shrinking below the drawn hand leaves the tail replaceable.
	if err := s.SetHandSize(1); err != nil {
		t.Fatalf("set hand size: %v", err)
	}
	before := hand[2]
	hand, err = s.Replace(seeded(5), []int{3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hand) != 3 || hand[2] == before {
		t.Errorf("position 3 not replaced after shrinking hand size: %v", hand)
	}
}
