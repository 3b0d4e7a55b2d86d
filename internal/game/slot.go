package game

import (
	"fmt"
	"sort"
	"strings"
)

const (
	SlotCount       = 5
	DefaultHandSize = 6
	MinHandSize     = 1
	MaxHandSize     = 20
	DefaultMaxMP    = 10
	MinMaxMP        = 1
	MaxMaxMP        = 100
)

// Card is an opaque card label. Two cards are the same card iff their labels
// are equal; a pool may hold the same label many times.
type Card string

// Rand is the randomness a slot needs. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Perm(n int) []int
}

// DeckSlot is one of a player's five deck configurations.
type DeckSlot struct {
	Cards     []Card // pool, insertion order preserved
	HandSize  int
	MaxMP     int
	CurrentMP int
	Hand      []Card // empty until drawn
	Name      string
	Stats     string
}

// NewDeckSlot creates slot number index (1-based) holding a copy of cards.
func NewDeckSlot(index int, cards []Card, handSize, maxMP int) *DeckSlot {
	return &DeckSlot{
		Cards:     append([]Card(nil), cards...),
		HandSize:  handSize,
		MaxMP:     maxMP,
		CurrentMP: maxMP,
		Name:      fmt.Sprintf("Deck %d", index),
	}
}

// HasHand reports whether a hand has been drawn.
func (s *DeckSlot) HasHand() bool {
	return len(s.Hand) > 0
}

// Draw samples a new hand of HandSize cards without replacement. An
// undersized pool is first padded, permanently, with copies of its own
// cards. An empty pool cannot be padded and is left untouched.
func (s *DeckSlot) Draw(rng Rand) ([]Card, error) {
	if len(s.Cards) == 0 {
		return nil, fmt.Errorf("draw %d from empty pool: %w", s.HandSize, ErrInsufficientPool)
	}

	for len(s.Cards) < s.HandSize {
		s.Cards = append(s.Cards, s.Cards[rng.Intn(len(s.Cards))])
	}

	perm := rng.Perm(len(s.Cards))
	hand := make([]Card, s.HandSize)
	for i := range hand {
		hand[i] = s.Cards[perm[i]]
	}
	s.Hand = hand
	return hand, nil
}

// Replace swaps the given 1-based hand positions for cards from the pool,
// one position at a time. Each pick prefers pool cards whose value is not
// anywhere in the current hand, falling back to the whole pool. Positions
// outside the hand are skipped.
func (s *DeckSlot) Replace(rng Rand, positions []int) ([]Card, error) {
	if !s.HasHand() {
		return nil, ErrNoHandDrawn
	}
	if len(positions) == 0 {
		return nil, ErrEmptySelection
	}

	for _, pos := range positions {
		idx := pos - 1
		if idx < 0 || idx >= len(s.Hand) || len(s.Cards) == 0 {
			continue
		}
		if available := s.notInHand(); len(available) > 0 {
			s.Hand[idx] = available[rng.Intn(len(available))]
		} else {
			s.Hand[idx] = s.Cards[rng.Intn(len(s.Cards))]
		}
	}
	return s.Hand, nil
}

// notInHand returns pool cards whose value does not appear in the hand,
// keeping pool multiplicity.
func (s *DeckSlot) notInHand() []Card {
	inHand := make(map[Card]bool, len(s.Hand))
	for _, c := range s.Hand {
		inHand[c] = true
	}
	var out []Card
	for _, c := range s.Cards {
		if !inHand[c] {
			out = append(out, c)
		}
	}
	return out
}

// AdjustMP applies op, clamping silently to [0, MaxMP].
func (s *DeckSlot) AdjustMP(op MPOp) int {
	switch op.Kind {
	case MPResetToMax:
		s.CurrentMP = s.MaxMP
	default:
		switch {
		case op.Delta >= s.MaxMP-s.CurrentMP:
			s.CurrentMP = s.MaxMP
		case op.Delta <= -s.CurrentMP:
			s.CurrentMP = 0
		default:
			s.CurrentMP += op.Delta
		}
	}
	return s.CurrentMP
}

// SetHandSize changes the hand size used by the next draw. An existing hand
// keeps its length.
func (s *DeckSlot) SetHandSize(n int) error {
	if n < MinHandSize || n > MaxHandSize {
		return fmt.Errorf("hand size %d (want %d-%d): %w", n, MinHandSize, MaxHandSize, ErrOutOfRange)
	}
	s.HandSize = n
	return nil
}

// SetMaxMP changes the MP ceiling and refills the pool to it.
func (s *DeckSlot) SetMaxMP(n int) error {
	if n < MinMaxMP || n > MaxMaxMP {
		return fmt.Errorf("max MP %d (want %d-%d): %w", n, MinMaxMP, MaxMaxMP, ErrOutOfRange)
	}
	s.MaxMP = n
	s.CurrentMP = n
	return nil
}

// AddCard appends a card to the pool. Surrounding whitespace is dropped.
func (s *DeckSlot) AddCard(text string) (Card, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("add empty card: %w", ErrInvalidOperation)
	}
	c := Card(text)
	s.Cards = append(s.Cards, c)
	return c, nil
}

// RemoveCards removes the cards at the given 1-based pool indices. Every
// index is checked before anything is removed; repeats count once. Removal
// runs from the highest index down so earlier removals cannot shift later
// ones. The removed cards are returned in ascending index order.
func (s *DeckSlot) RemoveCards(indices []int) ([]Card, error) {
	if len(indices) == 0 {
		return nil, ErrEmptySelection
	}
	if len(s.Cards) == 0 {
		return nil, fmt.Errorf("remove from empty pool: %w", ErrOutOfRange)
	}

	seen := make(map[int]bool, len(indices))
	var unique []int
	for _, i := range indices {
		if i < 1 || i > len(s.Cards) {
			return nil, fmt.Errorf("card %d (want 1-%d): %w", i, len(s.Cards), ErrOutOfRange)
		}
		if !seen[i] {
			seen[i] = true
			unique = append(unique, i)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(unique)))

	removed := make([]Card, len(unique))
	for n, i := range unique {
		removed[len(unique)-1-n] = s.Cards[i-1]
		s.Cards = append(s.Cards[:i-1], s.Cards[i:]...)
	}
	return removed, nil
}

// ResetPool replaces the pool with a copy of base.
func (s *DeckSlot) ResetPool(base []Card) {
	s.Cards = append([]Card(nil), base...)
}

// ClearPool empties the pool. The current hand is kept.
func (s *DeckSlot) ClearPool() {
	s.Cards = nil
}

// Rename sets the display name.
func (s *DeckSlot) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("empty name: %w", ErrInvalidOperation)
	}
	s.Name = name
	return nil
}

// reset puts the slot into the state it has right after being switched to.
func (s *DeckSlot) reset() {
	s.Hand = nil
	s.CurrentMP = s.MaxMP
}
