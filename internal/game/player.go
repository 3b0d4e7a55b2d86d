package game

import (
	"fmt"
	"sync"
)

// PlayerRecord holds all five deck slots of one player. The embedded mutex
// serialises commands against the same player; different players never
// share a lock.
type PlayerRecord struct {
	mu     sync.Mutex
	ID     string
	Slots  [SlotCount]*DeckSlot // Slots[0] is slot 1
	Active int                  // 1-based
}

// NewPlayerRecord creates a record whose first slot holds base and whose
// other slots start empty.
func NewPlayerRecord(id string, base []Card, handSize, maxMP int) *PlayerRecord {
	p := &PlayerRecord{ID: id, Active: 1}
	for i := range p.Slots {
		var cards []Card
		if i == 0 {
			cards = base
		}
		p.Slots[i] = NewDeckSlot(i+1, cards, handSize, maxMP)
	}
	return p
}

// ActiveSlot returns the slot currently in use.
func (p *PlayerRecord) ActiveSlot() *DeckSlot {
	return p.Slots[p.Active-1]
}

// Slot returns slot n (1-based).
func (p *PlayerRecord) Slot(n int) (*DeckSlot, error) {
	if n < 1 || n > SlotCount {
		return nil, fmt.Errorf("slot %d (want 1-%d): %w", n, SlotCount, ErrOutOfRange)
	}
	return p.Slots[n-1], nil
}

// SwitchSlot makes slot n active. The slot switched into always starts with
// no hand and full MP, even when it was already active.
func (p *PlayerRecord) SwitchSlot(n int) (*DeckSlot, error) {
	s, err := p.Slot(n)
	if err != nil {
		return nil, err
	}
	p.Active = n
	s.reset()
	return s, nil
}
