package game

import "sync"

// Registry owns every PlayerRecord for the lifetime of the process. Records
// are created on first reference and never removed.
type Registry struct {
	mu       sync.Mutex
	players  map[string]*PlayerRecord
	base     []Card
	handSize int
	maxMP    int
}

// NewRegistry creates an empty registry. New players get a copy of base in
// slot 1 and the given defaults in every slot.
func NewRegistry(base []Card, handSize, maxMP int) *Registry {
	return &Registry{
		players:  make(map[string]*PlayerRecord),
		base:     append([]Card(nil), base...),
		handSize: handSize,
		maxMP:    maxMP,
	}
}

// GetOrCreate returns the record for id, creating it on first use.
func (r *Registry) GetOrCreate(id string) *PlayerRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		p = NewPlayerRecord(id, r.base, r.handSize, r.maxMP)
		r.players[id] = p
	}
	return p
}

// Get returns the record for id without creating it.
func (r *Registry) Get(id string) (*PlayerRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	return p, ok
}

// Len returns the number of known players.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// ActiveSlot returns the slot id is currently using, creating the player on
// first use. The slot belongs to the record and shares its lock.
func (r *Registry) ActiveSlot(id string) *DeckSlot {
	return r.GetOrCreate(id).ActiveSlot()
}
