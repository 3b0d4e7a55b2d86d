package game

import (
	"fmt"
	"strings"

	"github.com/peterkuimelis/mpdeck/internal/log"
)

// Actor is whoever issued a command. Admin is the host's answer to "is this
// caller an administrator where the command was sent".
type Actor struct {
	ID    string
	Admin bool
}

// SlotView is a copy of one slot, safe to keep after the record lock is
// released.
type SlotView struct {
	Player    string `json:"player"`
	Index     int    `json:"slot"` // 1-based slot number
	Name      string `json:"name"`
	Cards     []Card `json:"cards"`
	Hand      []Card `json:"hand"`
	HandSize  int    `json:"hand_size"`
	MaxMP     int    `json:"max_mp"`
	CurrentMP int    `json:"current_mp"`
	Stats     string `json:"stats,omitempty"`
}

// EngineConfig holds configuration for creating an Engine.
type EngineConfig struct {
	BaseDeck []Card // nil for BaseDeck
	HandSize int    // 0 for DefaultHandSize
	MaxMP    int    // 0 for DefaultMaxMP
	Seed     int64  // RNG seed (0 for random)
	Rand     Rand   // overrides Seed when set
	Logger   log.EventLogger
}

// Engine runs every player command against the registry.
type Engine struct {
	players *Registry
	rng     Rand
	logger  log.EventLogger
}

// NewEngine creates an engine with an empty registry.
func NewEngine(cfg EngineConfig) *Engine {
	base := cfg.BaseDeck
	if base == nil {
		base = BaseDeck
	}
	handSize := cfg.HandSize
	if handSize == 0 {
		handSize = DefaultHandSize
	}
	maxMP := cfg.MaxMP
	if maxMP == 0 {
		maxMP = DefaultMaxMP
	}
	var rng Rand = cfg.Rand
	if rng == nil {
		rng = newLockedRand(cfg.Seed)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	return &Engine{
		players: NewRegistry(base, handSize, maxMP),
		rng:     rng,
		logger:  logger,
	}
}

// Registry exposes the player registry.
func (e *Engine) Registry() *Registry {
	return e.players
}

// --- Reads (public, never gated) ---

// ViewPool returns target's active slot with its pool.
func (e *Engine) ViewPool(target string) (SlotView, error) {
	return e.read(target)
}

// ViewHand returns target's active slot with its hand and MP.
func (e *Engine) ViewHand(target string) (SlotView, error) {
	return e.read(target)
}

// Settings returns target's active slot settings.
func (e *Engine) Settings(target string) (SlotView, error) {
	return e.read(target)
}

// Stats returns target's active slot stats.
func (e *Engine) Stats(target string) (SlotView, error) {
	return e.read(target)
}

// --- Mutations ---

// SwitchSlot makes slot n active for target and resets that slot's hand and MP.
func (e *Engine) SwitchSlot(actor Actor, target string, n int) (SlotView, error) {
	return e.mutate(actor, target, "switch slot", func(p *PlayerRecord) ([]log.GameEvent, error) {
		s, err := p.SwitchSlot(n)
		if err != nil {
			return nil, err
		}
		return []log.GameEvent{log.NewSlotSwitchEvent(p.ID, actor.ID, n, s.Name)}, nil
	})
}

// AddCard appends text as a card to target's active pool.
func (e *Engine) AddCard(actor Actor, target, text string) (SlotView, Card, error) {
	var added Card
	v, err := e.mutate(actor, target, "add card", func(p *PlayerRecord) ([]log.GameEvent, error) {
		s := p.ActiveSlot()
		c, err := s.AddCard(text)
		if err != nil {
			return nil, err
		}
		added = c
		return []log.GameEvent{log.NewCardAddEvent(p.ID, actor.ID, p.Active, string(c), len(s.Cards))}, nil
	})
	return v, added, err
}

// RemoveCards removes the cards at the given 1-based pool indices.
func (e *Engine) RemoveCards(actor Actor, target string, indices []int) (SlotView, []Card, error) {
	var removed []Card
	v, err := e.mutate(actor, target, "remove cards", func(p *PlayerRecord) ([]log.GameEvent, error) {
		s := p.ActiveSlot()
		r, err := s.RemoveCards(indices)
		if err != nil {
			return nil, err
		}
		removed = r
		return []log.GameEvent{log.NewCardRemoveEvent(p.ID, actor.ID, p.Active, cardStrings(r), len(s.Cards))}, nil
	})
	return v, removed, err
}

// ResetPool replaces target's active pool with the base set.
func (e *Engine) ResetPool(actor Actor, target string) (SlotView, error) {
	return e.mutate(actor, target, "reset pool", func(p *PlayerRecord) ([]log.GameEvent, error) {
		s := p.ActiveSlot()
		s.ResetPool(e.players.base)
		return []log.GameEvent{log.NewPoolResetEvent(p.ID, actor.ID, p.Active, len(s.Cards))}, nil
	})
}

// ClearPool empties target's active pool.
func (e *Engine) ClearPool(actor Actor, target string) (SlotView, error) {
	return e.mutate(actor, target, "clear pool", func(p *PlayerRecord) ([]log.GameEvent, error) {
		p.ActiveSlot().ClearPool()
		return []log.GameEvent{log.NewPoolClearEvent(p.ID, actor.ID, p.Active)}, nil
	})
}

// Draw draws a fresh hand from the actor's own active slot.
func (e *Engine) Draw(actor Actor) (SlotView, error) {
	return e.mutate(actor, "", "draw", func(p *PlayerRecord) ([]log.GameEvent, error) {
		s := p.ActiveSlot()
		before := len(s.Cards)
		hand, err := s.Draw(e.rng)
		if err != nil {
			return nil, err
		}
		var events []log.GameEvent
		if len(s.Cards) > before {
			events = append(events, log.NewPoolPadEvent(p.ID, p.Active, before, len(s.Cards)))
		}
		return append(events, log.NewDrawEvent(p.ID, p.Active, cardStrings(hand))), nil
	})
}

// Replace redraws the given 1-based positions of the actor's own hand.
func (e *Engine) Replace(actor Actor, positions []int) (SlotView, error) {
	return e.mutate(actor, "", "replace", func(p *PlayerRecord) ([]log.GameEvent, error) {
		hand, err := p.ActiveSlot().Replace(e.rng, positions)
		if err != nil {
			return nil, err
		}
		return []log.GameEvent{log.NewReplaceEvent(p.ID, p.Active, positions, cardStrings(hand))}, nil
	})
}

// AdjustMP applies op to target's active slot. The returned label describes
// what was requested; the view holds the clamped result.
func (e *Engine) AdjustMP(actor Actor, target string, op MPOp) (SlotView, string, error) {
	label := op.String()
	v, err := e.mutate(actor, target, "adjust MP", func(p *PlayerRecord) ([]log.GameEvent, error) {
		s := p.ActiveSlot()
		old := s.CurrentMP
		s.AdjustMP(op)
		return []log.GameEvent{log.NewMPChangeEvent(p.ID, actor.ID, p.Active, old, s.CurrentMP, s.MaxMP, label)}, nil
	})
	return v, label, err
}

// SetSetting changes a numeric setting of target's active slot.
func (e *Engine) SetSetting(actor Actor, target string, field Setting, value int) (SlotView, error) {
	return e.mutate(actor, target, "change settings", func(p *PlayerRecord) ([]log.GameEvent, error) {
		if err := field.apply(p.ActiveSlot(), value); err != nil {
			return nil, err
		}
		return []log.GameEvent{log.NewSettingsChangeEvent(p.ID, actor.ID, p.Active, field.String(), value)}, nil
	})
}

// SetStats replaces the stats text of target's active slot. Empty text
// clears it.
func (e *Engine) SetStats(actor Actor, target, text string) (SlotView, error) {
	return e.mutate(actor, target, "set stats", func(p *PlayerRecord) ([]log.GameEvent, error) {
		p.ActiveSlot().Stats = strings.TrimSpace(text)
		return []log.GameEvent{log.NewStatsChangeEvent(p.ID, actor.ID, p.Active)}, nil
	})
}

// Rename sets the display name of target's active slot.
func (e *Engine) Rename(actor Actor, target, text string) (SlotView, error) {
	return e.mutate(actor, target, "rename", func(p *PlayerRecord) ([]log.GameEvent, error) {
		s := p.ActiveSlot()
		old := s.Name
		if err := s.Rename(text); err != nil {
			return nil, err
		}
		return []log.GameEvent{log.NewRenameEvent(p.ID, actor.ID, p.Active, old, s.Name)}, nil
	})
}

// --- Internals ---

// mutate runs the permission gate, then fn under target's record lock, and
// logs fn's events once the lock is released. A denied call touches no
// record at all.
func (e *Engine) mutate(actor Actor, target, op string, fn func(p *PlayerRecord) ([]log.GameEvent, error)) (SlotView, error) {
	if actor.ID == "" {
		return SlotView{}, fmt.Errorf("%s: missing player: %w", op, ErrInvalidOperation)
	}
	if target == "" {
		target = actor.ID
	}
	if err := Authorize(actor.ID, target, actor.Admin); err != nil {
		e.logger.Log(log.NewDeniedEvent(target, actor.ID, op))
		return SlotView{}, fmt.Errorf("%s for %s: %w", op, target, err)
	}

	p := e.players.GetOrCreate(target)
	p.mu.Lock()
	events, err := fn(p)
	v := snapshot(p)
	p.mu.Unlock()
	if err != nil {
		return v, fmt.Errorf("%s: %w", op, err)
	}

	for _, ev := range events {
		e.logger.Log(ev)
	}
	return v, nil
}

func (e *Engine) read(target string) (SlotView, error) {
	if target == "" {
		return SlotView{}, fmt.Errorf("view: missing player: %w", ErrInvalidOperation)
	}
	p := e.players.GetOrCreate(target)
	p.mu.Lock()
	defer p.mu.Unlock()
	return snapshot(p), nil
}

// snapshot copies the active slot. The caller holds p.mu.
func snapshot(p *PlayerRecord) SlotView {
	s := p.ActiveSlot()
	return SlotView{
		Player:    p.ID,
		Index:     p.Active,
		Name:      s.Name,
		Cards:     append([]Card{}, s.Cards...),
		Hand:      append([]Card{}, s.Hand...),
		HandSize:  s.HandSize,
		MaxMP:     s.MaxMP,
		CurrentMP: s.CurrentMP,
		Stats:     s.Stats,
	}
}

func cardStrings(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = string(c)
	}
	return out
}
