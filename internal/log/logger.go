package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	mu     sync.Mutex
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]GameEvent, len(l.events))
	copy(out, l.events)
	return out
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

// TextLogger numbers and prints events as they arrive. It keeps no history,
// so Events always returns nil.
type TextLogger struct {
	mu  sync.Mutex
	w   io.Writer
	seq int
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	event.Seq = l.seq
	fmt.Fprintln(l.w, FormatEvent(event))
}

func (l *TextLogger) Events() []GameEvent {
	return nil
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	slot := "      "
	if e.Slot > 0 {
		slot = fmt.Sprintf("slot %d", e.Slot)
	}
	who := e.Player
	if e.Actor != "" && e.Actor != e.Player {
		who = fmt.Sprintf("%s (by %s)", e.Player, e.Actor)
	}
	return fmt.Sprintf("#%-4d %s | %-14s | %s: %s", e.Seq, slot, e.Type, who, e.Details)
}

// --- Helper constructors for common events ---

func NewSlotSwitchEvent(player, actor string, slot int, name string) GameEvent {
	return GameEvent{
		Player:  player,
		Actor:   actor,
		Slot:    slot,
		Type:    EventSlotSwitch,
		Details: fmt.Sprintf("switched to %s", name),
	}
}

func NewCardAddEvent(player, actor string, slot int, card string, poolSize int) GameEvent {
	return GameEvent{
		Player:  player,
		Actor:   actor,
		Slot:    slot,
		Type:    EventCardAdd,
		Card:    card,
		Details: fmt.Sprintf("added %s (%d cards)", card, poolSize),
	}
}

func NewCardRemoveEvent(player, actor string, slot int, removed []string, poolSize int) GameEvent {
	return GameEvent{
		Player:  player,
		Actor:   actor,
		Slot:    slot,
		Type:    EventCardRemove,
		Details: fmt.Sprintf("removed %s (%d cards)", strings.Join(removed, ", "), poolSize),
	}
}

func NewPoolResetEvent(player, actor string, slot int, poolSize int) GameEvent {
	return GameEvent{
		Player:  player,
		Actor:   actor,
		Slot:    slot,
		Type:    EventPoolReset,
		Details: fmt.Sprintf("pool reset to base set (%d cards)", poolSize),
	}
}

func NewPoolClearEvent(player, actor string, slot int) GameEvent {
	return GameEvent{
		Player:  player,
		Actor:   actor,
		Slot:    slot,
		Type:    EventPoolClear,
		Details: "pool cleared",
	}
}

func NewPoolPadEvent(player string, slot int, from, to int) GameEvent {
	return GameEvent{
		Player:  player,
		Actor:   player,
		Slot:    slot,
		Type:    EventPoolPad,
		Details: fmt.Sprintf("pool padded with duplicates: %d → %d cards", from, to),
	}
}

func NewDrawEvent(player string, slot int, hand []string) GameEvent {
	return GameEvent{
		Player:  player,
		Actor:   player,
		Slot:    slot,
		Type:    EventDraw,
		Details: fmt.Sprintf("drew %s", strings.Join(hand, ", ")),
	}
}

func NewReplaceEvent(player string, slot int, positions []int, hand []string) GameEvent {
	return GameEvent{
		Player:  player,
		Actor:   player,
		Slot:    slot,
		Type:    EventReplace,
		Details: fmt.Sprintf("replaced positions %v → %s", positions, strings.Join(hand, ", ")),
	}
}

func NewMPChangeEvent(player, actor string, slot int, oldMP, newMP, maxMP int, label string) GameEvent {
	return GameEvent{
		Player:  player,
		Actor:   actor,
		Slot:    slot,
		Type:    EventMPChange,
		Details: fmt.Sprintf("MP: %d → %d/%d (%s)", oldMP, newMP, maxMP, label),
	}
}

func NewSettingsChangeEvent(player, actor string, slot int, field string, value int) GameEvent {
	return GameEvent{
		Player:  player,
		Actor:   actor,
		Slot:    slot,
		Type:    EventSettingsChange,
		Details: fmt.Sprintf("%s set to %d", field, value),
	}
}

func NewStatsChangeEvent(player, actor string, slot int) GameEvent {
	return GameEvent{
		Player:  player,
		Actor:   actor,
		Slot:    slot,
		Type:    EventStatsChange,
		Details: "stats updated",
	}
}

func NewRenameEvent(player, actor string, slot int, oldName, newName string) GameEvent {
	return GameEvent{
		Player:  player,
		Actor:   actor,
		Slot:    slot,
		Type:    EventRename,
		Details: fmt.Sprintf("renamed %q → %q", oldName, newName),
	}
}

func NewDeniedEvent(player, actor string, op string) GameEvent {
	return GameEvent{
		Player:  player,
		Actor:   actor,
		Type:    EventDenied,
		Details: fmt.Sprintf("%s denied: administrator required", op),
	}
}
