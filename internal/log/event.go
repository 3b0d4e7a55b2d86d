package log

// EventType enumerates all observable state changes.
type EventType int

const (
	EventSlotSwitch EventType = iota
	EventCardAdd
	EventCardRemove
	EventPoolReset
	EventPoolClear
	EventPoolPad
	EventDraw
	EventReplace
	EventMPChange
	EventSettingsChange
	EventStatsChange
	EventRename
	EventDenied // mutation against another player rejected by the permission gate
)

func (e EventType) String() string {
	switch e {
	case EventSlotSwitch:
		return "SlotSwitch"
	case EventCardAdd:
		return "CardAdd"
	case EventCardRemove:
		return "CardRemove"
	case EventPoolReset:
		return "PoolReset"
	case EventPoolClear:
		return "PoolClear"
	case EventPoolPad:
		return "PoolPad"
	case EventDraw:
		return "Draw"
	case EventReplace:
		return "Replace"
	case EventMPChange:
		return "MPChange"
	case EventSettingsChange:
		return "SettingsChange"
	case EventStatsChange:
		return "StatsChange"
	case EventRename:
		return "Rename"
	case EventDenied:
		return "Denied"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable change to a player's decks.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Player  string    // player whose record changed
	Actor   string    // player who issued the command (differs from Player for admin overrides)
	Slot    int       // slot number (1-based), 0 if not slot specific
	Type    EventType // event type
	Card    string    // card label (if applicable)
	Details string    // human-readable detail string
}
