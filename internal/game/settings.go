package game

import (
	"fmt"
	"strings"
)

// Setting names a per-slot numeric setting.
type Setting int

const (
	SettingHandSize Setting = iota + 1
	SettingMaxMP
)

func (s Setting) String() string {
	switch s {
	case SettingHandSize:
		return "hand size"
	case SettingMaxMP:
		return "max MP"
	default:
		return "unknown"
	}
}

// ParseSetting accepts the field names players type.
func ParseSetting(name string) (Setting, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "handsize", "hand", "hs":
		return SettingHandSize, nil
	case "maxmp", "mp":
		return SettingMaxMP, nil
	}
	return 0, fmt.Errorf("setting %q: %w", name, ErrInvalidOperation)
}

// apply sets the field on slot.
func (s Setting) apply(slot *DeckSlot, value int) error {
	switch s {
	case SettingHandSize:
		return slot.SetHandSize(value)
	case SettingMaxMP:
		return slot.SetMaxMP(value)
	}
	return fmt.Errorf("setting %d: %w", int(s), ErrInvalidOperation)
}
