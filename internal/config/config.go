package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/mpdeck/internal/game"
	"github.com/peterkuimelis/mpdeck/internal/log"
)

// Config is the on-disk configuration shared by every host binary.
type Config struct {
	Prefix      string   `yaml:"prefix"`       // command prefix, e.g. "$"
	HandSize    int      `yaml:"hand_size"`    // default hand size for new slots
	MaxMP       int      `yaml:"max_mp"`       // default max MP for new slots
	Seed        int64    `yaml:"seed"`         // RNG seed (0 for random)
	Admins      []string `yaml:"admins"`       // player ids treated as administrators by TCP, web and MCP hosts
	DecksFile   string   `yaml:"decks_file"`   // optional deck file in the decks.yaml format
	BaseDeck    int      `yaml:"base_deck"`    // deck number (1-indexed) in DecksFile used as the base set
	MessageSize int      `yaml:"message_size"` // maximum reply length before splitting
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Prefix:      "$",
		HandSize:    game.DefaultHandSize,
		MaxMP:       game.DefaultMaxMP,
		BaseDeck:    1,
		MessageSize: 2000,
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the numeric defaults against the slot limits.
func (c Config) Validate() error {
	var errs []error
	if c.Prefix == "" {
		errs = append(errs, errors.New("prefix must not be empty"))
	}
	if c.HandSize < game.MinHandSize || c.HandSize > game.MaxHandSize {
		errs = append(errs, fmt.Errorf("hand_size %d out of range %d-%d", c.HandSize, game.MinHandSize, game.MaxHandSize))
	}
	if c.MaxMP < game.MinMaxMP || c.MaxMP > game.MaxMaxMP {
		errs = append(errs, fmt.Errorf("max_mp %d out of range %d-%d", c.MaxMP, game.MinMaxMP, game.MaxMaxMP))
	}
	if c.MessageSize < 100 {
		errs = append(errs, fmt.Errorf("message_size %d too small", c.MessageSize))
	}
	return errors.Join(errs...)
}

// IsAdmin reports whether id is listed under admins.
func (c Config) IsAdmin(id string) bool {
	for _, a := range c.Admins {
		if a == id {
			return true
		}
	}
	return false
}

// LoadBaseDeck returns the base card set: deck BaseDeck of DecksFile, or the
// built-in set when no decks file is configured.
func (c Config) LoadBaseDeck() ([]game.Card, error) {
	if c.DecksFile == "" {
		return game.BaseDeck, nil
	}
	_, cards, err := game.DeckByNumber(c.DecksFile, c.BaseDeck)
	if err != nil {
		return nil, fmt.Errorf("load base deck: %w", err)
	}
	return cards, nil
}

// EngineConfig builds the engine configuration from c.
func (c Config) EngineConfig() (game.EngineConfig, error) {
	base, err := c.LoadBaseDeck()
	if err != nil {
		return game.EngineConfig{}, err
	}
	return game.EngineConfig{
		BaseDeck: base,
		HandSize: c.HandSize,
		MaxMP:    c.MaxMP,
		Seed:     c.Seed,
	}, nil
}

// NewEngine builds an engine from c that reports game events to events.
func (c Config) NewEngine(events log.EventLogger) (*game.Engine, error) {
	ec, err := c.EngineConfig()
	if err != nil {
		return nil, err
	}
	ec.Logger = events
	return game.NewEngine(ec), nil
}
