package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BaseDeck is the card set every new player starts with in slot 1 when no
// decks file is configured.
var BaseDeck = []Card{
	"Fire - 3 Mp",
	"Wind - 3 Mp",
	"Water - 3 Mp",
	"Earth - 3 Mp",
	"Ball - 2 Mp",
	"Bolt - 2 Mp",
	"Wall - 3 Mp",
	"Burst - 3 Mp",
	"Forward - 1 Mp",
	"Down - 1 Mp",
	"Orbit - 2 Mp",
	"Split - 2 Mp",
}

// DeckFile represents the top-level YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single deck in the YAML file.
type DeckEntry struct {
	Name  string      `yaml:"name"`
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry represents a card and its count in a deck.
type CardEntry struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// Expand lists every card of the entry, repeating each Count times. A
// missing count means one copy.
func (d DeckEntry) Expand() []Card {
	var cards []Card
	for _, entry := range d.Cards {
		n := entry.Count
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			cards = append(cards, Card(entry.Name))
		}
	}
	return cards
}

// DeckByNumber returns the Nth deck (1-indexed) from the deck file.
func DeckByNumber(path string, n int) (string, []Card, error) {
	df, err := ReadDeckFile(path)
	if err != nil {
		return "", nil, err
	}

	if n < 1 || n > len(df.Decks) {
		return "", nil, fmt.Errorf("deck %d not found (have %d decks)", n, len(df.Decks))
	}

	deck := df.Decks[n-1]
	return deck.Name, deck.Expand(), nil
}

// ReadDeckFile loads the YAML deck file at path.
func ReadDeckFile(path string) (DeckFile, error) {
	var df DeckFile
	data, err := os.ReadFile(path)
	if err != nil {
		return df, err
	}
	if err := yaml.Unmarshal(data, &df); err != nil {
		return df, fmt.Errorf("parse deck YAML: %w", err)
	}
	return df, nil
}
