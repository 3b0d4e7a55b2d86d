package web

import "github.com/peterkuimelis/mpdeck/internal/game"

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
type DeckInfo struct {
	Number int         `json:"number"`
	Name   string      `json:"name"`
	Cards  []game.Card `json:"cards"`
}

// listDecks reads every deck in path. An empty path lists the built-in base
// set as deck 1.
func listDecks(path string) ([]DeckInfo, error) {
	if path == "" {
		return []DeckInfo{{Number: 1, Name: "Base", Cards: game.BaseDeck}}, nil
	}
	df, err := game.ReadDeckFile(path)
	if err != nil {
		return nil, err
	}

	decks := make([]DeckInfo, 0, len(df.Decks))
	for i, d := range df.Decks {
		decks = append(decks, DeckInfo{
			Number: i + 1,
			Name:   d.Name,
			Cards:  d.Expand(),
		})
	}
	return decks, nil
}
