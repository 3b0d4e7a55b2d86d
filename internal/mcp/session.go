package mcp

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/peterkuimelis/mpdeck/internal/command"
	"github.com/peterkuimelis/mpdeck/internal/game"
)

// Session holds the engine shared by every tool call of one stdio process.
type Session struct {
	engine     *game.Engine
	dispatcher *command.Dispatcher
	isAdmin    func(id string) bool
}

// NewSession creates a session. isAdmin answers the administrator question
// for the player named in each call; nil means nobody is an administrator.
func NewSession(engine *game.Engine, dispatcher *command.Dispatcher, isAdmin func(id string) bool) *Session {
	if isAdmin == nil {
		isAdmin = func(string) bool { return false }
	}
	return &Session{engine: engine, dispatcher: dispatcher, isAdmin: isAdmin}
}

func (s *Session) actor(player string) game.Actor {
	return game.Actor{ID: player, Admin: s.isAdmin(player)}
}

// ToolResponse is the JSON envelope returned by the typed tools.
type ToolResponse struct {
	Slot    game.SlotView `json:"slot"`
	Removed []string      `json:"removed,omitempty"`
	Added   string        `json:"added,omitempty"`
	MP      string        `json:"mp_change,omitempty"`
}

func cardNames(cards []game.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = string(c)
	}
	return out
}

// parseIndices reads space-separated 1-based numbers. The first token that
// is not an integer fails the whole list.
func parseIndices(s string) ([]int, error) {
	var out []int
	for _, tok := range strings.Fields(s) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, &game.ParseError{Input: tok}
		}
		out = append(out, n)
	}
	return out, nil
}

// wholeNumber reads a numeric argument that must be an integer.
func wholeNumber(request mcp.CallToolRequest, key string) (int, error) {
	f := request.GetFloat(key, 0)
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, &game.ParseError{Input: strconv.FormatFloat(f, 'f', -1, 64)}
	}
	return int(f), nil
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
