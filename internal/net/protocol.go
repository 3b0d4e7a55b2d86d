package net

// Message types for the JSON protocol over TCP. Each message is one JSON
// value; the encoder terminates it with a newline.

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"` // "welcome", "reply" or "error"

	// For "welcome": the id the server assigned. For "reply": who sent the
	// command.
	Player string `json:"player,omitempty"`

	// For "reply": the command as typed.
	Command string `json:"command,omitempty"`

	// Reply text or error message.
	Text string `json:"text"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"` // "join" (once, first) or "command"

	// For "join": requested player id. Empty asks for a guest id.
	Player string `json:"player,omitempty"`

	// For "command": the raw chat line, prefix included.
	Text string `json:"text,omitempty"`
}

const (
	MsgJoin    = "join"
	MsgCommand = "command"
	MsgWelcome = "welcome"
	MsgReply   = "reply"
	MsgError   = "error"
)
