package net

import (
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// outboxSize bounds the messages queued for one slow connection.
const outboxSize = 64

// NetworkController carries one player's connection: it reads commands and
// owns the only writer to the socket.
type NetworkController struct {
	conn   net.Conn
	enc    *json.Encoder
	dec    *json.Decoder
	player string
	out    chan ServerMessage
	done   chan struct{}
	once   sync.Once
}

// NewNetworkController creates a controller for the given connection. Call
// join before anything else.
func NewNetworkController(conn net.Conn) *NetworkController {
	return &NetworkController{
		conn: conn,
		enc:  json.NewEncoder(conn),
		dec:  json.NewDecoder(conn),
		out:  make(chan ServerMessage, outboxSize),
		done: make(chan struct{}),
	}
}

// Player returns the id assigned during the handshake.
func (c *NetworkController) Player() string {
	return c.player
}

// join reads the handshake and assigns the player id. An empty id gets a
// guest id.
func (c *NetworkController) join() error {
	var msg ClientMessage
	if err := c.dec.Decode(&msg); err != nil {
		return fmt.Errorf("read join message: %w", err)
	}
	if msg.Type != MsgJoin {
		return fmt.Errorf("expected %q message, got %q", MsgJoin, msg.Type)
	}
	c.player = strings.TrimSpace(msg.Player)
	if c.player == "" {
		c.player = GuestID()
	}
	return nil
}

// next blocks for the next command line from the client.
func (c *NetworkController) next() (string, error) {
	for {
		var msg ClientMessage
		if err := c.dec.Decode(&msg); err != nil {
			return "", fmt.Errorf("read message: %w", err)
		}
		if msg.Type == MsgCommand {
			return msg.Text, nil
		}
		c.send(ServerMessage{Type: MsgError, Text: fmt.Sprintf("unexpected message type %q", msg.Type)})
	}
}

// send queues msg. It reports false when the outbox is full or closed.
func (c *NetworkController) send(msg ServerMessage) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.out <- msg:
		return true
	default:
		return false
	}
}

// writeLoop drains the outbox until close is called.
func (c *NetworkController) writeLoop() {
	for {
		select {
		case msg := <-c.out:
			if err := c.enc.Encode(msg); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *NetworkController) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// GuestID returns a fresh id for a player who did not pick one.
func GuestID() string {
	return "guest-" + uuid.NewString()[:8]
}
