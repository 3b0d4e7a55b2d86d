package net

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/peterkuimelis/mpdeck/internal/command"
	"github.com/peterkuimelis/mpdeck/internal/game"
)

type testConn struct {
	t    *testing.T
	conn net.Conn
	enc  *json.Encoder
	dec  *json.Decoder
}

func newTestServer() *Server {
	engine := game.NewEngine(game.EngineConfig{Seed: 3})
	return &Server{
		Dispatcher: command.NewDispatcher(engine, "$"),
		IsAdmin:    func(id string) bool { return id == "mod" },
	}
}

// dial connects a pipe to srv and joins as player.
func dial(t *testing.T, ctx context.Context, srv *Server, player string) *testConn {
	t.Helper()
	client, server := net.Pipe()
	go srv.HandleConn(ctx, server)
	t.Cleanup(func() { client.Close() })
	client.SetDeadline(time.Now().Add(5 * time.Second))

	tc := &testConn{t: t, conn: client, enc: json.NewEncoder(client), dec: json.NewDecoder(client)}
	tc.write(ClientMessage{Type: MsgJoin, Player: player})
	return tc
}

func (tc *testConn) write(msg ClientMessage) {
	tc.t.Helper()
	if err := tc.enc.Encode(msg); err != nil {
		tc.t.Fatalf("write: %v", err)
	}
}

func (tc *testConn) read() ServerMessage {
	tc.t.Helper()
	var msg ServerMessage
	if err := tc.dec.Decode(&msg); err != nil {
		tc.t.Fatalf("read: %v", err)
	}
	return msg
}

func (tc *testConn) command(text string) {
	tc.t.Helper()
	tc.write(ClientMessage{Type: MsgCommand, Text: text})
}

func TestJoinAndCommand(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv := newTestServer()

	alice := dial(t, ctx, srv, "alice")
	welcome := alice.read()
	if welcome.Type != MsgWelcome || welcome.Player != "alice" {
		t.Fatalf("welcome = %+v", welcome)
	}

	alice.command("$d")
	reply := alice.read()
	if reply.Type != MsgReply || reply.Player != "alice" || reply.Command != "$d" {
		t.Fatalf("reply = %+v", reply)
	}
	if !strings.Contains(reply.Text, "alice's Hand") {
		t.Errorf("reply text = %q", reply.Text)
	}

	// Ordinary chat gets no reply; the next reply belongs to the next command.
	alice.command("good game")
	alice.command("$mp -4")
	reply = alice.read()
	if reply.Command != "$mp -4" || !strings.Contains(reply.Text, "6/10") {
		t.Errorf("reply = %+v", reply)
	}
}

func TestGuestID(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	guest := dial(t, ctx, newTestServer(), "")
	welcome := guest.read()
	if !strings.HasPrefix(welcome.Player, "guest-") || len(welcome.Player) != len("guest-")+8 {
		t.Errorf("guest id = %q", welcome.Player)
	}
	if GuestID() == GuestID() {
		t.Error("guest ids repeat")
	}
}

func TestRepliesAreBroadcast(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv := newTestServer()

	alice := dial(t, ctx, srv, "alice")
	alice.read()
	mod := dial(t, ctx, srv, "mod")
	mod.read()

	mod.command("$mp @alice -3")
	for _, tc := range []*testConn{mod, alice} {
		reply := tc.read()
		if reply.Player != "mod" || !strings.Contains(reply.Text, "7/10") {
			t.Errorf("reply = %+v", reply)
		}
	}

	alice.command("$mp @mod -3")
	for _, tc := range []*testConn{mod, alice} {
		reply := tc.read()
		if !strings.Contains(reply.Text, "only administrators") {
			t.Errorf("reply = %+v", reply)
		}
	}
}

func TestBadHandshakeClosesConnection(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, server := net.Pipe()
	defer client.Close()
	client.SetDeadline(time.Now().Add(5 * time.Second))
	go newTestServer().HandleConn(ctx, server)

	if err := json.NewEncoder(client).Encode(ClientMessage{Type: MsgCommand, Text: "$d"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var msg ServerMessage
	if err := json.NewDecoder(client).Decode(&msg); err == nil {
		t.Errorf("expected closed connection, got %+v", msg)
	}
}

func TestUnexpectedMessageType(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	alice := dial(t, ctx, newTestServer(), "alice")
	alice.read()
	alice.write(ClientMessage{Type: "join", Player: "bob"})
	if msg := alice.read(); msg.Type != MsgError {
		t.Errorf("got %+v, want error", msg)
	}
}

func TestClientRender(t *testing.T) {
	var out bytes.Buffer
	c := &Client{out: &out}
	c.render(ServerMessage{Type: MsgReply, Player: "alice", Command: "$mp", Text: "alice's MP: **10/10**"})
	c.render(ServerMessage{Type: MsgError, Text: "boom"})

	want := "\n[alice] $mp\nalice's MP: **10/10**\nerror: boom\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}
