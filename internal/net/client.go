package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
)

// Client connects to a table server and provides a terminal REPL.
type Client struct {
	conn net.Conn
	in   io.Reader
	out  io.Writer
	enc  *json.Encoder
	dec  *json.Decoder
}

// NewClient wraps conn, reading commands from stdin and printing to stdout.
func NewClient(conn net.Conn) *Client {
	return &Client{
		conn: conn,
		in:   os.Stdin,
		out:  os.Stdout,
		enc:  json.NewEncoder(conn),
		dec:  json.NewDecoder(conn),
	}
}

// Connect connects to a server, joins as player, and runs the REPL. An
// empty player asks the server for a guest id.
func Connect(ctx context.Context, addr, player string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	client := NewClient(conn)
	if err := client.Join(player); err != nil {
		return err
	}
	fmt.Println("Connected! Type commands, Ctrl-D to leave.")
	return client.RunREPL(ctx)
}

// Join sends the handshake.
func (c *Client) Join(player string) error {
	if err := c.enc.Encode(ClientMessage{Type: MsgJoin, Player: player}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}
	return nil
}

// RunREPL sends each input line as a command and prints server messages
// until the input ends, the server hangs up, or ctx is done.
func (c *Client) RunREPL(ctx context.Context) error {
	inputDone := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if err := c.enc.Encode(ClientMessage{Type: MsgCommand, Text: line}); err != nil {
				inputDone <- fmt.Errorf("send command: %w", err)
				return
			}
		}
		inputDone <- scanner.Err()
	}()

	readDone := make(chan error, 1)
	go func() {
		for {
			var msg ServerMessage
			if err := c.dec.Decode(&msg); err != nil {
				readDone <- fmt.Errorf("read message: %w", err)
				return
			}
			c.render(msg)
		}
	}()

	select {
	case err := <-inputDone:
		c.conn.Close()
		return err
	case err := <-readDone:
		return err
	case <-ctx.Done():
		c.conn.Close()
		return nil
	}
}

func (c *Client) render(msg ServerMessage) {
	switch msg.Type {
	case MsgWelcome:
		fmt.Fprintf(c.out, "%s\n", msg.Text)
	case MsgReply:
		fmt.Fprintf(c.out, "\n[%s] %s\n%s\n", msg.Player, msg.Command, msg.Text)
	case MsgError:
		fmt.Fprintf(c.out, "error: %s\n", msg.Text)
	}
}
