package net

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"go.uber.org/zap"

	"github.com/peterkuimelis/mpdeck/internal/command"
)

// Server hosts a shared table: every connected player sends commands, and
// every reply is broadcast to the whole table like a chat channel.
type Server struct {
	Dispatcher *command.Dispatcher
	Port       string
	IsAdmin    func(id string) bool // nil means nobody is an administrator
	Logger     *zap.Logger          // nil for zap.NewNop

	mu      sync.Mutex
	clients map[*NetworkController]struct{}
}

// Run listens on Port. When hostPlayer is not empty, the host also plays
// from this terminal through an in-process pipe.
func (s *Server) Run(ctx context.Context, hostPlayer string) error {
	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()

	fmt.Printf("Waiting for players on port %s...\n", s.Port)

	errCh := make(chan error, 2)
	if hostPlayer != "" {
		hostConn, hostServerConn := net.Pipe()
		go s.HandleConn(ctx, hostServerConn)
		client := NewClient(hostConn)
		if err := client.Join(hostPlayer); err != nil {
			return err
		}
		go func() {
			errCh <- client.RunREPL(ctx)
		}()
	}

	go func() {
		errCh <- s.Serve(ctx, ln)
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
		return nil
	}
}

// Serve accepts connections on ln until ctx is done or ln fails.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		go s.HandleConn(ctx, conn)
	}
}

// HandleConn runs the handshake and command loop for one connection. It
// returns when the client disconnects or ctx is done.
func (s *Server) HandleConn(ctx context.Context, conn net.Conn) {
	logger := s.logger().With(zap.String("remote", conn.RemoteAddr().String()))
	c := NewNetworkController(conn)
	go c.writeLoop()
	defer c.close()

	stop := context.AfterFunc(ctx, c.close)
	defer stop()

	if err := c.join(); err != nil {
		logger.Warn("handshake failed", zap.Error(err))
		return
	}
	logger = logger.With(zap.String("player", c.Player()))
	logger.Info("player joined")
	s.add(c)
	defer s.remove(c)
	c.send(ServerMessage{Type: MsgWelcome, Player: c.Player(), Text: fmt.Sprintf("Welcome, %s! Type %shelpme for commands.", c.Player(), s.Dispatcher.Prefix())})

	for {
		text, err := c.next()
		if err != nil {
			logger.Info("player left", zap.Error(err))
			return
		}
		reply, ok := s.Dispatcher.Handle(command.Request{
			Caller: c.Player(),
			Admin:  s.isAdmin(c.Player()),
			Text:   text,
		})
		if !ok {
			continue
		}
		s.broadcast(ServerMessage{Type: MsgReply, Player: c.Player(), Command: text, Text: reply})
	}
}

func (s *Server) add(c *NetworkController) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clients == nil {
		s.clients = make(map[*NetworkController]struct{})
	}
	s.clients[c] = struct{}{}
}

func (s *Server) remove(c *NetworkController) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, c)
}

// broadcast sends msg to every connected player. Players whose outbox is
// full miss the message.
func (s *Server) broadcast(msg ServerMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		if !c.send(msg) {
			s.logger().Warn("dropped message for slow client", zap.String("player", c.Player()))
		}
	}
}

func (s *Server) isAdmin(id string) bool {
	return s.IsAdmin != nil && s.IsAdmin(id)
}

func (s *Server) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
