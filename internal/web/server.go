package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"

	"github.com/peterkuimelis/mpdeck/internal/command"
	"github.com/peterkuimelis/mpdeck/internal/game"
	tablenet "github.com/peterkuimelis/mpdeck/internal/net"
)

// CommandRequest is the body of POST /api/command.
type CommandRequest struct {
	Player string `json:"player"` // empty asks for a guest id
	Text   string `json:"text"`
}

// CommandResponse is the reply to POST /api/command.
type CommandResponse struct {
	Player  string `json:"player"`
	Handled bool   `json:"handled"` // false when text was not a command
	Reply   string `json:"reply,omitempty"`
}

// Options configures a Server.
type Options struct {
	Engine     *game.Engine
	Dispatcher *command.Dispatcher
	DecksFile  string
	IsAdmin    func(id string) bool // nil means nobody is an administrator
	Logger     *zap.Logger          // nil for zap.NewNop
}

// Server is the mpdeck HTTP API and WebSocket server.
type Server struct {
	engine     *game.Engine
	dispatcher *command.Dispatcher
	decksFile  string
	isAdmin    func(id string) bool
	logger     *zap.Logger
	mux        *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(opts Options) *Server {
	s := &Server{
		engine:     opts.Engine,
		dispatcher: opts.Dispatcher,
		decksFile:  opts.DecksFile,
		isAdmin:    opts.IsAdmin,
		logger:     opts.Logger,
		mux:        http.NewServeMux(),
	}
	if s.isAdmin == nil {
		s.isAdmin = func(string) bool { return false }
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)
	s.mux.HandleFunc("GET /api/players/{id}", s.handlePlayer)
	s.mux.HandleFunc("POST /api/command", s.handleCommand)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the routes, for mounting or testing.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := listDecks(s.decksFile)
	if err != nil {
		s.logger.Error("list decks", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not read decks file")
		return
	}
	writeJSON(w, http.StatusOK, decks)
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	v, err := s.engine.ViewHand(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	player := strings.TrimSpace(req.Player)
	if player == "" {
		player = tablenet.GuestID()
	}
	reply, ok := s.run(player, req.Text)
	writeJSON(w, http.StatusOK, CommandResponse{Player: player, Handled: ok, Reply: reply})
}

// handleWebSocket speaks the TCP table protocol over a WebSocket: a join
// message first, then one command per message.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept", zap.Error(err))
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	var join tablenet.ClientMessage
	if err := wsjson.Read(ctx, wsConn, &join); err != nil || join.Type != tablenet.MsgJoin {
		wsConn.Close(websocket.StatusPolicyViolation, "expected join message")
		return
	}
	player := strings.TrimSpace(join.Player)
	if player == "" {
		player = tablenet.GuestID()
	}
	logger := s.logger.With(zap.String("player", player))
	logger.Info("websocket joined")

	welcome := tablenet.ServerMessage{
		Type:   tablenet.MsgWelcome,
		Player: player,
		Text:   fmt.Sprintf("Welcome, %s! Type %shelpme for commands.", player, s.dispatcher.Prefix()),
	}
	if err := wsjson.Write(ctx, wsConn, welcome); err != nil {
		return
	}

	for {
		var msg tablenet.ClientMessage
		if err := wsjson.Read(ctx, wsConn, &msg); err != nil {
			logger.Info("websocket closed", zap.Error(err))
			return
		}
		var out tablenet.ServerMessage
		switch msg.Type {
		case tablenet.MsgCommand:
			reply, ok := s.run(player, msg.Text)
			if !ok {
				continue
			}
			out = tablenet.ServerMessage{Type: tablenet.MsgReply, Player: player, Command: msg.Text, Text: reply}
		default:
			out = tablenet.ServerMessage{Type: tablenet.MsgError, Text: fmt.Sprintf("unexpected message type %q", msg.Type)}
		}
		if err := wsjson.Write(ctx, wsConn, out); err != nil {
			logger.Warn("websocket write", zap.Error(err))
			return
		}
	}
}

func (s *Server) run(player, text string) (string, bool) {
	return s.dispatcher.Handle(command.Request{
		Caller: player,
		Admin:  s.isAdmin(player),
		Text:   text,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
