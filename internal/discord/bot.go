package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/peterkuimelis/mpdeck/internal/command"
	"github.com/peterkuimelis/mpdeck/internal/game"
)

// Bot answers deck commands in every channel it can read.
type Bot struct {
	session     *discordgo.Session
	dispatcher  *command.Dispatcher
	messageSize int
	logger      *zap.Logger
}

// New creates a bot for token. Replies longer than messageSize are split.
func New(token string, engine *game.Engine, prefix string, messageSize int, logger *zap.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentGuildMessages | discordgo.IntentMessageContent

	b := newBot(engine, prefix, messageSize, logger)
	b.session = s
	s.AddHandler(b.onReady)
	s.AddHandler(b.onMessage)
	return b, nil
}

func newBot(engine *game.Engine, prefix string, messageSize int, logger *zap.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bot{
		dispatcher:  command.NewDispatcher(engine, prefix, command.WithDisplay(Mention)),
		messageSize: messageSize,
		logger:      logger,
	}
}

// Open connects to the gateway.
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	return nil
}

// Close disconnects from the gateway.
func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("logged in", zap.String("user", r.User.Username), zap.Int("guilds", len(r.Guilds)))
}

func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	chunks := b.reply(m.Author.ID, isAdmin(s, m.Author.ID, m.ChannelID), m.Content)
	for _, chunk := range chunks {
		if _, err := s.ChannelMessageSend(m.ChannelID, chunk); err != nil {
			b.logger.Error("send reply", zap.String("channel", m.ChannelID), zap.Error(err))
			return
		}
	}
}

// reply runs one message and returns the reply split into sendable chunks,
// or nil when the message is not a command.
func (b *Bot) reply(author string, admin bool, content string) []string {
	text, ok := b.dispatcher.Handle(command.Request{Caller: author, Admin: admin, Text: content})
	if !ok {
		return nil
	}
	b.logger.Debug("command", zap.String("author", author), zap.Bool("admin", admin), zap.String("text", content))
	return command.Split(text, b.messageSize)
}

// isAdmin reports whether userID holds the Administrator permission in
// channelID. The state cache is tried first; direct messages have no
// permissions and never count.
func isAdmin(s *discordgo.Session, userID, channelID string) bool {
	perms, err := s.State.UserChannelPermissions(userID, channelID)
	if err != nil {
		perms, err = s.UserChannelPermissions(userID, channelID)
		if err != nil {
			return false
		}
	}
	return hasAdmin(perms)
}

func hasAdmin(perms int64) bool {
	return perms&discordgo.PermissionAdministrator != 0
}

// Mention formats a user id as a Discord mention.
func Mention(id string) string {
	return "<@" + id + ">"
}
