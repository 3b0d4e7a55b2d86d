package command

import (
	"strconv"
	"strings"

	"github.com/peterkuimelis/mpdeck/internal/game"
)

// Request is one chat message from a player, already attributed by the host.
type Request struct {
	Caller string // player id of the sender
	Admin  bool   // host's administrator predicate for the sender
	Text   string // raw message text, prefix included
}

// Command is a parsed chat command.
type Command struct {
	Name string   // lower-cased command word, prefix stripped
	Args []string // whitespace-separated arguments
	Rest string   // everything after the command word, trimmed
}

// Parse splits text into a Command. It reports false when text does not
// start with prefix or has no command word.
func Parse(prefix, text string) (Command, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, prefix) {
		return Command{}, false
	}
	body := strings.TrimSpace(text[len(prefix):])
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return Command{}, false
	}
	return Command{
		Name: strings.ToLower(fields[0]),
		Args: fields[1:],
		Rest: strings.TrimSpace(body[len(fields[0]):]),
	}, true
}

// Resolver turns a mention token into a player id.
type Resolver func(token string) (string, bool)

// MentionResolver understands Discord mentions (<@id>, <@!id>) and plain
// @id tokens.
func MentionResolver(token string) (string, bool) {
	switch {
	case strings.HasPrefix(token, "<@") && strings.HasSuffix(token, ">"):
		id := strings.TrimPrefix(strings.TrimSuffix(token[2:], ">"), "!")
		return id, id != ""
	case strings.HasPrefix(token, "@") && len(token) > 1:
		return token[1:], true
	}
	return "", false
}

// splitTarget pulls an optional leading mention off the arguments. It
// returns the target id ("" when absent), the remaining args, and rest with
// the mention removed.
func (c Command) splitTarget(resolve Resolver) (string, []string, string) {
	if len(c.Args) == 0 {
		return "", c.Args, c.Rest
	}
	id, ok := resolve(c.Args[0])
	if !ok {
		return "", c.Args, c.Rest
	}
	rest := strings.TrimSpace(strings.TrimPrefix(c.Rest, c.Args[0]))
	return id, c.Args[1:], rest
}

// parseInts converts every token or fails on the first non-integer, so no
// command acts on a partially valid list.
func parseInts(args []string) ([]int, error) {
	out := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, &game.ParseError{Input: a}
		}
		out = append(out, n)
	}
	return out, nil
}
