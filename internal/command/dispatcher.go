package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/peterkuimelis/mpdeck/internal/game"
)

type handler func(d *Dispatcher, actor game.Actor, c Command) (string, error)

var handlers = map[string]handler{
	"deck":     handleSwitch,
	"cards":    handleCards,
	"add":      handleAdd,
	"remove":   handleRemove,
	"reset":    handleReset,
	"clear":    handleClear,
	"d":        handleDraw,
	"x":        handleReplace,
	"show":     handleShow,
	"mp":       handleMP,
	"settings": handleSettings,
	"stats":    handleStats,
	"name":     handleRename,
	"helpme":   handleHelp,
}

var aliases = map[string]string{
	"switch":  "deck",
	"slot":    "deck",
	"draw":    "d",
	"replace": "x",
	"hand":    "show",
	"rename":  "name",
	"help":    "helpme",
}

// usageError is returned when a command's arguments have the wrong shape.
type usageError struct {
	usage string
}

func (e *usageError) Error() string { return "usage: " + e.usage }

// Dispatcher turns chat messages into engine calls and replies.
type Dispatcher struct {
	engine  *game.Engine
	prefix  string
	resolve Resolver
	display func(id string) string
}

// Option customises a Dispatcher.
type Option func(*Dispatcher)

// WithResolver replaces MentionResolver.
func WithResolver(r Resolver) Option {
	return func(d *Dispatcher) { d.resolve = r }
}

// WithDisplay sets how player ids are shown in replies (e.g. as mentions).
func WithDisplay(f func(id string) string) Option {
	return func(d *Dispatcher) { d.display = f }
}

// NewDispatcher creates a dispatcher for commands starting with prefix.
func NewDispatcher(engine *game.Engine, prefix string, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		engine:  engine,
		prefix:  prefix,
		resolve: MentionResolver,
		display: func(id string) string { return id },
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Prefix returns the command prefix.
func (d *Dispatcher) Prefix() string {
	return d.prefix
}

// Handle runs one message. It reports false when the message is not a
// command at all, so hosts can stay silent on ordinary chat.
func (d *Dispatcher) Handle(req Request) (string, bool) {
	c, ok := Parse(d.prefix, req.Text)
	if !ok {
		return "", false
	}
	name := c.Name
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	h, ok := handlers[name]
	if !ok {
		return fmt.Sprintf("Unknown command `%s%s`. Try `%shelpme`.", d.prefix, c.Name, d.prefix), true
	}

	actor := game.Actor{ID: req.Caller, Admin: req.Admin}
	reply, err := h(d, actor, c)
	if err != nil {
		return d.errorText(req.Caller, err), true
	}
	return reply, true
}

// --- Handlers ---

func handleSwitch(d *Dispatcher, actor game.Actor, c Command) (string, error) {
	target, args, _ := c.splitTarget(d.resolve)
	if len(args) != 1 {
		return "", &usageError{"deck <1-5> [@player]"}
	}
	n, err := parseInts(args)
	if err != nil {
		return "", err
	}
	v, err := d.engine.SwitchSlot(actor, target, n[0])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ %s switched to **%s** (slot %d, %d cards). Hand cleared, MP %d/%d.",
		d.display(v.Player), v.Name, v.Index, len(v.Cards), v.CurrentMP, v.MaxMP), nil
}

func handleCards(d *Dispatcher, actor game.Actor, c Command) (string, error) {
	target, _, _ := c.splitTarget(d.resolve)
	v, err := d.engine.ViewPool(orSelf(target, actor))
	if err != nil {
		return "", err
	}
	return d.renderPool(v), nil
}

func handleAdd(d *Dispatcher, actor game.Actor, c Command) (string, error) {
	target, _, rest := c.splitTarget(d.resolve)
	if rest == "" {
		return "", &usageError{"add [@player] <card>"}
	}
	v, card, err := d.engine.AddCard(actor, target, rest)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ %s added: `%s`\n%s now has %d cards.", d.display(v.Player), card, v.Name, len(v.Cards)), nil
}

func handleRemove(d *Dispatcher, actor game.Actor, c Command) (string, error) {
	target, args, _ := c.splitTarget(d.resolve)
	if len(args) == 0 {
		return "", &usageError{"remove [@player] <n> [n...]"}
	}
	indices, err := parseInts(args)
	if err != nil {
		return "", err
	}
	v, removed, err := d.engine.RemoveCards(actor, target, indices)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ %s removed: %s\n%s now has %d cards.", d.display(v.Player), quoteCards(removed), v.Name, len(v.Cards)), nil
}

func handleReset(d *Dispatcher, actor game.Actor, c Command) (string, error) {
	target, _, _ := c.splitTarget(d.resolve)
	v, err := d.engine.ResetPool(actor, target)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ %s's %s reset to the base deck (%d cards).", d.display(v.Player), v.Name, len(v.Cards)), nil
}

func handleClear(d *Dispatcher, actor game.Actor, c Command) (string, error) {
	target, _, _ := c.splitTarget(d.resolve)
	v, err := d.engine.ClearPool(actor, target)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ %s's %s cleared. Add cards with `%sadd [card name]`.", d.display(v.Player), v.Name, d.prefix), nil
}

func handleDraw(d *Dispatcher, actor game.Actor, c Command) (string, error) {
	v, err := d.engine.Draw(actor)
	if err != nil {
		return "", err
	}
	return d.renderHand(v, fmt.Sprintf("**%s's Hand** (from %s, %d cards)", d.display(v.Player), v.Name, len(v.Cards))), nil
}

func handleReplace(d *Dispatcher, actor game.Actor, c Command) (string, error) {
	positions, err := parseInts(c.Args)
	if err != nil {
		return "", err
	}
	v, err := d.engine.Replace(actor, positions)
	if err != nil {
		return "", err
	}
	return d.renderHand(v, fmt.Sprintf("**%s's Updated Hand**", d.display(v.Player))), nil
}

func handleShow(d *Dispatcher, actor game.Actor, c Command) (string, error) {
	target, _, _ := c.splitTarget(d.resolve)
	v, err := d.engine.ViewHand(orSelf(target, actor))
	if err != nil {
		return "", err
	}
	if len(v.Hand) == 0 {
		return fmt.Sprintf("%s has no hand! Use `%sd` first to draw cards.", d.display(v.Player), d.prefix), nil
	}
	return d.renderHand(v, fmt.Sprintf("**%s's Current Hand**", d.display(v.Player))), nil
}

func handleMP(d *Dispatcher, actor game.Actor, c Command) (string, error) {
	target, args, _ := c.splitTarget(d.resolve)
	switch len(args) {
	case 0:
		v, err := d.engine.ViewHand(orSelf(target, actor))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s's MP: **%d/%d**", d.display(v.Player), v.CurrentMP, v.MaxMP), nil
	case 1:
		op, err := game.ParseMPOp(args[0])
		if err != nil {
			return "", err
		}
		v, label, err := d.engine.AdjustMP(actor, target, op)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("✅ %s MP %s → **%d/%d**", d.display(v.Player), label, v.CurrentMP, v.MaxMP), nil
	}
	return "", &usageError{"mp [@player] <+N|-N|max>"}
}

func handleSettings(d *Dispatcher, actor game.Actor, c Command) (string, error) {
	target, args, _ := c.splitTarget(d.resolve)
	switch len(args) {
	case 0:
		v, err := d.engine.Settings(orSelf(target, actor))
		if err != nil {
			return "", err
		}
		return d.renderSettings(v), nil
	case 2:
		field, err := game.ParseSetting(args[0])
		if err != nil {
			return "", err
		}
		value, err := strconv.Atoi(args[1])
		if err != nil {
			return "", &game.ParseError{Input: args[1]}
		}
		v, err := d.engine.SetSetting(actor, target, field, value)
		if err != nil {
			return "", err
		}
		return "✅ " + d.renderSettings(v), nil
	}
	return "", &usageError{"settings [@player] [handsize|maxmp <value>]"}
}

func handleStats(d *Dispatcher, actor game.Actor, c Command) (string, error) {
	target, _, rest := c.splitTarget(d.resolve)
	if rest == "" {
		v, err := d.engine.Stats(orSelf(target, actor))
		if err != nil {
			return "", err
		}
		return d.renderStats(v), nil
	}
	if strings.EqualFold(rest, "clear") {
		rest = ""
	}
	v, err := d.engine.SetStats(actor, target, rest)
	if err != nil {
		return "", err
	}
	return "✅ " + d.renderStats(v), nil
}

func handleRename(d *Dispatcher, actor game.Actor, c Command) (string, error) {
	target, _, rest := c.splitTarget(d.resolve)
	if rest == "" {
		return "", &usageError{"name [@player] <new name>"}
	}
	v, err := d.engine.Rename(actor, target, rest)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ %s's slot %d is now **%s**.", d.display(v.Player), v.Index, v.Name), nil
}

func handleHelp(d *Dispatcher, actor game.Actor, c Command) (string, error) {
	return helpText(d.prefix), nil
}

// --- Errors ---

// errorText turns an engine or parse error into a reply. No state has been
// changed when this runs.
func (d *Dispatcher) errorText(caller string, err error) string {
	who := d.display(caller)
	var perr *game.ParseError
	var uerr *usageError
	switch {
	case errors.As(err, &uerr):
		return fmt.Sprintf("%s, usage: `%s%s`", who, d.prefix, uerr.usage)
	case errors.As(err, &perr):
		return fmt.Sprintf("%s, `%s` is not a number.", who, perr.Input)
	case errors.Is(err, game.ErrAdminRequired):
		return fmt.Sprintf("❌ %s, only administrators can change another player's decks.", who)
	case errors.Is(err, game.ErrInsufficientPool):
		return fmt.Sprintf("❌ %s, your deck is empty! Add cards with `%sadd [card name]`.", who, d.prefix)
	case errors.Is(err, game.ErrNoHandDrawn):
		return fmt.Sprintf("%s, use `%sd` first to draw a hand!", who, d.prefix)
	case errors.Is(err, game.ErrEmptySelection):
		return fmt.Sprintf("%s, specify which cards, e.g. `%sx 1 3`.", who, d.prefix)
	case errors.Is(err, game.ErrOutOfRange):
		return fmt.Sprintf("❌ %s, out of range: %v", who, err)
	case errors.Is(err, game.ErrInvalidOperation):
		return fmt.Sprintf("❌ %s, invalid: %v", who, err)
	}
	return fmt.Sprintf("❌ %s, something went wrong: %v", who, err)
}

func orSelf(target string, actor game.Actor) string {
	if target == "" {
		return actor.ID
	}
	return target
}
