package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/mpdeck/internal/command"
	"github.com/peterkuimelis/mpdeck/internal/game"
)

// RegisterTools adds all deck tools to the MCP server.
func RegisterTools(s *server.MCPServer, sess *Session) {
	s.AddTool(getSlotTool(), sess.handleGetSlot)
	s.AddTool(switchSlotTool(), sess.handleSwitchSlot)
	s.AddTool(addCardTool(), sess.handleAddCard)
	s.AddTool(removeCardsTool(), sess.handleRemoveCards)
	s.AddTool(resetDeckTool(), sess.handleResetDeck)
	s.AddTool(clearDeckTool(), sess.handleClearDeck)
	s.AddTool(drawTool(), sess.handleDraw)
	s.AddTool(replaceCardsTool(), sess.handleReplaceCards)
	s.AddTool(adjustMPTool(), sess.handleAdjustMP)
	s.AddTool(changeSettingTool(), sess.handleChangeSetting)
	s.AddTool(setStatsTool(), sess.handleSetStats)
	s.AddTool(renameSlotTool(), sess.handleRenameSlot)
	s.AddTool(runCommandTool(), sess.handleRunCommand)
}

// --- Tool definitions ---

func playerArg() mcp.ToolOption {
	return mcp.WithString("player", mcp.Required(), mcp.Description("Id of the player issuing the call"))
}

func targetArg() mcp.ToolOption {
	return mcp.WithString("target", mcp.Description("Id of the player whose decks change. Defaults to the caller; anyone else requires an administrator caller."))
}

func getSlotTool() mcp.Tool {
	return mcp.NewTool("get_slot",
		mcp.WithDescription("Get a player's active deck slot: cards, hand, MP, settings and stats. Read-only; anyone may look."),
		mcp.WithString("target", mcp.Required(), mcp.Description("Id of the player to look at")),
	)
}

func switchSlotTool() mcp.Tool {
	return mcp.NewTool("switch_slot",
		mcp.WithDescription("Switch to deck slot 1-5. The hand is cleared and MP refilled."),
		playerArg(), targetArg(),
		mcp.WithNumber("slot", mcp.Required(), mcp.Description("Slot number, 1-5")),
	)
}

func addCardTool() mcp.Tool {
	return mcp.NewTool("add_card",
		mcp.WithDescription("Append a card to the active slot's deck."),
		playerArg(), targetArg(),
		mcp.WithString("card", mcp.Required(), mcp.Description("Card text, e.g. 'Fire - 3 Mp'")),
	)
}

func removeCardsTool() mcp.Tool {
	return mcp.NewTool("remove_cards",
		mcp.WithDescription("Remove cards from the active slot's deck by position."),
		playerArg(), targetArg(),
		mcp.WithString("indices", mcp.Required(), mcp.Description("Space-separated 1-based deck positions (e.g. '1 3')")),
	)
}

func resetDeckTool() mcp.Tool {
	return mcp.NewTool("reset_deck",
		mcp.WithDescription("Replace the active slot's deck with the base card set."),
		playerArg(), targetArg(),
	)
}

func clearDeckTool() mcp.Tool {
	return mcp.NewTool("clear_deck",
		mcp.WithDescription("Empty the active slot's deck."),
		playerArg(), targetArg(),
	)
}

func drawTool() mcp.Tool {
	return mcp.NewTool("draw",
		mcp.WithDescription("Draw a new hand from the caller's active slot. Small decks are padded with duplicates first."),
		playerArg(),
	)
}

func replaceCardsTool() mcp.Tool {
	return mcp.NewTool("replace_cards",
		mcp.WithDescription("Replace cards of the caller's current hand, preferring deck cards not already in hand."),
		playerArg(),
		mcp.WithString("positions", mcp.Required(), mcp.Description("Space-separated 1-based hand positions (e.g. '1 3')")),
	)
}

func adjustMPTool() mcp.Tool {
	return mcp.NewTool("adjust_mp",
		mcp.WithDescription("Change MP of the active slot. The result is clamped to 0..max."),
		playerArg(), targetArg(),
		mcp.WithString("op", mcp.Required(), mcp.Description("'+N', '-N' or 'max'")),
	)
}

func changeSettingTool() mcp.Tool {
	return mcp.NewTool("change_setting",
		mcp.WithDescription("Change hand size (1-20) or max MP (1-100) of the active slot. Changing max MP refills MP."),
		playerArg(), targetArg(),
		mcp.WithString("field", mcp.Required(), mcp.Description("'handsize' or 'maxmp'")),
		mcp.WithNumber("value", mcp.Required(), mcp.Description("New value")),
	)
}

func setStatsTool() mcp.Tool {
	return mcp.NewTool("set_stats",
		mcp.WithDescription("Set the free-form stats text of the active slot. Empty text clears it."),
		playerArg(), targetArg(),
		mcp.WithString("text", mcp.Description("Stats text")),
	)
}

func renameSlotTool() mcp.Tool {
	return mcp.NewTool("rename_slot",
		mcp.WithDescription("Rename the active slot."),
		playerArg(), targetArg(),
		mcp.WithString("name", mcp.Required(), mcp.Description("New slot name")),
	)
}

func runCommandTool() mcp.Tool {
	return mcp.NewTool("run_command",
		mcp.WithDescription("Run a chat command exactly as a player would type it (e.g. '$d', '$x 1 3', '$mp @bob -2') and return the bot's reply."),
		playerArg(),
		mcp.WithString("text", mcp.Required(), mcp.Description("Command text including the prefix")),
	)
}

// --- Tool handlers ---

func (s *Session) handleGetSlot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := s.engine.ViewHand(request.GetString("target", ""))
	return respond(&ToolResponse{}, v, err)
}

func (s *Session) handleSwitchSlot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	actor, target := s.callers(request)
	n, err := wholeNumber(request, "slot")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	v, err := s.engine.SwitchSlot(actor, target, n)
	return respond(&ToolResponse{}, v, err)
}

func (s *Session) handleAddCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	actor, target := s.callers(request)
	v, card, err := s.engine.AddCard(actor, target, request.GetString("card", ""))
	return respond(&ToolResponse{Added: string(card)}, v, err)
}

func (s *Session) handleRemoveCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	actor, target := s.callers(request)
	indices, err := parseIndices(request.GetString("indices", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	v, removed, err := s.engine.RemoveCards(actor, target, indices)
	return respond(&ToolResponse{Removed: cardNames(removed)}, v, err)
}

func (s *Session) handleResetDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	actor, target := s.callers(request)
	v, err := s.engine.ResetPool(actor, target)
	return respond(&ToolResponse{}, v, err)
}

func (s *Session) handleClearDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	actor, target := s.callers(request)
	v, err := s.engine.ClearPool(actor, target)
	return respond(&ToolResponse{}, v, err)
}

func (s *Session) handleDraw(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	actor, _ := s.callers(request)
	v, err := s.engine.Draw(actor)
	return respond(&ToolResponse{}, v, err)
}

func (s *Session) handleReplaceCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	actor, _ := s.callers(request)
	positions, err := parseIndices(request.GetString("positions", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	v, err := s.engine.Replace(actor, positions)
	return respond(&ToolResponse{}, v, err)
}

func (s *Session) handleAdjustMP(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	actor, target := s.callers(request)
	op, err := game.ParseMPOp(request.GetString("op", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	v, label, err := s.engine.AdjustMP(actor, target, op)
	return respond(&ToolResponse{MP: label}, v, err)
}

func (s *Session) handleChangeSetting(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	actor, target := s.callers(request)
	field, err := game.ParseSetting(request.GetString("field", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, err := wholeNumber(request, "value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	v, err := s.engine.SetSetting(actor, target, field, value)
	return respond(&ToolResponse{}, v, err)
}

func (s *Session) handleSetStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	actor, target := s.callers(request)
	v, err := s.engine.SetStats(actor, target, request.GetString("text", ""))
	return respond(&ToolResponse{}, v, err)
}

func (s *Session) handleRenameSlot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	actor, target := s.callers(request)
	v, err := s.engine.Rename(actor, target, request.GetString("name", ""))
	return respond(&ToolResponse{}, v, err)
}

func (s *Session) handleRunCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	player := strings.TrimSpace(request.GetString("player", ""))
	if player == "" {
		return mcp.NewToolResultError("player is required"), nil
	}
	reply, ok := s.dispatcher.Handle(command.Request{
		Caller: player,
		Admin:  s.isAdmin(player),
		Text:   request.GetString("text", ""),
	})
	if !ok {
		return mcp.NewToolResultErrorf("Not a command. Commands start with %q; try %shelpme.", s.dispatcher.Prefix(), s.dispatcher.Prefix()), nil
	}
	return mcp.NewToolResultText(reply), nil
}

// callers reads the player and optional target arguments.
func (s *Session) callers(request mcp.CallToolRequest) (game.Actor, string) {
	player := strings.TrimSpace(request.GetString("player", ""))
	target := strings.TrimSpace(request.GetString("target", ""))
	return s.actor(player), target
}

func respond(resp *ToolResponse, v game.SlotView, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp.Slot = v
	return mcp.NewToolResultText(respondJSON(resp)), nil
}
