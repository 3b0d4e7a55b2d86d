package command

import (
	"fmt"
	"strings"

	"github.com/peterkuimelis/mpdeck/internal/game"
)

func (d *Dispatcher) renderPool(v game.SlotView) string {
	if len(v.Cards) == 0 {
		return fmt.Sprintf("%s's **%s** is empty! Add cards with `%sadd [card name]`.", d.display(v.Player), v.Name, d.prefix)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s's %s** (%d cards):\n", d.display(v.Player), v.Name, len(v.Cards))
	writeNumbered(&sb, v.Cards)
	return sb.String()
}

func (d *Dispatcher) renderHand(v game.SlotView, title string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s · MP %d/%d:\n", title, v.CurrentMP, v.MaxMP)
	writeNumbered(&sb, v.Hand)
	return sb.String()
}

func (d *Dispatcher) renderSettings(v game.SlotView) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** settings for %s (slot %d):\n", v.Name, d.display(v.Player), v.Index)
	fmt.Fprintf(&sb, "Hand size: %d\n", v.HandSize)
	fmt.Fprintf(&sb, "Max MP: %d\n", v.MaxMP)
	fmt.Fprintf(&sb, "MP: %d/%d\n", v.CurrentMP, v.MaxMP)
	fmt.Fprintf(&sb, "Cards: %d\n", len(v.Cards))
	return sb.String()
}

func (d *Dispatcher) renderStats(v game.SlotView) string {
	if v.Stats == "" {
		return fmt.Sprintf("**%s** stats for %s: (none set)", v.Name, d.display(v.Player))
	}
	return fmt.Sprintf("**%s** stats for %s:\n%s", v.Name, d.display(v.Player), v.Stats)
}

func writeNumbered(sb *strings.Builder, cards []game.Card) {
	for i, c := range cards {
		fmt.Fprintf(sb, "%d. %s\n", i+1, c)
	}
}

func quoteCards(cards []game.Card) string {
	q := make([]string, len(cards))
	for i, c := range cards {
		q[i] = "`" + string(c) + "`"
	}
	return strings.Join(q, ", ")
}

var helpLines = []string{
	"**🎴 CARD GAME BOT 🎴**",
	"",
	"**DECK SLOTS:**",
	"`{p}deck 1-5` - Switch deck slot (clears hand, refills MP)",
	"`{p}name [text]` - Rename the current slot",
	"`{p}stats [text]` - Show or set slot stats (`{p}stats clear` to erase)",
	"`{p}settings [handsize|maxmp value]` - Show or change slot settings",
	"",
	"**DECK MANAGEMENT:**",
	"`{p}cards` - Show your deck",
	"`{p}add [card]` - Add a card to your deck",
	"`{p}remove 1 3` - Remove cards from your deck",
	"`{p}reset` - Reset deck to base",
	"`{p}clear` - Empty your deck",
	"",
	"**GAME PLAY:**",
	"`{p}d` - Draw a hand",
	"`{p}x 1 3` - Replace cards in your hand",
	"`{p}show` - Show your current hand and MP",
	"`{p}mp +2` / `{p}mp -3` / `{p}mp max` - Change MP",
	"",
	"Administrators can put a player mention right after the command word to act on that player, e.g. `{p}mp @player -2`.",
}

func helpText(prefix string) string {
	return strings.ReplaceAll(strings.Join(helpLines, "\n"), "{p}", prefix)
}
