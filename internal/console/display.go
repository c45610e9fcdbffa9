// Package console renders table state to a terminal and prompts a human
// player for decisions.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/cardroom/holdem/internal/deck"
	"github.com/cardroom/holdem/internal/game"
)

// Display writes a line-based view of the table to a terminal. It implements
// game.Display.
type Display struct {
	out     io.Writer
	unicode bool
}

// NewDisplay creates a terminal display. Suit symbols fall back to letter
// codes when the terminal reports no color support, which correlates with
// dumb terminals and captured output.
func NewDisplay(out io.Writer) *Display {
	return &Display{
		out:     out,
		unicode: termenv.ColorProfile() != termenv.Ascii,
	}
}

// Observe renders a snapshot of the table between actions
func (d *Display) Observe(s game.Snapshot) {
	if s.Street == game.Preflop {
		fmt.Fprintln(d.out)
		fmt.Fprintln(d.out, headerStyle.Render(fmt.Sprintf(" Hand #%d ", s.HandNo)))
	}

	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, streetStyle.Render(fmt.Sprintf("*** %s ***", strings.ToUpper(s.Street.String()))))
	if len(s.Board) > 0 {
		fmt.Fprintf(d.out, "Board: %s\n", d.cards(s.Board))
	}
	fmt.Fprintf(d.out, "Pot: %s\n", potStyle.Render(fmt.Sprintf("$%d", s.Pot)))

	for _, seat := range s.Seats {
		fmt.Fprintln(d.out, d.seatLine(seat))
	}
}

// ShowResult prints the hand outcome
func (d *Display) ShowResult(result *game.HandResult) {
	fmt.Fprintln(d.out)
	names := make([]string, len(result.Winners))
	for i, w := range result.Winners {
		names[i] = w.Name
	}

	switch {
	case result.WonByFold:
		fmt.Fprintln(d.out, winnerStyle.Render(
			fmt.Sprintf("%s wins $%d, everyone else folded", names[0], result.Pot)))
	case len(result.Winners) == 1:
		fmt.Fprintln(d.out, winnerStyle.Render(
			fmt.Sprintf("%s wins $%d with %s", names[0], result.Pot, d.cards(result.Winners[0].HoleCards))))
	default:
		fmt.Fprintln(d.out, winnerStyle.Render(
			fmt.Sprintf("%s chop the pot, $%d each", strings.Join(names, " and "), result.Share)))
	}
}

func (d *Display) seatLine(seat game.SeatView) string {
	var marks []string
	if seat.Dealer {
		marks = append(marks, "D")
	}
	if seat.SmallBlind {
		marks = append(marks, "SB")
	}
	if seat.BigBlind {
		marks = append(marks, "BB")
	}
	tag := ""
	if len(marks) > 0 {
		tag = " [" + strings.Join(marks, ",") + "]"
	}

	line := fmt.Sprintf("  %-10s $%-6d", seat.Name, seat.Stack)
	switch {
	case !seat.InHand:
		return dimStyle.Render(line + " folded")
	case seat.AllIn:
		return line + fmt.Sprintf(" all-in for $%d%s", seat.AmountInPot, tag)
	case seat.AmountInPot > 0:
		return line + fmt.Sprintf(" bet $%d%s", seat.AmountInPot, tag)
	default:
		return line + tag
	}
}

// cards renders a card list, colored by suit
func (d *Display) cards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		text := c.String()
		if d.unicode {
			text = c.Symbol()
		}
		if c.IsRed() {
			parts[i] = redCardStyle.Render(text)
		} else {
			parts[i] = blackCardStyle.Render(text)
		}
	}
	return strings.Join(parts, " ")
}
