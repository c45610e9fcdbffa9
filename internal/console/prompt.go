package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/cardroom/holdem/internal/deck"
	"github.com/cardroom/holdem/internal/game"
)

// PromptAgent asks a human for decisions on stdin. Unparseable or illegal
// input re-prompts locally, so the engine only ever sees well-formed
// decisions from a human seat.
type PromptAgent struct {
	in     *bufio.Scanner
	out    io.Writer
	logger *log.Logger
}

// NewPromptAgent creates an agent reading decisions from in
func NewPromptAgent(in io.Reader, out io.Writer, logger *log.Logger) *PromptAgent {
	return &PromptAgent{
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger.WithPrefix("prompt"),
	}
}

// Decide shows the player's situation and reads an action line
func (a *PromptAgent) Decide(ctx context.Context, view game.TableView, legal []game.LegalAction) (game.Decision, error) {
	a.showSituation(view)

	for {
		if err := ctx.Err(); err != nil {
			return game.Decision{}, err
		}

		fmt.Fprintf(a.out, "%s> ", a.options(legal))
		if !a.in.Scan() {
			if err := a.in.Err(); err != nil {
				return game.Decision{}, fmt.Errorf("reading decision: %w", err)
			}
			return game.Decision{}, io.EOF
		}

		d, err := parseDecision(a.in.Text())
		if err == nil {
			err = checkLegal(d, legal)
		}
		if err != nil {
			fmt.Fprintln(a.out, errorStyle.Render(err.Error()))
			continue
		}
		return d, nil
	}
}

func (a *PromptAgent) showSituation(view game.TableView) {
	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "Your cards: %s", renderCards(view.HoleCards))
	if len(view.Board) > 0 {
		fmt.Fprintf(a.out, "   Board: %s", renderCards(view.Board))
	}
	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "Pot $%d", view.Pot)
	if view.ToCall > 0 {
		fmt.Fprintf(a.out, ", $%d to call", view.ToCall)
	}
	fmt.Fprintf(a.out, ", your stack $%d\n", view.Stack)
}

// options renders the menu line, e.g. "check, bet 20-980, allin, fold"
func (a *PromptAgent) options(legal []game.LegalAction) string {
	parts := make([]string, 0, len(legal))
	for _, la := range legal {
		switch la.Action {
		case game.Bet, game.Raise:
			parts = append(parts, fmt.Sprintf("%s %d-%d", la.Action, la.Min, la.Max))
		case game.Call:
			parts = append(parts, fmt.Sprintf("%s %d", la.Action, la.Min))
		default:
			parts = append(parts, la.Action.String())
		}
	}
	return strings.Join(parts, ", ") + " "
}

// parseDecision turns a console line like "raise 60" into a Decision
func parseDecision(line string) (game.Decision, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return game.Decision{}, fmt.Errorf("%w: empty input", game.ErrUnknownAction)
	}

	action, err := game.ParseAction(fields[0])
	if err != nil {
		return game.Decision{}, err
	}

	d := game.Decision{Action: action}
	if action == game.Bet || action == game.Raise {
		if len(fields) < 2 {
			return game.Decision{}, fmt.Errorf("%s needs an amount, e.g. %q", action, action.String()+" 40")
		}
		amount, err := strconv.Atoi(fields[1])
		if err != nil {
			return game.Decision{}, fmt.Errorf("bad amount %q", fields[1])
		}
		d.Amount = amount
	}
	return d, nil
}

// checkLegal rejects actions outside the offered set before they reach the
// engine, so the human gets an immediate re-prompt instead of burning an
// engine retry.
func checkLegal(d game.Decision, legal []game.LegalAction) error {
	for _, la := range legal {
		if la.Action != d.Action {
			continue
		}
		if d.Action == game.Bet || d.Action == game.Raise {
			if d.Amount < la.Min || d.Amount > la.Max {
				return fmt.Errorf("%s must be between %d and %d", d.Action, la.Min, la.Max)
			}
		}
		return nil
	}
	return fmt.Errorf("cannot %s right now", d.Action)
}

func renderCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		if c.IsRed() {
			parts[i] = redCardStyle.Render(c.Symbol())
		} else {
			parts[i] = blackCardStyle.Render(c.Symbol())
		}
	}
	return strings.Join(parts, " ")
}
