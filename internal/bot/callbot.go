package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/cardroom/holdem/internal/game"
)

// CallBot checks when it can and calls any bet otherwise. It never opens
// the betting, which makes it a stable baseline opponent.
type CallBot struct {
	logger *log.Logger
}

// NewCallBot creates a new CallBot instance
func NewCallBot(logger *log.Logger) *CallBot {
	return &CallBot{logger: logger.WithPrefix("callbot")}
}

func (c *CallBot) Decide(_ context.Context, view game.TableView, legal []game.LegalAction) (game.Decision, error) {
	if hasAction(legal, game.Check) {
		return game.Decision{Action: game.Check}, nil
	}
	if la, ok := findAction(legal, game.Call); ok {
		c.logger.Debug("calling", "street", view.Street, "toCall", la.Min)
		return game.Decision{Action: game.Call}, nil
	}
	return game.Decision{Action: game.Fold}, nil
}
