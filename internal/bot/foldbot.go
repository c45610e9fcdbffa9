package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/cardroom/holdem/internal/game"
)

// FoldBot folds to any bet and checks when checking is free. Useful for
// filling seats that should never contest a pot.
type FoldBot struct {
	logger *log.Logger
}

// NewFoldBot creates a new FoldBot instance
func NewFoldBot(logger *log.Logger) *FoldBot {
	return &FoldBot{logger: logger.WithPrefix("foldbot")}
}

func (f *FoldBot) Decide(_ context.Context, _ game.TableView, legal []game.LegalAction) (game.Decision, error) {
	if hasAction(legal, game.Check) {
		return game.Decision{Action: game.Check}, nil
	}
	return game.Decision{Action: game.Fold}, nil
}
