package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/cardroom/holdem/internal/game"
)

// maniacAggression is the probability the maniac bets or raises when it can.
const maniacAggression = 0.7

// ManiacBot applies maximum pressure: it opens and raises the minimum
// whenever the dice allow, and never folds while it can still call.
type ManiacBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewManiacBot creates a new ManiacBot instance
func NewManiacBot(rng *rand.Rand, logger *log.Logger) *ManiacBot {
	return &ManiacBot{rng: rng, logger: logger.WithPrefix("maniacbot")}
}

func (m *ManiacBot) Decide(_ context.Context, view game.TableView, legal []game.LegalAction) (game.Decision, error) {
	aggressive := m.rng.Float64() < maniacAggression

	if aggressive {
		if la, ok := findAction(legal, game.Raise); ok {
			m.logger.Debug("raising", "street", view.Street, "amount", la.Min)
			return game.Decision{Action: game.Raise, Amount: la.Min}, nil
		}
		if la, ok := findAction(legal, game.Bet); ok {
			m.logger.Debug("betting", "street", view.Street, "amount", la.Min)
			return game.Decision{Action: game.Bet, Amount: la.Min}, nil
		}
	}

	if hasAction(legal, game.Call) {
		return game.Decision{Action: game.Call}, nil
	}
	if hasAction(legal, game.Check) {
		return game.Decision{Action: game.Check}, nil
	}
	return game.Decision{Action: game.Fold}, nil
}
