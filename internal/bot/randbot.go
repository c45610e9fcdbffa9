package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/cardroom/holdem/internal/game"
)

// RandBot picks a uniformly random legal action. Bet and raise amounts are
// drawn uniformly from the offered range.
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger.WithPrefix("randbot")}
}

func (r *RandBot) Decide(_ context.Context, view game.TableView, legal []game.LegalAction) (game.Decision, error) {
	if len(legal) == 0 {
		return game.Decision{Action: game.Fold}, nil
	}

	pick := legal[r.rng.IntN(len(legal))]
	d := game.Decision{Action: pick.Action}

	switch pick.Action {
	case game.Bet, game.Raise:
		d.Amount = pick.Min
		if pick.Max > pick.Min {
			d.Amount = pick.Min + r.rng.IntN(pick.Max-pick.Min+1)
		}
	}

	r.logger.Debug("random action", "street", view.Street, "action", d.Action, "amount", d.Amount)
	return d, nil
}
