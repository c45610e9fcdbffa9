// Package bot provides built-in table opponents. Every bot implements
// game.Agent and picks only from the legal actions it is offered, so an
// engine-side rejection of a bot decision indicates a bug.
package bot

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/cardroom/holdem/internal/game"
)

// New builds a bot by its configured kind name.
func New(kind string, rng *rand.Rand, logger *log.Logger) (game.Agent, error) {
	switch kind {
	case "caller":
		return NewCallBot(logger), nil
	case "folder":
		return NewFoldBot(logger), nil
	case "random":
		return NewRandBot(rng, logger), nil
	case "maniac":
		return NewManiacBot(rng, logger), nil
	default:
		return nil, fmt.Errorf("unknown bot kind %q", kind)
	}
}

// Kinds lists the bot kind names New accepts.
func Kinds() []string {
	return []string{"caller", "folder", "random", "maniac"}
}

func hasAction(legal []game.LegalAction, action game.Action) bool {
	_, ok := findAction(legal, action)
	return ok
}

func findAction(legal []game.LegalAction, action game.Action) (game.LegalAction, bool) {
	for _, la := range legal {
		if la.Action == action {
			return la, true
		}
	}
	return game.LegalAction{}, false
}
