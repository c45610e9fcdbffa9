package game

import (
	"errors"
	"fmt"
)

// Street represents one stage of community-card exposure plus its betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	ShowdownStreet
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// Action is the closed set of things a player can do on their turn
type Action int

const (
	Fold Action = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

func (a Action) String() string {
	return [...]string{"fold", "check", "call", "bet", "raise", "allin"}[a]
}

// ErrUnknownAction is returned when an action string cannot be parsed.
// Input surfaces must surface it and re-prompt; a turn is never skipped
// silently.
var ErrUnknownAction = errors.New("unrecognized action")

// ParseAction converts a wire/console action name into an Action
func ParseAction(s string) (Action, error) {
	switch s {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "bet":
		return Bet, nil
	case "raise":
		return Raise, nil
	case "allin":
		return AllIn, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// Decision is a player's chosen action. Amount is the incremental chip
// contribution for Bet and Raise; it is ignored for every other action.
type Decision struct {
	Action Action
	Amount int
}

func (d Decision) String() string {
	if d.Action == Bet || d.Action == Raise {
		return fmt.Sprintf("%s %d", d.Action, d.Amount)
	}
	return d.Action.String()
}

// LegalAction describes an action the acting player may take, with the
// permitted amount range for chip-moving actions.
type LegalAction struct {
	Action Action
	Min    int
	Max    int
}

// contains reports whether action appears in the legal set
func contains(legal []LegalAction, action Action) bool {
	for _, la := range legal {
		if la.Action == action {
			return true
		}
	}
	return false
}
