package game

import (
	"context"
	"errors"

	"github.com/cardroom/holdem/internal/deck"
)

// TableView is the read-only state handed to an agent when it must act.
// Only the acting player's own hole cards are included.
type TableView struct {
	Street      Street
	Board       []deck.Card
	Pot         int
	CurrentBet  int
	ToCall      int
	MinRaise    int
	BigBlind    int
	Seat        int
	Name        string
	Stack       int
	AmountInPot int
	HoleCards   []deck.Card
	Seats       []SeatView
}

// Agent decides for a player when the engine solicits an action. The call
// is synchronous and blocking; implementations must honor ctx cancellation
// so a turn can be time-boxed or aborted.
type Agent interface {
	Decide(ctx context.Context, view TableView, legal []LegalAction) (Decision, error)
}

// ErrScriptExhausted is returned by a ScriptedAgent asked for more
// decisions than it was given.
var ErrScriptExhausted = errors.New("scripted agent: no decisions left")

// ScriptedAgent replays a fixed decision sequence. Deterministic betting
// scenarios in tests are driven with it.
type ScriptedAgent struct {
	decisions []Decision
	next      int
}

// NewScriptedAgent creates an agent that plays the given decisions in order
func NewScriptedAgent(decisions ...Decision) *ScriptedAgent {
	return &ScriptedAgent{decisions: decisions}
}

// Decide returns the next scripted decision
func (a *ScriptedAgent) Decide(_ context.Context, _ TableView, _ []LegalAction) (Decision, error) {
	if a.next >= len(a.decisions) {
		return Decision{}, ErrScriptExhausted
	}
	d := a.decisions[a.next]
	a.next++
	return d, nil
}

// CheckFoldAgent checks when it can and folds when it cannot. It is the
// fallback policy for expired turns and is handy as a passive seat filler.
type CheckFoldAgent struct{}

// Decide checks or folds
func (CheckFoldAgent) Decide(_ context.Context, _ TableView, legal []LegalAction) (Decision, error) {
	if contains(legal, Check) {
		return Decision{Action: Check}, nil
	}
	return Decision{Action: Fold}, nil
}
