package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/cardroom/holdem/internal/deck"
)

// ErrNoEligiblePlayers is returned when a betting round is started with no
// player left in the hand. That is a programming error in the caller, not a
// game outcome.
var ErrNoEligiblePlayers = errors.New("betting round: no players in hand")

// maxDecisionRetries bounds how often an agent may answer with an invalid
// decision before the engine folds the seat.
const maxDecisionRetries = 3

// BettingRound drives one street of action. Seats act in order starting
// from a street-dependent position; folded and all-in seats are skipped but
// the lap still advances past them. The round closes when action returns to
// the last raiser and every in-hand player has matched the current bet,
// folded, or is all-in.
type BettingRound struct {
	players []*Player
	agents  []Agent
	street  Street
	board   []deck.Card
	logger  *log.Logger

	bigBlind    int
	currentBet  int
	minRaise    int
	actionIndex int
	lastRaiser  int
	pot         int
}

// NewPreflopRound creates the pre-flop betting round: the current bet opens
// at the big-blind amount (already posted) and action starts left of the
// big blind.
func NewPreflopRound(players []*Player, agents []Agent, bbIndex, pot, bigBlind int, logger *log.Logger) *BettingRound {
	first := (bbIndex + 1) % len(players)
	return &BettingRound{
		players:     players,
		agents:      agents,
		street:      Preflop,
		logger:      logger,
		bigBlind:    bigBlind,
		currentBet:  bigBlind,
		minRaise:    bigBlind,
		actionIndex: first,
		lastRaiser:  first,
		pot:         pot,
	}
}

// NewPostflopRound creates a flop/turn/river betting round: every round
// commitment is reset, the current bet opens at zero, and action starts
// left of the dealer.
func NewPostflopRound(players []*Player, agents []Agent, street Street, board []deck.Card, dealerPos, pot, bigBlind int, logger *log.Logger) *BettingRound {
	for _, p := range players {
		p.AmountInPot = 0
	}
	first := (dealerPos + 1) % len(players)
	return &BettingRound{
		players:     players,
		agents:      agents,
		street:      street,
		board:       board,
		logger:      logger,
		bigBlind:    bigBlind,
		currentBet:  0,
		minRaise:    bigBlind,
		actionIndex: first,
		lastRaiser:  first,
		pot:         pot,
	}
}

// Run executes the round to completion and returns the updated pot
func (br *BettingRound) Run(ctx context.Context) (int, error) {
	if br.countInHand() == 0 {
		return br.pot, ErrNoEligiblePlayers
	}

	n := len(br.players)
	for {
		p := br.players[br.actionIndex]
		if p.CanAct() {
			if err := br.act(ctx, p); err != nil {
				return br.pot, err
			}
		}

		br.actionIndex = (br.actionIndex + 1) % n
		if br.actionIndex == br.lastRaiser && br.settled() {
			break
		}
	}

	return br.pot, nil
}

// act solicits one decision for p, re-prompting on invalid answers, and
// applies it to the round.
func (br *BettingRound) act(ctx context.Context, p *Player) error {
	legal := br.LegalActions(p)
	view := br.viewFor(p)

	var d Decision
	for attempt := 1; ; attempt++ {
		var err error
		d, err = br.agents[br.actionIndex].Decide(ctx, view, legal)
		if err == nil {
			err = br.Validate(p, d)
		}
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		br.logger.Warn("rejected decision", "player", p.Name, "error", err)
		if attempt >= maxDecisionRetries {
			br.logger.Warn("folding seat after repeated invalid decisions", "player", p.Name)
			d = Decision{Action: Fold}
			break
		}
	}

	contribution := br.apply(p, d)
	br.pot += contribution

	// A commitment strictly above the current bet re-opens action for
	// everyone else.
	if p.AmountInPot > br.currentBet {
		br.minRaise = p.AmountInPot - br.currentBet
		br.currentBet = p.AmountInPot
		br.lastRaiser = br.actionIndex
	}

	br.logger.Debug("player action",
		"street", br.street,
		"player", p.Name,
		"action", d.Action,
		"paid", contribution,
		"currentBet", br.currentBet,
		"pot", br.pot)
	return nil
}

// apply mutates the player for the validated decision and returns the
// chips contributed.
func (br *BettingRound) apply(p *Player, d Decision) int {
	switch d.Action {
	case Fold:
		p.InHand = false
		return 0
	case Check:
		return 0
	case Call:
		// Calls clamp to the stack: a short call is an all-in.
		return p.pay(br.currentBet - p.AmountInPot)
	case Bet, Raise:
		return p.pay(d.Amount)
	case AllIn:
		return p.pay(p.Stack)
	default:
		return 0
	}
}

// LegalActions computes the action set the player may choose from
func (br *BettingRound) LegalActions(p *Player) []LegalAction {
	toCall := br.currentBet - p.AmountInPot
	legal := []LegalAction{{Action: Fold}}

	if toCall == 0 {
		legal = append(legal, LegalAction{Action: Check})
		if p.Stack > 0 {
			legal = append(legal,
				LegalAction{Action: Bet, Min: min(br.minRaise, p.Stack), Max: p.Stack},
				LegalAction{Action: AllIn, Min: p.Stack, Max: p.Stack})
		}
		return legal
	}

	legal = append(legal, LegalAction{Action: Call, Min: min(toCall, p.Stack), Max: min(toCall, p.Stack)})
	if p.Stack > toCall {
		legal = append(legal, LegalAction{Action: Raise, Min: min(toCall+br.minRaise, p.Stack), Max: p.Stack})
	}
	legal = append(legal, LegalAction{Action: AllIn, Min: p.Stack, Max: p.Stack})
	return legal
}

// Validate rejects decisions that are illegal for the player right now.
// Chip-moving amounts are validated at this boundary; the engine assumes
// validated input beyond it.
func (br *BettingRound) Validate(p *Player, d Decision) error {
	toCall := br.currentBet - p.AmountInPot

	switch d.Action {
	case Fold, AllIn:
		return nil
	case Check:
		if toCall != 0 {
			return fmt.Errorf("cannot check, %d to call", toCall)
		}
		return nil
	case Call:
		if toCall == 0 {
			return errors.New("nothing to call, check instead")
		}
		return nil
	case Bet:
		if toCall != 0 {
			return fmt.Errorf("cannot bet facing a bet of %d, raise instead", br.currentBet)
		}
		return br.validateSizing(p, d.Amount)
	case Raise:
		if toCall == 0 && br.currentBet == 0 {
			return errors.New("nothing to raise, bet instead")
		}
		return br.validateSizing(p, d.Amount)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownAction, d.Action)
	}
}

// validateSizing enforces the minimum-raise rule (the size of the last
// raise, never below the big blind) for bets and raises. Pushing the whole
// stack below the minimum is a legal all-in.
func (br *BettingRound) validateSizing(p *Player, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("bet amount must be positive, got %d", amount)
	}
	if amount > p.Stack {
		return fmt.Errorf("bet %d exceeds stack %d", amount, p.Stack)
	}
	if amount == p.Stack {
		return nil
	}
	newTotal := p.AmountInPot + amount
	if minTotal := br.currentBet + br.minRaise; newTotal < minTotal {
		return fmt.Errorf("raise to %d below minimum %d", newTotal, minTotal)
	}
	return nil
}

// settled reports whether every in-hand player has matched the current bet
// or cannot contribute further.
func (br *BettingRound) settled() bool {
	for _, p := range br.players {
		if !p.InHand || p.Stack == 0 {
			continue
		}
		if p.AmountInPot != br.currentBet {
			return false
		}
	}
	return true
}

func (br *BettingRound) countInHand() int {
	count := 0
	for _, p := range br.players {
		if p.InHand {
			count++
		}
	}
	return count
}

// viewFor builds the read-only state handed to the acting player's agent
func (br *BettingRound) viewFor(p *Player) TableView {
	return TableView{
		Street:      br.street,
		Board:       append([]deck.Card(nil), br.board...),
		Pot:         br.pot,
		CurrentBet:  br.currentBet,
		ToCall:      br.currentBet - p.AmountInPot,
		MinRaise:    br.minRaise,
		BigBlind:    br.bigBlind,
		Seat:        p.Seat,
		Name:        p.Name,
		Stack:       p.Stack,
		AmountInPot: p.AmountInPot,
		HoleCards:   append([]deck.Card(nil), p.HoleCards...),
		Seats:       seatViews(br.players),
	}
}
