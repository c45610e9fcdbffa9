package game

import "github.com/cardroom/holdem/internal/deck"

// Player is the per-seat mutable record for a hand. Stack and identity
// persist across hands; everything else is transient hand state that the
// orchestrator resets between hands.
type Player struct {
	Seat        int
	Name        string
	Stack       int
	HoleCards   []deck.Card // 0 or 2 cards, owned by the player for the hand
	InHand      bool
	AmountInPot int // chips committed in the current betting round
	Dealer      bool
	SmallBlind  bool
	BigBlind    bool
}

// NewPlayer creates a player with a starting stack
func NewPlayer(seat int, name string, stack int) *Player {
	return &Player{
		Seat:   seat,
		Name:   name,
		Stack:  stack,
		InHand: stack > 0,
	}
}

// CanAct reports whether the player may still be asked to act this round.
// Folded players and all-in players (stack exhausted) are skipped.
func (p *Player) CanAct() bool {
	return p.InHand && p.Stack > 0
}

// pay moves up to amount chips from the stack into the player's round
// commitment and returns what was actually moved. The stack never goes
// negative: an oversized charge clamps to an all-in.
func (p *Player) pay(amount int) int {
	if amount > p.Stack {
		amount = p.Stack
	}
	p.Stack -= amount
	p.AmountInPot += amount
	return amount
}

// resetForHand clears the transient hand state, keeping stack and identity
func (p *Player) resetForHand() {
	p.HoleCards = nil
	p.AmountInPot = 0
	p.InHand = p.Stack > 0
}
