// Package evaluator wraps the paulhankin/poker hand evaluator behind the
// engine's oracle contract: cards cross the boundary in their canonical
// "<rank><suit>" string form and scores are total-ordered with lower
// meaning stronger, so exact ties compare equal.
package evaluator

import (
	"fmt"

	"github.com/paulhankin/poker"

	"github.com/cardroom/holdem/internal/deck"
)

// Evaluator scores 7-card hold'em hands (2 hole + 5 board)
type Evaluator struct{}

// New creates an Evaluator
func New() *Evaluator {
	return &Evaluator{}
}

// Score returns the strength of the best 5-card hand drawn from the two
// hole cards plus the five board cards. Lower scores are stronger.
func (e *Evaluator) Score(hole []string, board []string) (int, error) {
	if len(hole) != 2 {
		return 0, fmt.Errorf("evaluator: want 2 hole cards, got %d", len(hole))
	}
	if len(board) != 5 {
		return 0, fmt.Errorf("evaluator: want 5 board cards, got %d", len(board))
	}

	var cards [7]poker.Card
	for i, code := range board {
		c, err := oracleCard(code)
		if err != nil {
			return 0, fmt.Errorf("evaluator: board card %d: %w", i, err)
		}
		cards[i] = c
	}
	for i, code := range hole {
		c, err := oracleCard(code)
		if err != nil {
			return 0, fmt.Errorf("evaluator: hole card %d: %w", i, err)
		}
		cards[5+i] = c
	}

	// Eval7 ranks upward; negate so the engine's lower-is-stronger
	// convention holds.
	return -int(poker.Eval7(&cards)), nil
}

// oracleCard converts a canonical card code into the evaluator's card type.
// The underlying library numbers aces low (Ace == 1) and orders suits
// clubs, diamonds, hearts, spades.
func oracleCard(code string) (poker.Card, error) {
	c, err := deck.Parse(code)
	if err != nil {
		return 0, err
	}

	rank := poker.Rank(c.Rank)
	if c.Rank == deck.Ace {
		rank = 1
	}

	var suit poker.Suit
	switch c.Suit {
	case deck.Clubs:
		suit = poker.Club
	case deck.Diamonds:
		suit = poker.Diamond
	case deck.Hearts:
		suit = poker.Heart
	case deck.Spades:
		suit = poker.Spade
	}

	return poker.MakeCard(suit, rank)
}
