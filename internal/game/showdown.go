package game

import (
	"errors"
	"fmt"

	"github.com/cardroom/holdem/internal/deck"
)

// Oracle scores a hole/board combination. Cards cross the boundary in
// their canonical "<rank><suit>" string form. Scores are total-ordered,
// lower is stronger, and exact ties are meaningful.
type Oracle interface {
	Score(hole []string, board []string) (int, error)
}

// ErrBoardIncomplete is returned when showdown is invoked before the river
var ErrBoardIncomplete = errors.New("showdown: board must have exactly 5 cards")

// Showdown scores every in-hand player against the board and returns all
// players tied at the best score: one winner, or several for a chopped pot.
func Showdown(players []*Player, board []deck.Card, oracle Oracle) ([]*Player, error) {
	if len(board) != 5 {
		return nil, fmt.Errorf("%w, got %d", ErrBoardIncomplete, len(board))
	}

	boardCodes := deck.Strings(board)
	var winners []*Player
	bestScore := 0

	for _, p := range players {
		if !p.InHand {
			continue
		}
		score, err := oracle.Score(deck.Strings(p.HoleCards), boardCodes)
		if err != nil {
			return nil, fmt.Errorf("showdown: scoring %s: %w", p.Name, err)
		}
		if len(winners) == 0 || score < bestScore {
			bestScore = score
			winners = []*Player{p}
		} else if score == bestScore {
			winners = append(winners, p)
		}
	}

	if len(winners) == 0 {
		return nil, ErrNoEligiblePlayers
	}
	return winners, nil
}

// CheckForWin reports whether only one player remains in the hand, which
// ends it without dealing further streets.
func CheckForWin(players []*Player) (*Player, bool) {
	var last *Player
	count := 0
	for _, p := range players {
		if p.InHand {
			last = p
			count++
		}
	}
	if count == 1 {
		return last, true
	}
	return nil, false
}

// awardPot splits the pot evenly among the winners. The integer-division
// remainder of a chopped pot is deliberately not redistributed; callers
// account for it via HandResult.Remainder.
func awardPot(winners []*Player, pot int) (share, remainder int) {
	share = pot / len(winners)
	for _, w := range winners {
		w.Stack += share
	}
	return share, pot - share*len(winners)
}
