package game

import "github.com/cardroom/holdem/internal/deck"

// SeatView is the public, read-only view of one seat
type SeatView struct {
	Seat        int
	Name        string
	Stack       int
	AmountInPot int
	InHand      bool
	AllIn       bool
	Dealer      bool
	SmallBlind  bool
	BigBlind    bool
}

// Snapshot is the read-only table state published to the display surface
// after each street. Displays never mutate engine state.
type Snapshot struct {
	HandNo    int
	Street    Street
	Board     []deck.Card
	Pot       int
	DealerPos int
	Seats     []SeatView
}

// Display consumes table snapshots for rendering
type Display interface {
	Observe(Snapshot)
}

// NopDisplay discards snapshots
type NopDisplay struct{}

// Observe does nothing
func (NopDisplay) Observe(Snapshot) {}

func seatViews(players []*Player) []SeatView {
	seats := make([]SeatView, len(players))
	for i, p := range players {
		seats[i] = SeatView{
			Seat:        p.Seat,
			Name:        p.Name,
			Stack:       p.Stack,
			AmountInPot: p.AmountInPot,
			InHand:      p.InHand,
			AllIn:       p.InHand && p.Stack == 0,
			Dealer:      p.Dealer,
			SmallBlind:  p.SmallBlind,
			BigBlind:    p.BigBlind,
		}
	}
	return seats
}
