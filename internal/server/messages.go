// Package server exposes a table over websockets so remote players can take
// seats next to local bots.
package server

import (
	"github.com/cardroom/holdem/internal/deck"
	"github.com/cardroom/holdem/internal/game"
)

// Message types on the wire
const (
	// Client -> Server
	TypeConnect = "connect"
	TypeAction  = "action"

	// Server -> Client
	TypeWelcome       = "welcome"
	TypeActionRequest = "action_request"
	TypeGameUpdate    = "game_update"
	TypeHandResult    = "hand_result"
	TypeError         = "error"
)

// Envelope carries any client -> server message; Type selects which fields
// are meaningful.
type Envelope struct {
	Type   string `json:"type"`
	Name   string `json:"name,omitempty"`
	Action string `json:"action,omitempty"`
	Amount int    `json:"amount,omitempty"`
}

// Welcome confirms a seat assignment
type Welcome struct {
	Type       string `json:"type"`
	Seat       int    `json:"seat"`
	Stack      int    `json:"stack"`
	SmallBlind int    `json:"small_blind"`
	BigBlind   int    `json:"big_blind"`
}

// LegalActionInfo describes one permitted action with its amount range
type LegalActionInfo struct {
	Action string `json:"action"`
	Min    int    `json:"min,omitempty"`
	Max    int    `json:"max,omitempty"`
}

// ActionRequest asks a remote player to decide
type ActionRequest struct {
	Type         string            `json:"type"`
	Street       string            `json:"street"`
	Board        []string          `json:"board"`
	HoleCards    []string          `json:"hole_cards"`
	Pot          int               `json:"pot"`
	CurrentBet   int               `json:"current_bet"`
	ToCall       int               `json:"to_call"`
	MinRaise     int               `json:"min_raise"`
	Stack        int               `json:"stack"`
	LegalActions []LegalActionInfo `json:"legal_actions"`
	TimeoutSecs  int               `json:"timeout_secs"`
}

// SeatInfo is one seat in a broadcast update
type SeatInfo struct {
	Seat   int    `json:"seat"`
	Name   string `json:"name"`
	Stack  int    `json:"stack"`
	Bet    int    `json:"bet,omitempty"`
	Folded bool   `json:"folded,omitempty"`
	AllIn  bool   `json:"all_in,omitempty"`
	Dealer bool   `json:"dealer,omitempty"`
}

// GameUpdate is broadcast whenever the table state changes
type GameUpdate struct {
	Type   string     `json:"type"`
	HandNo int        `json:"hand_no"`
	Street string     `json:"street"`
	Board  []string   `json:"board"`
	Pot    int        `json:"pot"`
	Seats  []SeatInfo `json:"seats"`
}

// WinnerInfo is one pot recipient in a hand result
type WinnerInfo struct {
	Name      string   `json:"name"`
	Amount    int      `json:"amount"`
	HoleCards []string `json:"hole_cards,omitempty"`
}

// HandResult is broadcast when a hand completes
type HandResult struct {
	Type      string       `json:"type"`
	HandNo    int          `json:"hand_no"`
	Pot       int          `json:"pot"`
	Board     []string     `json:"board"`
	WonByFold bool         `json:"won_by_fold"`
	Winners   []WinnerInfo `json:"winners"`
}

// ErrorMsg reports a rejected client message
type ErrorMsg struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func newActionRequest(view game.TableView, legal []game.LegalAction, timeoutSecs int) ActionRequest {
	infos := make([]LegalActionInfo, len(legal))
	for i, la := range legal {
		infos[i] = LegalActionInfo{Action: la.Action.String(), Min: la.Min, Max: la.Max}
	}
	return ActionRequest{
		Type:         TypeActionRequest,
		Street:       view.Street.String(),
		Board:        deck.Strings(view.Board),
		HoleCards:    deck.Strings(view.HoleCards),
		Pot:          view.Pot,
		CurrentBet:   view.CurrentBet,
		ToCall:       view.ToCall,
		MinRaise:     view.MinRaise,
		Stack:        view.Stack,
		LegalActions: infos,
		TimeoutSecs:  timeoutSecs,
	}
}

func newGameUpdate(s game.Snapshot) GameUpdate {
	seats := make([]SeatInfo, len(s.Seats))
	for i, seat := range s.Seats {
		seats[i] = SeatInfo{
			Seat:   seat.Seat,
			Name:   seat.Name,
			Stack:  seat.Stack,
			Bet:    seat.AmountInPot,
			Folded: !seat.InHand,
			AllIn:  seat.AllIn,
			Dealer: seat.Dealer,
		}
	}
	return GameUpdate{
		Type:   TypeGameUpdate,
		HandNo: s.HandNo,
		Street: s.Street.String(),
		Board:  deck.Strings(s.Board),
		Pot:    s.Pot,
		Seats:  seats,
	}
}

func newHandResult(r *game.HandResult) HandResult {
	winners := make([]WinnerInfo, len(r.Winners))
	for i, w := range r.Winners {
		info := WinnerInfo{Name: w.Name, Amount: r.Share}
		if !r.WonByFold {
			info.HoleCards = deck.Strings(w.HoleCards)
		}
		winners[i] = info
	}
	return HandResult{
		Type:      TypeHandResult,
		HandNo:    r.HandNo,
		Pot:       r.Pot,
		Board:     deck.Strings(r.Board),
		WonByFold: r.WonByFold,
		Winners:   winners,
	}
}
