package game

import (
	"context"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/cardroom/holdem/internal/deck"
)

// Hand orchestrates a single hand from blind posting through pot award:
// blinds, hole cards, pre-flop betting, then flop/turn/river (deal + bet)
// with an early-termination check after every street, and finally showdown.
// All hand state lives here; nothing is ambient.
type Hand struct {
	players   []*Player
	agents    []Agent
	dealerPos int
	handNo    int

	smallBlind int
	bigBlind   int

	deck    *deck.Deck
	oracle  Oracle
	display Display
	logger  *log.Logger

	board []deck.Card
	pot   int
}

// HandOption customizes hand construction
type HandOption func(*Hand)

// WithDeck installs a pre-built deck, used exactly as given. Tests stack
// decks with it for deterministic boards.
func WithDeck(d *deck.Deck) HandOption {
	return func(h *Hand) { h.deck = d }
}

// WithDisplay attaches a display surface that receives a snapshot after
// each street
func WithDisplay(d Display) HandOption {
	return func(h *Hand) { h.display = d }
}

// WithHandNo tags the hand with its sequence number for display and logs
func WithHandNo(n int) HandOption {
	return func(h *Hand) { h.handNo = n }
}

// NewHand creates a hand over the given seating order. agents is parallel
// to players. The deck defaults to a fresh 52-card shuffle from rng.
func NewHand(rng *rand.Rand, players []*Player, agents []Agent, dealerPos, smallBlind, bigBlind int, oracle Oracle, logger *log.Logger, opts ...HandOption) *Hand {
	h := &Hand{
		players:    players,
		agents:     agents,
		dealerPos:  dealerPos,
		smallBlind: smallBlind,
		bigBlind:   bigBlind,
		oracle:     oracle,
		display:    NopDisplay{},
		logger:     logger,
		handNo:     1,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.deck == nil {
		d := deck.New(rng)
		d.Shuffle()
		h.deck = d
	}
	return h
}

// HandResult reports how a hand ended
type HandResult struct {
	HandNo    int
	Winners   []*Player
	Pot       int
	Share     int  // chips awarded to each winner
	Remainder int  // odd chips left unawarded on a chop
	WonByFold bool // everyone else folded before showdown
	Board     []deck.Card
}

// Play runs the hand to completion
func (h *Hand) Play(ctx context.Context) (*HandResult, error) {
	if len(h.players) < 2 {
		return nil, fmt.Errorf("hand %d: need at least 2 players, have %d", h.handNo, len(h.players))
	}

	for _, p := range h.players {
		p.resetForHand()
	}

	sbIndex, bbIndex, pot := AssignBlinds(h.players, h.dealerPos, h.smallBlind, h.bigBlind)
	h.pot = pot
	h.logger.Debug("blinds posted",
		"hand", h.handNo,
		"dealer", h.players[h.dealerPos].Name,
		"sb", h.players[sbIndex].Name,
		"bb", h.players[bbIndex].Name,
		"pot", h.pot)

	if err := h.dealHoleCards(); err != nil {
		return nil, err
	}

	h.observe(Preflop)
	round := NewPreflopRound(h.players, h.agents, bbIndex, h.pot, h.bigBlind, h.logger)
	var err error
	if h.pot, err = round.Run(ctx); err != nil {
		return nil, fmt.Errorf("hand %d: preflop: %w", h.handNo, err)
	}
	if res, done := h.checkEarlyWin(); done {
		return res, nil
	}

	for _, street := range []Street{Flop, Turn, River} {
		if err := h.dealBoard(street); err != nil {
			return nil, err
		}
		h.observe(street)

		round = NewPostflopRound(h.players, h.agents, street, h.board, h.dealerPos, h.pot, h.bigBlind, h.logger)
		if h.pot, err = round.Run(ctx); err != nil {
			return nil, fmt.Errorf("hand %d: %s: %w", h.handNo, street, err)
		}
		if res, done := h.checkEarlyWin(); done {
			return res, nil
		}
	}

	winners, err := Showdown(h.players, h.board, h.oracle)
	if err != nil {
		return nil, fmt.Errorf("hand %d: %w", h.handNo, err)
	}
	share, remainder := awardPot(winners, h.pot)
	result := &HandResult{
		HandNo:    h.handNo,
		Winners:   winners,
		Pot:       h.pot,
		Share:     share,
		Remainder: remainder,
		Board:     h.board,
	}
	h.logResult(result)
	h.observe(ShowdownStreet)
	return result, nil
}

// checkEarlyWin awards the pot when all but one player have folded
func (h *Hand) checkEarlyWin() (*HandResult, bool) {
	winner, ok := CheckForWin(h.players)
	if !ok {
		return nil, false
	}
	share, _ := awardPot([]*Player{winner}, h.pot)
	result := &HandResult{
		HandNo:    h.handNo,
		Winners:   []*Player{winner},
		Pot:       h.pot,
		Share:     share,
		WonByFold: true,
		Board:     h.board,
	}
	h.logResult(result)
	return result, true
}

func (h *Hand) dealHoleCards() error {
	for _, p := range h.players {
		cards := h.deck.DealN(2)
		if len(cards) != 2 {
			return fmt.Errorf("hand %d: deck exhausted dealing to %s", h.handNo, p.Name)
		}
		p.HoleCards = cards
	}
	return nil
}

func (h *Hand) dealBoard(street Street) error {
	n := 1
	if street == Flop {
		n = 3
	}
	cards := h.deck.DealN(n)
	if len(cards) != n {
		return fmt.Errorf("hand %d: deck exhausted dealing %s", h.handNo, street)
	}
	h.board = append(h.board, cards...)
	return nil
}

func (h *Hand) observe(street Street) {
	h.display.Observe(Snapshot{
		HandNo:    h.handNo,
		Street:    street,
		Board:     append([]deck.Card(nil), h.board...),
		Pot:       h.pot,
		DealerPos: h.dealerPos,
		Seats:     seatViews(h.players),
	})
}

func (h *Hand) logResult(r *HandResult) {
	names := make([]string, len(r.Winners))
	for i, w := range r.Winners {
		names[i] = w.Name
	}
	h.logger.Info("hand complete",
		"hand", r.HandNo,
		"winners", names,
		"pot", r.Pot,
		"share", r.Share,
		"remainder", r.Remainder,
		"byFold", r.WonByFold)
}
