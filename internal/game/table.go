package game

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
)

// Table owns everything that persists across hands: the seating order, the
// dealer pointer, and the stacks. It deals one hand at a time, eliminates
// busted players between hands, and rotates the button over the survivors.
type Table struct {
	players []*Player
	agents  []Agent

	dealerPos  int
	smallBlind int
	bigBlind   int
	handNo     int
	totalChips int

	rng     *rand.Rand
	oracle  Oracle
	display Display
	logger  *log.Logger
}

// NewTable creates an empty table
func NewTable(rng *rand.Rand, smallBlind, bigBlind int, oracle Oracle, display Display, logger *log.Logger) *Table {
	if display == nil {
		display = NopDisplay{}
	}
	return &Table{
		smallBlind: smallBlind,
		bigBlind:   bigBlind,
		rng:        rng,
		oracle:     oracle,
		display:    display,
		logger:     logger,
	}
}

// Seat adds a player with their deciding agent to the next seat
func (t *Table) Seat(name string, stack int, agent Agent) error {
	if stack <= 0 {
		return fmt.Errorf("seat %s: stack must be positive, got %d", name, stack)
	}
	if agent == nil {
		return fmt.Errorf("seat %s: nil agent", name)
	}
	p := NewPlayer(len(t.players), name, stack)
	t.players = append(t.players, p)
	t.agents = append(t.agents, agent)
	t.totalChips += stack
	return nil
}

// Players returns the current seating order
func (t *Table) Players() []*Player {
	return t.players
}

// HandsPlayed returns how many hands have completed
func (t *Table) HandsPlayed() int {
	return t.handNo
}

// PlayHand runs the next hand, then eliminates busted players and advances
// the button.
func (t *Table) PlayHand(ctx context.Context) (*HandResult, error) {
	if len(t.players) < 2 {
		return nil, fmt.Errorf("cannot deal: %d players seated", len(t.players))
	}

	t.handNo++
	hand := NewHand(t.rng, t.players, t.agents, t.dealerPos, t.smallBlind, t.bigBlind, t.oracle, t.logger,
		WithDisplay(t.display),
		WithHandNo(t.handNo))

	result, err := hand.Play(ctx)
	if err != nil {
		return nil, err
	}

	// Chips are neither created nor destroyed, except that odd chips from
	// a chopped pot stay unawarded.
	t.totalChips -= result.Remainder
	if got := t.sumStacks(); got != t.totalChips {
		return nil, fmt.Errorf("chip conservation violated after hand %d: stacks total %d, want %d", t.handNo, got, t.totalChips)
	}

	t.cleanup()
	return result, nil
}

// Run plays hands until a single player holds all the chips or maxHands is
// reached (0 means no limit). It returns the champion, or nil if the limit
// stopped play first.
func (t *Table) Run(ctx context.Context, maxHands int) (*Player, error) {
	for len(t.players) > 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if maxHands > 0 && t.handNo >= maxHands {
			t.logger.Info("hand limit reached", "hands", t.handNo)
			return nil, nil
		}
		if _, err := t.PlayHand(ctx); err != nil {
			return nil, err
		}
	}

	if len(t.players) == 0 {
		return nil, errors.New("no players remain")
	}
	champion := t.players[0]
	t.logger.Info("tournament over", "winner", champion.Name, "stack", champion.Stack, "hands", t.handNo)
	return champion, nil
}

// cleanup drops eliminated players and moves the button one seat left over
// the survivors.
func (t *Table) cleanup() {
	survivors := t.players[:0]
	agents := t.agents[:0]
	for i, p := range t.players {
		if p.Stack > 0 {
			p.InHand = true
			survivors = append(survivors, p)
			agents = append(agents, t.agents[i])
			continue
		}
		p.InHand = false
		t.logger.Info("player eliminated", "player", p.Name, "hand", t.handNo)
	}
	t.players = survivors
	t.agents = agents

	if len(t.players) > 0 {
		t.dealerPos = (t.dealerPos + 1) % len(t.players)
	}
}

func (t *Table) sumStacks() int {
	total := 0
	for _, p := range t.players {
		total += p.Stack
	}
	return total
}
