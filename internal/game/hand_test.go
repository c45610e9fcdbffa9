package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroom/holdem/internal/deck"
	"github.com/cardroom/holdem/internal/evaluator"
	"github.com/cardroom/holdem/internal/randutil"
)

func stackedDeck(codes ...string) *deck.Deck {
	cards := make([]deck.Card, len(codes))
	for i, c := range codes {
		cards[i] = deck.MustParse(c)
	}
	return deck.NewStacked(cards...)
}

// Heads-up, blinds 10/20, small blind folds pre-flop: the big blind takes
// the 30-chip pot and no board is ever dealt.
func TestHeadsUpSmallBlindFoldsPreflop(t *testing.T) {
	players := []*Player{
		NewPlayer(0, "alice", 1000),
		NewPlayer(1, "bob", 1000),
	}
	// Dealer 0: bob posts the small blind, alice wraps to the big blind
	// and closes the lap with a check after bob folds.
	agents := []Agent{
		NewScriptedAgent(Decision{Action: Check}),
		NewScriptedAgent(Decision{Action: Fold}),
	}

	// Exactly four cards: dealing any street would fail the hand.
	h := NewHand(randutil.New(1), players, agents, 0, 10, 20, stubOracle{}, testLogger(),
		WithDeck(stackedDeck("As", "Kd", "2c", "7h")))

	result, err := h.Play(context.Background())
	require.NoError(t, err)

	assert.True(t, result.WonByFold)
	require.Len(t, result.Winners, 1)
	assert.Same(t, players[0], result.Winners[0])
	assert.Equal(t, 30, result.Pot)
	assert.Empty(t, result.Board, "no streets dealt after a pre-flop fold-out")

	assert.Equal(t, 1010, players[0].Stack)
	assert.Equal(t, 990, players[1].Stack)
	assert.Equal(t, 2000, players[0].Stack+players[1].Stack, "chips conserved")
}

// Three players check every street to a full board; two of them tie and
// chop the pot.
func TestThreeWayCheckdownChopsPot(t *testing.T) {
	players := threePlayers(1000, 1000, 1000)
	agents := []Agent{
		NewScriptedAgent(
			Decision{Action: Call},
			Decision{Action: Check}, Decision{Action: Check}, Decision{Action: Check}),
		NewScriptedAgent(
			Decision{Action: Call},
			Decision{Action: Check}, Decision{Action: Check}, Decision{Action: Check}),
		NewScriptedAgent(
			Decision{Action: Check},
			Decision{Action: Check}, Decision{Action: Check}, Decision{Action: Check}),
	}

	oracle := stubOracle{scores: map[string]int{"As": 10, "Ah": 10, "2s": 99}}
	h := NewHand(randutil.New(1), players, agents, 0, 10, 20, oracle, testLogger(),
		WithDeck(stackedDeck(
			"As", "Kd", "Ah", "Kc", "2s", "3d", // hole cards
			"4c", "8d", "9h", "Js", "Qd", // board
		)))

	result, err := h.Play(context.Background())
	require.NoError(t, err)

	assert.False(t, result.WonByFold)
	assert.Equal(t, 60, result.Pot)
	assert.Equal(t, 30, result.Share)
	assert.Equal(t, 0, result.Remainder)
	require.Len(t, result.Winners, 2)
	assert.ElementsMatch(t, []*Player{players[0], players[1]}, result.Winners)

	assert.Equal(t, 1010, players[0].Stack)
	assert.Equal(t, 1010, players[1].Stack)
	assert.Equal(t, 980, players[2].Stack)
}

// An odd pot chopped two ways loses its remainder chip by design.
func TestOddPotChopDropsRemainder(t *testing.T) {
	players := threePlayers(1000, 1000, 1000)
	agents := []Agent{
		NewScriptedAgent(
			Decision{Action: Call},
			Decision{Action: Check}, Decision{Action: Check}, Decision{Action: Check}),
		NewScriptedAgent(
			Decision{Action: Call},
			Decision{Action: Check}, Decision{Action: Check}, Decision{Action: Check}),
		NewScriptedAgent(
			Decision{Action: Check},
			Decision{Action: Check}, Decision{Action: Check}, Decision{Action: Check}),
	}

	oracle := stubOracle{scores: map[string]int{"As": 10, "Ah": 10, "2s": 99}}
	h := NewHand(randutil.New(1), players, agents, 0, 10, 21, oracle, testLogger(),
		WithDeck(stackedDeck(
			"As", "Kd", "Ah", "Kc", "2s", "3d",
			"4c", "8d", "9h", "Js", "Qd",
		)))

	result, err := h.Play(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 63, result.Pot)
	assert.Equal(t, 31, result.Share)
	assert.Equal(t, 1, result.Remainder)
	assert.Equal(t, 2999, players[0].Stack+players[1].Stack+players[2].Stack)
}

// Full hand against the real oracle: a flush beats top pair at showdown.
func TestShowdownWithRealEvaluator(t *testing.T) {
	players := []*Player{
		NewPlayer(0, "alice", 500),
		NewPlayer(1, "bob", 500),
	}
	agents := []Agent{
		NewScriptedAgent(
			Decision{Action: Check},
			Decision{Action: Check}, Decision{Action: Check}, Decision{Action: Check}),
		NewScriptedAgent(
			Decision{Action: Call},
			Decision{Action: Check}, Decision{Action: Check}, Decision{Action: Check}),
	}

	h := NewHand(randutil.New(1), players, agents, 0, 10, 20, evaluator.New(), testLogger(),
		WithDeck(stackedDeck(
			"Ah", "7h", // alice: heart flush on this board
			"Ac", "Kd", // bob: top pair top kicker
			"2h", "9h", "Qh", "As", "3c",
		)))

	result, err := h.Play(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Winners, 1)
	assert.Same(t, players[0], result.Winners[0])
	assert.Equal(t, 40, result.Pot, "both blinds in, checked down")
	assert.Equal(t, 520, players[0].Stack)
	assert.Equal(t, 480, players[1].Stack)
}

func TestHandSnapshotsPublishedPerStreet(t *testing.T) {
	players := threePlayers(1000, 1000, 1000)
	agents := []Agent{
		NewScriptedAgent(
			Decision{Action: Call},
			Decision{Action: Check}, Decision{Action: Check}, Decision{Action: Check}),
		NewScriptedAgent(
			Decision{Action: Call},
			Decision{Action: Check}, Decision{Action: Check}, Decision{Action: Check}),
		NewScriptedAgent(
			Decision{Action: Check},
			Decision{Action: Check}, Decision{Action: Check}, Decision{Action: Check}),
	}

	var streets []Street
	var boardSizes []int
	display := displayFunc(func(s Snapshot) {
		streets = append(streets, s.Street)
		boardSizes = append(boardSizes, len(s.Board))
	})

	oracle := stubOracle{scores: map[string]int{"As": 1, "Ah": 2, "2s": 3}}
	h := NewHand(randutil.New(1), players, agents, 0, 10, 20, oracle, testLogger(),
		WithDisplay(display),
		WithDeck(stackedDeck(
			"As", "Kd", "Ah", "Kc", "2s", "3d",
			"4c", "8d", "9h", "Js", "Qd",
		)))

	_, err := h.Play(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []Street{Preflop, Flop, Turn, River, ShowdownStreet}, streets)
	assert.Equal(t, []int{0, 3, 4, 5, 5}, boardSizes)
}

func TestHandNeedsTwoPlayers(t *testing.T) {
	players := []*Player{NewPlayer(0, "alone", 1000)}
	h := NewHand(randutil.New(1), players, []Agent{NewScriptedAgent()}, 0, 10, 20, stubOracle{}, testLogger())
	_, err := h.Play(context.Background())
	assert.Error(t, err)
}

// displayFunc adapts a function to the Display interface
type displayFunc func(Snapshot)

func (f displayFunc) Observe(s Snapshot) { f(s) }
