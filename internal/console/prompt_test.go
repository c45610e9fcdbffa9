package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroom/holdem/internal/deck"
	"github.com/cardroom/holdem/internal/game"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func promptView() game.TableView {
	return game.TableView{
		Street:    game.Flop,
		Pot:       60,
		ToCall:    20,
		Stack:     980,
		HoleCards: []deck.Card{deck.MustParse("As"), deck.MustParse("Kd")},
		Board:     []deck.Card{deck.MustParse("2c"), deck.MustParse("7h"), deck.MustParse("Jd")},
	}
}

func facingBet() []game.LegalAction {
	return []game.LegalAction{
		{Action: game.Fold},
		{Action: game.Call, Min: 20, Max: 20},
		{Action: game.Raise, Min: 40, Max: 980},
		{Action: game.AllIn, Min: 980, Max: 980},
	}
}

func TestParseDecision(t *testing.T) {
	cases := []struct {
		line string
		want game.Decision
	}{
		{"fold", game.Decision{Action: game.Fold}},
		{"check", game.Decision{Action: game.Check}},
		{"call", game.Decision{Action: game.Call}},
		{"bet 40", game.Decision{Action: game.Bet, Amount: 40}},
		{"raise 120", game.Decision{Action: game.Raise, Amount: 120}},
		{"  RAISE   60 ", game.Decision{Action: game.Raise, Amount: 60}},
		{"allin", game.Decision{Action: game.AllIn}},
	}
	for _, tc := range cases {
		d, err := parseDecision(tc.line)
		require.NoError(t, err, tc.line)
		assert.Equal(t, tc.want, d, tc.line)
	}
}

func TestParseDecisionErrors(t *testing.T) {
	for _, line := range []string{"", "shove", "bet", "bet lots", "raise"} {
		_, err := parseDecision(line)
		assert.Error(t, err, "line %q", line)
	}
}

func TestCheckLegal(t *testing.T) {
	legal := facingBet()

	assert.NoError(t, checkLegal(game.Decision{Action: game.Call}, legal))
	assert.NoError(t, checkLegal(game.Decision{Action: game.Raise, Amount: 40}, legal))
	assert.Error(t, checkLegal(game.Decision{Action: game.Check}, legal), "check not offered")
	assert.Error(t, checkLegal(game.Decision{Action: game.Raise, Amount: 30}, legal), "below minimum")
	assert.Error(t, checkLegal(game.Decision{Action: game.Raise, Amount: 2000}, legal), "above stack")
}

func TestPromptAgentRepromptsUntilLegal(t *testing.T) {
	in := strings.NewReader("jam\nraise 10\nraise 40\n")
	var out bytes.Buffer
	agent := NewPromptAgent(in, &out, testLogger())

	d, err := agent.Decide(context.Background(), promptView(), facingBet())
	require.NoError(t, err)
	assert.Equal(t, game.Decision{Action: game.Raise, Amount: 40}, d)

	assert.Contains(t, out.String(), "$20 to call")
	assert.Contains(t, out.String(), "raise 40-980")
}

func TestPromptAgentReturnsEOFWhenInputCloses(t *testing.T) {
	agent := NewPromptAgent(strings.NewReader(""), io.Discard, testLogger())

	_, err := agent.Decide(context.Background(), promptView(), facingBet())
	assert.ErrorIs(t, err, io.EOF)
}

func TestDisplayObserveRendersStreetAndSeats(t *testing.T) {
	var out bytes.Buffer
	d := NewDisplay(&out)

	d.Observe(game.Snapshot{
		HandNo: 3,
		Street: game.Flop,
		Board:  []deck.Card{deck.MustParse("2c"), deck.MustParse("7h"), deck.MustParse("Jd")},
		Pot:    90,
		Seats: []game.SeatView{
			{Seat: 0, Name: "alice", Stack: 970, AmountInPot: 30, InHand: true, Dealer: true},
			{Seat: 1, Name: "bob", Stack: 990, InHand: false},
		},
	})

	text := out.String()
	assert.Contains(t, text, "*** FLOP ***")
	assert.Contains(t, text, "$90")
	assert.Contains(t, text, "alice")
	assert.Contains(t, text, "folded")
}
