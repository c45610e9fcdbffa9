package server

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroom/holdem/internal/deck"
	"github.com/cardroom/holdem/internal/game"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func remoteView() game.TableView {
	return game.TableView{
		Street:     game.Flop,
		Board:      []deck.Card{deck.MustParse("2c"), deck.MustParse("7h"), deck.MustParse("Jd")},
		HoleCards:  []deck.Card{deck.MustParse("As"), deck.MustParse("Kd")},
		Pot:        60,
		CurrentBet: 20,
		ToCall:     20,
		MinRaise:   20,
		Stack:      980,
	}
}

func remoteLegal() []game.LegalAction {
	return []game.LegalAction{
		{Action: game.Fold},
		{Action: game.Call, Min: 20, Max: 20},
		{Action: game.Raise, Min: 40, Max: 980},
	}
}

func TestRemoteAgentRoundTrip(t *testing.T) {
	sent := make(chan ActionRequest, 1)
	send := func(v any) error {
		sent <- v.(ActionRequest)
		return nil
	}

	agent := NewRemoteAgent("carol", send, 30*time.Second, testLogger())

	done := make(chan game.Decision, 1)
	go func() {
		d, err := agent.Decide(context.Background(), remoteView(), remoteLegal())
		require.NoError(t, err)
		done <- d
	}()

	req := <-sent
	assert.Equal(t, TypeActionRequest, req.Type)
	assert.Equal(t, "flop", req.Street)
	assert.Equal(t, []string{"As", "Kd"}, req.HoleCards)
	assert.Equal(t, 20, req.ToCall)
	require.Len(t, req.LegalActions, 3)
	assert.Equal(t, LegalActionInfo{Action: "raise", Min: 40, Max: 980}, req.LegalActions[2])

	require.NoError(t, agent.HandleAction(Envelope{Type: TypeAction, Action: "raise", Amount: 40}))

	d := <-done
	assert.Equal(t, game.Decision{Action: game.Raise, Amount: 40}, d)
}

func TestRemoteAgentFoldsWhenSendFails(t *testing.T) {
	send := func(any) error { return errors.New("broken pipe") }
	agent := NewRemoteAgent("carol", send, time.Second, testLogger())

	d, err := agent.Decide(context.Background(), remoteView(), remoteLegal())
	require.NoError(t, err)
	assert.Equal(t, game.Fold, d.Action)
}

func TestRemoteAgentFoldsOnDisconnect(t *testing.T) {
	send := func(any) error { return nil }
	agent := NewRemoteAgent("carol", send, time.Second, testLogger())

	done := make(chan game.Decision, 1)
	go func() {
		d, err := agent.Decide(context.Background(), remoteView(), remoteLegal())
		require.NoError(t, err)
		done <- d
	}()

	agent.Disconnect()
	agent.Disconnect() // idempotent

	d := <-done
	assert.Equal(t, game.Fold, d.Action)
}

func TestHandleActionValidation(t *testing.T) {
	agent := NewRemoteAgent("carol", func(any) error { return nil }, time.Second, testLogger())

	err := agent.HandleAction(Envelope{Type: TypeAction, Action: "jam"})
	assert.ErrorIs(t, err, game.ErrUnknownAction)

	// One buffered decision is accepted even with nobody waiting; a second
	// has no pending solicitation to land in.
	require.NoError(t, agent.HandleAction(Envelope{Type: TypeAction, Action: "check"}))
	assert.Error(t, agent.HandleAction(Envelope{Type: TypeAction, Action: "check"}))
}

func TestRemoteAgentHonorsContext(t *testing.T) {
	agent := NewRemoteAgent("carol", func(any) error { return nil }, time.Second, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := agent.Decide(ctx, remoteView(), remoteLegal())
	assert.ErrorIs(t, err, context.Canceled)
}
