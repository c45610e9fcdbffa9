package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cardroom/holdem/internal/game"
)

// RemoteAgent proxies decisions to and from a remote client. The engine's
// solicitation becomes an action_request message; the client's answer is fed
// back through HandleAction. A disconnected client folds every turn, so the
// hand always completes.
type RemoteAgent struct {
	name      string
	send      func(v any) error
	timeout   time.Duration
	logger    *log.Logger
	decisions chan game.Decision

	gone     chan struct{}
	goneOnce sync.Once
}

// NewRemoteAgent creates an agent for the named remote player. send delivers
// one message to that player's connection.
func NewRemoteAgent(name string, send func(v any) error, timeout time.Duration, logger *log.Logger) *RemoteAgent {
	return &RemoteAgent{
		name:      name,
		send:      send,
		timeout:   timeout,
		logger:    logger.WithPrefix("remote").With("player", name),
		decisions: make(chan game.Decision, 1),
		gone:      make(chan struct{}),
	}
}

// Decide requests a decision from the remote client and waits for the reply
func (a *RemoteAgent) Decide(ctx context.Context, view game.TableView, legal []game.LegalAction) (game.Decision, error) {
	req := newActionRequest(view, legal, int(a.timeout.Seconds()))
	if err := a.send(req); err != nil {
		a.logger.Warn("failed to send action request, folding", "error", err)
		return game.Decision{Action: game.Fold}, nil
	}

	select {
	case d := <-a.decisions:
		a.logger.Debug("received decision", "action", d.Action, "amount", d.Amount)
		return d, nil
	case <-a.gone:
		a.logger.Warn("player disconnected mid-turn, folding")
		return game.Decision{Action: game.Fold}, nil
	case <-ctx.Done():
		return game.Decision{}, ctx.Err()
	}
}

// HandleAction feeds a client action message to the pending solicitation
func (a *RemoteAgent) HandleAction(msg Envelope) error {
	action, err := game.ParseAction(msg.Action)
	if err != nil {
		return err
	}

	select {
	case a.decisions <- game.Decision{Action: action, Amount: msg.Amount}:
		return nil
	default:
		return errors.New("no decision pending")
	}
}

// Disconnect marks the remote player gone. Safe to call more than once.
func (a *RemoteAgent) Disconnect() {
	a.goneOnce.Do(func() { close(a.gone) })
}
