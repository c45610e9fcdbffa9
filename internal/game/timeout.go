package game

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// TimeoutAgent wraps another agent with a per-turn deadline. When the
// deadline expires the turn resolves to an automatic check, or fold when
// facing a bet, and the inner agent's call is cancelled. The round-closing
// algorithm is untouched: the engine just sees an ordinary decision.
type TimeoutAgent struct {
	inner   Agent
	timeout time.Duration
	clock   quartz.Clock
	logger  *log.Logger
}

// NewTimeoutAgent wraps inner with a turn deadline. The clock is injected
// so tests can drive expiry deterministically.
func NewTimeoutAgent(inner Agent, timeout time.Duration, clock quartz.Clock, logger *log.Logger) *TimeoutAgent {
	return &TimeoutAgent{
		inner:   inner,
		timeout: timeout,
		clock:   clock,
		logger:  logger,
	}
}

// Decide delegates to the wrapped agent, time-boxing the call
func (a *TimeoutAgent) Decide(ctx context.Context, view TableView, legal []LegalAction) (Decision, error) {
	type answer struct {
		decision Decision
		err      error
	}

	innerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	answerCh := make(chan answer, 1)
	go func() {
		d, err := a.inner.Decide(innerCtx, view, legal)
		answerCh <- answer{decision: d, err: err}
	}()

	expired := make(chan struct{})
	timer := a.clock.AfterFunc(a.timeout, func() {
		close(expired)
	})
	defer timer.Stop()

	select {
	case ans := <-answerCh:
		return ans.decision, ans.err
	case <-expired:
		cancel()
		auto, _ := CheckFoldAgent{}.Decide(ctx, view, legal)
		a.logger.Warn("turn deadline expired",
			"player", view.Name,
			"timeout", a.timeout,
			"auto", auto.Action)
		return auto, nil
	case <-ctx.Done():
		return Decision{}, ctx.Err()
	}
}
