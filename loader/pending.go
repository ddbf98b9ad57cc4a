package loader

import (
	"context"
	"sync"

	"github.com/iw2rmb/inkwell/engine"
)

// State is the lifecycle state of a Pending token.
type State int32

const (
	StatePending State = iota
	StateResolved
	StateFailed
	StateCanceled
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateResolved:
		return "resolved"
	case StateFailed:
		return "failed"
	case StateCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Pending is a cancelable handle on one engine initialization request.
// It settles exactly once.
type Pending struct {
	mu     sync.Mutex
	state  State
	engine *engine.Engine
	err    error
	done   chan struct{}
}

// NewPending returns an unsettled token. Initializer implementations settle
// it with Resolve or Fail.
func NewPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

// Resolved returns a token already resolved with e.
func Resolved(e *engine.Engine) *Pending {
	p := NewPending()
	p.Resolve(e)
	return p
}

// Failed returns a token already failed with err.
func Failed(err error) *Pending {
	p := NewPending()
	p.Fail(err)
	return p
}

func (p *Pending) settle(state State, e *engine.Engine, err error) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StatePending {
		return false
	}
	p.state = state
	p.engine = e
	p.err = err
	close(p.done)
	return true
}

// Resolve settles the token with e. It reports false if already settled.
func (p *Pending) Resolve(e *engine.Engine) bool { return p.settle(StateResolved, e, nil) }

// Fail settles the token with err. It reports false if already settled.
func (p *Pending) Fail(err error) bool { return p.settle(StateFailed, nil, err) }

// Cancel abandons the request. It only has an effect while pending and
// reports whether it did.
func (p *Pending) Cancel() bool {
	return p.settle(StateCanceled, nil, ErrCanceled)
}

// State returns the current state.
func (p *Pending) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Done is closed once the token settles.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Wait blocks until the token settles or ctx ends.
func (p *Pending) Wait(ctx context.Context) (*engine.Engine, error) {
	select {
	case <-p.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.engine, p.err
}
