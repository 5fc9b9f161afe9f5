package directory

import (
	"context"
	"sync/atomic"
)

// Token is the cancellation token of one mounted view. Results carrying a
// cancelled token must not touch state.
type Token struct {
	ctx     context.Context
	cancel  context.CancelFunc
	started atomic.Bool
}

func NewToken(parent context.Context) *Token {
	ctx, cancel := context.WithCancel(parent)
	return &Token{ctx: ctx, cancel: cancel}
}

// Context is cancelled together with the token, aborting in-flight requests.
func (t *Token) Context() context.Context { return t.ctx }

func (t *Token) Cancel() { t.cancel() }

func (t *Token) Cancelled() bool { return t.ctx.Err() != nil }

// start reports true exactly once.
func (t *Token) start() bool { return t.started.CompareAndSwap(false, true) }
