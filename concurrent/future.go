package concurrent

import (
	"context"
	"sync"

	"github.com/pingcap/errors"
)

// ErrCanceled is the resolution of a future whose caller gave up on it.
var ErrCanceled = errors.New("concurrent: future canceled")

// Future is the read side of an asynchronous completion. It resolves exactly
// once, either successfully or with an error, and may be observed by waiting
// on Done, by polling, or by registering a callback.
type Future struct {
	mu        sync.Mutex
	done      chan struct{}
	err       error
	resolved  bool
	canceled  bool
	callbacks []func(error)
}

// Promise is the write side of a Future. The party performing the work keeps
// the promise and hands the future to the caller.
type Promise struct {
	fut *Future
}

func NewPromise() *Promise {
	return &Promise{fut: &Future{done: make(chan struct{})}}
}

// Future returns the read side. It is safe to hand out more than once.
func (p *Promise) Future() *Future {
	return p.fut
}

// Complete resolves the future successfully. Returns false if the future was
// already resolved.
func (p *Promise) Complete() bool {
	return p.fut.resolve(nil, false)
}

// Fail resolves the future with err. Returns false if the future was already
// resolved.
func (p *Promise) Fail(err error) bool {
	if err == nil {
		return p.fut.resolve(nil, false)
	}
	return p.fut.resolve(err, false)
}

// Canceled reports whether the caller canceled the future. Work still in
// flight may use this to stop early; it is under no obligation to.
func (p *Promise) Canceled() bool {
	p.fut.mu.Lock()
	defer p.fut.mu.Unlock()
	return p.fut.canceled
}

// Resolved returns an already-completed future.
func Resolved() *Future {
	f := &Future{done: make(chan struct{})}
	f.resolve(nil, false)
	return f
}

// Failed returns a future already resolved with err.
func Failed(err error) *Future {
	f := &Future{done: make(chan struct{})}
	f.resolve(err, false)
	return f
}

// Done is closed once the future has resolved.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// IsDone reports whether the future has resolved.
func (f *Future) IsDone() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Err returns the resolution error. Only meaningful after Done is closed; it
// returns nil while the future is pending.
func (f *Future) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Cancel marks the future canceled and, if it is still pending, resolves it
// with ErrCanceled. Cancellation is a best-effort signal: work already handed
// downstream is not unwound. Returns true if this call resolved the future.
func (f *Future) Cancel() bool {
	return f.resolve(ErrCanceled, true)
}

// Wait blocks until the future resolves or ctx expires, returning the
// resolution error or the context error respectively.
func (f *Future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.Err()
	case <-ctx.Done():
		return errors.Trace(ctx.Err())
	}
}

// OnComplete registers fn to run when the future resolves, with the
// resolution error. If the future has already resolved, fn runs immediately
// on the calling goroutine; otherwise it runs on the resolving goroutine.
func (f *Future) OnComplete(fn func(error)) {
	if fn == nil {
		return
	}
	f.mu.Lock()
	if !f.resolved {
		f.callbacks = append(f.callbacks, fn)
		f.mu.Unlock()
		return
	}
	err := f.err
	f.mu.Unlock()
	fn(err)
}

func (f *Future) resolve(err error, cancel bool) bool {
	f.mu.Lock()
	if cancel {
		f.canceled = true
	}
	if f.resolved {
		f.mu.Unlock()
		return false
	}
	f.resolved = true
	f.err = err
	callbacks := f.callbacks
	f.callbacks = nil
	f.mu.Unlock()

	close(f.done)
	for _, fn := range callbacks {
		fn(err)
	}
	return true
}
