package assemble

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrBusy is returned when an assembly is already in flight. A busy runner
// is an expected outcome, not a failure.
var ErrBusy = errors.New("a prompt is already being generated")

// ErrSuperseded is returned when a newer request was issued; the stale
// result is dropped, never delivered.
var ErrSuperseded = errors.New("request superseded by a newer one")

// Runner serializes assembly: one synchronous, non-reentrant operation at a
// time, with request supersession. Callers Issue a token per logical
// request; issuing a new token marks all earlier tokens stale.
type Runner struct {
	mu  sync.Mutex
	seq atomic.Uint64
}

// Issue returns a token identifying a new request, superseding earlier ones.
func (r *Runner) Issue() uint64 {
	return r.seq.Add(1)
}

// Run executes fn under the single-flight guard. It returns ErrBusy without
// running fn when another assembly is in flight, and ErrSuperseded with the
// result discarded when requestToken is no longer the latest issued.
func (r *Runner) Run(requestToken uint64, fn func() Result) (Result, error) {
	if !r.mu.TryLock() {
		return Result{}, ErrBusy
	}
	defer r.mu.Unlock()

	if r.seq.Load() != requestToken {
		return Result{}, ErrSuperseded
	}

	result := fn()

	// A request issued while fn ran wins; its result will replace this one.
	if r.seq.Load() != requestToken {
		return Result{}, ErrSuperseded
	}
	return result, nil
}
