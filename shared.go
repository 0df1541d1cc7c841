// Copyright 2025 samber.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://github.com/samber/ro/blob/main/licenses/LICENSE.apache.md
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dien

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/conqeratapple/dien/internal/xtime"
)

// stateTag is the shared state's five-state machine, matching spec.md
// §4.4's Start/OnlyResult/OnlyCallback/Armed/Done table exactly.
type stateTag uint8

const (
	stateStart stateTag = iota
	stateOnlyResult
	stateOnlyCallback
	stateArmed
	stateDone
)

// sharedState is the rendezvous object jointly owned by exactly one Promise
// and at most one Future. All mutation of state/result/callback goes
// through mu; mu is never held across a callback invocation, so a
// continuation that itself completes a downstream Promise can never
// deadlock against this one (spec.md §4.4 locking discipline).
type sharedState[T any] struct {
	mu       sync.Mutex
	state    stateTag
	result   Option[Try[T]]
	callback func(Try[T])

	active   atomic.Bool
	attached atomic.Int32

	// standalone mirrors spec.md's "overridable policy" that stack-allocates
	// the state with attach count 1 and suppresses the destruction half of
	// DetachOne's invariant check. Go has no manual lifetime to suppress,
	// so this only relaxes the over-detach assertion; it exists solely for
	// in-process unit tests of sharedState itself.
	standalone bool

	createdAt int64
}

// newSharedState allocates a fresh cell with attach count 2: one for the
// Promise, one for the Future that GetFuture will detach.
func newSharedState[T any]() *sharedState[T] {
	s := &sharedState[T]{createdAt: xtime.NowNanoMonotonic()}
	s.active.Store(true)
	s.attached.Store(2)
	return s
}

// newStandaloneSharedState builds a cell with attach count 1 and the
// standalone policy, for unit tests that exercise sharedState directly
// without a Promise/Future pair.
func newStandaloneSharedState[T any]() *sharedState[T] {
	s := &sharedState[T]{createdAt: xtime.NowNanoMonotonic(), standalone: true}
	s.active.Store(true)
	s.attached.Store(1)
	return s
}

// ready reports HasValue/HasError readiness under lock.
func (s *sharedState[T]) ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readyLocked()
}

func (s *sharedState[T]) readyLocked() bool {
	switch s.state {
	case stateOnlyResult, stateArmed, stateDone:
		if !s.result.HasValue() {
			panic("dien: invariant violated: state implies a result but none is set")
		}
		return true
	default:
		return false
	}
}

// get returns the installed Try. Precondition: ready().
func (s *sharedState[T]) get() Try[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.readyLocked() {
		panic("dien: get called before the result is ready")
	}
	return s.result.Value()
}

func (s *sharedState[T]) hasError() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readyLocked() && s.result.Value().HasError()
}

// setResult installs t. Legal only from Start or OnlyCallback; any other
// state is a fatal double-fulfilment per spec.md §4.4/§4.7.
func (s *sharedState[T]) setResult(t Try[T]) {
	armed := false

	s.mu.Lock()
	switch s.state {
	case stateStart:
		s.state = stateOnlyResult
		s.result.Emplace(t)
	case stateOnlyCallback:
		s.state = stateArmed
		s.result.Emplace(t)
		armed = true
	default:
		s.mu.Unlock()
		panic("dien: SetResult called twice")
	}
	s.mu.Unlock()

	if armed {
		s.dispatch()
	}
}

// setCallback installs fn. Legal only from Start or OnlyResult; any other
// state is a fatal double-registration.
func (s *sharedState[T]) setCallback(fn func(Try[T])) {
	armed := false

	s.mu.Lock()
	switch s.state {
	case stateStart:
		s.state = stateOnlyCallback
		s.callback = fn
	case stateOnlyResult:
		s.state = stateArmed
		s.callback = fn
		armed = true
	default:
		s.mu.Unlock()
		panic("dien: SetCallback called twice")
	}
	s.mu.Unlock()

	if armed {
		s.dispatch()
	}
}

// dispatch attempts the Armed -> Done transition and invokes the callback
// with the result moved out of the slot. The lock is released before the
// callback runs, never held across it. If active is false, dispatch is a
// no-op; the next Activate retries it.
func (s *sharedState[T]) dispatch() {
	s.mu.Lock()

	if s.state != stateArmed || !s.active.Load() {
		s.mu.Unlock()
		return
	}

	result := s.result.Value()
	callback := s.callback
	s.callback = nil
	s.state = stateDone
	s.mu.Unlock()

	callback(result)
}

// activate flips active on and retries a deferred dispatch. Safe and
// idempotent to call from any state (spec.md §5).
func (s *sharedState[T]) activate() {
	s.active.Store(true)
	s.dispatch()
}

// deactivate suspends dispatch until the next activate.
func (s *sharedState[T]) deactivate() {
	s.active.Store(false)
}

// detachFuture forces a deferred dispatch to run (so the Future doesn't
// silently miss an Armed callback as it disappears) and releases the
// Future's attachment. If the Future detaches while a result is sitting in
// the slot with no callback ever registered to consume it (spec.md §4.7:
// "Observer detaches before arming... result discarded on state teardown"),
// the discarded-result diagnostics hook is notified with that value.
func (s *sharedState[T]) detachFuture() {
	s.mu.Lock()
	var discarded Try[T]
	hadDiscard := s.state == stateOnlyResult
	if hadDiscard {
		discarded = s.result.Value()
	}
	s.mu.Unlock()

	s.activate()
	s.detachOne()

	if hadDiscard {
		notifyDiscardedResult(discarded)
	}
}

// detachPromise synthesises a BrokenPromise error if the Promise is being
// torn down with an empty slot, then releases the Promise's attachment.
func (s *sharedState[T]) detachPromise() {
	s.mu.Lock()
	empty := s.state == stateStart || s.state == stateOnlyCallback
	s.mu.Unlock()

	if empty {
		pending := time.Duration(xtime.NowNanoMonotonic() - s.createdAt)
		err := newBrokenPromiseError(pending)
		s.setResult(ErrorOf[T](err))
		notifyBrokenPromise(err)
	}

	s.detachOne()
}

// detachOne decrements the attach count. Detaching more times than attached
// is a programming error.
func (s *sharedState[T]) detachOne() {
	remaining := s.attached.Add(-1)
	if remaining < 0 && !s.standalone {
		panic("dien: shared state detached more times than it was attached")
	}
}
