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

import "github.com/samber/lo"

// Promise is the write-side handle over a shared rendezvous cell. A Promise
// is created, handed its single Future via GetFuture, and then fulfilled
// exactly once via SetValue/SetError/SetWith. Promise is not safe for
// concurrent fulfilment from multiple goroutines; exactly one side fulfils.
type Promise[T any] struct {
	shared    *sharedState[T]
	retrieved bool
	discarded bool
}

// NewPromise allocates a fresh Promise with its shared cell at attach count
// 2 (one for the Promise, one for the Future that GetFuture will detach).
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{shared: newSharedState[T]()}
}

// GetFuture detaches the Future half of this Promise's shared cell. It may
// be called at most once; calling it twice is a programming error.
func (p *Promise[T]) GetFuture() *Future[T] {
	if p.retrieved {
		panic("dien: GetFuture called twice on the same Promise")
	}
	p.retrieved = true
	return &Future[T]{shared: p.shared}
}

// SetValue fulfils the Promise with a value. Precondition: not yet
// fulfilled.
func (p *Promise[T]) SetValue(v T) {
	p.assertUnfulfilled()
	p.shared.setResult(ValueOf(v))
}

// SetError fulfils the Promise with an error. Precondition: not yet
// fulfilled.
func (p *Promise[T]) SetError(e *Error) {
	p.assertUnfulfilled()
	p.shared.setResult(ErrorOf[T](e))
}

// SetTry fulfils the Promise with an already-built Try, used internally by
// the continuation algebra to forward a flattened inner result.
func (p *Promise[T]) SetTry(t Try[T]) {
	p.assertUnfulfilled()
	p.shared.setResult(t)
}

// SetWith invokes fn and stores its outcome as the result: a panic raised by
// fn is captured and surfaced as the Promise's error instead of crashing the
// caller's goroutine, mirroring the continuation algebra's requirement that
// a failing continuation becomes a downstream error (spec.md §4.7).
func (p *Promise[T]) SetWith(fn func() (T, *Error)) {
	p.assertUnfulfilled()

	var result Try[T]

	lo.TryCatchWithErrorValue(
		func() error {
			v, err := fn()
			if err != nil {
				result = ErrorOf[T](err)
			} else {
				result = ValueOf(v)
			}
			return nil
		},
		func(e any) {
			result = ErrorOf[T](NewErrorf("panic in continuation: %v", e))
		},
	)

	p.shared.setResult(result)
}

// IsFulfilled reports whether a result has been installed.
func (p *Promise[T]) IsFulfilled() bool {
	return p.shared.ready()
}

// Discard releases this Promise's share of the rendezvous cell. If the
// Future was never retrieved, it is detached on the Promise's behalf first
// (so the cell's callback path, if any was somehow installed, still runs
// through a properly-activated detach). If a Future remains attached and no
// result was ever installed, the Future observes a BrokenPromise error.
// Callers own a Promise's lifetime explicitly (Go has no destructor): the
// idiomatic pattern is `p := NewPromise[T](); defer p.Discard()`.
func (p *Promise[T]) Discard() {
	if p.discarded {
		return
	}
	p.discarded = true

	if !p.retrieved {
		p.shared.detachFuture()
	}
	p.shared.detachPromise()
}

func (p *Promise[T]) assertUnfulfilled() {
	if p.shared.ready() {
		panic("dien: Promise already fulfilled")
	}
}
