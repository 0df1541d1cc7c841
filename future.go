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

// Future is the read-side handle over a shared rendezvous cell. It either
// extracts an already-ready result synchronously, or registers a
// continuation via Then/OnError that runs when the result arrives. Future is
// not copyable in spirit (it holds the sole Future-side attachment); callers
// should treat a *Future as moved-from once handed to a combinator.
type Future[T any] struct {
	shared *sharedState[T]
}

// FailedFuture returns an already-failed Future, initial state OnlyResult,
// attach count 1 (spec.md §4.5's "failed observer convenience constructor").
func FailedFuture[T any](e *Error) *Future[T] {
	s := newStandaloneSharedState[T]()
	s.setResult(ErrorOf[T](e))
	return &Future[T]{shared: s}
}

// ReadyFuture returns an already-succeeded Future, mirroring FailedFuture.
func ReadyFuture[T any](v T) *Future[T] {
	s := newStandaloneSharedState[T]()
	s.setResult(ValueOf(v))
	return &Future[T]{shared: s}
}

// HasValue reports whether the Future is ready with a value.
func (f *Future[T]) HasValue() bool {
	return f.shared.ready() && !f.shared.hasError()
}

// HasError reports whether the Future is ready with an error.
func (f *Future[T]) HasError() bool {
	return f.shared.hasError()
}

// IsReady reports whether a result (value or error) is available.
func (f *Future[T]) IsReady() bool {
	return f.shared.ready()
}

// Value returns the ready value. Precondition: HasValue().
func (f *Future[T]) Value() T {
	t := f.shared.get()
	if !t.HasValue() {
		panic("dien: Value called on a Future that is not ready with a value")
	}
	return t.Value()
}

// Get is an alias for Value, matching spec.md's naming.
func (f *Future[T]) Get() T {
	return f.Value()
}

// Detach drops this Future's attachment early, forcing any pending armed
// dispatch to run first. After Detach, the Future must not be used again.
func (f *Future[T]) Detach() {
	f.shared.detachFuture()
}

// setCallback is the one place every combinator funnels through to install
// its internal routing function on the upstream cell.
func (f *Future[T]) setCallback(fn func(Try[T])) {
	f.shared.setCallback(fn)
}

// runCapturingPanics invokes fn and converts a panic into an *Error instead
// of propagating it, mirroring the teacher's observerImpl panic-capture
// wrapper built on lo.TryCatchWithErrorValue.
func runCapturingPanics[U any](fn func() U) (result U, err *Error) {
	lo.TryCatchWithErrorValue(
		func() error {
			result = fn()
			return nil
		},
		func(e any) {
			err = NewErrorf("panic in continuation: %v", e)
		},
	)
	return result, err
}

// Then installs a try-shaped, non-flattening continuation: fn always runs,
// even on an upstream error, and always sees the upstream Try[T]. A panic in
// fn becomes the downstream's error (spec.md §4.6/§4.7).
func Then[T, U any](f *Future[T], fn func(Try[T]) U) *Future[U] {
	p2 := NewPromise[U]()
	f2 := p2.GetFuture()

	f.setCallback(func(t Try[T]) {
		defer p2.Discard()
		p2.SetWith(func() (U, *Error) {
			return runCapturingPanics(func() U { return fn(t) })
		})
	})
	f.Detach()

	return f2
}

// ThenFuture installs a try-shaped, flattening continuation: fn returns a
// *Future[U], and the combinator's own result is flattened to that Future's
// outcome rather than nesting (spec.md §4.6 point 3 / property 7).
func ThenFuture[T, U any](f *Future[T], fn func(Try[T]) *Future[U]) *Future[U] {
	p2 := NewPromise[U]()
	f2 := p2.GetFuture()

	f.setCallback(func(t Try[T]) {
		inner, panicErr := runCapturingPanics(func() *Future[U] { return fn(t) })
		if panicErr != nil {
			defer p2.Discard()
			p2.SetError(panicErr)
			return
		}

		inner.setCallback(func(u Try[U]) {
			defer p2.Discard()
			p2.SetTry(u)
		})
		inner.Detach()
	})
	f.Detach()

	return f2
}

// ThenValue installs a value-shaped, non-flattening continuation: fn is
// skipped and the error is propagated untouched when the upstream is an
// error (spec.md §4.6 point 2 / property 6).
func ThenValue[T, U any](f *Future[T], fn func(T) U) *Future[U] {
	p2 := NewPromise[U]()
	f2 := p2.GetFuture()

	f.setCallback(func(t Try[T]) {
		defer p2.Discard()
		if t.HasError() {
			p2.SetError(t.Error())
			return
		}
		p2.SetWith(func() (U, *Error) {
			return runCapturingPanics(func() U { return fn(t.Value()) })
		})
	})
	f.Detach()

	return f2
}

// ThenValueFuture installs a value-shaped, flattening continuation.
func ThenValueFuture[T, U any](f *Future[T], fn func(T) *Future[U]) *Future[U] {
	p2 := NewPromise[U]()
	f2 := p2.GetFuture()

	f.setCallback(func(t Try[T]) {
		if t.HasError() {
			defer p2.Discard()
			p2.SetError(t.Error())
			return
		}

		inner, panicErr := runCapturingPanics(func() *Future[U] { return fn(t.Value()) })
		if panicErr != nil {
			defer p2.Discard()
			p2.SetError(panicErr)
			return
		}

		inner.setCallback(func(u Try[U]) {
			defer p2.Discard()
			p2.SetTry(u)
		})
		inner.Detach()
	})
	f.Detach()

	return f2
}

// ThenDo installs a zero-argument, non-flattening continuation: fn ignores
// the upstream value and, like ThenValue, is skipped on upstream error.
func ThenDo[T, U any](f *Future[T], fn func() U) *Future[U] {
	return ThenValue(f, func(T) U { return fn() })
}

// ThenDoFuture installs a zero-argument, flattening continuation.
func ThenDoFuture[T, U any](f *Future[T], fn func() *Future[U]) *Future[U] {
	return ThenValueFuture(f, func(T) *Future[U] { return fn() })
}

// OnError installs an error-shaped, non-flattening continuation. Per
// spec.md §9's open question, this preserves the reference design's
// behavior literally: when the upstream carries a value, fn is never
// invoked and the downstream Future is never fulfilled (it stays pending
// forever in that case). When the upstream carries an error, fn receives it
// and its return value fulfils the downstream.
func OnError[T any](f *Future[T], fn func(*Error) T) *Future[T] {
	p2 := NewPromise[T]()
	f2 := p2.GetFuture()

	f.setCallback(func(t Try[T]) {
		t.WithError(func(e *Error) {
			defer p2.Discard()
			p2.SetWith(func() (T, *Error) {
				return runCapturingPanics(func() T { return fn(e) })
			})
		})
	})
	f.Detach()

	return f2
}

// OnErrorFuture installs an error-shaped, flattening continuation.
func OnErrorFuture[T any](f *Future[T], fn func(*Error) *Future[T]) *Future[T] {
	p2 := NewPromise[T]()
	f2 := p2.GetFuture()

	f.setCallback(func(t Try[T]) {
		t.WithError(func(e *Error) {
			inner, panicErr := runCapturingPanics(func() *Future[T] { return fn(e) })
			if panicErr != nil {
				defer p2.Discard()
				p2.SetError(panicErr)
				return
			}

			inner.setCallback(func(u Try[T]) {
				defer p2.Discard()
				p2.SetTry(u)
			})
			inner.Detach()
		})
	})
	f.Detach()

	return f2
}
