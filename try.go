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

// tryKind tags the active arm of a Try. It plays the same role as the
// teacher's Kind enum (KindNext/KindError/KindComplete) in ro.go, minus the
// Complete arm: a Try only ever holds nothing, a value, or an error.
type tryKind uint8

const (
	tryEmpty tryKind = iota
	tryValue
	tryError
)

// Unit is the payload type for a Try that carries no meaningful value, only
// a success/failure tag (spec.md: "a specialisation whose value arm carries
// unit").
type Unit struct{}

// Try is the tagged union {Empty, Value(T), Error}. The zero value is Empty.
// Empty is reachable only via the zero value / Try[T]{}; every Try handed
// to an observer-visible callback is Value or Error.
type Try[T any] struct {
	kind  tryKind
	value T
	err   *Error
}

// EmptyTry returns the Empty arm of Try[T].
func EmptyTry[T any]() Try[T] {
	return Try[T]{kind: tryEmpty}
}

// ValueOf builds the Value arm of Try[T].
func ValueOf[T any](v T) Try[T] {
	return Try[T]{kind: tryValue, value: v}
}

// ErrorOf builds the Error arm of Try[T].
func ErrorOf[T any](e *Error) Try[T] {
	return Try[T]{kind: tryError, err: e}
}

// IsEmpty reports whether t is the Empty arm.
func (t Try[T]) IsEmpty() bool {
	return t.kind == tryEmpty
}

// HasValue reports whether t holds a value.
func (t Try[T]) HasValue() bool {
	return t.kind == tryValue
}

// HasError reports whether t holds an error.
func (t Try[T]) HasError() bool {
	return t.kind == tryError
}

// Value returns the held value. Precondition: HasValue(); violating it is a
// programming error and panics rather than returning a recoverable failure.
func (t Try[T]) Value() T {
	if t.kind != tryValue {
		panic("dien: Value called on a Try that does not hold a value")
	}
	return t.value
}

// Error returns the held error. Precondition: HasError().
func (t Try[T]) Error() *Error {
	if t.kind != tryError {
		panic("dien: Error called on a Try that does not hold an error")
	}
	return t.err
}

// WithError hands the held error to f and returns true if t holds an error;
// otherwise it returns false without calling f.
func (t Try[T]) WithError(f func(*Error)) bool {
	if t.kind != tryError {
		return false
	}
	f(t.err)
	return true
}
