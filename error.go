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
	"fmt"
	"time"
)

// ErrCodeFailed is the generic failure sentinel used when an Error is built
// from a format string alone, with no explicit code.
const ErrCodeFailed = 0

// ErrCodeBrokenPromise is the code stamped onto the frame synthesised when a
// Promise is discarded without ever being fulfilled.
const ErrCodeBrokenPromise = -1

// brokenPromiseMessage is the message of the frame synthesised by DetachPromise.
const brokenPromiseMessage = "broken promise"

// maxFrameMessageBytes bounds a single frame's message, mirroring the
// original implementation's fixed 256-byte vsnprintf buffer: messages
// longer than this are truncated rather than rejected.
const maxFrameMessageBytes = 256

// ErrorFrame is a single (code, message) entry in an Error stack.
type ErrorFrame struct {
	Code    int
	Message string
}

// Error is an immutable-in-spirit LIFO stack of ErrorFrame. All failures in
// this library travel as this type; it implements the standard error
// interface via its top frame.
type Error struct {
	frames  []ErrorFrame
	pending time.Duration // set only by newBrokenPromiseError
}

var _ error = (*Error)(nil)

// NewError builds a single-frame Error with an explicit code and message.
func NewError(code int, message string) *Error {
	return &Error{frames: []ErrorFrame{{Code: code, Message: truncate(message)}}}
}

// NewErrorf builds a single-frame Error from a format string. The code
// defaults to ErrCodeFailed.
func NewErrorf(format string, args ...any) *Error {
	return NewError(ErrCodeFailed, fmt.Sprintf(format, args...))
}

// NewErrorCodef builds a single-frame Error from a code and a format string.
func NewErrorCodef(code int, format string, args ...any) *Error {
	return NewError(code, fmt.Sprintf(format, args...))
}

// newBrokenPromiseError synthesises the frame DetachPromise installs when a
// Promise is discarded while its result slot is still empty.
// pending (the time between the shared cell's creation and the teardown that
// found it still empty) is stored on the Error and queryable via Pending;
// IsBrokenPromise itself only ever checks the code, never the message text.
func newBrokenPromiseError(pending time.Duration) *Error {
	err := NewError(ErrCodeBrokenPromise, fmt.Sprintf("%s (pending %s)", brokenPromiseMessage, pending))
	err.pending = pending
	return err
}

func truncate(message string) string {
	if len(message) <= maxFrameMessageBytes {
		return message
	}
	return message[:maxFrameMessageBytes]
}

// Stack pushes other's frames beneath the receiver's frames: the receiver
// keeps its top (most recent failure), and iteration afterwards yields the
// receiver's frames first, then other's. Returns the receiver for chaining.
func (e *Error) Stack(other *Error) *Error {
	if other == nil {
		return e
	}
	e.frames = append(e.frames, other.frames...)
	return e
}

// StackFrame pushes a single frame onto the top of the stack.
func (e *Error) StackFrame(frame ErrorFrame) *Error {
	e.frames = append([]ErrorFrame{frame}, e.frames...)
	return e
}

// Top returns the most recently pushed frame. Panics if the stack is empty.
func (e *Error) Top() ErrorFrame {
	if len(e.frames) == 0 {
		panic("dien: Top called on an empty Error")
	}
	return e.frames[0]
}

// Frames returns the frame stack, newest first. The returned slice must not
// be mutated by the caller.
func (e *Error) Frames() []ErrorFrame {
	return e.frames
}

// Clear empties the frame stack.
func (e *Error) Clear() {
	e.frames = nil
}

// Error implements the error interface, rendering the top frame.
func (e *Error) Error() string {
	if len(e.frames) == 0 {
		return "dien: empty error"
	}
	top := e.frames[0]
	return fmt.Sprintf("[%d] %s", top.Code, top.Message)
}

// IsBrokenPromise reports whether the top frame is the sentinel installed
// by a Promise discarded before fulfilment.
func (e *Error) IsBrokenPromise() bool {
	if e == nil || len(e.frames) == 0 {
		return false
	}
	return e.frames[0].Code == ErrCodeBrokenPromise
}

// Pending returns how long the Promise sat unfulfilled before teardown
// synthesised this BrokenPromise error, and whether e actually is one. It
// is zero/false for any other Error.
func (e *Error) Pending() (time.Duration, bool) {
	if !e.IsBrokenPromise() {
		return 0, false
	}
	return e.pending, true
}
