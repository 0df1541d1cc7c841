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
	"log"
	"sync/atomic"
)

// This library has no logging surface by default: onBrokenPromise and
// onDiscardedResult start as no-ops, exactly like the teacher's
// onUnhandledError/onDroppedNotification pair in ro.go. Callers opt in
// explicitly, either with their own handler or with LogBrokenPromises.
var (
	onBrokenPromise   atomic.Value // func(*Error)
	onDiscardedResult atomic.Value // func(result any)
)

func init() {
	onBrokenPromise.Store(ignoreOnBrokenPromise)
	onDiscardedResult.Store(ignoreOnDiscardedResult)
}

func ignoreOnBrokenPromise(*Error) {}
func ignoreOnDiscardedResult(any)  {}

// SetOnBrokenPromise installs the handler invoked whenever a Promise is
// discarded without ever being fulfilled, whether or not its Future was
// ever retrieved. Passing nil restores the default no-op.
func SetOnBrokenPromise(fn func(err *Error)) {
	if fn == nil {
		fn = ignoreOnBrokenPromise
	}
	onBrokenPromise.Store(fn)
}

// SetOnDiscardedResult installs the handler invoked whenever a ready result
// is dropped because no callback was ever registered for it (the Future
// detached before arming).
func SetOnDiscardedResult(fn func(result any)) {
	if fn == nil {
		fn = ignoreOnDiscardedResult
	}
	onDiscardedResult.Store(fn)
}

func notifyBrokenPromise(err *Error) {
	onBrokenPromise.Load().(func(*Error))(err)
}

func notifyDiscardedResult(result any) {
	onDiscardedResult.Load().(func(any))(result)
}

// LogBrokenPromises installs a SetOnBrokenPromise handler that logs via the
// standard logger, mirroring the teacher's DefaultOnUnhandledError.
func LogBrokenPromises() {
	SetOnBrokenPromise(func(err *Error) {
		// bearer:disable go_lang_logger_leak
		log.Printf("dien: broken promise: %s", err.Error())
	})
}
