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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDiagnostics_SetOnBrokenPromise_nilRestoresDefault(t *testing.T) {
	is := assert.New(t)

	prevHook := onBrokenPromise.Load()
	defer onBrokenPromise.Store(prevHook)

	called := false
	SetOnBrokenPromise(func(*Error) { called = true })
	SetOnBrokenPromise(nil)

	notifyBrokenPromise(NewErrorf("whatever"))
	is.False(called)
}

func TestDiagnostics_SetOnDiscardedResult_nilRestoresDefault(t *testing.T) {
	is := assert.New(t)

	prevHook := onDiscardedResult.Load()
	defer onDiscardedResult.Store(prevHook)

	called := false
	SetOnDiscardedResult(func(any) { called = true })
	SetOnDiscardedResult(nil)

	notifyDiscardedResult(1)
	is.False(called)
}

func TestDiagnostics_LogBrokenPromises_doesNotPanic(t *testing.T) {
	is := assert.New(t)

	prevHook := onBrokenPromise.Load()
	defer onBrokenPromise.Store(prevHook)

	LogBrokenPromises()
	is.NotPanics(func() { notifyBrokenPromise(newBrokenPromiseError(time.Nanosecond)) })
}
