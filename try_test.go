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

	"github.com/stretchr/testify/assert"
)

func TestTry_EmptyTry(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	tr := EmptyTry[int]()
	is.True(tr.IsEmpty())
	is.False(tr.HasValue())
	is.False(tr.HasError())
}

func TestTry_ValueOf(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	tr := ValueOf(42)
	is.False(tr.IsEmpty())
	is.True(tr.HasValue())
	is.False(tr.HasError())
	is.Equal(42, tr.Value())
}

func TestTry_ErrorOf(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	err := NewErrorf("boom")
	tr := ErrorOf[int](err)
	is.False(tr.IsEmpty())
	is.False(tr.HasValue())
	is.True(tr.HasError())
	is.Same(err, tr.Error())
}

func TestTry_Value_panicsOnWrongArm(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	tr := ErrorOf[int](NewErrorf("boom"))
	is.Panics(func() { tr.Value() })
}

func TestTry_Error_panicsOnWrongArm(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	tr := ValueOf(7)
	is.Panics(func() { tr.Error() })
}

func TestTry_WithError(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	var seen *Error
	errTry := ErrorOf[int](NewErrorf("boom"))
	is.True(errTry.WithError(func(e *Error) { seen = e }))
	is.NotNil(seen)

	seen = nil
	valTry := ValueOf(1)
	is.False(valTry.WithError(func(e *Error) { seen = e }))
	is.Nil(seen)
}
