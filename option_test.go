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

func TestOption_None(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	o := None[string]()
	is.False(o.HasValue())
	is.Equal("fallback", o.ValueOr("fallback"))
	is.Panics(func() { o.Value() })
}

func TestOption_Some(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	o := Some(5)
	is.True(o.HasValue())
	is.Equal(5, o.Value())
	is.Equal(5, o.ValueOr(99))
}

func TestOption_EmplaceAndClear(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	var o Option[int]
	is.False(o.HasValue())

	o.Emplace(3)
	is.True(o.HasValue())
	is.Equal(3, o.Value())

	o.Emplace(4)
	is.Equal(4, o.Value())

	o.Clear()
	is.False(o.HasValue())
	is.Equal(0, o.ValueOr(0))
}
