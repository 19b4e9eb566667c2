// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package windows

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPITimeoutContext(t *testing.T) {
	ctx, cancel := apiTimeoutContext(5)
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
}

func TestAPITimeoutContextFallback(t *testing.T) {
	for _, timeout := range []int{0, -1} {
		ctx, cancel := apiTimeoutContext(timeout)

		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(defaultAPITimeout*time.Second), deadline, time.Second)
		cancel()
	}
}

func TestLoadAPITimeout(t *testing.T) {
	a := test.NewApp()

	assert.Equal(t, defaultAPITimeout, loadAPITimeout(a.Preferences()))

	a.Preferences().SetInt(prefAPITimeout, 30)
	assert.Equal(t, 30, loadAPITimeout(a.Preferences()))
}
