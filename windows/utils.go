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
	"context"
	"time"

	"fyne.io/fyne/v2"
)

// prefAPITimeout is the preferences key for the sharing API timeout,
// edited through the settings dialog.
const prefAPITimeout = "api_timeout"

const defaultAPITimeout = 60

// loadAPITimeout reads the configured sharing API timeout in seconds.
func loadAPITimeout(p fyne.Preferences) int {
	return p.IntWithFallback(prefAPITimeout, defaultAPITimeout)
}

// apiTimeoutContext creates the context for one sharing API call.
// Non-positive timeouts fall back to the default.
func apiTimeoutContext(timeoutSeconds int) (context.Context, context.CancelFunc) {
	if timeoutSeconds <= 0 {
		timeoutSeconds = defaultAPITimeout
	}
	return context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
}
