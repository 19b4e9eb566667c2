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

package widget

import (
	"fyne.io/fyne/v2"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
)

// WrapWithTooltips adds the tooltip layer that makes cell tooltips
// render. Wrap the window content that contains the table before passing
// it to Window.SetContent.
func WrapWithTooltips(content fyne.CanvasObject, canvas fyne.Canvas) fyne.CanvasObject {
	return fynetooltip.AddWindowToolTipLayer(content, canvas)
}
