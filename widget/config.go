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

// Package widget provides the Fyne table widget rendering a
// datatable.TableModel: filter bar, sortable headers, status bar and
// selection handling.
package widget

// SelectionMode controls what a tap on the table selects.
type SelectionMode int

const (
	// SelectionModeCell selects individual cells.
	SelectionModeCell SelectionMode = iota
	// SelectionModeRow selects whole rows.
	SelectionModeRow
)

// Config controls which parts of the table chrome are shown and how the
// table behaves.
type Config struct {
	// ShowFilterBar shows the search entry above the table. When false
	// the table is not searchable through the UI.
	ShowFilterBar bool

	// FilterPlaceholder is the placeholder text of the search entry.
	FilterPlaceholder string

	// EmptyMessage is shown in place of the table body when the visible
	// projection is empty.
	EmptyMessage string

	// ShowStatusBar shows displayed-vs-total counts and the sort state
	// below the table.
	ShowStatusBar bool

	// ShowColumnSelector adds a button that opens the column visibility
	// dialog.
	ShowColumnSelector bool

	// ShowSettingsButton adds a button that opens the table settings
	// dialog.
	ShowSettingsButton bool

	// AutoAdjustColumnWidths sizes columns to fit their header and cell
	// content.
	AutoAdjustColumnWidths bool

	// SelectionMode controls cell versus row selection.
	SelectionMode SelectionMode

	// MinColumnWidth is the smallest width a column may take.
	MinColumnWidth float32

	// MaxColumnWidth caps automatic column sizing.
	MaxColumnWidth float32
}

// DefaultConfig returns the default widget configuration.
func DefaultConfig() Config {
	return Config{
		ShowFilterBar:          true,
		FilterPlaceholder:      "Search...",
		EmptyMessage:           "No data available",
		ShowStatusBar:          true,
		ShowColumnSelector:     false,
		ShowSettingsButton:     false,
		AutoAdjustColumnWidths: true,
		SelectionMode:          SelectionModeRow,
		MinColumnWidth:         80,
		MaxColumnWidth:         420,
	}
}
