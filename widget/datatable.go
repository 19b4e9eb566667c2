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
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"gridbrowser/datatable"
)

// DataTable renders a datatable.TableModel as a Fyne widget: an optional
// filter bar on top, sortable column headers, the cell grid, and an
// optional status bar with displayed-vs-total counts. All interaction is
// forwarded synchronously to the model; the widget owns no table state of
// its own beyond the current selection.
type DataTable struct {
	widget.BaseWidget

	model  *datatable.TableModel
	config Config

	table       *widget.Table
	filterEntry *widget.Entry
	statusLabel *widget.Label
	emptyLabel  *widget.Label
	emptyBox    *fyne.Container
	content     *fyne.Container

	window fyne.Window

	selectedRow int
	selectedCol int

	onCellSelected func(row, col int)
	onRowSelected  func(row int)
}

// NewDataTable creates a table widget with the default configuration.
func NewDataTable(model *datatable.TableModel) *DataTable {
	return NewDataTableWithConfig(model, DefaultConfig())
}

// NewDataTableWithConfig creates a table widget for model.
func NewDataTableWithConfig(model *datatable.TableModel, config Config) *DataTable {
	dt := &DataTable{
		model:       model,
		config:      config,
		selectedRow: -1,
		selectedCol: -1,
	}
	dt.ExtendBaseWidget(dt)
	dt.buildContent()
	dt.refreshView()
	return dt
}

// Model returns the view model rendered by this widget.
func (dt *DataTable) Model() *datatable.TableModel {
	return dt.model
}

// OnCellSelected registers a callback invoked on selection. In row
// selection mode col is -1.
func (dt *DataTable) OnCellSelected(cb func(row, col int)) {
	dt.onCellSelected = cb
}

// OnRowSelected registers a callback invoked with the visible row index
// whenever a row is activated.
func (dt *DataTable) OnRowSelected(cb func(row int)) {
	dt.onRowSelected = cb
}

// SetWindow attaches the widget to its window, enabling the copy
// shortcut (Ctrl/Cmd+C copies the current selection) and the built-in
// dialogs.
func (dt *DataTable) SetWindow(w fyne.Window) {
	dt.window = w
	if w == nil {
		return
	}
	copyShortcut := &desktop.CustomShortcut{KeyName: fyne.KeyC, Modifier: fyne.KeyModifierShortcutDefault}
	w.Canvas().AddShortcut(copyShortcut, func(fyne.Shortcut) {
		dt.copySelection()
	})
}

// CreateRenderer implements fyne.Widget.
func (dt *DataTable) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(dt.content)
}

// Refresh implements fyne.Widget.
func (dt *DataTable) Refresh() {
	dt.refreshView()
	dt.BaseWidget.Refresh()
}

func (dt *DataTable) buildContent() {
	dt.table = widget.NewTable(
		func() (int, int) {
			return dt.model.VisibleRowCount(), dt.model.VisibleColumnCount()
		},
		func() fyne.CanvasObject {
			label := ttwidget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*ttwidget.Label)
			cell, err := dt.model.VisibleCell(id.Row, id.Col)
			if err != nil {
				label.SetText("")
				label.SetToolTip("")
				return
			}
			col, _ := dt.model.VisibleColumn(id.Col)
			text := col.DisplayString(cell)
			label.Alignment = cellAlignment(col.Align)
			label.SetText(text)
			label.SetToolTip(text)
		},
	)
	dt.table.ShowHeaderRow = true
	dt.table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton("", nil)
	}
	dt.table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)
		col := id.Col
		name, err := dt.model.VisibleColumnName(col)
		if err != nil {
			btn.SetText("")
			btn.OnTapped = nil
			return
		}
		desc, _ := dt.model.VisibleColumn(col)
		title := desc.Title
		if title == "" {
			title = name
		}
		btn.SetText(title + sortIndicator(dt.model.GetSortState(), col))
		btn.OnTapped = func() {
			dt.model.ToggleSort(col)
			dt.Refresh()
		}
	}
	dt.table.OnSelected = func(id widget.TableCellID) {
		dt.selectedRow = id.Row
		dt.selectedCol = id.Col
		if dt.config.SelectionMode == SelectionModeRow {
			dt.selectedCol = -1
		}
		if dt.onCellSelected != nil {
			dt.onCellSelected(dt.selectedRow, dt.selectedCol)
		}
		if dt.onRowSelected != nil {
			dt.onRowSelected(dt.selectedRow)
		}
	}

	dt.emptyLabel = widget.NewLabel(dt.config.EmptyMessage)
	dt.emptyLabel.TextStyle = fyne.TextStyle{Italic: true}
	dt.emptyBox = container.NewCenter(dt.emptyLabel)
	dt.emptyBox.Hide()

	var top fyne.CanvasObject
	if dt.config.ShowFilterBar || dt.config.ShowColumnSelector || dt.config.ShowSettingsButton {
		items := make([]fyne.CanvasObject, 0, 2)
		if dt.config.ShowColumnSelector {
			items = append(items, widget.NewButtonWithIcon("Columns", theme.ViewRestoreIcon(), dt.showColumnSelector))
		}
		if dt.config.ShowSettingsButton {
			items = append(items, widget.NewButtonWithIcon("", theme.SettingsIcon(), dt.showSettings))
		}

		if dt.config.ShowFilterBar {
			dt.filterEntry = widget.NewEntry()
			dt.filterEntry.SetPlaceHolder(dt.config.FilterPlaceholder)
			dt.filterEntry.OnChanged = func(term string) {
				dt.model.SetSearchTerm(term)
				dt.Refresh()
			}
			top = container.NewBorder(nil, nil, nil, container.NewHBox(items...), dt.filterEntry)
		} else if len(items) > 0 {
			top = container.NewHBox(items...)
		}
	}

	var bottom fyne.CanvasObject
	if dt.config.ShowStatusBar {
		dt.statusLabel = widget.NewLabel("")
		dt.statusLabel.TextStyle = fyne.TextStyle{Italic: true}
		bottom = dt.statusLabel
	}

	dt.content = container.NewBorder(top, bottom, nil, nil,
		container.NewStack(dt.table, dt.emptyBox))
}

// refreshView synchronizes the chrome with the model: table content,
// empty-state overlay, status counts and column widths.
func (dt *DataTable) refreshView() {
	if dt.model.VisibleRowCount() == 0 {
		dt.emptyBox.Show()
	} else {
		dt.emptyBox.Hide()
	}

	if dt.statusLabel != nil {
		dt.statusLabel.SetText(dt.statusText())
	}
	if dt.config.AutoAdjustColumnWidths {
		dt.adjustColumnWidths()
	}
	dt.table.Refresh()
}

// statusText reports displayed versus total rows and columns plus the
// active sort, in the same shape the browser status bar uses.
func (dt *DataTable) statusText() string {
	totalRows := dt.model.OriginalRowCount()
	totalCols := dt.model.OriginalColumnCount()
	visRows := dt.model.VisibleRowCount()
	visCols := dt.model.VisibleColumnCount()

	var text string
	if visRows != totalRows || visCols != totalCols {
		text = fmt.Sprintf("Showing %d/%d rows, %d/%d columns", visRows, totalRows, visCols, totalCols)
	} else {
		text = fmt.Sprintf("%d rows, %d columns", totalRows, totalCols)
	}

	if state := dt.model.GetSortState(); state.IsSorted() {
		name, _ := dt.model.VisibleColumnName(state.Column)
		arrow := "↑"
		if state.Direction == datatable.SortDescending {
			arrow = "↓"
		}
		text += fmt.Sprintf(" | Sorted: %s %s", name, arrow)
	}
	return text
}

// adjustColumnWidths sizes every visible column to fit its header and a
// sample of its cells, clamped to the configured bounds.
func (dt *DataTable) adjustColumnWidths() {
	const sampleRows = 50

	textSize := theme.TextSize()
	pad := theme.Padding() * 6

	rows := dt.model.VisibleRowCount()
	if rows > sampleRows {
		rows = sampleRows
	}

	for col := 0; col < dt.model.VisibleColumnCount(); col++ {
		desc, err := dt.model.VisibleColumn(col)
		if err != nil {
			continue
		}
		title := desc.Title
		if title == "" {
			title = desc.Key
		}
		width := fyne.MeasureText(title+" ↓", textSize, fyne.TextStyle{Bold: true}).Width

		for row := 0; row < rows; row++ {
			cell, err := dt.model.VisibleCell(row, col)
			if err != nil {
				continue
			}
			if w := fyne.MeasureText(desc.DisplayString(cell), textSize, fyne.TextStyle{}).Width; w > width {
				width = w
			}
		}

		width += pad
		if dt.config.MinColumnWidth > 0 && width < dt.config.MinColumnWidth {
			width = dt.config.MinColumnWidth
		}
		if dt.config.MaxColumnWidth > 0 && width > dt.config.MaxColumnWidth {
			width = dt.config.MaxColumnWidth
		}
		dt.table.SetColumnWidth(col, width)
	}
}

// copySelection writes the current selection to the clipboard, whole rows
// tab-separated in row mode.
func (dt *DataTable) copySelection() {
	if dt.window == nil || dt.selectedRow < 0 {
		return
	}

	var text string
	if dt.selectedCol >= 0 {
		cell, err := dt.model.VisibleCell(dt.selectedRow, dt.selectedCol)
		if err != nil {
			return
		}
		text = cell.Formatted
	} else {
		row, err := dt.model.VisibleRow(dt.selectedRow)
		if err != nil {
			return
		}
		parts := make([]string, len(row))
		for i, v := range row {
			parts[i] = v.Formatted
		}
		text = strings.Join(parts, "\t")
	}
	dt.window.Clipboard().SetContent(text)
}

// showColumnSelector opens the column visibility dialog.
func (dt *DataTable) showColumnSelector() {
	if dt.window == nil {
		return
	}

	columns := dt.model.Columns()
	box := container.NewVBox()
	for i, col := range columns {
		idx := i
		check := widget.NewCheck(col.Key, func(visible bool) {
			if err := dt.model.SetColumnVisible(idx, visible); err == nil {
				dt.Refresh()
			}
		})
		check.SetChecked(dt.model.IsColumnVisible(idx))
		box.Add(check)
	}

	scroll := container.NewVScroll(box)
	scroll.SetMinSize(fyne.NewSize(300, 320))
	dialog.ShowCustom("Columns", "Close", scroll, dt.window)
}

// showSettings opens the table settings dialog.
func (dt *DataTable) showSettings() {
	if dt.window == nil {
		return
	}

	modeSelect := widget.NewRadioGroup([]string{"Row selection", "Cell selection"}, func(mode string) {
		if mode == "Row selection" {
			dt.config.SelectionMode = SelectionModeRow
		} else {
			dt.config.SelectionMode = SelectionModeCell
		}
	})
	if dt.config.SelectionMode == SelectionModeRow {
		modeSelect.SetSelected("Row selection")
	} else {
		modeSelect.SetSelected("Cell selection")
	}

	autoWidth := widget.NewCheck("Auto-adjust column widths", func(on bool) {
		dt.config.AutoAdjustColumnWidths = on
		dt.Refresh()
	})
	autoWidth.SetChecked(dt.config.AutoAdjustColumnWidths)

	content := container.NewVBox(
		widget.NewLabel("Selection"),
		modeSelect,
		widget.NewSeparator(),
		autoWidth,
	)
	dialog.ShowCustom("Table Settings", "Close", content, dt.window)
}

func cellAlignment(a datatable.Alignment) fyne.TextAlign {
	switch a {
	case datatable.AlignRight:
		return fyne.TextAlignTrailing
	case datatable.AlignCenter:
		return fyne.TextAlignCenter
	default:
		return fyne.TextAlignLeading
	}
}

// sortIndicator returns the header suffix for the given visible column.
func sortIndicator(state datatable.SortState, col int) string {
	if !state.IsSorted() || state.Column != col {
		return ""
	}
	if state.Direction == datatable.SortDescending {
		return " ↓"
	}
	return " ↑"
}
