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
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"gridbrowser/datatable"
	dtwidget "gridbrowser/widget"
)

// tableTab holds everything belonging to one open table.
type tableTab struct {
	model     *datatable.TableModel
	dataTable *dtwidget.DataTable
	tab       *container.TabItem
	tableName string
}

// DataBrowser manages the tabs that display loaded tables.
type DataBrowser struct {
	w              fyne.Window
	innerTabs      *container.DocTabs
	docTabs        *container.DocTabs
	browserTab     *container.TabItem
	tabData        map[*container.TabItem]*tableTab
	statusCallback func(string)
}

// NewDataBrowser creates the browser area inside the given document tabs.
func NewDataBrowser(w fyne.Window, docTabs *container.DocTabs, statusCallback func(string)) *DataBrowser {
	t := &DataBrowser{
		w:              w,
		docTabs:        docTabs,
		tabData:        make(map[*container.TabItem]*tableTab),
		statusCallback: statusCallback,
	}

	t.innerTabs = container.NewDocTabs()
	t.innerTabs.SetTabLocation(container.TabLocationBottom)

	t.innerTabs.CloseIntercept = func(ti *container.TabItem) {
		delete(t.tabData, ti)
		t.innerTabs.Remove(ti)

		if selected := t.innerTabs.Selected(); selected != nil {
			t.updateStatusForTab(selected)
		} else if t.statusCallback != nil {
			t.statusCallback("Ready")
		}
	}
	t.innerTabs.OnSelected = func(ti *container.TabItem) {
		t.updateStatusForTab(ti)
	}

	t.browserTab = container.NewTabItem("Browser", t.innerTabs)
	t.docTabs.Append(t.browserTab)
	return t
}

// CurrentModel returns the model of the selected table tab, nil when no
// table is open.
func (t *DataBrowser) CurrentModel() *datatable.TableModel {
	selected := t.innerTabs.Selected()
	if selected == nil {
		return nil
	}
	data, ok := t.tabData[selected]
	if !ok {
		return nil
	}
	return data.model
}

// ShowTable opens a new tab displaying the given model.
func (t *DataBrowser) ShowTable(model *datatable.TableModel, tableName string) {
	config := dtwidget.DefaultConfig()
	config.ShowFilterBar = true
	config.ShowStatusBar = true
	config.ShowColumnSelector = true
	config.ShowSettingsButton = true
	config.AutoAdjustColumnWidths = true
	config.SelectionMode = dtwidget.SelectionModeRow
	config.MinColumnWidth = 100

	dataTable := dtwidget.NewDataTableWithConfig(model, config)
	dataTable.SetWindow(t.w)

	dataTable.OnRowSelected(func(row int) {
		rowData, err := model.VisibleRow(row)
		if err != nil {
			log.Printf("Row selection error: %v", err)
			return
		}
		log.Printf("Row %d selected: %d cells", row, len(rowData))
	})

	content := container.NewBorder(
		t.buildQueryBar(model, dataTable, tableName),
		nil, nil, nil,
		dataTable,
	)

	newTab := container.NewTabItem(tableName, content)
	data := &tableTab{
		model:     model,
		dataTable: dataTable,
		tab:       newTab,
		tableName: tableName,
	}
	t.tabData[newTab] = data

	t.innerTabs.Append(newTab)
	t.innerTabs.Select(newTab)

	// The Browser tab may have been closed; recreate it if so.
	browserExists := false
	for _, item := range t.docTabs.Items {
		if item == t.browserTab {
			browserExists = true
			break
		}
	}
	if !browserExists {
		t.browserTab = container.NewTabItem("Browser", t.innerTabs)
		t.docTabs.Append(t.browserTab)
	}
	t.docTabs.Select(t.browserTab)

	t.updateStatusForTab(newTab)
}

// buildQueryBar creates the advanced query entry plus the export button
// for one table tab. Queries compile into column filters layered on top
// of the widget's plain-text search.
func (t *DataBrowser) buildQueryBar(model *datatable.TableModel, dataTable *dtwidget.DataTable, tableName string) fyne.CanvasObject {
	queryEntry := widget.NewEntry()
	queryEntry.SetPlaceHolder("Query (e.g. age > 25 AND status = 'active')")

	headers := make([]string, model.OriginalColumnCount())
	for i := range headers {
		name, err := model.Source().ColumnName(i)
		if err != nil {
			continue
		}
		headers[i] = name
	}
	parser := NewQueryParser(headers)

	apply := func(queryStr string) {
		f, err := parser.Parse(queryStr)
		if err != nil {
			dialog.ShowError(err, t.w)
			return
		}
		if f == nil {
			model.ClearFilter()
		} else {
			model.SetFilter(f)
			if evalErr := model.FilterError(); evalErr != nil {
				model.ClearFilter()
				dialog.ShowError(evalErr, t.w)
				return
			}
		}
		dataTable.Refresh()
		t.updateStatusForTab(t.innerTabs.Selected())
	}
	queryEntry.OnSubmitted = apply

	applyButton := widget.NewButtonWithIcon("", theme.SearchIcon(), func() {
		apply(queryEntry.Text)
	})
	clearButton := widget.NewButtonWithIcon("", theme.ContentClearIcon(), func() {
		queryEntry.SetText("")
		apply("")
	})
	exportButton := widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), func() {
		t.showExportDialog(model, tableName)
	})

	return container.NewBorder(nil, nil, nil,
		container.NewHBox(applyButton, clearButton, exportButton), queryEntry)
}

// updateStatusForTab updates the status bar with information about the given tab.
func (t *DataBrowser) updateStatusForTab(ti *container.TabItem) {
	if ti == nil || t.statusCallback == nil {
		return
	}
	data, exists := t.tabData[ti]
	if !exists {
		return
	}

	model := data.model
	totalRows := model.OriginalRowCount()
	totalCols := model.OriginalColumnCount()
	visibleRows := model.VisibleRowCount()
	visibleCols := model.VisibleColumnCount()

	var statusText string
	if visibleRows != totalRows || visibleCols != totalCols {
		statusText = fmt.Sprintf("Table %s (showing %d/%d columns x %d/%d rows)",
			data.tableName, visibleCols, totalCols, visibleRows, totalRows)
	} else {
		statusText = fmt.Sprintf("Table %s (%d columns x %d rows)",
			data.tableName, totalCols, totalRows)
	}

	if sortState := model.GetSortState(); sortState.IsSorted() {
		colName, _ := model.VisibleColumnName(sortState.Column)
		direction := "↑"
		if sortState.Direction == datatable.SortDescending {
			direction = "↓"
		}
		statusText += fmt.Sprintf(" | Sorted: %s %s", colName, direction)
	}

	t.statusCallback(statusText)
}

// showExportDialog asks for a format and target file, then writes the
// current visible projection.
func (t *DataBrowser) showExportDialog(model *datatable.TableModel, tableName string) {
	formatSelect := widget.NewSelect([]string{"Parquet", "CSV", "JSON"}, nil)
	formatSelect.SetSelected("CSV")

	dialog.ShowCustomConfirm("Export Data", "Export", "Cancel", formatSelect, func(confirmed bool) {
		if !confirmed {
			return
		}

		var format ExportFormat
		switch formatSelect.Selected {
		case "Parquet":
			format = FormatParquet
		case "JSON":
			format = FormatJSON
		default:
			format = FormatCSV
		}

		saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil {
				dialog.ShowError(err, t.w)
				return
			}
			if writer == nil {
				return
			}
			defer writer.Close()
			filePath := writer.URI().Path()

			if exportErr := ExportVisible(model, format, filePath); exportErr != nil {
				dialog.ShowError(fmt.Errorf("export failed: %w", exportErr), t.w)
				return
			}
			dialog.ShowInformation("Export Successful",
				fmt.Sprintf("Data exported successfully to:\n%s", filePath), t.w)
		}, t.w)

		saveDialog.SetFileName(cleanFilename(tableName) + format.Extension())
		saveDialog.Show()
	}, t.w)
}

// cleanFilename removes spaces and special characters from a filename.
func cleanFilename(name string) string {
	result := ""
	for _, r := range name {
		if r == ' ' {
			result += "_"
		} else if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			result += string(r)
		}
	}
	return result
}
