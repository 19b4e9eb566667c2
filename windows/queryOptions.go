package windows

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/apache/arrow-go/v18/arrow"
	delta_sharing "github.com/magpierre/go_delta_sharing_client"
)

// QueryOptions holds the query configuration for table data loading
type QueryOptions struct {
	SelectedColumns []string
	Predicate       string
	Limit           int64
}

// QueryOptionsDialog creates a dialog for configuring query options
type QueryOptionsDialog struct {
	dialog         dialog.Dialog
	window         fyne.Window
	schema         *arrow.Schema
	columnChecks   map[string]*widget.Check
	predicateEntry *widget.Entry
	limitEntry     *widget.Entry
	callback       func(*QueryOptions)
}

// NewQueryOptionsDialog creates a new query options dialog
func NewQueryOptionsDialog(w fyne.Window, schema *arrow.Schema, callback func(*QueryOptions)) *QueryOptionsDialog {
	qod := &QueryOptionsDialog{
		window:       w,
		schema:       schema,
		columnChecks: make(map[string]*widget.Check),
		callback:     callback,
	}
	qod.createDialog()
	return qod
}

func (qod *QueryOptionsDialog) createDialog() {
	columnSelectLabel := widget.NewLabel("Select Columns:")
	columnSelectLabel.TextStyle = fyne.TextStyle{Bold: true}

	columnCheckboxes := container.NewVBox()

	selectAllBtn := widget.NewButton("Select All", func() {
		for _, check := range qod.columnChecks {
			check.SetChecked(true)
		}
	})

	deselectAllBtn := widget.NewButton("Deselect All", func() {
		for _, check := range qod.columnChecks {
			check.SetChecked(false)
		}
	})

	selectButtons := container.NewHBox(selectAllBtn, deselectAllBtn)

	if qod.schema != nil {
		for _, field := range qod.schema.Fields() {
			check := widget.NewCheck(fmt.Sprintf("%s (%s)", field.Name, field.Type), nil)
			check.SetChecked(true) // Default to all columns selected
			qod.columnChecks[field.Name] = check
			columnCheckboxes.Add(check)
		}
	}

	columnScroll := container.NewVScroll(columnCheckboxes)
	columnScroll.SetMinSize(fyne.NewSize(400, 200))

	predicateLabel := widget.NewLabel("Filter Predicate:")
	predicateLabel.TextStyle = fyne.TextStyle{Bold: true}

	qod.predicateEntry = widget.NewMultiLineEntry()
	qod.predicateEntry.SetPlaceHolder("e.g., age > 25 AND status = 'active'")
	qod.predicateEntry.SetMinRowsVisible(3)

	predicateHelp := widget.NewLabel("Leave empty for no filtering. Use column names with =, !=, <, >, <=, >= or ~ (contains).")
	predicateHelp.TextStyle = fyne.TextStyle{Italic: true}

	limitLabel := widget.NewLabel("Row Limit:")
	limitLabel.TextStyle = fyne.TextStyle{Bold: true}

	qod.limitEntry = widget.NewEntry()
	qod.limitEntry.SetText("1000")
	qod.limitEntry.SetPlaceHolder("Leave empty for all rows, or enter a number (e.g., 1000)")

	limitHelp := widget.NewLabel("Maximum number of rows to return. Leave empty to return all rows.")
	limitHelp.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewVBox(
		columnSelectLabel,
		selectButtons,
		columnScroll,
		widget.NewSeparator(),
		predicateLabel,
		qod.predicateEntry,
		predicateHelp,
		widget.NewSeparator(),
		limitLabel,
		qod.limitEntry,
		limitHelp,
	)

	qod.dialog = dialog.NewCustomConfirm(
		"Query Options",
		"Load Data",
		"Cancel",
		content,
		func(confirmed bool) {
			if confirmed {
				qod.handleConfirm()
			}
		},
		qod.window,
	)

	qod.dialog.Resize(fyne.NewSize(500, 600))
}

func (qod *QueryOptionsDialog) handleConfirm() {
	options := &QueryOptions{
		SelectedColumns: make([]string, 0),
	}

	for colName, check := range qod.columnChecks {
		if check.Checked {
			options.SelectedColumns = append(options.SelectedColumns, colName)
		}
	}

	if len(options.SelectedColumns) == 0 {
		dialog.ShowError(fmt.Errorf("please select at least one column"), qod.window)
		return
	}

	options.Predicate = strings.TrimSpace(qod.predicateEntry.Text)

	limitText := strings.TrimSpace(qod.limitEntry.Text)
	if limitText != "" {
		limit, err := strconv.ParseInt(limitText, 10, 64)
		if err != nil || limit <= 0 {
			dialog.ShowError(fmt.Errorf("invalid limit: must be a positive number"), qod.window)
			return
		}
		options.Limit = limit
	} else {
		options.Limit = -1 // No limit
	}

	if qod.callback != nil {
		qod.callback(options)
	}
}

func (qod *QueryOptionsDialog) Show() {
	qod.dialog.Show()
}

// ShowQueryOptionsDialogWithSchema loads the table schema and shows the query options dialog
func ShowQueryOptionsDialogWithSchema(w fyne.Window, profile string, table delta_sharing.Table, callback func(*QueryOptions)) {
	progressBar := widget.NewProgressBarInfinite()
	progressBar.Start()

	progressDialog := dialog.NewCustomWithoutButtons("Loading Schema", progressBar, w)
	progressDialog.Resize(fyne.NewSize(300, 100))
	progressDialog.Show()

	go func() {
		hideProgress := func() {
			fyne.Do(func() {
				progressBar.Stop()
				progressDialog.Hide()
			})
			time.Sleep(50 * time.Millisecond)
		}

		ds, err := delta_sharing.NewSharingClientV2FromString(profile)
		if err != nil {
			hideProgress()
			fyne.Do(func() { dialog.ShowError(fmt.Errorf("failed to create client: %w", err), w) })
			return
		}

		resp, err := ds.ListFilesInTable(context.Background(), table)
		if err != nil {
			hideProgress()
			fyne.Do(func() { dialog.ShowError(fmt.Errorf("failed to list files: %w", err), w) })
			return
		}

		if len(resp.AddFiles) == 0 {
			hideProgress()
			fyne.Do(func() { dialog.ShowError(fmt.Errorf("no files available for table"), w) })
			return
		}

		fileID := resp.AddFiles[0].Id
		arrowTable, err := delta_sharing.LoadArrowTable(context.Background(), ds, table, fileID)
		if err != nil {
			hideProgress()
			fyne.Do(func() { dialog.ShowError(fmt.Errorf("failed to load schema: %w", err), w) })
			return
		}

		schema := arrowTable.Schema()
		arrowTable.Release()

		hideProgress()

		// Brief delay to allow the progress dialog to fully close
		time.Sleep(100 * time.Millisecond)

		fyne.Do(func() {
			qod := NewQueryOptionsDialog(w, schema, callback)
			qod.Show()
		})
	}()
}
