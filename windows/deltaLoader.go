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
	"fmt"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	delta_sharing "github.com/magpierre/go_delta_sharing_client"

	arrowadapter "gridbrowser/adapters/arrow"
	"gridbrowser/datatable"
)

// GetData fetches a Delta Sharing table file and opens it as a browser tab.
func (t *DataBrowser) GetData(profile string, table delta_sharing.Table, fileID string, options *QueryOptions) {
	c := make(chan bool)
	go func(c chan bool) {
		pbi := widget.NewProgressBarInfinite()
		di := dialog.NewCustomWithoutButtons(fmt.Sprintf("Loading %s...", table.Name), pbi, t.w)
		di.Resize(fyne.NewSize(300, 100))
		di.Show()
		pbi.Start()
		for {
			select {
			case <-c:
				di.Hide()
				pbi.Stop()
				return
			default:
				time.Sleep(time.Millisecond * 500)
			}
		}
	}(c)

	ds, err := delta_sharing.NewSharingClientV2FromString(profile)
	if err != nil {
		dialog.NewError(err, t.w).Show()
		c <- true
		return
	}

	resp, err := ds.ListFilesInTable(context.Background(), table)
	if err != nil {
		dialog.NewError(err, t.w).Show()
		c <- true
		return
	}

	for _, v := range resp.AddFiles {
		if v.Id != fileID {
			continue
		}

		arrowTable, err := delta_sharing.LoadArrowTable(context.Background(), ds, table, fileID)
		if err != nil {
			dialog.NewError(err, t.w).Show()
			c <- true
			return
		}

		if options != nil {
			arrowTable, err = applyQueryOptions(arrowTable, options)
			if err != nil {
				dialog.ShowError(fmt.Errorf("failed to apply query options: %w", err), t.w)
				c <- true
				return
			}
		}

		source, err := arrowadapter.NewFromArrowTable(arrowTable)
		arrowTable.Release()
		if err != nil {
			dialog.ShowError(fmt.Errorf("failed to read table data: %w", err), t.w)
			c <- true
			return
		}

		model, err := datatable.NewTableModel(source)
		if err != nil {
			dialog.ShowError(err, t.w)
			c <- true
			return
		}

		// The predicate goes through the same query syntax as the query
		// bar, applied as the initial filter on the model.
		if options != nil && options.Predicate != "" {
			if err := applyPredicate(model, options.Predicate); err != nil {
				log.Printf("predicate %q ignored: %v", options.Predicate, err)
			}
		}

		fyne.Do(func() {
			t.ShowTable(model, fmt.Sprintf("%s.%s.%s", table.Share, table.Schema, table.Name))
			t.w.Content().Refresh()
		})

		c <- true
		return
	}

	c <- true
}

func applyPredicate(model *datatable.TableModel, predicate string) error {
	source := model.Source()
	names := make([]string, source.ColumnCount())
	for i := range names {
		name, err := source.ColumnName(i)
		if err != nil {
			return err
		}
		names[i] = name
	}

	parser := NewQueryParser(names)
	f, err := parser.Parse(predicate)
	if err != nil {
		return err
	}
	if f != nil {
		model.SetFilter(f)
	}
	return nil
}

// applyQueryOptions applies column selection and row limiting to an Arrow
// table before it is materialized into a data source.
func applyQueryOptions(table arrow.Table, options *QueryOptions) (arrow.Table, error) {
	if options == nil {
		return table, nil
	}

	if len(options.SelectedColumns) > 0 {
		schema := table.Schema()
		colIndices := make([]int, 0)
		colNames := make(map[string]bool)

		for _, colName := range options.SelectedColumns {
			colNames[colName] = true
		}

		for i, field := range schema.Fields() {
			if colNames[field.Name] {
				colIndices = append(colIndices, i)
			}
		}

		if len(colIndices) == 0 {
			return nil, fmt.Errorf("no matching columns found")
		}

		selectedFields := make([]arrow.Field, len(colIndices))
		for i, idx := range colIndices {
			selectedFields[i] = schema.Field(idx)
		}
		newSchema := arrow.NewSchema(selectedFields, nil)

		columns := make([]arrow.Column, len(colIndices))
		for i, idx := range colIndices {
			col := table.Column(idx)
			columns[i] = *col
		}

		table = array.NewTable(newSchema, columns, table.NumRows())
	}

	if options.Limit > 0 && options.Limit < table.NumRows() {
		numCols := int(table.NumCols())
		columns := make([]arrow.Column, numCols)
		for i := 0; i < numCols; i++ {
			col := table.Column(i)
			chunks := col.Data().Chunks()
			newChunks := make([]arrow.Array, 0)
			rowCount := int64(0)

			for _, chunk := range chunks {
				if rowCount >= options.Limit {
					break
				}
				remaining := options.Limit - rowCount
				if int64(chunk.Len()) <= remaining {
					newChunks = append(newChunks, chunk)
					rowCount += int64(chunk.Len())
				} else {
					sliced := array.NewSlice(chunk, 0, remaining)
					newChunks = append(newChunks, sliced)
					rowCount += remaining
				}
			}

			chunked := arrow.NewChunked(col.DataType(), newChunks)
			columns[i] = *arrow.NewColumn(col.Field(), chunked)
		}

		table = array.NewTable(table.Schema(), columns, options.Limit)
	}

	return table, nil
}
