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

package datatable

import "sort"

// TableModel owns the view state of a table: the search term, an optional
// programmatic filter, the sort column and direction, and column
// visibility. The visible projection is always a pure function of the
// data source, the column descriptors and that state; source rows are
// never mutated or reordered.
//
// Every mutator recomputes the projection synchronously before it
// returns, so queries never observe a partially-updated view. The model
// is not safe for concurrent use; drive it from the UI event loop, as the
// widget does.
type TableModel struct {
	source  DataSource
	columns []Column
	names   []string

	searchTerm string
	filter     Filter
	filterErr  error

	// sortCol is an original column index, -1 when unsorted.
	sortCol int
	sortDir SortDirection

	visibleCols []int // original column indices, in source order
	visibleRows []int // original row indices, filtered then sorted

	rows [][]Value // source rows, fetched once per recompute
}

// NewTableModel creates a model over source with one sortable descriptor
// per column and every column visible.
// Returns ErrNoDataSource when source is nil.
func NewTableModel(source DataSource) (*TableModel, error) {
	if source == nil {
		return nil, ErrNoDataSource
	}

	columns, err := DefaultColumns(source)
	if err != nil {
		return nil, err
	}

	m := &TableModel{
		source:  source,
		columns: columns,
		sortCol: -1,
		sortDir: SortNone,
	}
	m.names = make([]string, len(columns))
	m.visibleCols = make([]int, len(columns))
	for i, c := range columns {
		m.names[i] = c.Key
		m.visibleCols[i] = i
	}
	m.recompute()
	return m, nil
}

// Source returns the underlying data source.
func (m *TableModel) Source() DataSource {
	return m.source
}

// Columns returns a copy of the current column descriptors, one per
// source column.
func (m *TableModel) Columns() []Column {
	out := make([]Column, len(m.columns))
	copy(out, m.columns)
	return out
}

// SetColumns replaces the column descriptors. The slice must contain one
// descriptor per source column, in source order; otherwise
// ErrColumnMismatch is returned. If the currently sorted column becomes
// non-sortable the sort is cleared.
func (m *TableModel) SetColumns(columns []Column) error {
	if len(columns) != m.source.ColumnCount() {
		return ErrColumnMismatch
	}
	m.columns = make([]Column, len(columns))
	copy(m.columns, columns)
	if m.sortCol >= 0 && !m.columns[m.sortCol].Sortable {
		m.sortCol = -1
		m.sortDir = SortNone
	}
	m.recompute()
	return nil
}

// SetSearchTerm replaces the search term and recomputes the projection.
// The empty string disables filtering; matching is a case-insensitive
// substring test against the formatted representation of every field.
func (m *TableModel) SetSearchTerm(term string) {
	m.searchTerm = term
	m.recompute()
}

// SearchTerm returns the current search term.
func (m *TableModel) SearchTerm() string {
	return m.searchTerm
}

// SetFilter installs a programmatic filter that is applied in addition to
// the search term (both must pass). Rows whose evaluation fails are
// excluded from the projection; check FilterError afterwards to tell an
// empty result from a broken filter.
func (m *TableModel) SetFilter(f Filter) {
	m.filter = f
	m.recompute()
}

// ClearFilter removes the programmatic filter.
func (m *TableModel) ClearFilter() {
	m.filter = nil
	m.recompute()
}

// FilterError returns the first row evaluation error of the last
// projection rebuild, nil when every row evaluated cleanly. A filter
// referencing a nonexistent column errors on every row, leaving the
// projection empty; this is the signal for it.
func (m *TableModel) FilterError() error {
	return m.filterErr
}

// ToggleSort cycles the sort state of the given visible column through
// ascending, descending and none. Toggling a different column resets to
// ascending for that column. Columns whose descriptor is not sortable,
// and out-of-range indices, are ignored.
func (m *TableModel) ToggleSort(col int) {
	if col < 0 || col >= len(m.visibleCols) {
		return
	}
	orig := m.visibleCols[col]
	if !m.columns[orig].Sortable {
		return
	}

	if m.sortCol == orig {
		m.sortDir = m.sortDir.next()
	} else {
		m.sortCol = orig
		m.sortDir = SortAscending
	}
	if m.sortDir == SortNone {
		m.sortCol = -1
	}
	m.recompute()
}

// SortBy sets the sort state directly. The column index is a visible
// column index; non-sortable columns are ignored, as in ToggleSort.
func (m *TableModel) SortBy(col int, direction SortDirection) {
	if col < 0 || col >= len(m.visibleCols) {
		return
	}
	orig := m.visibleCols[col]
	if !m.columns[orig].Sortable {
		return
	}

	if direction == SortNone {
		m.sortCol = -1
	} else {
		m.sortCol = orig
	}
	m.sortDir = direction
	m.recompute()
}

// GetSortState returns the current sort state. Column is a visible column
// index, -1 when unsorted.
func (m *TableModel) GetSortState() SortState {
	if m.sortCol < 0 || m.sortDir == SortNone {
		return SortState{Column: -1, Direction: SortNone}
	}
	for vis, orig := range m.visibleCols {
		if orig == m.sortCol {
			return SortState{Column: vis, Direction: m.sortDir}
		}
	}
	return SortState{Column: -1, Direction: SortNone}
}

// SetColumnVisible shows or hides the column with the given original
// index. Hiding the sorted column clears the sort.
// Returns ErrInvalidColumn when col is out of range.
func (m *TableModel) SetColumnVisible(col int, visible bool) error {
	if col < 0 || col >= len(m.columns) {
		return ErrInvalidColumn
	}

	idx := -1
	for i, orig := range m.visibleCols {
		if orig == col {
			idx = i
			break
		}
	}

	if visible == (idx >= 0) {
		return nil
	}

	if visible {
		// Reinsert preserving source column order.
		cols := make([]int, 0, len(m.visibleCols)+1)
		inserted := false
		for _, orig := range m.visibleCols {
			if !inserted && orig > col {
				cols = append(cols, col)
				inserted = true
			}
			cols = append(cols, orig)
		}
		if !inserted {
			cols = append(cols, col)
		}
		m.visibleCols = cols
	} else {
		m.visibleCols = append(m.visibleCols[:idx], m.visibleCols[idx+1:]...)
		if m.sortCol == col {
			m.sortCol = -1
			m.sortDir = SortNone
			m.recompute()
		}
	}
	return nil
}

// IsColumnVisible reports whether the column with the given original
// index is currently shown.
func (m *TableModel) IsColumnVisible(col int) bool {
	for _, orig := range m.visibleCols {
		if orig == col {
			return true
		}
	}
	return false
}

// OriginalRowCount returns the number of rows in the data source.
func (m *TableModel) OriginalRowCount() int {
	return m.source.RowCount()
}

// OriginalColumnCount returns the number of columns in the data source.
func (m *TableModel) OriginalColumnCount() int {
	return m.source.ColumnCount()
}

// VisibleRowCount returns the number of rows in the current projection.
func (m *TableModel) VisibleRowCount() int {
	return len(m.visibleRows)
}

// VisibleColumnCount returns the number of visible columns.
func (m *TableModel) VisibleColumnCount() int {
	return len(m.visibleCols)
}

// VisibleColumnName returns the name of the visible column at col.
func (m *TableModel) VisibleColumnName(col int) (string, error) {
	if col < 0 || col >= len(m.visibleCols) {
		return "", ErrInvalidColumn
	}
	return m.names[m.visibleCols[col]], nil
}

// VisibleColumn returns the descriptor of the visible column at col.
func (m *TableModel) VisibleColumn(col int) (Column, error) {
	if col < 0 || col >= len(m.visibleCols) {
		return Column{}, ErrInvalidColumn
	}
	return m.columns[m.visibleCols[col]], nil
}

// VisibleCell returns the value at the given position of the projection.
func (m *TableModel) VisibleCell(row, col int) (Value, error) {
	if row < 0 || row >= len(m.visibleRows) {
		return Value{}, ErrInvalidRow
	}
	if col < 0 || col >= len(m.visibleCols) {
		return Value{}, ErrInvalidColumn
	}
	return m.rows[m.visibleRows[row]][m.visibleCols[col]], nil
}

// VisibleRow returns the values of the given projection row, visible
// columns only.
func (m *TableModel) VisibleRow(row int) ([]Value, error) {
	if row < 0 || row >= len(m.visibleRows) {
		return nil, ErrInvalidRow
	}
	src := m.rows[m.visibleRows[row]]
	out := make([]Value, len(m.visibleCols))
	for i, orig := range m.visibleCols {
		out[i] = src[orig]
	}
	return out, nil
}

// VisibleRows materializes the whole projection, visible columns only.
func (m *TableModel) VisibleRows() [][]Value {
	out := make([][]Value, len(m.visibleRows))
	for i := range m.visibleRows {
		row, _ := m.VisibleRow(i)
		out[i] = row
	}
	return out
}

// GetVisibleRowIndices returns the original row index of every projection
// row, in display order.
func (m *TableModel) GetVisibleRowIndices() []int {
	out := make([]int, len(m.visibleRows))
	copy(out, m.visibleRows)
	return out
}

// GetVisibleColumnIndices returns the original column index of every
// visible column, in display order.
func (m *TableModel) GetVisibleColumnIndices() []int {
	out := make([]int, len(m.visibleCols))
	copy(out, m.visibleCols)
	return out
}

// Reload refreshes the projection after the underlying data source
// changed its rows. View state (search, filter, sort, column visibility)
// is kept; resetting it is the caller's choice.
func (m *TableModel) Reload() {
	m.recompute()
}

// recompute rebuilds the visible row projection: fetch, filter, then a
// stable sort. Rows that fail to load or to evaluate are excluded; the
// first filter evaluation error is kept for FilterError.
func (m *TableModel) recompute() {
	total := m.source.RowCount()
	m.rows = make([][]Value, total)
	m.filterErr = nil

	search := &TextSearchFilter{Term: m.searchTerm}
	m.visibleRows = make([]int, 0, total)

	for r := 0; r < total; r++ {
		row, err := m.source.Row(r)
		if err != nil {
			continue
		}
		m.rows[r] = row

		if ok, err := search.Evaluate(row, m.names); err != nil || !ok {
			continue
		}
		if m.filter != nil {
			ok, err := m.filter.Evaluate(row, m.names)
			if err != nil {
				if m.filterErr == nil {
					m.filterErr = err
				}
				continue
			}
			if !ok {
				continue
			}
		}
		m.visibleRows = append(m.visibleRows, r)
	}

	if m.sortCol < 0 || m.sortDir == SortNone {
		return
	}

	col := m.sortCol
	desc := m.sortDir == SortDescending
	sort.SliceStable(m.visibleRows, func(i, j int) bool {
		a := m.rows[m.visibleRows[i]][col]
		b := m.rows[m.visibleRows[j]][col]

		// Nulls sort after all defined values regardless of direction.
		switch {
		case a.IsNull && b.IsNull:
			return false
		case a.IsNull:
			return false
		case b.IsNull:
			return true
		}

		c := compareValues(a, b)
		if desc {
			return c > 0
		}
		return c < 0
	})
}
