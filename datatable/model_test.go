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

package datatable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sliceadapter "gridbrowser/adapters/slice"
	"gridbrowser/datatable"
)

func newPeopleModel(t *testing.T) *datatable.TableModel {
	t.Helper()
	source, err := sliceadapter.NewFromRows(
		[]string{"name", "age"},
		[][]string{
			{"Ann", "25"},
			{"Cal", "25"},
			{"Bob", "30"},
			{"Dee", ""},
			{"Eve", "28"},
		},
	)
	require.NoError(t, err)

	model, err := datatable.NewTableModel(source)
	require.NoError(t, err)
	return model
}

func visibleNames(t *testing.T, model *datatable.TableModel) []string {
	t.Helper()
	names := make([]string, 0, model.VisibleRowCount())
	for r := 0; r < model.VisibleRowCount(); r++ {
		v, err := model.VisibleCell(r, 0)
		require.NoError(t, err)
		names = append(names, v.Formatted)
	}
	return names
}

func TestNewTableModel(t *testing.T) {
	t.Run("NilSource", func(t *testing.T) {
		_, err := datatable.NewTableModel(nil)
		assert.ErrorIs(t, err, datatable.ErrNoDataSource)
	})

	t.Run("InitialProjection", func(t *testing.T) {
		model := newPeopleModel(t)
		assert.Equal(t, 5, model.VisibleRowCount())
		assert.Equal(t, 2, model.VisibleColumnCount())
		assert.Equal(t, []string{"Ann", "Cal", "Bob", "Dee", "Eve"}, visibleNames(t, model))

		state := model.GetSortState()
		assert.False(t, state.IsSorted())
		assert.Equal(t, -1, state.Column)
	})
}

func TestToggleSort(t *testing.T) {
	t.Run("AscendingIsStable", func(t *testing.T) {
		model := newPeopleModel(t)
		model.ToggleSort(1)

		// Ann and Cal share age 25 and must keep their source order.
		// Dee has no age and sorts last.
		assert.Equal(t, []string{"Ann", "Cal", "Eve", "Bob", "Dee"}, visibleNames(t, model))
		state := model.GetSortState()
		assert.Equal(t, 1, state.Column)
		assert.Equal(t, datatable.SortAscending, state.Direction)
	})

	t.Run("SecondToggleDescends", func(t *testing.T) {
		model := newPeopleModel(t)
		model.ToggleSort(1)
		model.ToggleSort(1)

		// Nulls stay last even descending.
		assert.Equal(t, []string{"Bob", "Eve", "Ann", "Cal", "Dee"}, visibleNames(t, model))
		assert.Equal(t, datatable.SortDescending, model.GetSortState().Direction)
	})

	t.Run("ThirdToggleRestoresOriginalOrder", func(t *testing.T) {
		model := newPeopleModel(t)
		model.ToggleSort(1)
		model.ToggleSort(1)
		model.ToggleSort(1)

		assert.Equal(t, []string{"Ann", "Cal", "Bob", "Dee", "Eve"}, visibleNames(t, model))
		assert.False(t, model.GetSortState().IsSorted())
	})

	t.Run("SwitchingColumnResetsToAscending", func(t *testing.T) {
		model := newPeopleModel(t)
		model.ToggleSort(1)
		model.ToggleSort(1)
		model.ToggleSort(0)

		state := model.GetSortState()
		assert.Equal(t, 0, state.Column)
		assert.Equal(t, datatable.SortAscending, state.Direction)
		assert.Equal(t, []string{"Ann", "Bob", "Cal", "Dee", "Eve"}, visibleNames(t, model))
	})

	t.Run("NonSortableColumnIgnored", func(t *testing.T) {
		model := newPeopleModel(t)
		cols := model.Columns()
		cols[1].Sortable = false
		require.NoError(t, model.SetColumns(cols))

		model.ToggleSort(1)
		assert.False(t, model.GetSortState().IsSorted())
		assert.Equal(t, []string{"Ann", "Cal", "Bob", "Dee", "Eve"}, visibleNames(t, model))
	})

	t.Run("OutOfRangeIgnored", func(t *testing.T) {
		model := newPeopleModel(t)
		model.ToggleSort(-1)
		model.ToggleSort(7)
		assert.False(t, model.GetSortState().IsSorted())
	})
}

func TestSetSearchTerm(t *testing.T) {
	t.Run("CaseInsensitiveSubstring", func(t *testing.T) {
		model := newPeopleModel(t)
		model.SetSearchTerm("an")
		assert.Equal(t, []string{"Ann"}, visibleNames(t, model))
	})

	t.Run("MatchesAnyColumn", func(t *testing.T) {
		model := newPeopleModel(t)
		model.SetSearchTerm("25")
		assert.Equal(t, []string{"Ann", "Cal"}, visibleNames(t, model))
	})

	t.Run("EmptyTermShowsAll", func(t *testing.T) {
		model := newPeopleModel(t)
		model.SetSearchTerm("bob")
		model.SetSearchTerm("")
		assert.Equal(t, 5, model.VisibleRowCount())
	})

	t.Run("NoMatches", func(t *testing.T) {
		model := newPeopleModel(t)
		model.SetSearchTerm("zzz")
		assert.Equal(t, 0, model.VisibleRowCount())
	})

	t.Run("WhitespaceIsLiteral", func(t *testing.T) {
		source, err := sliceadapter.NewFromRows(
			[]string{"name"},
			[][]string{{"Ann"}, {"An n"}},
		)
		require.NoError(t, err)
		model, err := datatable.NewTableModel(source)
		require.NoError(t, err)

		// Trailing whitespace is part of the term, not trimmed away.
		model.SetSearchTerm("nn ")
		assert.Equal(t, 0, model.VisibleRowCount())

		model.SetSearchTerm("n n")
		assert.Equal(t, []string{"An n"}, visibleNames(t, model))
	})

	t.Run("SortSurvivesSearch", func(t *testing.T) {
		model := newPeopleModel(t)
		model.ToggleSort(1)
		model.SetSearchTerm("2")

		// 25, 25 and 28 contain "2"; order still age ascending.
		assert.Equal(t, []string{"Ann", "Cal", "Eve"}, visibleNames(t, model))
		assert.Equal(t, datatable.SortAscending, model.GetSortState().Direction)
	})
}

func TestSetFilter(t *testing.T) {
	model := newPeopleModel(t)
	model.SetFilter(&datatable.ColumnFilter{
		Column:  "age",
		Op:      datatable.OpGreater,
		Operand: "25",
	})

	// Dee's null age never matches a column filter.
	assert.Equal(t, []string{"Bob", "Eve"}, visibleNames(t, model))

	t.Run("CombinesWithSearch", func(t *testing.T) {
		model.SetSearchTerm("bob")
		assert.Equal(t, []string{"Bob"}, visibleNames(t, model))
		model.SetSearchTerm("")
	})

	t.Run("ClearFilterRestores", func(t *testing.T) {
		model.ClearFilter()
		assert.Equal(t, 5, model.VisibleRowCount())
	})

	t.Run("UnknownColumnSurfacesError", func(t *testing.T) {
		model := newPeopleModel(t)
		require.NoError(t, model.FilterError())

		model.SetFilter(&datatable.ColumnFilter{
			Column:  "salary",
			Op:      datatable.OpGreater,
			Operand: "100",
		})

		// Every row errors, so the projection empties; FilterError tells
		// this apart from a filter that simply matched nothing.
		assert.Equal(t, 0, model.VisibleRowCount())
		assert.ErrorIs(t, model.FilterError(), datatable.ErrColumnNotFound)

		model.ClearFilter()
		assert.NoError(t, model.FilterError())
		assert.Equal(t, 5, model.VisibleRowCount())
	})
}

func TestColumnVisibility(t *testing.T) {
	t.Run("HideAndShow", func(t *testing.T) {
		model := newPeopleModel(t)
		require.NoError(t, model.SetColumnVisible(0, false))
		assert.Equal(t, 1, model.VisibleColumnCount())
		name, err := model.VisibleColumnName(0)
		require.NoError(t, err)
		assert.Equal(t, "age", name)

		// Reinsert keeps source column order.
		require.NoError(t, model.SetColumnVisible(0, true))
		assert.Equal(t, []int{0, 1}, model.GetVisibleColumnIndices())
	})

	t.Run("HidingSortedColumnClearsSort", func(t *testing.T) {
		model := newPeopleModel(t)
		model.ToggleSort(1)
		require.NoError(t, model.SetColumnVisible(1, false))
		assert.False(t, model.GetSortState().IsSorted())
		assert.Equal(t, []string{"Ann", "Cal", "Bob", "Dee", "Eve"}, visibleNames(t, model))
	})

	t.Run("SortStateColumnIsVisibleIndex", func(t *testing.T) {
		model := newPeopleModel(t)
		require.NoError(t, model.SetColumnVisible(0, false))
		model.ToggleSort(0) // age is now visible column 0

		state := model.GetSortState()
		assert.Equal(t, 0, state.Column)
		assert.Equal(t, datatable.SortAscending, state.Direction)
	})

	t.Run("OutOfRange", func(t *testing.T) {
		model := newPeopleModel(t)
		assert.ErrorIs(t, model.SetColumnVisible(9, false), datatable.ErrInvalidColumn)
	})
}

func TestVisibleAccessors(t *testing.T) {
	model := newPeopleModel(t)
	model.ToggleSort(1)

	t.Run("RowIndicesFollowDisplayOrder", func(t *testing.T) {
		assert.Equal(t, []int{0, 1, 4, 2, 3}, model.GetVisibleRowIndices())
	})

	t.Run("VisibleRow", func(t *testing.T) {
		row, err := model.VisibleRow(3)
		require.NoError(t, err)
		require.Len(t, row, 2)
		assert.Equal(t, "Bob", row[0].Formatted)
		assert.Equal(t, "30", row[1].Formatted)
	})

	t.Run("VisibleRows", func(t *testing.T) {
		rows := model.VisibleRows()
		require.Len(t, rows, 5)
		assert.Equal(t, "Ann", rows[0][0].Formatted)
		assert.True(t, rows[4][1].IsNull)
	})

	t.Run("Bounds", func(t *testing.T) {
		_, err := model.VisibleRow(99)
		assert.ErrorIs(t, err, datatable.ErrInvalidRow)
		_, err = model.VisibleCell(0, 99)
		assert.ErrorIs(t, err, datatable.ErrInvalidColumn)
	})
}

func TestEmptySource(t *testing.T) {
	source, err := sliceadapter.NewFromRows([]string{"name", "age"}, [][]string{})
	require.NoError(t, err)

	model, err := datatable.NewTableModel(source)
	require.NoError(t, err)

	assert.Equal(t, 0, model.VisibleRowCount())
	assert.Equal(t, 2, model.VisibleColumnCount())

	model.SetSearchTerm("x")
	assert.Equal(t, 0, model.VisibleRowCount())
	model.ToggleSort(0)
	assert.Equal(t, datatable.SortAscending, model.GetSortState().Direction)
}

func TestSortByAndReload(t *testing.T) {
	model := newPeopleModel(t)

	model.SortBy(1, datatable.SortDescending)
	assert.Equal(t, []string{"Bob", "Eve", "Ann", "Cal", "Dee"}, visibleNames(t, model))

	model.SortBy(1, datatable.SortNone)
	assert.False(t, model.GetSortState().IsSorted())

	model.SetSearchTerm("e")
	model.Reload()
	// Reload keeps view state.
	assert.Equal(t, "e", model.SearchTerm())
	assert.Equal(t, []string{"Dee", "Eve"}, visibleNames(t, model))
}
