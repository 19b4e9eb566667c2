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

package slice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridbrowser/datatable"
)

func TestNewFromMaps(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		_, err := NewFromMaps(nil)
		assert.ErrorIs(t, err, datatable.ErrEmptyData)
	})

	t.Run("ColumnsAreUnionOfKeysSorted", func(t *testing.T) {
		source, err := NewFromMaps([]map[string]interface{}{
			{"name": "Ann", "age": float64(25)},
			{"name": "Bob", "city": "Oslo"},
		})
		require.NoError(t, err)

		require.Equal(t, 3, source.ColumnCount())
		for i, want := range []string{"age", "city", "name"} {
			name, err := source.ColumnName(i)
			require.NoError(t, err)
			assert.Equal(t, want, name)
		}

		// Bob has no age; missing keys are nulls.
		v, err := source.Cell(1, 0)
		require.NoError(t, err)
		assert.True(t, v.IsNull)
	})

	t.Run("IntegralJSONNumbersBecomeInts", func(t *testing.T) {
		source, err := NewFromMaps([]map[string]interface{}{
			{"n": float64(42)},
		})
		require.NoError(t, err)

		dt, err := source.ColumnType(0)
		require.NoError(t, err)
		assert.Equal(t, datatable.TypeInt, dt)

		v, err := source.Cell(0, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(42), v.Raw)
		assert.Equal(t, "42", v.Formatted)
	})

	t.Run("IntFloatMixBecomesFloat", func(t *testing.T) {
		source, err := NewFromMaps([]map[string]interface{}{
			{"n": float64(1)},
			{"n": 1.5},
		})
		require.NoError(t, err)

		dt, err := source.ColumnType(0)
		require.NoError(t, err)
		assert.Equal(t, datatable.TypeFloat, dt)
	})

	t.Run("MixedTypesFallBackToString", func(t *testing.T) {
		source, err := NewFromMaps([]map[string]interface{}{
			{"x": "a"},
			{"x": true},
		})
		require.NoError(t, err)

		dt, err := source.ColumnType(0)
		require.NoError(t, err)
		assert.Equal(t, datatable.TypeString, dt)
	})

	t.Run("NestedValuesRenderAsText", func(t *testing.T) {
		source, err := NewFromMaps([]map[string]interface{}{
			{"tags": []interface{}{"a", "b"}},
		})
		require.NoError(t, err)

		dt, err := source.ColumnType(0)
		require.NoError(t, err)
		assert.Equal(t, datatable.TypeList, dt)

		v, err := source.Cell(0, 0)
		require.NoError(t, err)
		assert.Equal(t, "[a b]", v.Formatted)
	})
}

func TestNewFromRows(t *testing.T) {
	t.Run("NoColumns", func(t *testing.T) {
		_, err := NewFromRows(nil, nil)
		assert.ErrorIs(t, err, datatable.ErrEmptyData)
	})

	t.Run("RaggedRowRejected", func(t *testing.T) {
		_, err := NewFromRows([]string{"a", "b"}, [][]string{{"1"}})
		assert.Error(t, err)
	})

	t.Run("TypeInference", func(t *testing.T) {
		source, err := NewFromRows(
			[]string{"id", "score", "active", "born", "note"},
			[][]string{
				{"1", "9.5", "true", "1999-12-31", "hello"},
				{"2", "8", "false", "2001-06-15", "42"},
			},
		)
		require.NoError(t, err)

		wantTypes := []datatable.DataType{
			datatable.TypeInt,
			datatable.TypeFloat, // 9.5 and 8 mix into float
			datatable.TypeBool,
			datatable.TypeDate,
			datatable.TypeString, // "hello" and "42" disagree
		}
		for c, want := range wantTypes {
			dt, err := source.ColumnType(c)
			require.NoError(t, err)
			assert.Equal(t, want, dt, "column %d", c)
		}

		v, err := source.Cell(0, 3)
		require.NoError(t, err)
		assert.Equal(t, "1999-12-31", v.Formatted)
	})

	t.Run("EmptyCellsAreNull", func(t *testing.T) {
		source, err := NewFromRows([]string{"age"}, [][]string{{"25"}, {""}, {" "}})
		require.NoError(t, err)

		dt, err := source.ColumnType(0)
		require.NoError(t, err)
		assert.Equal(t, datatable.TypeInt, dt)

		for _, r := range []int{1, 2} {
			v, err := source.Cell(r, 0)
			require.NoError(t, err)
			assert.True(t, v.IsNull, "row %d", r)
		}
	})

	t.Run("AllEmptyColumnIsString", func(t *testing.T) {
		source, err := NewFromRows([]string{"x"}, [][]string{{""}, {""}})
		require.NoError(t, err)

		dt, err := source.ColumnType(0)
		require.NoError(t, err)
		assert.Equal(t, datatable.TypeString, dt)
	})

	t.Run("Bounds", func(t *testing.T) {
		source, err := NewFromRows([]string{"x"}, [][]string{{"1"}})
		require.NoError(t, err)

		_, err = source.Cell(5, 0)
		assert.ErrorIs(t, err, datatable.ErrInvalidRow)
		_, err = source.Cell(0, 5)
		assert.ErrorIs(t, err, datatable.ErrInvalidColumn)
		_, err = source.ColumnName(-1)
		assert.ErrorIs(t, err, datatable.ErrInvalidColumn)
		_, err = source.Row(9)
		assert.ErrorIs(t, err, datatable.ErrInvalidRow)
	})

	t.Run("Metadata", func(t *testing.T) {
		source, err := NewFromRows([]string{"x"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "slice", source.Metadata()["adapter"])
	})
}
