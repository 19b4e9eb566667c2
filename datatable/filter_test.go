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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var filterNames = []string{"name", "age", "city"}

func filterRow(name, age, city string) []Value {
	row := []Value{
		NewValue(name, TypeString),
		NewValue(age, TypeString),
		NewValue(city, TypeString),
	}
	if age == "" {
		row[1] = NewNullValue(TypeString)
	}
	return row
}

func TestTextSearchFilter(t *testing.T) {
	tests := []struct {
		name string
		term string
		row  []Value
		want bool
	}{
		{"EmptyTermPasses", "", filterRow("Ann", "25", "Oslo"), true},
		{"WhitespaceTermIsLiteral", "   ", filterRow("Ann", "25", "Oslo"), false},
		{"WhitespaceTermMatchesSpace", "n n", filterRow("An n", "25", "Oslo"), true},
		{"TrailingSpaceNotTrimmed", "nn ", filterRow("Ann", "25", "Oslo"), false},
		{"MatchFirstColumn", "ann", filterRow("Ann", "25", "Oslo"), true},
		{"MatchLastColumn", "OSLO", filterRow("Ann", "25", "Oslo"), true},
		{"Substring", "sl", filterRow("Ann", "25", "Oslo"), true},
		{"NoMatch", "berlin", filterRow("Ann", "25", "Oslo"), false},
		{"NullFieldSkipped", "25", filterRow("Ann", "", "Oslo"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &TextSearchFilter{Term: tt.term}
			got, err := f.Evaluate(tt.row, filterNames)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColumnFilter(t *testing.T) {
	row := filterRow("Ann", "25", "Oslo")

	tests := []struct {
		name   string
		filter ColumnFilter
		want   bool
	}{
		{"EqualCaseInsensitive", ColumnFilter{Column: "name", Op: OpEqual, Operand: "ann"}, true},
		{"NotEqual", ColumnFilter{Column: "name", Op: OpNotEqual, Operand: "Bob"}, true},
		{"NumericGreater", ColumnFilter{Column: "age", Op: OpGreater, Operand: "20"}, true},
		{"NumericGreaterFalse", ColumnFilter{Column: "age", Op: OpGreater, Operand: "25"}, false},
		{"NumericGreaterEqual", ColumnFilter{Column: "age", Op: OpGreaterEqual, Operand: "25"}, true},
		{"NumericLess", ColumnFilter{Column: "age", Op: OpLess, Operand: "30"}, true},
		{"LexicographicGreater", ColumnFilter{Column: "city", Op: OpGreater, Operand: "Bergen"}, true},
		{"Contains", ColumnFilter{Column: "city", Op: OpContains, Operand: "sl"}, true},
		{"ContainsFalse", ColumnFilter{Column: "city", Op: OpContains, Operand: "xx"}, false},
		{"ColumnNameCaseInsensitive", ColumnFilter{Column: "NAME", Op: OpEqual, Operand: "Ann"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.filter.Evaluate(row, filterNames)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("UnknownColumn", func(t *testing.T) {
		f := &ColumnFilter{Column: "salary", Op: OpEqual, Operand: "1"}
		_, err := f.Evaluate(row, filterNames)
		assert.ErrorIs(t, err, ErrColumnNotFound)
	})

	t.Run("NullCellNeverMatches", func(t *testing.T) {
		nullRow := filterRow("Dee", "", "Oslo")
		for _, op := range []CompareOp{OpEqual, OpNotEqual, OpGreater, OpLess, OpContains} {
			f := &ColumnFilter{Column: "age", Op: op, Operand: ""}
			got, err := f.Evaluate(nullRow, filterNames)
			require.NoError(t, err)
			assert.False(t, got, "op %s", op)
		}
	})

	t.Run("Description", func(t *testing.T) {
		f := &ColumnFilter{Column: "age", Op: OpGreaterEqual, Operand: "25"}
		assert.Equal(t, `age >= "25"`, f.Description())
	})
}

func TestCompareOpString(t *testing.T) {
	assert.Equal(t, "=", OpEqual.String())
	assert.Equal(t, "!=", OpNotEqual.String())
	assert.Equal(t, ">", OpGreater.String())
	assert.Equal(t, "<", OpLess.String())
	assert.Equal(t, ">=", OpGreaterEqual.String())
	assert.Equal(t, "<=", OpLessEqual.String())
	assert.Equal(t, "~", OpContains.String())
}
