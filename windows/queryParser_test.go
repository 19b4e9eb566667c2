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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridbrowser/datatable"
	"gridbrowser/internal/filter"
)

func queryRow(name string, age int64, status string) []datatable.Value {
	return []datatable.Value{
		datatable.NewValue(name, datatable.TypeString),
		datatable.NewValue(age, datatable.TypeInt),
		datatable.NewValue(status, datatable.TypeString),
	}
}

var queryColumns = []string{"name", "age", "status"}

func TestParseEmptyQuery(t *testing.T) {
	qp := NewQueryParser(queryColumns)

	for _, q := range []string{"", "   ", "\t\n"} {
		f, err := qp.Parse(q)
		require.NoError(t, err)
		assert.Nil(t, f)
	}
}

func TestParseComparison(t *testing.T) {
	qp := NewQueryParser(queryColumns)

	tests := []struct {
		name    string
		query   string
		op      datatable.CompareOp
		column  string
		operand string
	}{
		{"Equal", "status = active", datatable.OpEqual, "status", "active"},
		{"NotEqual", "status != closed", datatable.OpNotEqual, "status", "closed"},
		{"Greater", "age > 25", datatable.OpGreater, "age", "25"},
		{"Less", "age<30", datatable.OpLess, "age", "30"},
		{"GreaterEqual", "age >= 25", datatable.OpGreaterEqual, "age", "25"},
		{"LessEqual", "age <= 30", datatable.OpLessEqual, "age", "30"},
		{"Contains", "name ~ nn", datatable.OpContains, "name", "nn"},
		{"SingleQuoted", "status = 'active'", datatable.OpEqual, "status", "active"},
		{"DoubleQuoted", `name = "Ann"`, datatable.OpEqual, "name", "Ann"},
		{"ColumnCaseInsensitive", "AGE > 25", datatable.OpGreater, "AGE", "25"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, err := qp.Parse(tc.query)
			require.NoError(t, err)

			cf, ok := f.(*datatable.ColumnFilter)
			require.True(t, ok, "expected a column filter, got %T", f)
			assert.Equal(t, tc.column, cf.Column)
			assert.Equal(t, tc.op, cf.Op)
			assert.Equal(t, tc.operand, cf.Operand)
		})
	}
}

func TestParseBareTerm(t *testing.T) {
	qp := NewQueryParser(queryColumns)

	f, err := qp.Parse("active")
	require.NoError(t, err)

	ts, ok := f.(*datatable.TextSearchFilter)
	require.True(t, ok, "expected a text search filter, got %T", f)
	assert.Equal(t, "active", ts.Term)

	// Matches against any column, not a named one.
	match, err := ts.Evaluate(queryRow("Ann", 25, "active"), queryColumns)
	require.NoError(t, err)
	assert.True(t, match)
}

func TestParseLogicChaining(t *testing.T) {
	qp := NewQueryParser(queryColumns)

	tests := []struct {
		name  string
		query string
		rows  map[string]bool
	}{
		{
			"And", "age > 25 AND status = active",
			map[string]bool{"Ann": false, "Bob": true, "Cal": false},
		},
		{
			"Or", "name = Ann OR name = Cal",
			map[string]bool{"Ann": true, "Bob": false, "Cal": true},
		},
		{
			"LowercaseKeywords", "age > 25 and status = active",
			map[string]bool{"Ann": false, "Bob": true, "Cal": false},
		},
		{
			// Left-associative: ((name = Ann OR name = Bob) AND age > 25).
			"LeftAssociative", "name = Ann OR name = Bob AND age > 25",
			map[string]bool{"Ann": false, "Bob": true, "Cal": false},
		},
	}

	rows := map[string][]datatable.Value{
		"Ann": queryRow("Ann", 25, "active"),
		"Bob": queryRow("Bob", 30, "active"),
		"Cal": queryRow("Cal", 30, "closed"),
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, err := qp.Parse(tc.query)
			require.NoError(t, err)
			require.IsType(t, &filter.CompositeFilter{}, f)

			for name, want := range tc.rows {
				got, err := f.Evaluate(rows[name], queryColumns)
				require.NoError(t, err)
				assert.Equal(t, want, got, "row %s", name)
			}
		})
	}
}

func TestParseKeywordBoundaries(t *testing.T) {
	qp := NewQueryParser(queryColumns)

	// "android" contains "and" but is not an operator.
	f, err := qp.Parse("status = android")
	require.NoError(t, err)

	cf, ok := f.(*datatable.ColumnFilter)
	require.True(t, ok, "expected a column filter, got %T", f)
	assert.Equal(t, "android", cf.Operand)
}

func TestParseErrors(t *testing.T) {
	qp := NewQueryParser(queryColumns)

	tests := []struct {
		name  string
		query string
		want  error
	}{
		{"UnknownColumn", "salary > 100", datatable.ErrColumnNotFound},
		{"LeadingOperator", "AND age > 25", datatable.ErrInvalidFilter},
		{"TrailingOperator", "age > 25 AND", datatable.ErrInvalidFilter},
		{"DoubleOperator", "age > 25 AND OR status = active", datatable.ErrInvalidFilter},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, err := qp.Parse(tc.query)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.Nil(t, f)
		})
	}
}
