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

package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridbrowser/datatable"
)

var (
	names = []string{"name", "age"}
	row   = []datatable.Value{
		datatable.NewValue("Ann", datatable.TypeString),
		datatable.NewValue("25", datatable.TypeString),
	}

	isAnn   = &datatable.ColumnFilter{Column: "name", Op: datatable.OpEqual, Operand: "Ann"}
	isBob   = &datatable.ColumnFilter{Column: "name", Op: datatable.OpEqual, Operand: "Bob"}
	isAdult = &datatable.ColumnFilter{Column: "age", Op: datatable.OpGreaterEqual, Operand: "18"}
	badCol  = &datatable.ColumnFilter{Column: "missing", Op: datatable.OpEqual, Operand: "x"}
)

func TestCompositeAnd(t *testing.T) {
	tests := []struct {
		name    string
		filters []datatable.Filter
		want    bool
	}{
		{"AllPass", []datatable.Filter{isAnn, isAdult}, true},
		{"OneFails", []datatable.Filter{isAnn, isBob}, false},
		{"Empty", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := And(tt.filters...).Evaluate(row, names)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("ShortCircuitSkipsErrors", func(t *testing.T) {
		// isBob fails before badCol is reached.
		got, err := And(isBob, badCol).Evaluate(row, names)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("ErrorPropagates", func(t *testing.T) {
		_, err := And(isAnn, badCol).Evaluate(row, names)
		assert.ErrorIs(t, err, datatable.ErrColumnNotFound)
	})
}

func TestCompositeOr(t *testing.T) {
	tests := []struct {
		name    string
		filters []datatable.Filter
		want    bool
	}{
		{"FirstPasses", []datatable.Filter{isAnn, isBob}, true},
		{"SecondPasses", []datatable.Filter{isBob, isAnn}, true},
		{"NonePass", []datatable.Filter{isBob, isBob}, false},
		{"Empty", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Or(tt.filters...).Evaluate(row, names)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("ShortCircuitSkipsErrors", func(t *testing.T) {
		got, err := Or(isAnn, badCol).Evaluate(row, names)
		require.NoError(t, err)
		assert.True(t, got)
	})
}

func TestCompositeNested(t *testing.T) {
	// (name = Ann OR name = Bob) AND age >= 18
	f := And(Or(isAnn, isBob), isAdult)
	got, err := f.Evaluate(row, names)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestCompositeDescription(t *testing.T) {
	assert.Equal(t, "empty filter", And().Description())

	f := Or(isAnn, isBob)
	assert.Equal(t, `(name = "Ann" OR name = "Bob")`, f.Description())
}
