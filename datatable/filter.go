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
	"fmt"
	"strconv"
	"strings"
)

// Filter decides whether a row belongs to the visible projection.
// Implementations must not mutate the row.
type Filter interface {
	// Evaluate returns true when the row passes the filter.
	// columnNames has the same length and order as row.
	Evaluate(row []Value, columnNames []string) (bool, error)

	// Description returns a human-readable summary of the filter.
	Description() string
}

// TextSearchFilter matches rows where the term is a case-insensitive
// substring of the formatted representation of at least one field.
// Every field is probed, not just the displayed columns.
// An empty term passes all rows.
type TextSearchFilter struct {
	Term string
}

// Evaluate implements the Filter interface.
func (f *TextSearchFilter) Evaluate(row []Value, columnNames []string) (bool, error) {
	if f.Term == "" {
		return true, nil
	}
	// The term is matched literally, whitespace included; only the empty
	// string disables filtering.
	term := strings.ToLower(f.Term)

	for _, v := range row {
		if v.IsNull {
			continue
		}
		if strings.Contains(strings.ToLower(v.Formatted), term) {
			return true, nil
		}
	}
	return false, nil
}

// Description implements the Filter interface.
func (f *TextSearchFilter) Description() string {
	return fmt.Sprintf("contains %q", f.Term)
}

// CompareOp is a comparison operator for column filters.
type CompareOp int

const (
	// OpEqual matches values equal to the operand (case-insensitive for strings).
	OpEqual CompareOp = iota
	// OpNotEqual matches values different from the operand.
	OpNotEqual
	// OpGreater matches values strictly greater than the operand.
	OpGreater
	// OpLess matches values strictly less than the operand.
	OpLess
	// OpGreaterEqual matches values greater than or equal to the operand.
	OpGreaterEqual
	// OpLessEqual matches values less than or equal to the operand.
	OpLessEqual
	// OpContains matches values containing the operand as a substring.
	OpContains
)

// String returns the operator's query syntax.
func (op CompareOp) String() string {
	switch op {
	case OpEqual:
		return "="
	case OpNotEqual:
		return "!="
	case OpGreater:
		return ">"
	case OpLess:
		return "<"
	case OpGreaterEqual:
		return ">="
	case OpLessEqual:
		return "<="
	case OpContains:
		return "~"
	default:
		return fmt.Sprintf("unknown(%d)", int(op))
	}
}

// ColumnFilter compares a single named column against a textual operand.
// Ordered comparisons are numeric when both sides parse as numbers,
// lexicographic (case-insensitive) otherwise. Null cells never match.
type ColumnFilter struct {
	Column  string
	Op      CompareOp
	Operand string
}

// Evaluate implements the Filter interface.
func (f *ColumnFilter) Evaluate(row []Value, columnNames []string) (bool, error) {
	idx := -1
	for i, name := range columnNames {
		if strings.EqualFold(name, f.Column) {
			idx = i
			break
		}
	}
	if idx < 0 || idx >= len(row) {
		return false, fmt.Errorf("%w: %s", ErrColumnNotFound, f.Column)
	}

	cell := row[idx]
	if cell.IsNull {
		return false, nil
	}

	switch f.Op {
	case OpEqual:
		return strings.EqualFold(cell.Formatted, f.Operand), nil
	case OpNotEqual:
		return !strings.EqualFold(cell.Formatted, f.Operand), nil
	case OpContains:
		return strings.Contains(strings.ToLower(cell.Formatted), strings.ToLower(f.Operand)), nil
	case OpGreater, OpLess, OpGreaterEqual, OpLessEqual:
		return compareOrdered(cell.Formatted, f.Operand, f.Op), nil
	default:
		return false, fmt.Errorf("%w: unknown operator %d", ErrInvalidFilter, f.Op)
	}
}

// Description implements the Filter interface.
func (f *ColumnFilter) Description() string {
	return fmt.Sprintf("%s %s %q", f.Column, f.Op, f.Operand)
}

// compareOrdered resolves an ordered comparison, numerically when both
// sides parse as floats and lexicographically otherwise.
func compareOrdered(cell, operand string, op CompareOp) bool {
	a, err1 := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	b, err2 := strconv.ParseFloat(strings.TrimSpace(operand), 64)

	var cmp int
	if err1 == nil && err2 == nil {
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		}
	} else {
		cmp = strings.Compare(strings.ToLower(cell), strings.ToLower(operand))
	}

	switch op {
	case OpGreater:
		return cmp > 0
	case OpLess:
		return cmp < 0
	case OpGreaterEqual:
		return cmp >= 0
	case OpLessEqual:
		return cmp <= 0
	}
	return false
}
