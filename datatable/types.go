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

// Package datatable provides the data model behind the reusable table
// widget: typed cell values, column descriptors, and a view model that
// projects a DataSource through the current search, filter and sort state.
package datatable

import (
	"fmt"
	"math/big"
	"strconv"
	"time"
)

// DataType represents the type of data in a column.
type DataType int

const (
	// TypeString represents string data.
	TypeString DataType = iota
	// TypeInt represents integer data (any size).
	TypeInt
	// TypeFloat represents floating-point data (any precision).
	TypeFloat
	// TypeBool represents boolean data.
	TypeBool
	// TypeDate represents date data (without time).
	TypeDate
	// TypeTimestamp represents timestamp data (date + time).
	TypeTimestamp
	// TypeBinary represents binary/blob data.
	TypeBinary
	// TypeDecimal represents decimal/numeric data (fixed precision).
	TypeDecimal
	// TypeStruct represents structured data (nested fields).
	TypeStruct
	// TypeList represents list/array data.
	TypeList
)

// String returns the string representation of a DataType.
func (dt DataType) String() string {
	switch dt {
	case TypeString:
		return "String"
	case TypeInt:
		return "Int"
	case TypeFloat:
		return "Float"
	case TypeBool:
		return "Bool"
	case TypeDate:
		return "Date"
	case TypeTimestamp:
		return "Timestamp"
	case TypeBinary:
		return "Binary"
	case TypeDecimal:
		return "Decimal"
	case TypeStruct:
		return "Struct"
	case TypeList:
		return "List"
	default:
		return fmt.Sprintf("Unknown(%d)", dt)
	}
}

// Value is a typed container for cell values.
// It holds the raw value, type information, and a pre-formatted string for display.
type Value struct {
	// Raw holds the underlying value.
	// The type depends on the DataType field.
	Raw interface{}

	// Type indicates the data type of this value.
	Type DataType

	// IsNull indicates whether this value is null/nil.
	IsNull bool

	// Formatted is a pre-formatted string representation for display.
	// This improves UI performance by avoiding repeated formatting.
	Formatted string
}

// NewValue creates a new Value from a raw value and type.
func NewValue(raw interface{}, dataType DataType) Value {
	if raw == nil {
		return Value{
			Raw:       nil,
			Type:      dataType,
			IsNull:    true,
			Formatted: "",
		}
	}

	return Value{
		Raw:       raw,
		Type:      dataType,
		IsNull:    false,
		Formatted: formatValue(raw, dataType),
	}
}

// NewNullValue creates a null value of the specified type.
func NewNullValue(dataType DataType) Value {
	return Value{
		Raw:       nil,
		Type:      dataType,
		IsNull:    true,
		Formatted: "",
	}
}

// formatValue converts a raw value to a formatted string.
func formatValue(raw interface{}, dataType DataType) string {
	if raw == nil {
		return ""
	}

	switch dataType {
	case TypeDate:
		if t, ok := raw.(time.Time); ok {
			return t.Format("2006-01-02")
		}
	case TypeTimestamp:
		if t, ok := raw.(time.Time); ok {
			return t.Format("2006-01-02 15:04:05.999999999")
		}
	case TypeFloat:
		switch f := raw.(type) {
		case float32:
			return strconv.FormatFloat(float64(f), 'f', -1, 32)
		case float64:
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	case TypeDecimal:
		if d, ok := raw.(*big.Rat); ok {
			return d.FloatString(6)
		}
	case TypeBinary:
		if b, ok := raw.([]byte); ok {
			return string(b)
		}
	}

	return fmt.Sprintf("%v", raw)
}

// Alignment is a styling hint for how a column should be rendered.
type Alignment int

const (
	// AlignLeft aligns cell content to the leading edge (default).
	AlignLeft Alignment = iota
	// AlignRight aligns cell content to the trailing edge (numeric columns).
	AlignRight
	// AlignCenter centers cell content.
	AlignCenter
)

// Column describes how a single data source column is labeled, sorted and
// rendered. Descriptors are immutable for the lifetime of a table view;
// TableModel derives one per source column and callers may replace them
// via SetColumns.
type Column struct {
	// Key is the data source column name this descriptor binds to.
	Key string

	// Title is the header label. Defaults to Key when empty.
	Title string

	// Sortable reports whether header interaction may sort by this column.
	Sortable bool

	// Format optionally overrides the display string for a cell value.
	// Sorting always compares raw values, never the formatted output.
	Format func(Value) string

	// Align is a styling hint for cell rendering.
	Align Alignment
}

// DisplayString returns the display text for v under this descriptor.
func (c Column) DisplayString(v Value) string {
	if c.Format != nil {
		return c.Format(v)
	}
	return v.Formatted
}

// Metadata holds optional metadata about a data source.
type Metadata map[string]interface{}

// SortDirection specifies the direction of sorting.
type SortDirection int

const (
	// SortNone indicates no sorting.
	SortNone SortDirection = iota
	// SortAscending indicates ascending sort order.
	SortAscending
	// SortDescending indicates descending sort order.
	SortDescending
)

// String returns the string representation of a SortDirection.
func (sd SortDirection) String() string {
	switch sd {
	case SortNone:
		return "None"
	case SortAscending:
		return "Ascending"
	case SortDescending:
		return "Descending"
	default:
		return fmt.Sprintf("Unknown(%d)", sd)
	}
}

// next returns the direction that follows sd in the header toggle cycle
// (ascending, descending, none).
func (sd SortDirection) next() SortDirection {
	switch sd {
	case SortAscending:
		return SortDescending
	case SortDescending:
		return SortNone
	default:
		return SortAscending
	}
}

// SortState represents the current sorting configuration.
type SortState struct {
	// Column is the index of the sorted column (-1 if unsorted).
	Column int
	// Direction is the sort direction.
	Direction SortDirection
}

// IsSorted returns true if this state represents an active sort.
func (s SortState) IsSorted() bool {
	return s.Column >= 0 && s.Direction != SortNone
}
