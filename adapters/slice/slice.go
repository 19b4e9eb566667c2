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

// Package slice provides datatable data sources backed by in-memory Go
// values: decoded JSON records and plain string grids.
package slice

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"gridbrowser/datatable"
)

// Source is an immutable in-memory data source.
type Source struct {
	headers []string
	types   []datatable.DataType
	rows    [][]datatable.Value
	meta    datatable.Metadata
}

var _ datatable.DataSource = (*Source)(nil)

// NewFromMaps creates a data source from decoded JSON records. The column
// set is the union of all keys, in alphabetical order. Column types are
// inferred from the observed values; columns with mixed types fall back
// to string.
func NewFromMaps(records []map[string]interface{}) (*Source, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no records", datatable.ErrEmptyData)
	}

	keySet := make(map[string]struct{})
	for _, rec := range records {
		for k := range rec {
			keySet[k] = struct{}{}
		}
	}
	headers := make([]string, 0, len(keySet))
	for k := range keySet {
		headers = append(headers, k)
	}
	sort.Strings(headers)

	types := make([]datatable.DataType, len(headers))
	for i, key := range headers {
		types[i] = inferGoColumnType(records, key)
	}

	rows := make([][]datatable.Value, len(records))
	for r, rec := range records {
		row := make([]datatable.Value, len(headers))
		for c, key := range headers {
			row[c] = goValue(rec[key], types[c])
		}
		rows[r] = row
	}

	return &Source{
		headers: headers,
		types:   types,
		rows:    rows,
		meta:    datatable.Metadata{"adapter": "slice"},
	}, nil
}

// NewFromRows creates a data source from a string grid with the given
// headers. Cell types are inferred per column when every non-empty cell
// agrees on int, float, bool, date or timestamp; otherwise the column is
// a string column. Empty cells become nulls.
func NewFromRows(headers []string, rows [][]string) (*Source, error) {
	if len(headers) == 0 {
		return nil, fmt.Errorf("%w: no columns", datatable.ErrEmptyData)
	}
	for i, row := range rows {
		if len(row) != len(headers) {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", i, len(row), len(headers))
		}
	}

	types := make([]datatable.DataType, len(headers))
	for c := range headers {
		types[c] = inferStringColumnType(rows, c)
	}

	values := make([][]datatable.Value, len(rows))
	for r, row := range rows {
		vals := make([]datatable.Value, len(headers))
		for c, cell := range row {
			vals[c] = stringValue(cell, types[c])
		}
		values[r] = vals
	}

	return &Source{
		headers: append([]string(nil), headers...),
		types:   types,
		rows:    values,
		meta:    datatable.Metadata{"adapter": "slice"},
	}, nil
}

// RowCount implements datatable.DataSource.
func (s *Source) RowCount() int { return len(s.rows) }

// ColumnCount implements datatable.DataSource.
func (s *Source) ColumnCount() int { return len(s.headers) }

// ColumnName implements datatable.DataSource.
func (s *Source) ColumnName(col int) (string, error) {
	if col < 0 || col >= len(s.headers) {
		return "", datatable.ErrInvalidColumn
	}
	return s.headers[col], nil
}

// ColumnType implements datatable.DataSource.
func (s *Source) ColumnType(col int) (datatable.DataType, error) {
	if col < 0 || col >= len(s.types) {
		return 0, datatable.ErrInvalidColumn
	}
	return s.types[col], nil
}

// Cell implements datatable.DataSource.
func (s *Source) Cell(row, col int) (datatable.Value, error) {
	if row < 0 || row >= len(s.rows) {
		return datatable.Value{}, datatable.ErrInvalidRow
	}
	if col < 0 || col >= len(s.headers) {
		return datatable.Value{}, datatable.ErrInvalidColumn
	}
	return s.rows[row][col], nil
}

// Row implements datatable.DataSource.
func (s *Source) Row(row int) ([]datatable.Value, error) {
	if row < 0 || row >= len(s.rows) {
		return nil, datatable.ErrInvalidRow
	}
	out := make([]datatable.Value, len(s.rows[row]))
	copy(out, s.rows[row])
	return out, nil
}

// Metadata implements datatable.DataSource.
func (s *Source) Metadata() datatable.Metadata { return s.meta }

// inferGoColumnType determines a column type from the Go values observed
// under key across all records.
func inferGoColumnType(records []map[string]interface{}, key string) datatable.DataType {
	inferred := datatable.DataType(-1)
	for _, rec := range records {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}
		t := inferGoType(v)
		if inferred == -1 {
			inferred = t
			continue
		}
		if inferred != t {
			// Int and float mix into float, anything else into string.
			if (inferred == datatable.TypeInt && t == datatable.TypeFloat) ||
				(inferred == datatable.TypeFloat && t == datatable.TypeInt) {
				inferred = datatable.TypeFloat
				continue
			}
			return datatable.TypeString
		}
	}
	if inferred == -1 {
		return datatable.TypeString
	}
	return inferred
}

func inferGoType(v interface{}) datatable.DataType {
	switch val := v.(type) {
	case bool:
		return datatable.TypeBool
	case int, int8, int16, int32, int64, uint8, uint16, uint32, uint64:
		return datatable.TypeInt
	case float32:
		return datatable.TypeFloat
	case float64:
		// JSON decodes every number as float64; keep integral values as ints.
		if val == float64(int64(val)) {
			return datatable.TypeInt
		}
		return datatable.TypeFloat
	case time.Time:
		return datatable.TypeTimestamp
	case map[string]interface{}:
		return datatable.TypeStruct
	case []interface{}:
		return datatable.TypeList
	default:
		return datatable.TypeString
	}
}

// goValue converts a decoded Go value into a cell of the given column type.
func goValue(v interface{}, dt datatable.DataType) datatable.Value {
	if v == nil {
		return datatable.NewNullValue(dt)
	}

	switch dt {
	case datatable.TypeInt:
		if f, ok := v.(float64); ok {
			return datatable.NewValue(int64(f), dt)
		}
	case datatable.TypeFloat:
		if i, ok := v.(int); ok {
			return datatable.NewValue(float64(i), dt)
		}
	case datatable.TypeString:
		if _, ok := v.(string); !ok {
			return datatable.NewValue(fmt.Sprintf("%v", v), dt)
		}
	case datatable.TypeStruct, datatable.TypeList:
		return datatable.NewValue(fmt.Sprintf("%v", v), dt)
	}
	return datatable.NewValue(v, dt)
}

// inferStringColumnType determines a column type from string cells.
func inferStringColumnType(rows [][]string, col int) datatable.DataType {
	inferred := datatable.DataType(-1)
	for _, row := range rows {
		cell := strings.TrimSpace(row[col])
		if cell == "" {
			continue
		}
		t := inferStringType(cell)
		if inferred == -1 {
			inferred = t
			continue
		}
		if inferred != t {
			if (inferred == datatable.TypeInt && t == datatable.TypeFloat) ||
				(inferred == datatable.TypeFloat && t == datatable.TypeInt) {
				inferred = datatable.TypeFloat
				continue
			}
			return datatable.TypeString
		}
	}
	if inferred == -1 {
		return datatable.TypeString
	}
	return inferred
}

func inferStringType(cell string) datatable.DataType {
	if _, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return datatable.TypeInt
	}
	if _, err := strconv.ParseFloat(cell, 64); err == nil {
		return datatable.TypeFloat
	}
	if strings.EqualFold(cell, "true") || strings.EqualFold(cell, "false") {
		return datatable.TypeBool
	}
	if _, err := time.Parse("2006-01-02", cell); err == nil {
		return datatable.TypeDate
	}
	if _, ok := parseTimestamp(cell); ok {
		return datatable.TypeTimestamp
	}
	return datatable.TypeString
}

func parseTimestamp(cell string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// stringValue converts a string cell into a typed value of the given
// column type. Empty cells are nulls; cells that fail to parse fall back
// to string values so no data is dropped.
func stringValue(cell string, dt datatable.DataType) datatable.Value {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return datatable.NewNullValue(dt)
	}

	switch dt {
	case datatable.TypeInt:
		if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return datatable.NewValue(i, dt)
		}
	case datatable.TypeFloat:
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return datatable.NewValue(f, dt)
		}
	case datatable.TypeBool:
		return datatable.NewValue(strings.EqualFold(trimmed, "true"), dt)
	case datatable.TypeDate:
		if t, err := time.Parse("2006-01-02", trimmed); err == nil {
			return datatable.NewValue(t, dt)
		}
	case datatable.TypeTimestamp:
		if t, ok := parseTimestamp(trimmed); ok {
			return datatable.NewValue(t, dt)
		}
	}
	return datatable.NewValue(cell, datatable.TypeString)
}
