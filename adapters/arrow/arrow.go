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

// Package arrow provides a datatable data source over an Apache Arrow
// table. Cell values are materialized eagerly so the Arrow table may be
// released after construction.
package arrow

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"gridbrowser/datatable"
)

// Source is a data source holding the materialized content of an Arrow
// table.
type Source struct {
	headers []string
	types   []datatable.DataType
	rows    [][]datatable.Value
	meta    datatable.Metadata
}

var _ datatable.DataSource = (*Source)(nil)

// NewFromArrowTable materializes table into a data source. The table is
// not retained; callers may release it afterwards.
func NewFromArrowTable(table arrow.Table) (*Source, error) {
	if table == nil {
		return nil, datatable.ErrNoDataSource
	}

	schema := table.Schema()
	numCols := schema.NumFields()

	src := &Source{
		headers: make([]string, numCols),
		types:   make([]datatable.DataType, numCols),
		rows:    make([][]datatable.Value, 0, int(table.NumRows())),
		meta: datatable.Metadata{
			"adapter": "arrow",
			"rows":    table.NumRows(),
		},
	}
	for i, field := range schema.Fields() {
		src.headers[i] = field.Name
		src.types[i] = mapDataType(field.Type)
	}

	tr := array.NewTableReader(table, table.NumRows())
	defer tr.Release()

	for tr.Next() {
		rec := tr.Record()
		numRows := int(rec.NumRows())
		for rowIdx := 0; rowIdx < numRows; rowIdx++ {
			row := make([]datatable.Value, numCols)
			for colIdx, col := range rec.Columns() {
				row[colIdx] = cellValue(col, rowIdx, src.types[colIdx])
			}
			src.rows = append(src.rows, row)
		}
	}
	if tr.Err() != nil {
		return nil, fmt.Errorf("error reading arrow table: %w", tr.Err())
	}

	return src, nil
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

// mapDataType maps an Arrow physical type to a datatable type.
func mapDataType(dt arrow.DataType) datatable.DataType {
	switch dt.ID() {
	case arrow.STRING, arrow.LARGE_STRING:
		return datatable.TypeString
	case arrow.BINARY, arrow.LARGE_BINARY:
		return datatable.TypeBinary
	case arrow.BOOL:
		return datatable.TypeBool
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return datatable.TypeInt
	case arrow.FLOAT16, arrow.FLOAT32, arrow.FLOAT64:
		return datatable.TypeFloat
	case arrow.DATE32, arrow.DATE64:
		return datatable.TypeDate
	case arrow.TIMESTAMP:
		return datatable.TypeTimestamp
	case arrow.DECIMAL128:
		return datatable.TypeDecimal
	case arrow.STRUCT:
		return datatable.TypeStruct
	case arrow.LIST, arrow.LARGE_LIST:
		return datatable.TypeList
	default:
		return datatable.TypeString
	}
}

// cellValue extracts the value at pos from an Arrow array into a typed
// cell.
func cellValue(col arrow.Array, pos int, dt datatable.DataType) datatable.Value {
	if col.IsNull(pos) {
		return datatable.NewNullValue(dt)
	}

	switch arr := col.(type) {
	case *array.String:
		return datatable.NewValue(arr.Value(pos), dt)
	case *array.LargeString:
		return datatable.NewValue(arr.Value(pos), dt)
	case *array.Binary:
		return datatable.NewValue(arr.Value(pos), dt)
	case *array.Boolean:
		return datatable.NewValue(arr.Value(pos), dt)
	case *array.Int8:
		return datatable.NewValue(int64(arr.Value(pos)), dt)
	case *array.Int16:
		return datatable.NewValue(int64(arr.Value(pos)), dt)
	case *array.Int32:
		return datatable.NewValue(int64(arr.Value(pos)), dt)
	case *array.Int64:
		return datatable.NewValue(arr.Value(pos), dt)
	case *array.Uint8:
		return datatable.NewValue(int64(arr.Value(pos)), dt)
	case *array.Uint16:
		return datatable.NewValue(int64(arr.Value(pos)), dt)
	case *array.Uint32:
		return datatable.NewValue(int64(arr.Value(pos)), dt)
	case *array.Uint64:
		return datatable.NewValue(int64(arr.Value(pos)), dt)
	case *array.Float16:
		return datatable.NewValue(float64(arr.Value(pos).Float32()), dt)
	case *array.Float32:
		return datatable.NewValue(float64(arr.Value(pos)), dt)
	case *array.Float64:
		return datatable.NewValue(arr.Value(pos), dt)
	case *array.Date32:
		return datatable.NewValue(arr.Value(pos).ToTime(), dt)
	case *array.Date64:
		return datatable.NewValue(arr.Value(pos).ToTime(), dt)
	case *array.Timestamp:
		unit := arrow.Nanosecond
		if ts, ok := col.DataType().(*arrow.TimestampType); ok {
			unit = ts.Unit
		}
		return datatable.NewValue(arr.Value(pos).ToTime(unit), dt)
	case *array.Decimal128:
		return datatable.NewValue(arr.Value(pos).BigInt().String(), dt)
	case *array.Struct:
		b, _ := arr.MarshalJSON()
		return datatable.NewValue(string(b), dt)
	case *array.List:
		sliced := array.NewSlice(col, int64(pos), int64(pos+1))
		defer sliced.Release()
		return datatable.NewValue(fmt.Sprintf("%v", sliced), dt)
	default:
		return datatable.NewValue(fmt.Sprintf("%v", col.ValueStr(pos)), dt)
	}
}
