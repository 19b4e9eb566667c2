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
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"gridbrowser/datatable"
)

// ExportFormat represents the supported export formats
type ExportFormat int

const (
	FormatParquet ExportFormat = iota
	FormatCSV
	FormatJSON
)

// Extension returns the file extension for the format.
func (f ExportFormat) Extension() string {
	switch f {
	case FormatParquet:
		return ".parquet"
	case FormatCSV:
		return ".csv"
	default:
		return ".json"
	}
}

// ExportVisible writes the model's current visible projection (filtered,
// sorted, visible columns only) to the given path.
func ExportVisible(model *datatable.TableModel, format ExportFormat, filePath string) error {
	if model.VisibleRowCount() == 0 {
		return fmt.Errorf("%w: no data to export", datatable.ErrExportFailed)
	}

	switch format {
	case FormatCSV:
		return exportCSV(model, filePath)
	case FormatJSON:
		return exportJSON(model, filePath)
	case FormatParquet:
		table, err := visibleArrowTable(model)
		if err != nil {
			return err
		}
		defer table.Release()
		return ExportToParquet(table, filePath)
	default:
		return fmt.Errorf("%w: unknown format %d", datatable.ErrExportFailed, format)
	}
}

// ExportToParquet exports an Arrow table to a Parquet file.
func ExportToParquet(table arrow.Table, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(table.Schema(), file, props, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	defer writer.Close()

	if err := writer.WriteTable(table, table.NumRows()); err != nil {
		return fmt.Errorf("failed to write table to parquet: %w", err)
	}
	return nil
}

// exportCSV writes the visible projection with a header row of visible
// column names.
func exportCSV(model *datatable.TableModel, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := make([]string, model.VisibleColumnCount())
	for c := range headers {
		headers[c], _ = model.VisibleColumnName(c)
	}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for r := 0; r < model.VisibleRowCount(); r++ {
		row, err := model.VisibleRow(r)
		if err != nil {
			return fmt.Errorf("failed to read row %d: %w", r, err)
		}
		record := make([]string, len(row))
		for c, v := range row {
			record[c] = v.Formatted
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	return nil
}

// exportJSON writes the visible projection as an indented array of
// objects, preserving value types where JSON can express them.
func exportJSON(model *datatable.TableModel, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	headers := make([]string, model.VisibleColumnCount())
	for c := range headers {
		headers[c], _ = model.VisibleColumnName(c)
	}

	records := make([]map[string]interface{}, 0, model.VisibleRowCount())
	for r := 0; r < model.VisibleRowCount(); r++ {
		row, err := model.VisibleRow(r)
		if err != nil {
			return fmt.Errorf("failed to read row %d: %w", r, err)
		}
		record := make(map[string]interface{}, len(row))
		for c, v := range row {
			record[headers[c]] = jsonValue(v)
		}
		records = append(records, record)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// jsonValue picks the JSON representation of a cell.
func jsonValue(v datatable.Value) interface{} {
	if v.IsNull {
		return nil
	}
	switch v.Type {
	case datatable.TypeInt, datatable.TypeFloat, datatable.TypeBool, datatable.TypeString:
		return v.Raw
	default:
		// Dates, timestamps, decimals and nested values export as their
		// formatted text.
		return v.Formatted
	}
}

// visibleArrowTable builds an Arrow table holding the visible projection.
// Callers must release the returned table.
func visibleArrowTable(model *datatable.TableModel) (arrow.Table, error) {
	numCols := model.VisibleColumnCount()
	fields := make([]arrow.Field, numCols)
	for c := 0; c < numCols; c++ {
		name, _ := model.VisibleColumnName(c)
		desc, _ := model.VisibleColumn(c)
		fields[c] = arrow.Field{Name: name, Type: arrowType(columnDataType(model, c, desc)), Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	pool := memory.NewGoAllocator()
	builder := array.NewRecordBuilder(pool, schema)
	defer builder.Release()

	for r := 0; r < model.VisibleRowCount(); r++ {
		row, err := model.VisibleRow(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", r, err)
		}
		for c, v := range row {
			appendCell(builder.Field(c), v)
		}
	}

	rec := builder.NewRecord()
	defer rec.Release()

	return array.NewTableFromRecords(schema, []arrow.Record{rec}), nil
}

func columnDataType(model *datatable.TableModel, visCol int, desc datatable.Column) datatable.DataType {
	indices := model.GetVisibleColumnIndices()
	if visCol < len(indices) {
		if dt, err := model.Source().ColumnType(indices[visCol]); err == nil {
			return dt
		}
	}
	return datatable.TypeString
}

// arrowType maps a datatable type to the Arrow type used for export.
func arrowType(dt datatable.DataType) arrow.DataType {
	switch dt {
	case datatable.TypeInt:
		return arrow.PrimitiveTypes.Int64
	case datatable.TypeFloat:
		return arrow.PrimitiveTypes.Float64
	case datatable.TypeBool:
		return arrow.FixedWidthTypes.Boolean
	case datatable.TypeDate:
		return arrow.FixedWidthTypes.Date64
	case datatable.TypeTimestamp:
		return arrow.FixedWidthTypes.Timestamp_ns
	default:
		return arrow.BinaryTypes.String
	}
}

// appendCell appends a cell value to the matching Arrow builder, falling
// back to the formatted text when the raw value does not fit the column
// type.
func appendCell(b array.Builder, v datatable.Value) {
	if v.IsNull {
		b.AppendNull()
		return
	}

	switch builder := b.(type) {
	case *array.Int64Builder:
		if i, ok := rawInt64(v.Raw); ok {
			builder.Append(i)
			return
		}
	case *array.Float64Builder:
		switch f := v.Raw.(type) {
		case float64:
			builder.Append(f)
			return
		case float32:
			builder.Append(float64(f))
			return
		}
	case *array.BooleanBuilder:
		if bv, ok := v.Raw.(bool); ok {
			builder.Append(bv)
			return
		}
	case *array.Date64Builder:
		if t, ok := v.Raw.(time.Time); ok {
			builder.Append(arrow.Date64FromTime(t))
			return
		}
	case *array.TimestampBuilder:
		if t, ok := v.Raw.(time.Time); ok {
			builder.Append(arrow.Timestamp(t.UnixNano()))
			return
		}
	case *array.StringBuilder:
		builder.Append(v.Formatted)
		return
	}
	b.AppendNull()
}

func rawInt64(raw interface{}) (int64, bool) {
	switch i := raw.(type) {
	case int:
		return int64(i), true
	case int32:
		return int64(i), true
	case int64:
		return i, true
	default:
		return 0, false
	}
}
