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

// Package csv provides a datatable data source for delimiter-separated
// files.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"gridbrowser/adapters/slice"
	"gridbrowser/datatable"
)

// Config controls how a CSV stream is read.
type Config struct {
	// Delimiter is the field separator.
	Delimiter rune

	// HasHeaders indicates that the first record holds column names.
	// When false, columns are named column_1, column_2, ...
	HasHeaders bool

	// TrimSpace removes surrounding whitespace from every cell.
	TrimSpace bool
}

// DefaultConfig returns the standard comma-separated configuration with
// a header row.
func DefaultConfig() Config {
	return Config{
		Delimiter:  ',',
		HasHeaders: true,
		TrimSpace:  true,
	}
}

// Source is a data source backed by a parsed CSV stream.
type Source struct {
	*slice.Source
	meta datatable.Metadata
}

// Metadata implements datatable.DataSource.
func (s *Source) Metadata() datatable.Metadata { return s.meta }

// NewFromFile reads and parses the file at path.
func NewFromFile(path string, config Config) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	src, err := NewFromReader(f, config)
	if err != nil {
		return nil, err
	}
	src.meta["path"] = path
	return src, nil
}

// NewFromReader parses CSV data from r.
// Returns ErrEmptyData when the stream holds no records.
func NewFromReader(r io.Reader, config Config) (*Source, error) {
	reader := csv.NewReader(r)
	if config.Delimiter != 0 {
		reader.Comma = config.Delimiter
	}
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: CSV stream holds no records", datatable.ErrEmptyData)
	}

	var headers []string
	var rows [][]string
	if config.HasHeaders {
		headers = records[0]
		rows = records[1:]
	} else {
		headers = make([]string, len(records[0]))
		for i := range headers {
			headers[i] = fmt.Sprintf("column_%d", i+1)
		}
		rows = records
	}

	// Ragged records are padded so short rows surface as nulls instead of
	// failing the whole load.
	width := len(headers)
	for i, row := range rows {
		if config.TrimSpace {
			for c := range row {
				row[c] = strings.TrimSpace(row[c])
			}
		}
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			rows[i] = padded
		} else if len(row) > width {
			rows[i] = row[:width]
		}
	}
	if config.TrimSpace {
		for i := range headers {
			headers[i] = strings.TrimSpace(headers[i])
		}
	}

	inner, err := slice.NewFromRows(headers, rows)
	if err != nil {
		return nil, err
	}

	return &Source{
		Source: inner,
		meta: datatable.Metadata{
			"adapter":   "csv",
			"delimiter": string(config.Delimiter),
		},
	}, nil
}
