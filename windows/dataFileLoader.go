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
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	arrowadapter "gridbrowser/adapters/arrow"
	csvadapter "gridbrowser/adapters/csv"
	sliceadapter "gridbrowser/adapters/slice"
	"gridbrowser/datatable"
)

// FileType represents the type of data file
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeCSV
	FileTypeParquet
	FileTypeJSON
	FileTypeSharingProfile
)

// DetectFileType determines the type of file based on extension and content
func DetectFileType(filePath string, content string) FileType {
	ext := strings.ToLower(filepath.Ext(filePath))

	switch ext {
	case ".csv", ".tsv":
		return FileTypeCSV
	case ".parquet":
		return FileTypeParquet
	case ".json", ".share", ".txt":
		if isSharingProfile(content) {
			return FileTypeSharingProfile
		}
		return FileTypeJSON
	default:
		return FileTypeUnknown
	}
}

// isSharingProfile checks if the content looks like a Delta Sharing
// profile (shareCredentialsVersion, endpoint and bearerToken present).
func isSharingProfile(content string) bool {
	var profile map[string]interface{}
	if err := json.Unmarshal([]byte(content), &profile); err != nil {
		return false
	}

	_, hasVersion := profile["shareCredentialsVersion"]
	_, hasEndpoint := profile["endpoint"]
	_, hasBearerToken := profile["bearerToken"]

	return hasVersion && hasEndpoint && hasBearerToken
}

// detectCSVSeparator tries to detect the CSV separator from the first line
func detectCSVSeparator(filePath string) (rune, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return ',', fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return ',', nil
	}

	firstLine := scanner.Text()
	if firstLine == "" {
		return ',', nil
	}

	separators := map[rune]int{
		',':  strings.Count(firstLine, ","),
		';':  strings.Count(firstLine, ";"),
		'\t': strings.Count(firstLine, "\t"),
		'|':  strings.Count(firstLine, "|"),
	}

	maxCount := 0
	detected := ','
	for sep, count := range separators {
		if count > maxCount {
			maxCount = count
			detected = sep
		}
	}
	return detected, nil
}

// getSeparatorName returns a human-readable name for the separator
func getSeparatorName(sep rune) string {
	switch sep {
	case ',':
		return "comma"
	case ';':
		return "semicolon"
	case '\t':
		return "tab"
	case '|':
		return "pipe"
	default:
		return string(sep)
	}
}

// LoadDataFile loads a data file using the appropriate adapter and
// displays it in a new browser tab.
func (t *MainWindow) LoadDataFile(filePath string) error {
	fileType := DetectFileType(filePath, "")

	switch fileType {
	case FileTypeCSV:
		return t.loadCSVFile(filePath)
	case FileTypeParquet:
		return t.loadParquetFile(filePath)
	case FileTypeJSON:
		return t.loadJSONFile(filePath)
	default:
		return fmt.Errorf("unsupported file type")
	}
}

// loadCSVFile loads a CSV file using the CSV adapter
func (t *MainWindow) loadCSVFile(filePath string) error {
	t.SetStatus("Loading CSV file: " + filepath.Base(filePath))

	separator, err := detectCSVSeparator(filePath)
	if err != nil {
		separator = ','
	}

	config := csvadapter.DefaultConfig()
	config.Delimiter = separator

	dataSource, err := csvadapter.NewFromFile(filePath, config)
	if err != nil {
		return fmt.Errorf("failed to load CSV file: %w", err)
	}

	model, err := datatable.NewTableModel(dataSource)
	if err != nil {
		return fmt.Errorf("failed to create table model: %w", err)
	}

	fyne.Do(func() { t.browser.ShowTable(model, filepath.Base(filePath)) })

	t.SetStatus(fmt.Sprintf("Loaded CSV file: %s (%d rows, %d columns, separator: %s)",
		filepath.Base(filePath), dataSource.RowCount(), dataSource.ColumnCount(),
		getSeparatorName(separator)))
	return nil
}

// loadParquetFile loads a Parquet file through the Arrow adapter
func (t *MainWindow) loadParquetFile(filePath string) error {
	t.SetStatus("Loading Parquet file: " + filepath.Base(filePath))

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer f.Close()

	fileInfo, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to get file info: %w", err)
	}

	pf, err := file.NewParquetReader(f, file.WithReadProps(&parquet.ReaderProperties{}))
	if err != nil {
		return fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pf.Close()

	mem := memory.NewGoAllocator()
	arrowReader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return fmt.Errorf("failed to create arrow reader: %w", err)
	}

	table, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return fmt.Errorf("failed to read parquet data: %w", err)
	}
	defer table.Release()

	dataSource, err := arrowadapter.NewFromArrowTable(table)
	if err != nil {
		return fmt.Errorf("failed to create arrow data source: %w", err)
	}

	model, err := datatable.NewTableModel(dataSource)
	if err != nil {
		return fmt.Errorf("failed to create table model: %w", err)
	}

	fyne.Do(func() { t.browser.ShowTable(model, filepath.Base(filePath)) })
	t.SetStatus(fmt.Sprintf("Loaded Parquet file: %s (%d rows, %d columns, %.2f MB)",
		filepath.Base(filePath), dataSource.RowCount(), dataSource.ColumnCount(),
		float64(fileInfo.Size())/(1024*1024)))
	return nil
}

// loadJSONFile loads a JSON file using the slice adapter
func (t *MainWindow) loadJSONFile(filePath string) error {
	t.SetStatus("Loading JSON file: " + filepath.Base(filePath))

	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}

	var data []map[string]interface{}
	if err := json.Unmarshal(content, &data); err != nil {
		// Single object files load as one row.
		var singleObj map[string]interface{}
		if err := json.Unmarshal(content, &singleObj); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
		data = []map[string]interface{}{singleObj}
	}

	if len(data) == 0 {
		return fmt.Errorf("%w: JSON file has no records", datatable.ErrEmptyData)
	}

	dataSource, err := sliceadapter.NewFromMaps(data)
	if err != nil {
		return fmt.Errorf("failed to create data source from JSON: %w", err)
	}

	model, err := datatable.NewTableModel(dataSource)
	if err != nil {
		return fmt.Errorf("failed to create table model: %w", err)
	}

	fyne.Do(func() { t.browser.ShowTable(model, filepath.Base(filePath)) })
	t.SetStatus(fmt.Sprintf("Loaded JSON file: %s (%d rows, %d columns)",
		filepath.Base(filePath), dataSource.RowCount(), dataSource.ColumnCount()))
	return nil
}

// handleDataFileLoad loads a file in the background and reports errors
// through a notification and the status bar.
func (t *MainWindow) handleDataFileLoad(filePath string) {
	go func() {
		if err := t.LoadDataFile(filePath); err != nil {
			errMsg := err.Error()
			t.a.SendNotification(&fyne.Notification{
				Title:   "Error Loading File",
				Content: errMsg,
			})
			t.SetStatus("Error loading file: " + errMsg)
		}
	}()
}
