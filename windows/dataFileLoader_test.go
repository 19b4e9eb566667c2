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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProfile = `{
	"shareCredentialsVersion": 1,
	"endpoint": "https://sharing.example.com/delta-sharing/",
	"bearerToken": "token"
}`

func TestDetectFileType(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		want    FileType
	}{
		{"CSV", "data.csv", "", FileTypeCSV},
		{"TSV", "data.tsv", "", FileTypeCSV},
		{"UpperCaseExt", "DATA.CSV", "", FileTypeCSV},
		{"Parquet", "data.parquet", "", FileTypeParquet},
		{"JSONRecords", "data.json", `[{"a": 1}]`, FileTypeJSON},
		{"ShareProfile", "config.share", sampleProfile, FileTypeSharingProfile},
		{"ProfileInJSONFile", "profile.json", sampleProfile, FileTypeSharingProfile},
		{"ProfileInTxtFile", "profile.txt", sampleProfile, FileTypeSharingProfile},
		{"ShareFileWithoutProfileKeys", "data.share", `{"endpoint": "x"}`, FileTypeJSON},
		{"Unknown", "data.xlsx", "", FileTypeUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectFileType(tc.path, tc.content))
		})
	}
}

func TestIsSharingProfile(t *testing.T) {
	assert.True(t, isSharingProfile(sampleProfile))
	assert.False(t, isSharingProfile(`{"endpoint": "x", "bearerToken": "y"}`))
	assert.False(t, isSharingProfile("not json"))
	assert.False(t, isSharingProfile(""))
}

func TestDetectCSVSeparator(t *testing.T) {
	tests := []struct {
		name      string
		firstLine string
		want      rune
	}{
		{"Comma", "name,age,city", ','},
		{"Semicolon", "name;age;city", ';'},
		{"Tab", "name\tage\tcity", '\t'},
		{"Pipe", "name|age|city", '|'},
		{"DefaultsToComma", "singlecolumn", ','},
		{"Empty", "", ','},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "data.csv")
			require.NoError(t, os.WriteFile(path, []byte(tc.firstLine+"\n"), 0o644))

			sep, err := detectCSVSeparator(path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, sep)
		})
	}

	t.Run("MissingFile", func(t *testing.T) {
		_, err := detectCSVSeparator(filepath.Join(t.TempDir(), "missing.csv"))
		assert.Error(t, err)
	})
}

func TestGetSeparatorName(t *testing.T) {
	assert.Equal(t, "comma", getSeparatorName(','))
	assert.Equal(t, "semicolon", getSeparatorName(';'))
	assert.Equal(t, "tab", getSeparatorName('\t'))
	assert.Equal(t, "pipe", getSeparatorName('|'))
}
