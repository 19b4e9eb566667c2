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
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// TokenType represents the type of a syntax token
type TokenType int

const (
	TokenKeyword TokenType = iota
	TokenString
	TokenComment
	TokenNumber
	TokenOperator
	TokenIdentifier
	TokenBuiltinType
)

// StyledCell represents a single character with its style
type StyledCell struct {
	Rune  rune
	Style widget.TextGridStyle
}

// SyntaxStyles defines the color scheme for different token types
var SyntaxStyles = map[TokenType]widget.TextGridStyle{
	TokenKeyword: &widget.CustomTextGridStyle{
		FGColor:   color.NRGBA{R: 255, G: 20, B: 147, A: 255},
		TextStyle: fyne.TextStyle{Bold: true},
	},
	TokenString: &widget.CustomTextGridStyle{
		FGColor: color.NRGBA{R: 0, G: 180, B: 0, A: 255},
	},
	TokenComment: &widget.CustomTextGridStyle{
		FGColor:   color.NRGBA{R: 128, G: 128, B: 128, A: 255},
		TextStyle: fyne.TextStyle{Italic: true},
	},
	TokenNumber: &widget.CustomTextGridStyle{
		FGColor: color.NRGBA{R: 0, G: 150, B: 255, A: 255},
	},
	TokenOperator: &widget.CustomTextGridStyle{
		FGColor: color.NRGBA{R: 120, G: 120, B: 120, A: 255},
	},
	TokenBuiltinType: &widget.CustomTextGridStyle{
		FGColor:   color.NRGBA{R: 0, G: 180, B: 180, A: 255},
		TextStyle: fyne.TextStyle{Bold: true},
	},
	TokenIdentifier: nil, // Use default theme color
}

// Go keywords registry
var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true,
	"continue": true, "default": true, "defer": true, "else": true,
	"fallthrough": true, "for": true, "func": true, "go": true,
	"goto": true, "if": true, "import": true, "interface": true,
	"map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true,
	"var": true,
}

// Go built-in types and predeclared identifiers
var goBuiltinTypes = map[string]bool{
	"bool": true, "byte": true, "complex64": true, "complex128": true,
	"error": true, "float32": true, "float64": true, "int": true,
	"int8": true, "int16": true, "int32": true, "int64": true,
	"rune": true, "string": true, "uint": true, "uint8": true,
	"uint16": true, "uint32": true, "uint64": true, "uintptr": true,
	"any": true, "comparable": true, "nil": true, "true": true, "false": true,
}

// ParseGoLine parses a single source line into styled cells. Parsing per
// line keeps highlighting cheap enough to run on every keystroke; the
// price is that multi-line constructs (block comments, raw strings) are
// not tracked across lines.
func ParseGoLine(line string) []StyledCell {
	cells := make([]StyledCell, 0, len(line))
	runes := []rune(line)
	pos := 0

	for pos < len(runes) {
		if syntaxIsWhitespace(runes[pos]) {
			cells = append(cells, StyledCell{Rune: runes[pos]})
			pos++
			continue
		}

		// Line comments swallow the rest of the line.
		if pos+1 < len(runes) && runes[pos] == '/' && runes[pos+1] == '/' {
			for pos < len(runes) {
				cells = append(cells, StyledCell{Rune: runes[pos], Style: SyntaxStyles[TokenComment]})
				pos++
			}
			break
		}

		if runes[pos] == '"' || runes[pos] == '`' {
			endPos := syntaxParseString(runes, pos)
			for i := pos; i < endPos; i++ {
				cells = append(cells, StyledCell{Rune: runes[i], Style: SyntaxStyles[TokenString]})
			}
			pos = endPos
			continue
		}

		if syntaxIsDigit(runes[pos]) {
			endPos := syntaxParseNumber(runes, pos)
			for i := pos; i < endPos; i++ {
				cells = append(cells, StyledCell{Rune: runes[i], Style: SyntaxStyles[TokenNumber]})
			}
			pos = endPos
			continue
		}

		if syntaxIsLetter(runes[pos]) || runes[pos] == '_' {
			endPos := syntaxParseIdentifier(runes, pos)
			word := string(runes[pos:endPos])

			var style widget.TextGridStyle
			if goKeywords[word] {
				style = SyntaxStyles[TokenKeyword]
			} else if goBuiltinTypes[word] {
				style = SyntaxStyles[TokenBuiltinType]
			} else {
				style = SyntaxStyles[TokenIdentifier]
			}

			for i := pos; i < endPos; i++ {
				cells = append(cells, StyledCell{Rune: runes[i], Style: style})
			}
			pos = endPos
			continue
		}

		if syntaxIsOperator(runes[pos]) {
			cells = append(cells, StyledCell{Rune: runes[pos], Style: SyntaxStyles[TokenOperator]})
		} else {
			cells = append(cells, StyledCell{Rune: runes[pos]})
		}
		pos++
	}

	return cells
}

// syntaxParseString parses a string literal starting at position start
func syntaxParseString(runes []rune, start int) int {
	quote := runes[start]
	pos := start + 1

	if quote == '`' {
		for pos < len(runes) {
			if runes[pos] == '`' {
				return pos + 1
			}
			pos++
		}
		return pos // Unclosed string
	}

	for pos < len(runes) {
		if runes[pos] == '\\' && pos+1 < len(runes) {
			pos += 2 // Skip escaped character
			continue
		}
		if runes[pos] == '"' {
			return pos + 1
		}
		pos++
	}
	return pos // Unclosed string
}

// syntaxParseNumber parses a number literal starting at position start
func syntaxParseNumber(runes []rune, start int) int {
	pos := start
	for pos < len(runes) {
		r := runes[pos]
		if !syntaxIsDigit(r) && r != '.' && r != 'e' && r != 'E' && r != 'x' && r != 'X' {
			break
		}
		pos++
	}
	return pos
}

// syntaxParseIdentifier parses an identifier starting at position start
func syntaxParseIdentifier(runes []rune, start int) int {
	pos := start
	for pos < len(runes) {
		r := runes[pos]
		if !syntaxIsLetter(r) && !syntaxIsDigit(r) && r != '_' {
			break
		}
		pos++
	}
	return pos
}

func syntaxIsWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func syntaxIsDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func syntaxIsLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func syntaxIsOperator(r rune) bool {
	return strings.ContainsRune("+-*/%&|^<>=!:;,.()[]{}~", r)
}

// SyntaxPreview renders highlighted Go source in a read-only text grid.
type SyntaxPreview struct {
	Grid *widget.TextGrid
}

// NewSyntaxPreview creates an empty preview.
func NewSyntaxPreview() *SyntaxPreview {
	return &SyntaxPreview{Grid: widget.NewTextGrid()}
}

// SetText replaces the preview content with highlighted source.
func (sp *SyntaxPreview) SetText(code string) {
	rows := make([]widget.TextGridRow, 0)
	for _, line := range strings.Split(code, "\n") {
		cells := ParseGoLine(line)
		row := widget.TextGridRow{Cells: make([]widget.TextGridCell, len(cells))}
		for i, c := range cells {
			row.Cells[i] = widget.TextGridCell{Rune: c.Rune, Style: c.Style}
		}
		rows = append(rows, row)
	}
	sp.Grid.Rows = rows
	sp.Grid.Refresh()
}
