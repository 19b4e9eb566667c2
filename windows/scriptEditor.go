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
	"bytes"
	"fmt"
	"reflect"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"gridbrowser/datatable"
)

// ScriptEditor is a small Go scripting pane. Scripts run in an embedded
// yaegi interpreter with the standard library preloaded and the current
// table exposed through the "table" package.
type ScriptEditor struct {
	codeEditor    *widget.Entry
	preview       *SyntaxPreview
	outputText    *widget.RichText
	executeButton *widget.Button
	clearButton   *widget.Button
	container     *fyne.Container

	// modelFn resolves the table the script sees at execution time, so
	// switching tabs between runs picks up the newly selected table.
	modelFn func() *datatable.TableModel
}

// NewScriptEditor creates a script editor bound to the given model resolver.
func NewScriptEditor(modelFn func() *datatable.TableModel) *ScriptEditor {
	se := &ScriptEditor{
		preview: NewSyntaxPreview(),
		modelFn: modelFn,
	}

	se.codeEditor = widget.NewMultiLineEntry()
	se.codeEditor.SetPlaceHolder("// Go code, e.g.\n// for _, row := range table.Rows() {\n//     fmt.Println(row)\n// }")
	se.codeEditor.TextStyle = fyne.TextStyle{Monospace: true}
	se.codeEditor.OnChanged = func(text string) {
		se.preview.SetText(text)
	}

	se.outputText = widget.NewRichText()
	se.outputText.Wrapping = fyne.TextWrapWord

	se.executeButton = widget.NewButtonWithIcon("Run", theme.MediaPlayIcon(), se.executeCode)
	se.clearButton = widget.NewButtonWithIcon("Clear Output", theme.ContentClearIcon(), func() {
		se.setOutput("")
	})

	editorSplit := container.NewHSplit(
		container.NewScroll(se.codeEditor),
		container.NewScroll(se.preview.Grid),
	)
	editorSplit.SetOffset(0.5)

	mainSplit := container.NewVSplit(
		editorSplit,
		container.NewScroll(se.outputText),
	)
	mainSplit.SetOffset(0.65)

	toolbar := container.NewHBox(se.executeButton, se.clearButton)
	se.container = container.NewBorder(toolbar, nil, nil, nil, mainSplit)

	return se
}

// GetContainer returns the main container for the script editor
func (se *ScriptEditor) GetContainer() *fyne.Container {
	return se.container
}

// executeCode runs the editor content through yaegi asynchronously
func (se *ScriptEditor) executeCode() {
	code := se.codeEditor.Text
	if code == "" {
		se.setOutput("Error: No code to execute\n")
		return
	}

	se.setOutput("Executing script...\n")
	se.appendOutput("----------------------------------------\n")
	se.executeButton.Disable()

	go func() {
		defer fyne.Do(func() { se.executeButton.Enable() })

		var outputBuffer bytes.Buffer

		i := interp.New(interp.Options{
			Stdout: &outputBuffer,
			Stderr: &outputBuffer,
		})

		if err := i.Use(stdlib.Symbols); err != nil {
			se.appendOutput(fmt.Sprintf("Error loading stdlib: %v\n", err))
			return
		}

		if err := i.Use(se.tableSymbols()); err != nil {
			se.appendOutput(fmt.Sprintf("Error loading table symbols: %v\n", err))
			return
		}

		wrappedCode := fmt.Sprintf(`package main

import (
	"fmt"
	"strings"
	"gridbrowser/table"
)

func main() {
	%s
}
`, code)

		_, execError := i.Eval(wrappedCode)

		capturedOutput := outputBuffer.String()
		if capturedOutput != "" {
			se.appendOutputBold(capturedOutput)
		}

		if execError != nil {
			se.appendOutput(fmt.Sprintf("\nExecution error: %v\n", execError))
		}

		se.appendOutput("----------------------------------------\n")
		se.appendOutput("Execution completed.\n")
	}()
}

// tableSymbols exposes the currently displayed table to scripts as the
// "table" package: Headers, Rows, RowCount and Cell all reflect the
// visible projection, so search, query and sort applied in the UI carry
// through to the script.
func (se *ScriptEditor) tableSymbols() interp.Exports {
	headers := func() []string {
		model := se.modelFn()
		if model == nil {
			return nil
		}
		var names []string
		for i := 0; i < model.VisibleColumnCount(); i++ {
			name, err := model.VisibleColumnName(i)
			if err != nil {
				continue
			}
			names = append(names, name)
		}
		return names
	}
	rowCount := func() int {
		model := se.modelFn()
		if model == nil {
			return 0
		}
		return model.VisibleRowCount()
	}
	cell := func(row, col int) string {
		model := se.modelFn()
		if model == nil {
			return ""
		}
		v, err := model.VisibleCell(row, col)
		if err != nil {
			return ""
		}
		return v.Formatted
	}
	rows := func() [][]string {
		model := se.modelFn()
		if model == nil {
			return nil
		}
		out := make([][]string, 0, model.VisibleRowCount())
		for r := 0; r < model.VisibleRowCount(); r++ {
			values, err := model.VisibleRow(r)
			if err != nil {
				continue
			}
			cells := make([]string, len(values))
			for c, v := range values {
				cells[c] = v.Formatted
			}
			out = append(out, cells)
		}
		return out
	}

	return interp.Exports{
		"gridbrowser/table/table": {
			"Headers":  reflect.ValueOf(headers),
			"RowCount": reflect.ValueOf(rowCount),
			"Cell":     reflect.ValueOf(cell),
			"Rows":     reflect.ValueOf(rows),
		},
	}
}

// setOutput replaces the output pane content with normal text
func (se *ScriptEditor) setOutput(text string) {
	fyne.Do(func() {
		segment := &widget.TextSegment{
			Text: text,
			Style: widget.RichTextStyle{
				TextStyle: fyne.TextStyle{Bold: false},
				ColorName: theme.ColorNameForeground,
			},
		}
		se.outputText.Segments = []widget.RichTextSegment{segment}
		se.outputText.Refresh()
	})
}

// appendOutput adds text to the output pane with normal styling
func (se *ScriptEditor) appendOutput(text string) {
	se.appendOutputStyled(text, false)
}

// appendOutputBold adds text to the output pane with bold styling
func (se *ScriptEditor) appendOutputBold(text string) {
	se.appendOutputStyled(text, true)
}

func (se *ScriptEditor) appendOutputStyled(text string, bold bool) {
	fyne.Do(func() {
		segment := &widget.TextSegment{
			Text: text,
			Style: widget.RichTextStyle{
				TextStyle: fyne.TextStyle{Bold: bold},
				ColorName: theme.ColorNameForeground,
			},
		}
		se.outputText.Segments = append(se.outputText.Segments, segment)
		se.outputText.Refresh()
	})
}

// ShowScriptWindow opens the script editor in its own window.
func ShowScriptWindow(a fyne.App, modelFn func() *datatable.TableModel) {
	w := a.NewWindow("Script Editor")
	se := NewScriptEditor(modelFn)
	w.SetContent(se.GetContainer())
	w.Resize(fyne.NewSize(900, 700))
	w.Show()
}
