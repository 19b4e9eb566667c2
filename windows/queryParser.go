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
	"fmt"
	"strings"

	"gridbrowser/datatable"
	"gridbrowser/internal/filter"
)

// QueryParser compiles query bar expressions like
//
//	age > 25 AND status = 'active'
//
// into datatable filters. Supported operators: = != < > <= >= and ~
// (contains); expressions chain with AND/OR, evaluated left to right. A
// bare term with no operator becomes an all-column contains search.
type QueryParser struct {
	columnMap map[string]struct{}
}

// NewQueryParser creates a parser that validates column references
// against headers.
func NewQueryParser(headers []string) *QueryParser {
	columnMap := make(map[string]struct{}, len(headers))
	for _, header := range headers {
		columnMap[strings.ToLower(header)] = struct{}{}
	}
	return &QueryParser{columnMap: columnMap}
}

// Parse compiles a query string into a filter. An empty query returns a
// nil filter (match all).
func (qp *QueryParser) Parse(queryStr string) (datatable.Filter, error) {
	if strings.TrimSpace(queryStr) == "" {
		return nil, nil
	}

	parts := qp.splitByLogicOps(queryStr)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: empty query", datatable.ErrInvalidFilter)
	}

	var acc datatable.Filter
	pending := filter.LogicAND
	expectExpr := true

	for _, part := range parts {
		if part.isOperator {
			if expectExpr {
				return nil, fmt.Errorf("%w: operator %q without left operand", datatable.ErrInvalidFilter, part.text)
			}
			if strings.EqualFold(part.text, "AND") {
				pending = filter.LogicAND
			} else {
				pending = filter.LogicOR
			}
			expectExpr = true
			continue
		}

		expr, err := qp.parseExpression(part.text)
		if err != nil {
			return nil, err
		}
		switch {
		case acc == nil:
			acc = expr
		case pending == filter.LogicAND:
			acc = filter.And(acc, expr)
		default:
			acc = filter.Or(acc, expr)
		}
		expectExpr = false
	}

	if expectExpr {
		return nil, fmt.Errorf("%w: trailing logical operator", datatable.ErrInvalidFilter)
	}
	return acc, nil
}

type queryPart struct {
	text       string
	isOperator bool
}

// splitByLogicOps splits the query by AND/OR while preserving the
// operators. The keywords only count at word boundaries so values may
// contain them.
func (qp *QueryParser) splitByLogicOps(query string) []queryPart {
	parts := make([]queryPart, 0)
	current := ""

	flush := func() {
		if text := strings.TrimSpace(current); text != "" {
			parts = append(parts, queryPart{text: text})
		}
		current = ""
	}

	i := 0
scan:
	for i < len(query) {
		for _, kw := range []string{"AND", "OR"} {
			if i+len(kw) <= len(query) && strings.EqualFold(query[i:i+len(kw)], kw) {
				if (i == 0 || isWhitespace(query[i-1])) && (i+len(kw) >= len(query) || isWhitespace(query[i+len(kw)])) {
					flush()
					parts = append(parts, queryPart{text: strings.ToUpper(kw), isOperator: true})
					i += len(kw)
					continue scan
				}
			}
		}
		current += string(query[i])
		i++
	}
	flush()

	return parts
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// parseExpression compiles a single comparison like "column = value".
func (qp *QueryParser) parseExpression(exprStr string) (datatable.Filter, error) {
	exprStr = strings.TrimSpace(exprStr)

	// Two-character operators must match before their one-character
	// prefixes.
	operators := []struct {
		op     datatable.CompareOp
		symbol string
	}{
		{datatable.OpGreaterEqual, ">="},
		{datatable.OpLessEqual, "<="},
		{datatable.OpNotEqual, "!="},
		{datatable.OpEqual, "="},
		{datatable.OpGreater, ">"},
		{datatable.OpLess, "<"},
		{datatable.OpContains, "~"},
	}

	for _, opInfo := range operators {
		idx := strings.Index(exprStr, opInfo.symbol)
		if idx <= 0 {
			continue
		}

		columnName := strings.TrimSpace(exprStr[:idx])
		operand := strings.TrimSpace(exprStr[idx+len(opInfo.symbol):])
		operand = strings.Trim(operand, "\"'")

		if _, exists := qp.columnMap[strings.ToLower(columnName)]; !exists {
			return nil, fmt.Errorf("%w: %s", datatable.ErrColumnNotFound, columnName)
		}

		return &datatable.ColumnFilter{
			Column:  columnName,
			Op:      opInfo.op,
			Operand: operand,
		}, nil
	}

	// No operator: contains search across all columns.
	return &datatable.TextSearchFilter{Term: exprStr}, nil
}
