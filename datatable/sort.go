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

package datatable

import (
	"math/big"
	"strings"
	"time"
)

// compareValues orders two non-null cell values by their raw content:
// numerically for numbers, lexicographically for strings, chronologically
// for dates and timestamps. Values that cannot be compared by type fall
// back to their formatted representation. Null handling and direction are
// the caller's concern.
func compareValues(a, b Value) int {
	if ai, aok := asInt64(a.Raw); aok {
		if bi, bok := asInt64(b.Raw); bok {
			return compare(ai, bi)
		}
		if bf, bok := asFloat64(b.Raw); bok {
			return compare(float64(ai), bf)
		}
	}
	if af, aok := asFloat64(a.Raw); aok {
		if bf, bok := asFloat64(b.Raw); bok {
			return compare(af, bf)
		}
		if bi, bok := asInt64(b.Raw); bok {
			return compare(af, float64(bi))
		}
	}

	if at, aok := a.Raw.(time.Time); aok {
		if bt, bok := b.Raw.(time.Time); bok {
			return at.Compare(bt)
		}
	}

	if ab, aok := a.Raw.(bool); aok {
		if bb, bok := b.Raw.(bool); bok {
			// false sorts before true
			switch {
			case ab == bb:
				return 0
			case bb:
				return -1
			default:
				return 1
			}
		}
	}

	if ad, aok := a.Raw.(*big.Rat); aok {
		if bd, bok := b.Raw.(*big.Rat); bok {
			return ad.Cmp(bd)
		}
	}

	if as, aok := a.Raw.(string); aok {
		if bs, bok := b.Raw.(string); bok {
			return strings.Compare(as, bs)
		}
	}

	return strings.Compare(a.Formatted, b.Formatted)
}

func compare[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func asInt64(raw interface{}) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	default:
		return 0, false
	}
}

func asFloat64(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
