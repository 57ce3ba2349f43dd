// Package core holds the budget domain model and the loose-coercion rules
// applied when reading rows back from the spreadsheet.
//
// Amounts and budgets are whole currency units stored as strings in the row
// store. Rows edited by hand can carry anything, so reads go through
// CoerceInt, which never fails: malformed input becomes zero and the caller
// decides whether to record a warning.
package core

import (
	"strconv"
	"strings"
)

// CoerceInt converts a raw cell value to a whole-unit amount.
//
// It accepts integer and decimal strings ("500", "12.9", "12,9") and
// truncates any fractional part toward zero. Empty input and anything
// unparsable coerce to 0; ok reports whether the input parsed cleanly, so
// callers can surface a warning without changing the value.
//
// Examples:
//
//	CoerceInt("500")  -> 500, true
//	CoerceInt("12.9") -> 12, true
//	CoerceInt("")     -> 0, true  (empty cell, not malformed)
//	CoerceInt("abc")  -> 0, false
func CoerceInt(s string) (v int64, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}
	// Normalize decimal comma before the float fallback.
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return int64(f), true
}
