// Package ident normalizes employee identifiers and reports duplicates.
package ident

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Normalize returns the canonical string form of an identifier value and
// whether it is non-empty. Nil, missing and blank values are empty.
// Integral numbers never carry a decimal point.
func Normalize(v any) (string, bool) {
	var s string
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		s = x
	case json.Number:
		s = CanonicalNumber(string(x))
	case int:
		s = strconv.Itoa(x)
	case int32:
		s = strconv.FormatInt(int64(x), 10)
	case int64:
		s = strconv.FormatInt(x, 10)
	case uint:
		s = strconv.FormatUint(uint64(x), 10)
	case uint32:
		s = strconv.FormatUint(uint64(x), 10)
	case uint64:
		s = strconv.FormatUint(x, 10)
	case float32:
		s = strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(x)
	case fmt.Stringer:
		s = x.String()
	default:
		s = fmt.Sprint(x)
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// CanonicalNumber keeps integer literals verbatim and renders the rest in the
// shortest plain decimal form, so "123.0", "1.23E+2" and "123" agree.
// Literals that do not parse are returned trimmed.
func CanonicalNumber(lit string) string {
	lit = strings.TrimSpace(lit)
	if !strings.ContainsAny(lit, ".eE") {
		return lit
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return lit
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
