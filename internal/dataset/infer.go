package dataset

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultMissingValues are the sentinels common dataframe readers treat as NA.
var DefaultMissingValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// MissingSet holds the sentinels that mark a field as missing. The empty
// string is always a member.
type MissingSet map[string]struct{}

// NewMissingSet builds a MissingSet from sentinels. Sentinels are compared
// after trimming surrounding whitespace.
func NewMissingSet(values []string) MissingSet {
	m := MissingSet{"": {}}
	for _, v := range values {
		m[strings.TrimSpace(v)] = struct{}{}
	}
	return m
}

// Contains reports whether s is a missing sentinel.
func (m MissingSet) Contains(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	_, ok := m[s]
	return ok
}

var numberRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseNumber parses a plain decimal number with optional sign, decimal
// point and exponent. Hex, digit separators and inf/nan literals are
// rejected.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !numberRe.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// out of range; ParseFloat still returns ±Inf which is not a usable value
		return 0, false
	}
	return f, true
}

// InferType classifies raw column values. A single present, non-numeric
// value makes the column Text.
func InferType(raw []string, missing MissingSet) ColumnType {
	present := false
	for _, v := range raw {
		if missing.Contains(v) {
			continue
		}
		if _, ok := ParseNumber(v); !ok {
			return Text
		}
		present = true
	}
	if !present {
		return Empty
	}
	return Numeric
}
