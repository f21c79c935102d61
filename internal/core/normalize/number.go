// Package normalize turns locale-formatted invoice cells into canonical values.
package normalize

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const maxDecimalDigits = 2

var spaceStripper = strings.NewReplacer(" ", "", "\u00a0", "")

// ParseNumber converts a Vietnamese or mixed-locale number ("1.234,56",
// "1000.25", "5.000.000") to a float. ok is false for empty or unparseable
// input; it never returns an error.
//
// A lone '.' is a decimal mark only when at most two digits follow it; a
// three-digit group is a thousands group, so "50.000" is 50000 and "1000.25"
// stays 1000.25.
func ParseNumber(s string) (v float64, ok bool) {
	s = strings.TrimSpace(spaceStripper.Replace(s))
	if s == "" {
		return 0, false
	}

	lastDot, lastComma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		// the right-most separator is the decimal mark
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		s = strings.ReplaceAll(s, ",", ".")
	case lastDot >= 0:
		if strings.Count(s, ".") != 1 || utf8.RuneCountInString(s[lastDot+1:]) > maxDecimalDigits {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	return parseFloat(s)
}

// parseFloat accepts plain decimal notation only: hex floats, NaN and
// infinities are unparseable.
func parseFloat(s string) (float64, bool) {
	digits := strings.TrimLeft(s, "+-")
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(v) {
		return 0, false
	}
	return v, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// NumberPtr is ParseNumber with nil standing for "unparseable".
func NumberPtr(s string) *float64 {
	v, ok := ParseNumber(s)
	if !ok {
		return nil
	}
	return &v
}
