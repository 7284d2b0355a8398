// Package core provides the domain model and derived-metrics computations.
//
// This file contains amount parsing and display formatting. Monetary math is
// floating-point throughout; only display output is rounded, to two decimals.
package core

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts user input into a stored amount magnitude.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. The sign
// of the input is discarded: a negative entry is stored as its absolute value.
// Zero, non-numeric, and non-finite input is rejected with ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34, nil
//	ParseAmount("-300")   -> 300, nil
//	ParseAmount("0")      -> 0, ErrInvalidAmount
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidAmount
	}
	v = math.Abs(v)
	if v == 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// FormatAmount renders an amount with exactly two decimals and thousands
// grouping, e.g. 1234567.5 -> "1,234,567.50".
func FormatAmount(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart := s[:len(s)-3]
	frac := s[len(s)-3:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}
