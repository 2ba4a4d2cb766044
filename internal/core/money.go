// Package core provides the transaction model and amount parsing.
//
// This file contains functions for parsing monetary amounts typed at the
// console and rendering them back for display.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts a decimal string typed by the user to a float64.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Signs,
// exponents, hex notation and special values (inf, nan) are rejected so that
// only plain non-negative decimals reach the ledger.
//
// Examples:
//   ParseAmount("12.34") -> 12.34, nil
//   ParseAmount("12,5")  -> 12.5, nil
//   ParseAmount("-1")    -> 0, ErrInvalidAmount
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.Count(s, ".") > 1 || s == "." {
		return 0, ErrInvalidAmount
	}
	for _, r := range s {
		if r != '.' && !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if err := ValidateAmount(v); err != nil {
		return 0, err
	}
	return v, nil
}

// FormatAmount renders an amount with the shortest representation that
// round-trips, always keeping at least one fractional digit (1000 -> "1000.0").
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}
