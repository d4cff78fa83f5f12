// Package utils holds small query-parameter helpers shared by the HTTP
// handlers.
package utils

import (
	"strconv"
	"strings"
)

// AtoiDefault parses s as a base-10 int, returning def when s is blank or
// malformed.
//
//	utils.AtoiDefault("25", 10)  // 25
//	utils.AtoiDefault(" 7 ", 10) // 7
//	utils.AtoiDefault("ten", 10) // 10
func AtoiDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// Clamp bounds n to [lo, hi].
func Clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
