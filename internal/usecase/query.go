package usecase

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Result count bounds for a single search
const (
	DefaultLimit = 12
	MinLimit     = 1
	MaxLimit     = 25
)

// simpleQueryMaxLen is the longest single token still treated as a plain
// ingredient name
const simpleQueryMaxLen = 12

// IsSimpleQuery reports whether the query is one short token, which is
// taken to name an ingredient rather than a dish
func IsSimpleQuery(query string) bool {
	q := strings.TrimSpace(query)
	n := utf8.RuneCountInString(q)
	if n < 1 || n > simpleQueryMaxLen {
		return false
	}
	return len(strings.Fields(q)) == 1
}

// ParseLimit reads a raw limit parameter. Absent or non-numeric input gives
// DefaultLimit; numbers are truncated and clamped to [MinLimit, MaxLimit].
func ParseLimit(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLimit
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) {
		return DefaultLimit
	}
	if f >= MaxLimit {
		return MaxLimit
	}
	if f < MinLimit {
		return MinLimit
	}
	return ClampLimit(int(math.Trunc(f)))
}

// ClampLimit bounds n to [MinLimit, MaxLimit]
func ClampLimit(n int) int {
	if n < MinLimit {
		return MinLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}
