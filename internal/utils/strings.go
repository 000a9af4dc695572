package utils

import (
	"strings"

	"github.com/samber/lo"
)

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CleanList trims every entry, drops blanks and keeps the first occurrence of
// case-insensitive duplicates. The result is never nil.
func CleanList(in []string) []string {
	out := lo.UniqBy(
		lo.Compact(lo.Map(in, func(s string, _ int) string { return NormalizeSpace(s) })),
		strings.ToLower,
	)
	if out == nil {
		return []string{}
	}
	return out
}

// Truncate cuts s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
