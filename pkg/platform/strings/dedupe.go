// Package strings provides string slice utilities.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
//	DedupeAndTrim([]string{"  foo ", "bar", "foo", "", "  "})
//	// Returns: []string{"foo", "bar"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// UnionExact returns the first-seen-order union of values, comparing strings
// exactly (no trimming or case folding). Empty strings are dropped.
// The result is never nil.
//
//	UnionExact("08011112222", "", "2348135613401", "08011112222")
//	// Returns: []string{"08011112222", "2348135613401"}
func UnionExact(values ...string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		result = AppendUnique(result, v)
	}
	return result
}

// AppendUnique appends v to set unless v is empty or already present.
func AppendUnique(set []string, v string) []string {
	if v == "" || Contains(set, v) {
		return set
	}
	return append(set, v)
}

// Contains reports whether v is an element of set.
func Contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
