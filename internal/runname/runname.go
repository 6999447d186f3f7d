// Package runname computes the next free run name for a workflow by
// incrementing the numeric suffix of the latest sibling run directory.
package runname

import (
	"math/big"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var trailingNumber = regexp.MustCompile(`[0-9]+$`)

// IncrementTrailingNumber returns s with its trailing run of ASCII digits
// incremented by one. Leading zeros in that run are not preserved. When s has
// no trailing digits, "1" is appended.
func IncrementTrailingNumber(s string) string {
	loc := trailingNumber.FindStringIndex(s)
	if loc == nil {
		return s + "1"
	}
	start := loc[0]
	digits := s[start:]
	if n, err := strconv.ParseUint(digits, 10, 64); err == nil && n < ^uint64(0) {
		return s[:start] + strconv.FormatUint(n+1, 10)
	}
	// Digit runs beyond uint64 still increment.
	n, _ := new(big.Int).SetString(digits, 10)
	return s[:start] + n.Add(n, big.NewInt(1)).String()
}

// Matching returns the names in existing that start with base, sorted
// lexicographically by byte value.
func Matching(base string, existing []string) []string {
	matched := make([]string, 0, len(existing))
	for _, name := range existing {
		if strings.HasPrefix(name, base) {
			matched = append(matched, name)
		}
	}
	sort.Strings(matched)
	return matched
}

// Extend returns the next run name after base given the existing sibling
// names. With no sibling sharing the base prefix, base is returned unchanged.
// Otherwise the lexicographically greatest sibling is incremented, so
// "exp10" sorts before "exp2" and ["exp2", "exp10"] extends to "exp3".
func Extend(base string, existing []string) string {
	matched := Matching(base, existing)
	if len(matched) == 0 {
		return base
	}
	return IncrementTrailingNumber(matched[len(matched)-1])
}
