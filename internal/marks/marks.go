// Package marks extracts numeric mark codes from element type labels.
package marks

import (
	"regexp"
	"strings"
)

// castSuffixRegex matches the cast-in-place/cast-joint suffix some type
// labels carry, e.g. "G9-9-CI". The suffix is ignored during extraction.
var castSuffixRegex = regexp.MustCompile(`-C[IJ]$`)

// leadingDigitsRegex matches the digit run at the start of a string.
var leadingDigitsRegex = regexp.MustCompile(`^[0-9]+`)

// Extract isolates the mark code from a type label: the digits immediately
// following the last '.' or '-' in the label, after stripping an optional
// trailing "-CI"/"-CJ" suffix.
//
// Examples: "G9-99" yields "99", "B4-4(fc 40)-CI" yields "4". Labels whose
// last separator is not followed by digits yield no mark.
func Extract(label string) (string, bool) {
	s := castSuffixRegex.ReplaceAllString(strings.TrimSpace(label), "")

	i := strings.LastIndexAny(s, ".-")
	if i < 0 || i+1 >= len(s) {
		return "", false
	}

	mark := leadingDigitsRegex.FindString(s[i+1:])
	if mark == "" {
		return "", false
	}
	return mark, true
}
