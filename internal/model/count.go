package model

import (
	"strconv"
	"strings"
)

// Bounds for how many todos a single request may ask for.
const (
	MinCount = 1
	MaxCount = 100
)

// ParseCount reads a request count the way a browser number field is read:
// surrounding whitespace is ignored, an optional sign is accepted and the
// leading run of digits is the value ("5.7" is 5, "12abc" is 12).
// ok is false when there are no leading digits or the value is out of range.
func ParseCount(s string) (n int, ok bool) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	// Anything longer than a few digits is out of range anyway.
	if end > 9 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, ValidCount(n)
}

// ValidCount reports whether n is inside [MinCount, MaxCount].
func ValidCount(n int) bool {
	return n >= MinCount && n <= MaxCount
}
