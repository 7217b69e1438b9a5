package domain

import (
	"strconv"
	"strings"
)

// MaxGlucoseLevel is the largest value the entry form accepts.
const MaxGlucoseLevel = 1000

// SanitizeGlucoseInput strips every non-digit from raw and parses the rest.
// It returns false when nothing numeric is left. Values above
// MaxGlucoseLevel are clamped.
func SanitizeGlucoseInput(raw string) (int, bool) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return 0, false
	}
	// Trim leading zeros so overlong input can't overflow before clamping.
	trimmed := strings.TrimLeft(digits, "0")
	if len(trimmed) > 4 {
		return MaxGlucoseLevel, true
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	if n > MaxGlucoseLevel {
		n = MaxGlucoseLevel
	}
	return n, true
}
