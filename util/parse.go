package util

import (
	"math"
	"strconv"
)

func ParseInt(str string, fallback int) int {
	if v, err := strconv.Atoi(str); err == nil {
		return v
	}
	return fallback
}

func ParseBool(str string, fallback bool) bool {
	if v, err := strconv.ParseBool(str); err == nil {
		return v
	}
	return fallback
}

// ParseFloat returns the parsed value, or fallback when str is empty or
// malformed. Callers use NaN / ±Inf fallbacks for "unset" semantics.
func ParseFloat(str string, fallback float64) float64 {
	if str == "" {
		return fallback
	}
	if v, err := strconv.ParseFloat(str, 64); err == nil {
		return v
	}
	return fallback
}

// IsUnsetFloat reports whether v is the NaN "not configured" marker.
func IsUnsetFloat(v float64) bool {
	return math.IsNaN(v)
}
