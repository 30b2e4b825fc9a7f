package util

import "strconv"

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// ListLimit reads a ?limit value, falling back to DefaultListLimit and
// capping at MaxListLimit.
func ListLimit(s string) int {
	n := ParseIntDefault(s, DefaultListLimit)
	if n < 1 {
		return DefaultListLimit
	}
	if n > MaxListLimit {
		return MaxListLimit
	}
	return n
}

// ParseID parses a positive numeric path id.
func ParseID(s string) (uint, bool) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}
