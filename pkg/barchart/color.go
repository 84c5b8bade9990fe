package barchart

import (
	"strconv"
	"strings"
)

func parseHex(s string) (r, g, b uint8, ok bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return 0, 0, 0, false
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}

	return uint8(v >> 16), uint8(v >> 8), uint8(v), true //nolint:gosec // Masked by conversion.
}

// ValidColor reports whether s is a "#rrggbb" hex color.
func ValidColor(s string) bool {
	_, _, _, ok := parseHex(s)

	return ok
}
