package model

import (
	"fmt"
	"strings"
)

// enumName returns names[v] or a numeric fallback for values outside the table.
func enumName(kind string, names []string, v int) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("%s(%d)", kind, v)
	}
	return names[v]
}

// parseEnum resolves a case-insensitive name into its index in names.
func parseEnum(kind string, names []string, s string) (int, error) {
	s = strings.TrimSpace(s)
	for i, n := range names {
		if strings.EqualFold(n, s) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, s)
}
