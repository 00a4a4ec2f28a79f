package normalize

import (
	"regexp"
	"strings"
)

var modifierSep = regexp.MustCompile(`[,|]`)

// SplitModifiers splits a raw delimited modifier field on comma or pipe,
// trims each piece, and drops empties. Empty input yields an empty list.
func SplitModifiers(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := modifierSep.Split(raw, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
