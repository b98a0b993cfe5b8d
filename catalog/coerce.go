package catalog

import (
	"strconv"
	"strings"
)

// =============================================================================
// TEXT COERCION - storage delivers text, we parse it
// =============================================================================

// ParseBool reports whether s is "true", case-insensitive, ignoring
// surrounding whitespace. Anything else, including empty, is false.
func ParseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

// ParseMinutes parses a duration field in minutes. Storage sometimes holds
// these as decimals ("60.0"), so it parses as a float and truncates.
// Returns false for empty or non-numeric text.
func ParseMinutes(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

// PetCardinal extracts the pet count from a free-text field like "2 pets":
// the first whitespace token that parses as an integer wins. Returns
// (1, false) when no token parses, mirroring how the rest of the system
// defaults unknown pet counts to one.
func PetCardinal(s string) (int, bool) {
	for _, token := range strings.Fields(strings.TrimSpace(strings.ToLower(s))) {
		if n, err := strconv.Atoi(token); err == nil {
			return n, true
		}
	}
	return 1, false
}
