package omdb

import (
	"strconv"
	"strings"
)

// notAvailable is the placeholder OMDb uses for missing values.
const notAvailable = "N/A"

// Known returns s unless it is empty or the "N/A" placeholder.
func Known(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == notAvailable {
		return "", false
	}
	return s, true
}

// ParseYear extracts the first year of an OMDb year string such as "2016–2019".
// It reports false for zero or unparseable values.
func ParseYear(s string) (int, bool) {
	if i := strings.IndexAny(s, "–—-"); i >= 0 {
		s = s[:i]
	}
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || year == 0 {
		return 0, false
	}
	return year, true
}
