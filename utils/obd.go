package utils

import (
	"regexp"
	"strings"
)

var (
	obdCodePattern   = regexp.MustCompile(`^[PBCU][0-3][0-9A-F]{3}$`)
	obdPrefixPattern = regexp.MustCompile(`^[PBCU]([0-3][0-9A-F]{0,3})?$`)
)

// NormalizeOBDCode upper-cases and trims code and reports whether it is a
// well-formed five character OBD-II code such as P0301.
func NormalizeOBDCode(code string) (string, bool) {
	c := strings.ToUpper(strings.TrimSpace(code))
	return c, obdCodePattern.MatchString(c)
}

// IsOBDCodePrefix reports whether a search query looks like the start of a
// code ("p03", "U01") rather than free text.
func IsOBDCodePrefix(query string) bool {
	return obdPrefixPattern.MatchString(strings.ToUpper(strings.TrimSpace(query)))
}
