package utils

import (
	"strings"
	"unicode"
)

// Slugify turns a part name into a URL path segment: lower case ASCII
// letters and digits separated by single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			lastHyphen = false
		case r == '&':
			if !lastHyphen {
				b.WriteRune('-')
			}
			b.WriteString("and-")
			lastHyphen = true
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
