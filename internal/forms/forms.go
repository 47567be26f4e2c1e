// Package forms holds primitives shared by the public intake forms.
package forms

import "regexp"

// emailRE is the storefront's historical email check, kept as-is so
// both forms accept exactly what the site always accepted.
var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether value matches the accepted email shape.
func ValidEmail(value string) bool {
	return emailRE.MatchString(value)
}

// DigitCount counts decimal digits, ignoring separators and
// formatting. Used by the configurable phone-length policy.
func DigitCount(value string) int {
	count := 0
	for _, r := range value {
		if r >= '0' && r <= '9' {
			count++
		}
	}
	return count
}
