// Package validation holds small input validation helpers shared by the
// services layer.
package validation

import "regexp"

var specialCharPattern = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)

// HasSpecialChar reports whether the string contains at least one special
// character.
func HasSpecialChar(s string) bool {
	return specialCharPattern.MatchString(s)
}
