package util

import "strings"

// MaskToken hides the middle of a credential so config output can show
// which token is in effect without leaking it.
func MaskToken(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return value[:4] + strings.Repeat("*", len(value)-8) + value[len(value)-4:]
}
