package common

import "strings"

// Email is always stored and compared in its lower-cased form.
type Email string

func NewEmail(rawEmail string) Email {
	return Email(strings.ToLower(strings.TrimSpace(rawEmail)))
}
