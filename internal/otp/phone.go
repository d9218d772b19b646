package otp

import (
	"fmt"
	"strings"
)

// NormalizePhone validates a phone number and returns it in a canonical
// +<digits> form. Accepts spaces and an optional leading +; numbers
// without a country code are rejected.
func NormalizePhone(phone string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, strings.TrimSpace(phone))

	if !strings.HasPrefix(cleaned, "+") {
		return "", fmt.Errorf("phone number must include a country code (e.g. +47)")
	}

	digits := cleaned[1:]
	if len(digits) < 8 || len(digits) > 15 {
		return "", fmt.Errorf("phone number has invalid length")
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("phone number contains invalid characters")
		}
	}

	return "+" + digits, nil
}
