package util

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

const phoneRegion = "BR"

// NormalizePhone strips formatting and validates a Brazilian phone number,
// returning only digits (DDD + number, 10 or 11 digits).
func NormalizePhone(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}

	parsed, err := phonenumbers.Parse(raw, phoneRegion)
	if err != nil {
		return "", fmt.Errorf("telefone inválido: %w", err)
	}
	if !phonenumbers.IsValidNumberForRegion(parsed, phoneRegion) {
		return "", fmt.Errorf("telefone inválido para o Brasil")
	}

	national := phonenumbers.GetNationalSignificantNumber(parsed)
	return national, nil
}

// IsValidPhone reports whether the raw value parses as a Brazilian number.
func IsValidPhone(raw string) bool {
	_, err := NormalizePhone(raw)
	return raw != "" && err == nil
}

// FormatPhone renders digits as a national display string, e.g.
// "(48) 99999-0000". Returns the input unchanged when it cannot parse.
func FormatPhone(digits string) string {
	parsed, err := phonenumbers.Parse(digits, phoneRegion)
	if err != nil {
		return digits
	}
	return phonenumbers.Format(parsed, phonenumbers.NATIONAL)
}
