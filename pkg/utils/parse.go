package utils

import (
	"regexp"

	"github.com/google/uuid"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// IsPhoneNumber reports whether s is exactly ten digits
func IsPhoneNumber(s string) bool {
	return phonePattern.MatchString(s)
}
