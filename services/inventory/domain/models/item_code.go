package models

import (
	"fmt"
	"strings"
)

// ItemCode is a value object representing a valid catalog code.
// Encapsulates validation rules: 2 <= len(code) <= 32, no whitespace.
type ItemCode string

const (
	minItemCodeLength = 2
	maxItemCodeLength = 32
)

// NewItemCode constructs a valid ItemCode or returns an error if constraints are violated.
func NewItemCode(s string) (ItemCode, error) {
	if len(s) < minItemCodeLength {
		return "", fmt.Errorf("item code must be at least %d characters", minItemCodeLength)
	}
	if len(s) > maxItemCodeLength {
		return "", fmt.Errorf("item code must not exceed %d characters", maxItemCodeLength)
	}
	if strings.ContainsAny(s, " \t\n") {
		return "", fmt.Errorf("item code must not contain whitespace")
	}
	return ItemCode(s), nil
}

// String returns the underlying string value.
func (c ItemCode) String() string {
	return string(c)
}
