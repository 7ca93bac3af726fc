package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrFruitNotFound    = errors.New("fruit not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrUserNotFound     = errors.New("user not found")

	ErrEmailTaken         = errors.New("user with that email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrGateway wraps any payment API or transport failure. The gateway
	// layer performs no retries of its own.
	ErrGateway = errors.New("payment gateway error")
)

// ValidationError carries field-level detail for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}
