// Package storage provides the data persistence layer for spendwise.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidKey   = errors.New("invalid document key")
)

// maxKeyLength bounds document keys; collection names are short identifiers.
const maxKeyLength = 64

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateKey checks a document key.
func validateKey(key string) error {
	if err := validateString(key, "key"); err != nil {
		return err
	}
	if len(key) > maxKeyLength {
		return fmt.Errorf("%w: key longer than %d characters", ErrInvalidKey, maxKeyLength)
	}
	if strings.ContainsAny(key, " \t\r\n") {
		return fmt.Errorf("%w: key %q contains whitespace", ErrInvalidKey, key)
	}
	return nil
}

// validateDocument ensures a document value is present.
func validateDocument(value []byte) error {
	if value == nil {
		return fmt.Errorf("%w: value", ErrNilParameter)
	}
	return nil
}
