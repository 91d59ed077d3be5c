package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestValidateContext(t *testing.T) {
	//nolint:staticcheck // nil is the case under test
	if err := validateContext(nil); !errors.Is(err, ErrNilContext) {
		t.Errorf("validateContext(nil) error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := validateContext(ctx); err != nil {
		t.Errorf("canceled context rejected: %v", err)
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{name: "collection key", key: "expenses"},
		{name: "empty", key: "", wantErr: ErrEmptyString},
		{name: "blank", key: "   ", wantErr: ErrEmptyString},
		{name: "whitespace", key: "my key", wantErr: ErrInvalidKey},
		{name: "too long", key: strings.Repeat("k", maxKeyLength+1), wantErr: ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateKey(tt.key)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("validateKey(%q) unexpected error = %v", tt.key, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateKey(%q) error = %v, want %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDocument(t *testing.T) {
	if err := validateDocument(nil); !errors.Is(err, ErrNilParameter) {
		t.Errorf("validateDocument(nil) error = %v", err)
	}
	if err := validateDocument([]byte{}); err != nil {
		t.Errorf("validateDocument(empty) error = %v", err)
	}
}
