package common

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	cause := fmt.Errorf("%w: bad json", ErrInvalidDocument)
	err := fmt.Errorf("import: %w", NewUserError("Error importing data. Please check the file format.", cause))

	assert.True(t, errors.Is(err, ErrInvalidDocument))
	assert.Equal(t, "Error importing data. Please check the file format.", UserMessage(err))
	assert.Contains(t, err.Error(), "bad json")

	plain := errors.New("disk full")
	assert.Equal(t, "disk full", UserMessage(plain))

	bare := &UserError{UserMessage: "nothing to do"}
	assert.Equal(t, "nothing to do", bare.Error())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "Warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "trace", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLogger(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	require.NoError(t, SetupLogger(&buf, slog.LevelDebug, "json"))
	LogDebug("loaded collection", Fields{"key": "expenses"})
	assert.Contains(t, buf.String(), `"key":"expenses"`)

	buf.Reset()
	require.NoError(t, SetupLogger(&buf, slog.LevelInfo, "console"))
	LogDebug("hidden", nil)
	LogError(errors.New("boom"), "persist failed", Fields{"key": "settings"})
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "error=boom")

	assert.Error(t, SetupLogger(&buf, slog.LevelInfo, "xml"))
}

func TestLogError_SortsFields(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	require.NoError(t, SetupLogger(&buf, slog.LevelInfo, "console"))
	LogError(errors.New("locked"), "open failed", Fields{"path": "x.ofx", "attempt": 2})

	line := buf.String()
	assert.Less(t, strings.Index(line, "error=locked"), strings.Index(line, "attempt=2"))
	assert.Less(t, strings.Index(line, "attempt=2"), strings.Index(line, "path=x.ofx"))
}
