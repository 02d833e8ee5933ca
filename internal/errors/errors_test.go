package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrConfig,
		ErrSample,
		ErrTerminate,
		ErrSnapshot,
		ErrInput,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "Invalid interval in .sysmon.yaml",
			suggestion: "Use a duration like 1s or 500ms",
		},
		{
			name:       "terminate error",
			code:       ErrTerminate,
			message:    "Permission denied for PID 1",
			suggestion: "Run as a user that owns the process",
		},
		{
			name:       "snapshot error",
			code:       ErrSnapshot,
			message:    "Cannot open log file",
			suggestion: "Check the directory exists and is writable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestError_Format(t *testing.T) {
	cause := fmt.Errorf("open /root/x.log: permission denied")
	err := WrapWithCode(cause, ErrSnapshot, "Cannot open log file", "Pick another path")

	out := err.Error()
	lines := strings.Split(out, "\n")
	assert.Equal(t, "✗ Cannot open log file", lines[0])
	assert.Contains(t, out, "permission denied")
	assert.Contains(t, out, "Pick another path")
}

func TestWrap_DefaultsToSampleCode(t *testing.T) {
	err := Wrap(fmt.Errorf("boom"), "Sampling failed")
	assert.Equal(t, ErrSample, err.Code)
	assert.True(t, IsCode(err, ErrSample))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := WrapWithCode(cause, ErrConfig, "bad config", "")

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestIsCode(t *testing.T) {
	assert.False(t, IsCode(nil, ErrConfig))
	assert.False(t, IsCode(errors.New("plain"), ErrConfig))

	wrapped := fmt.Errorf("outer: %w", New(ErrTerminate, "x", ""))
	assert.True(t, IsCode(wrapped, ErrTerminate))
	assert.False(t, IsCode(wrapped, ErrConfig))
}

func TestIsCancelled(t *testing.T) {
	assert.True(t, IsCancelled(ErrSaveCancelled))
	assert.True(t, IsCancelled(fmt.Errorf("prompt: %w", ErrSaveCancelled)))
	assert.False(t, IsCancelled(errors.New("other")))
	assert.False(t, IsCancelled(nil))
}
