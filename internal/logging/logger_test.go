package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeKVs(t *testing.T) {
	tests := []struct {
		name string
		in   []any
		want []any
	}{
		{"empty", nil, nil},
		{"plain", []any{"question", "s1"}, []any{"question", "s1"}},
		{"access key", []any{"access_key", "KL-2025-AB12"}, []any{"access_key", "[REDACTED]"}},
		{"bare key", []any{"key", "KL-2025-AB12"}, []any{"key", "[REDACTED]"}},
		{"email", []any{"email", "neo@matrix.io"}, []any{"email", "n***@matrix.io"}},
		{"malformed email", []any{"email", "nobody"}, []any{"email", "[REDACTED]"}},
		{"odd trailing", []any{"a", 1, "dangling"}, []any{"a", 1, "dangling"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeKVs(tt.in))
		})
	}
}

func TestLoggerRedactsThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core))

	l.With("email", "trinity@zion.net").Info("login", "access_key", "KL-2025-ZZZZ")

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, "t***@zion.net", ctx["email"])
	assert.Equal(t, "[REDACTED]", ctx["access_key"])
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNopDoesNotPanic(t *testing.T) {
	l := Nop()
	l.Debug("x")
	l.Warn("y", "k", 1)
	l.Error("z")
	l.Sync()
}
