package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"prod", "local", "dev", "docker", "test"} {
		l, err := NewLogger(env, "")
		if err != nil {
			t.Fatalf("NewLogger(%q): %v", env, err)
		}
		if l == nil {
			t.Fatalf("NewLogger(%q) returned nil", env)
		}
	}
}

func TestNewLogger_LevelOverride(t *testing.T) {
	l, err := NewLogger("prod", "warn")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info must be disabled at warn level")
	}
	if !l.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn must be enabled")
	}
}

func TestNewLogger_Errors(t *testing.T) {
	if _, err := NewLogger("staging", ""); err == nil {
		t.Error("expected error for unknown env")
	}
	if _, err := NewLogger("local", "loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestFromContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	ctx := ContextWithLogger(context.Background(), base)
	FromContext(ctx).Info("hello")
	if logs.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", logs.Len())
	}

	// без логгера в контексте
	FromContext(context.Background()).Info("dropped")
	if logs.Len() != 1 {
		t.Errorf("nop logger must not write, got %d entries", logs.Len())
	}

	FromContextOr(context.Background(), base).Info("fallback")
	if logs.Len() != 2 {
		t.Errorf("fallback logger must be used, got %d entries", logs.Len())
	}
}

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdef", 3, "abc..."},
		{"привет мир", 6, "привет..."},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := TruncateForLog(tt.in, tt.limit); got != tt.want {
			t.Errorf("TruncateForLog(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}
