package logger

import (
	"context"
	"testing"
)

func TestNewZapLogger_Defaults(t *testing.T) {
	log, err := NewZapLogger(DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log == nil {
		t.Fatal("expected logger instance")
	}
	log.Info("test message", "key", "value")
}

func TestNewZapLogger_TextFormat(t *testing.T) {
	log, err := NewZapLogger(Config{Level: DebugLevel, Format: TextFormat})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log.Debug("debug message")
}

func TestWith_ReturnsChildLogger(t *testing.T) {
	log, _ := NewZapLogger(DefaultConfig())
	child := log.With("component", "record")
	if child == nil {
		t.Fatal("expected child logger")
	}
	child.Info("child message")
}

func TestWithContext_ExtractsRequestID(t *testing.T) {
	log, _ := NewZapLogger(DefaultConfig())

	ctx := context.WithValue(context.Background(), "request_id", "abc-123") //nolint:staticcheck
	child := log.WithContext(ctx)
	if child == log {
		t.Fatal("expected child logger when request id present")
	}

	same := log.WithContext(context.Background())
	if same != log {
		t.Fatal("expected same logger when no request id present")
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", DebugLevel, false},
		{"info", InfoLevel, false},
		{"warn", WarnLevel, false},
		{"warning", WarnLevel, false},
		{"error", ErrorLevel, false},
		{"verbose", "", true},
	}
	for _, tc := range cases {
		got, err := ParseLogLevel(tc.in)
		if tc.wantErr != (err != nil) {
			t.Fatalf("ParseLogLevel(%q) error = %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseLogLevel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseLogFormat(t *testing.T) {
	if _, err := ParseLogFormat("xml"); err == nil {
		t.Fatal("expected error for invalid format")
	}
	got, err := ParseLogFormat("console")
	if err != nil || got != TextFormat {
		t.Fatalf("ParseLogFormat(console) = %q, %v", got, err)
	}
}
