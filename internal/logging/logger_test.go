package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/cppdoc/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    string
		expected log.Level
	}{
		{"debug level", "debug", log.DebugLevel},
		{"info level", "info", log.InfoLevel},
		{"warn level", "warn", log.WarnLevel},
		{"warning level", "warning", log.WarnLevel},
		{"error level", "error", log.ErrorLevel},
		{"invalid defaults to info", "invalid", log.InfoLevel},
		{"empty defaults to info", "", log.InfoLevel},
		{"case insensitive DEBUG", "DEBUG", log.DebugLevel},
		{"surrounding space", " error ", log.ErrorLevel},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if got := logging.ParseLevel(testCase.level); got != testCase.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", testCase.level, got, testCase.expected)
			}
			if got := logging.New(testCase.level).GetLevel(); got != testCase.expected {
				t.Errorf("New(%q) level = %v, want %v", testCase.level, got, testCase.expected)
			}
		})
	}
}

func TestNewWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("shown", logging.FieldPage, "ch01/loops.md")

	out := buf.String()
	if bytes.Contains(buf.Bytes(), []byte("hidden")) {
		t.Errorf("info entry written at warn level: %q", out)
	}
	if !bytes.Contains(buf.Bytes(), []byte("page=ch01/loops.md")) {
		t.Errorf("missing field in %q", out)
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, "info")

	//nolint:staticcheck // a nil context falls back to the default logger
	if logging.FromContext(nil) != logging.Default() {
		t.Error("nil context should yield the default logger")
	}
	if logging.FromContext(context.Background()) != logging.Default() {
		t.Error("empty context should yield the default logger")
	}

	ctx := logging.WithLogger(context.Background(), logger)
	if logging.FromContext(ctx) != logger {
		t.Fatal("WithLogger did not attach the logger")
	}

	ctx = logging.WithFields(ctx, logging.FieldRunID, "abc")
	logging.FromContext(ctx).Info("built")

	if !bytes.Contains(buf.Bytes(), []byte("run_id=abc")) {
		t.Errorf("field missing from %q", buf.String())
	}
}

func TestSetLevel(t *testing.T) {
	// Not parallel because it modifies global state.
	original := logging.Default()
	defer logging.SetDefault(original)

	logging.SetDefault(logging.New("info"))

	logging.SetLevel("debug")
	if logging.Default().GetLevel() != log.DebugLevel {
		t.Error("SetLevel to debug failed")
	}

	logging.SetLevel("error")
	if logging.Default().GetLevel() != log.ErrorLevel {
		t.Error("SetLevel to error failed")
	}
}

func TestSetDefault(t *testing.T) {
	// Not parallel because it modifies global state.
	original := logging.Default()
	defer logging.SetDefault(original)

	newLogger := logging.New("error")
	logging.SetDefault(newLogger)

	if logging.Default() != newLogger {
		t.Error("SetDefault did not change the default logger")
	}
}

func TestNewInteractive(t *testing.T) {
	t.Parallel()

	if got := logging.NewInteractive().GetLevel(); got != log.InfoLevel {
		t.Errorf("expected info level, got %v", got)
	}
}
