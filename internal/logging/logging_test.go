package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestLogger(buf *bytes.Buffer, level LogLevel) *Logger {
	l := New(Config{Level: level, Output: buf, Prefix: "test"})
	l.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l
}

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = %q, expected %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
		ok       bool
	}{
		{"debug", LogLevelDebug, true},
		{"DEBUG", LogLevelDebug, true},
		{" info ", LogLevelInfo, true},
		{"warning", LogLevelWarn, true},
		{"Error", LogLevelError, true},
		{"verbose", LogLevelInfo, false},
		{"", LogLevelInfo, false},
	}

	for _, tt := range tests {
		got, ok := ParseLogLevel(tt.input)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("ParseLogLevel(%q) = %v, %v; expected %v, %v", tt.input, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LogLevelDebug)

	l.Info("resized to %dx%d", 80, 24)

	expected := "2024-01-02T03:04:05.000 [INFO] test: resized to 80x24\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LogLevelWarn)

	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")

	output := buf.String()
	for _, filtered := range []string{"[DEBUG]", "[INFO]"} {
		if strings.Contains(output, filtered) {
			t.Errorf("expected %s to be filtered out", filtered)
		}
	}
	for _, kept := range []string{"[WARN]", "[ERROR]"} {
		if !strings.Contains(output, kept) {
			t.Errorf("expected %s in output", kept)
		}
	}

	if l.Enabled(LogLevelInfo) {
		t.Error("Info should not be enabled at Warn level")
	}
}

func TestLogger_FieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LogLevelInfo)

	l.WithFields(map[string]any{"width": 80, "height": 24}).
		WithComponent("renderer").
		Info("resize")

	if !strings.HasSuffix(buf.String(), "resize {component=renderer, height=24, width=80}\n") {
		t.Errorf("unexpected field formatting: %q", buf.String())
	}
}

func TestLogger_DerivedSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LogLevelInfo)
	child := l.WithComponent("diff")

	l.SetLevel(LogLevelError)
	child.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("derived logger should follow parent level, got %q", buf.String())
	}
	if child.Level() != LogLevelError {
		t.Errorf("expected Error level, got %v", child.Level())
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("nothing")
	if l.Enabled(LogLevelError) {
		t.Error("Nop logger should report nothing enabled")
	}
}

func TestDefault(t *testing.T) {
	t.Cleanup(func() { SetDefault(nil) })

	if Default() == nil {
		t.Fatal("Default() returned nil")
	}

	custom := Nop()
	SetDefault(custom)
	if Default() != custom {
		t.Error("SetDefault should replace the default logger")
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cellgrid.log")

	l, closer, err := OpenFile(path, Config{Level: LogLevelInfo})
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	l.Info("hello")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[INFO] hello") {
		t.Errorf("expected log line in file, got %q", data)
	}
}
