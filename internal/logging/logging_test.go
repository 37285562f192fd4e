package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_LegacyLineFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("STARTED")
	logger.Error("File LICENSE does not exist")
	logger.Debug("hidden at info level")
	if err := closeFn(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	pattern := regexp.MustCompile(`^\d{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2} (INFO|ERROR): `)
	for _, line := range lines {
		if !pattern.MatchString(line) {
			t.Errorf("line %q does not match legacy layout", line)
		}
	}
	if !strings.HasSuffix(lines[1], "ERROR: File LICENSE does not exist") {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Level: "warn", Verbose: true, Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer closeFn()

	logger.Debug("Check finished", zap.String("check", "Auxiliary files"))

	if !strings.Contains(buf.String(), `DEBUG: Check finished {"check": "Auxiliary files"}`) {
		t.Errorf("debug line missing or malformed: %q", buf.String())
	}
}

func TestNew_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dkgw.log")
	var console bytes.Buffer

	logger, closeFn, err := New(Options{File: path, Writer: &console})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("DONE")
	if err := closeFn(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "INFO: DONE") {
		t.Errorf("log file missing line: %q", data)
	}
	if !strings.Contains(console.String(), "INFO: DONE") {
		t.Errorf("console missing line: %q", console.String())
	}
}

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"", "debug", "INFO", " warn ", "error"} {
		if _, err := ParseLevel(name); err != nil {
			t.Errorf("ParseLevel(%q) failed: %v", name, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
