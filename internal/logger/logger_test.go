package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"DEBUG": DEBUG, "debug": DEBUG, "WARN": WARN, "warning": WARN,
		"ERROR": ERROR, "INFO": INFO, "": INFO, "nonsense": INFO,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: INFO, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}

	l.Debug("hidden")
	l.Info("login succeeded", F("user", "u1"), F("error", errors.New("boom")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one entry, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("entry is not json: %v", err)
	}
	if entry["message"] != "login succeeded" || entry["user"] != "u1" || entry["error"] != "boom" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["level"] != "info" {
		t.Fatalf("unexpected level: %v", entry["level"])
	}
}

func TestLoggerRotatesBySize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plotline.log")
	if err := os.WriteFile(path, bytes.Repeat([]byte("x"), 64), 0644); err != nil {
		t.Fatal(err)
	}

	l, err := New(Config{Level: DEBUG, FilePath: path, MaxSize: 32, MaxBackups: 2})
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	if _, err := os.Stat(path + ".1"); err != nil {
		t.Fatalf("expected rotated backup: %v", err)
	}

	l.Info("fresh")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "fresh") {
		t.Fatalf("new entry not in current file: %q", data)
	}
}

func TestFailedRotationKeepsWriting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plotline.log")
	r, err := openRotatingFile(Config{FilePath: path, MaxBackups: 2})
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	r.open = func(string) (*os.File, error) { return nil, errors.New("no space left") }
	if err := r.rotate(); err == nil {
		t.Fatal("expected rotation error")
	}

	if _, err := r.Write([]byte("still here\n")); err != nil {
		t.Fatalf("write after failed rotation: %v", err)
	}
	data, err := os.ReadFile(path + ".1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "still here") {
		t.Fatalf("entry lost after failed rotation: %q", data)
	}
}
