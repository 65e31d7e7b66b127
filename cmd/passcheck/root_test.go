package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"hours", "24h", 24 * time.Hour, false},
		{"days", "30d", 30 * 24 * time.Hour, false},
		{"weeks", "2w", 14 * 24 * time.Hour, false},
		{"months", "12m", 360 * 24 * time.Hour, false},
		{"years", "1y", 365 * 24 * time.Hour, false},
		{"standard fallback", "90s", 90 * time.Second, false},
		{"too short", "h", 0, true},
		{"garbage", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDuration(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDuration(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("parseDuration(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadWordlistFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "common.txt")
	if err := os.WriteFile(path, []byte("password\nletmein\n\nQwerty\n"), 0600); err != nil {
		t.Fatal(err)
	}

	set, err := loadWordlistFile(path, "")
	if err != nil {
		t.Fatalf("loadWordlistFile() error = %v", err)
	}

	if !set.Contains("password") {
		t.Errorf("expected set to contain %q", "password")
	}
	if !set.Contains("qwerty") {
		t.Error("expected lowercase form of mixed-case entry to match")
	}
	if set.Contains("") {
		t.Error("blank line should not be in the set")
	}
}

func TestLoadWordlistFileMissing(t *testing.T) {
	if _, err := loadWordlistFile(filepath.Join(t.TempDir(), "nope.txt"), ""); err == nil {
		t.Fatal("expected error for missing file")
	}
}
