package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xmzio1/passcheck/pkg/strength"
)

func newTestLogger(t *testing.T) *Logger {
	t.Helper()
	logger, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return logger
}

func TestNewCreatesKey(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if logger.prevHash != "genesis" {
		t.Errorf("prevHash = %q, want %q", logger.prevHash, "genesis")
	}

	if _, err := os.Stat(filepath.Join(dir, "history.key")); err != nil {
		t.Errorf("key file not created: %v", err)
	}

	// Reopening must reuse the same key so fingerprints stay stable.
	logger2, err := New(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if logger.fingerprint("secret") != logger2.fingerprint("secret") {
		t.Error("fingerprint changed across reopen")
	}
}

func TestAppendAndList(t *testing.T) {
	logger := newTestLogger(t)

	for _, password := range []string{"qwerty123", "Str0ng!Xy#Qz"} {
		r := strength.Grade(password, nil)
		if err := logger.Append(r, SourceCLI); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	events, err := logger.List(0, time.Time{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}

	first := events[0]
	if first.Length != 9 {
		t.Errorf("Length = %d, want 9", first.Length)
	}
	if first.Strength != "Strong" {
		t.Errorf("Strength = %q, want %q", first.Strength, "Strong")
	}
	if first.Source != SourceCLI {
		t.Errorf("Source = %q, want %q", first.Source, SourceCLI)
	}
	if first.Fingerprint == "" || strings.Contains(first.Fingerprint, "qwerty") {
		t.Errorf("fingerprint should be opaque, got %q", first.Fingerprint)
	}
	if first.Chain.Sequence != 1 || events[1].Chain.Sequence != 2 {
		t.Errorf("bad sequence numbers: %d, %d",
			first.Chain.Sequence, events[1].Chain.Sequence)
	}
	if events[1].Chain.PrevHash != first.Chain.HMAC {
		t.Error("chain does not link second event to first")
	}
}

func TestListLimit(t *testing.T) {
	logger := newTestLogger(t)

	for i := 0; i < 5; i++ {
		if err := logger.Append(strength.Grade("abc", nil), SourceBatch); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	events, err := logger.List(2, time.Time{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("len(events) = %d, want 2", len(events))
	}
	// Limit keeps the most recent events.
	if events[1].Chain.Sequence != 5 {
		t.Errorf("last sequence = %d, want 5", events[1].Chain.Sequence)
	}
}

func TestPasswordNeverWritten(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	const password = "Tr0ub4dor&3-unique"
	if err := logger.Append(strength.Grade(password, nil), SourceCLI); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(string(data), password) {
			t.Errorf("plaintext password leaked into %s", entry.Name())
		}
	}
}

func TestVerify(t *testing.T) {
	logger := newTestLogger(t)

	for i := 0; i < 3; i++ {
		if err := logger.Append(strength.Grade("abcdefgh", nil), SourceCLI); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	result, err := logger.Verify()
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !result.Valid {
		t.Errorf("expected valid chain, got errors: %v", result.Errors)
	}
	if result.RecordsTotal != 3 {
		t.Errorf("RecordsTotal = %d, want 3", result.RecordsTotal)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := logger.Append(strength.Grade("abcdefgh", nil), SourceCLI); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.jsonl"))
	if err != nil || len(files) != 1 {
		t.Fatalf("expected one log file, got %v (err %v)", files, err)
	}

	// Flip the recorded score and rewrite the record.
	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatal(err)
	}
	var event Event
	if err := json.Unmarshal(data[:len(data)-1], &event); err != nil {
		t.Fatal(err)
	}
	event.Score += 10
	tampered, _ := json.Marshal(event)
	if err := os.WriteFile(files[0], append(tampered, '\n'), 0600); err != nil {
		t.Fatal(err)
	}

	result, err := logger.Verify()
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if result.Valid {
		t.Error("tampered record not detected")
	}
}

func TestExportJSON(t *testing.T) {
	logger := newTestLogger(t)
	if err := logger.Append(strength.Grade("qwerty123", nil), SourceMCP); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	data, err := logger.Export("json", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		t.Fatalf("export not valid JSON: %v", err)
	}
	if len(events) != 1 || events[0].Source != SourceMCP {
		t.Errorf("unexpected export contents: %+v", events)
	}
}

func TestExportCSV(t *testing.T) {
	logger := newTestLogger(t)
	if err := logger.Append(strength.Grade("qwerty123", nil), SourceCLI); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	data, err := logger.Export("csv", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if lines[0] != "timestamp,fingerprint,length,score,strength,source" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], ",Strong,cli") {
		t.Errorf("unexpected row: %q", lines[1])
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	logger := newTestLogger(t)
	if _, err := logger.Export("xml", time.Time{}, time.Time{}); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestPrune(t *testing.T) {
	logger := newTestLogger(t)
	for i := 0; i < 3; i++ {
		if err := logger.Append(strength.Grade("abc", nil), SourceCLI); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	// Nothing is older than an hour yet.
	count, err := logger.PrunePreview(time.Hour)
	if err != nil {
		t.Fatalf("PrunePreview failed: %v", err)
	}
	if count != 0 {
		t.Errorf("PrunePreview = %d, want 0", count)
	}

	// With a zero cutoff everything just written is "old".
	deleted, err := logger.Prune(-time.Hour)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if deleted != 3 {
		t.Errorf("Prune deleted %d, want 3", deleted)
	}

	events, err := logger.List(0, time.Time{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected empty history after prune, got %d events", len(events))
	}
}
