// Package history records past password checks as an append-only JSONL
// log with an HMAC chain for tamper evidence. Passwords are never
// written to disk; each event carries only a keyed fingerprint, so the
// log can show when a given password was last checked without storing
// it.
package history

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/crypto/hkdf"

	"github.com/xmzio1/passcheck/pkg/strength"
)

// MinDiskSpace is the minimum free space required before a write.
const MinDiskSpace = 1024 * 1024 // 1 MB

// Source identifies where a check originated.
const (
	SourceCLI   = "cli"
	SourceBatch = "batch"
	SourceMCP   = "mcp"
)

// Event is a single recorded check.
type Event struct {
	Version   int    `json:"v"`  // schema version (1)
	ID        string `json:"id"` // time-sortable unique ID
	Timestamp string `json:"ts"` // RFC 3339 nanosecond precision

	// Fingerprint is the HMAC-SHA256 of the checked password under the
	// log-local key. Identical passwords produce identical fingerprints
	// within one log, and nothing else can be recovered from it.
	Fingerprint string `json:"fp"`

	Length   int    `json:"length"`
	Score    int    `json:"score"`
	Strength string `json:"strength"`
	Source   string `json:"source"`

	Chain Chain `json:"chain"`
}

// Chain links events for tamper detection.
type Chain struct {
	Sequence int64  `json:"seq"`
	PrevHash string `json:"prev"`
	HMAC     string `json:"hmac"`
}

// chainState is persisted between runs so appends continue the chain.
type chainState struct {
	Sequence int64  `json:"seq"`
	PrevHash string `json:"prev"`
}

// VerifyResult reports the outcome of a chain verification.
type VerifyResult struct {
	Valid           bool     `json:"valid"`
	RecordsTotal    int      `json:"records_total"`
	RecordsVerified int      `json:"records_verified"`
	Errors          []string `json:"errors,omitempty"`
}

// Logger appends check events to monthly JSONL files under a
// directory. The HMAC key is derived from a random secret created on
// first use and kept alongside the log.
type Logger struct {
	path     string
	hmacKey  []byte
	mu       sync.Mutex
	sequence int64
	prevHash string
}

// New opens (or initializes) the check history at dir.
func New(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("history: failed to create directory: %w", err)
	}

	secret, err := loadOrCreateSecret(filepath.Join(dir, "history.key"))
	if err != nil {
		return nil, err
	}

	// Derive the HMAC key rather than using the file secret directly so
	// the derivation label versions the scheme.
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, secret, nil, []byte("check-history-v1"))
	if _, err := r.Read(key); err != nil {
		return nil, fmt.Errorf("history: failed to derive HMAC key: %w", err)
	}

	l := &Logger{
		path:     dir,
		hmacKey:  key,
		prevHash: "genesis",
	}
	if err := l.loadChainState(); err != nil {
		// First run, or lost metadata: start a fresh chain.
		l.sequence = 0
		l.prevHash = "genesis"
	}
	return l, nil
}

// Path returns the history directory.
func (l *Logger) Path() string {
	return l.path
}

// Append records one check. Only derived fields of the report are
// stored; the password itself is reduced to its fingerprint.
func (l *Logger) Append(r strength.Report, source string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkDiskSpace(); err != nil {
		return err
	}

	event := Event{
		Version:     1,
		ID:          newEventID(),
		Timestamp:   time.Now().UTC().Format(time.RFC3339Nano),
		Fingerprint: l.fingerprint(r.Password),
		Length:      r.Length,
		Score:       r.Score,
		Strength:    r.Strength.String(),
		Source:      source,
	}

	l.sequence++
	event.Chain.Sequence = l.sequence
	event.Chain.PrevHash = l.prevHash
	event.Chain.HMAC = l.recordHMAC(&event)
	l.prevHash = event.Chain.HMAC

	if err := l.writeEvent(&event); err != nil {
		return err
	}
	return l.saveChainState()
}

// fingerprint computes the keyed fingerprint of a password.
func (l *Logger) fingerprint(password string) string {
	mac := hmac.New(sha256.New, l.hmacKey)
	mac.Write([]byte(password))
	return hex.EncodeToString(mac.Sum(nil))
}

// recordHMAC computes the chain HMAC over every significant field.
func (l *Logger) recordHMAC(e *Event) string {
	data := fmt.Sprintf("%d|%s|%s|%s|%d|%d|%s|%s|%d|%s",
		e.Version, e.ID, e.Timestamp, e.Fingerprint,
		e.Length, e.Score, e.Strength, e.Source,
		e.Chain.Sequence, e.Chain.PrevHash)
	mac := hmac.New(sha256.New, l.hmacKey)
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

// writeEvent appends an event to the current month's log file.
func (l *Logger) writeEvent(event *Event) error {
	name := time.Now().UTC().Format("2006-01") + ".jsonl"
	f, err := os.OpenFile(filepath.Join(l.path, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("history: failed to open log file: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("history: failed to marshal event: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("history: failed to write event: %w", err)
	}
	return nil
}

func (l *Logger) loadChainState() error {
	data, err := os.ReadFile(filepath.Join(l.path, "history.meta"))
	if err != nil {
		return err
	}
	var state chainState
	if err := json.Unmarshal(data, &state); err != nil {
		return err
	}
	l.sequence = state.Sequence
	l.prevHash = state.PrevHash
	return nil
}

func (l *Logger) saveChainState() error {
	data, err := json.Marshal(chainState{Sequence: l.sequence, PrevHash: l.prevHash})
	if err != nil {
		return fmt.Errorf("history: failed to marshal chain state: %w", err)
	}
	if err := os.WriteFile(filepath.Join(l.path, "history.meta"), data, 0600); err != nil {
		return fmt.Errorf("history: failed to save chain state: %w", err)
	}
	return nil
}

// loadOrCreateSecret reads the log-local secret, generating it on
// first use with restrictive permissions.
func loadOrCreateSecret(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		secret, decErr := hex.DecodeString(string(data))
		if decErr != nil || len(secret) != 32 {
			return nil, fmt.Errorf("history: corrupt key file %s", path)
		}
		return secret, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("history: failed to read key file: %w", err)
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("history: failed to generate key: %w", err)
	}
	if err := os.WriteFile(path, []byte(hex.EncodeToString(secret)), 0600); err != nil {
		return nil, fmt.Errorf("history: failed to write key file: %w", err)
	}
	return secret, nil
}

// newEventID returns a time-sortable unique identifier: a 48-bit
// millisecond timestamp followed by 80 random bits, hex encoded.
func newEventID() string {
	buf := make([]byte, 16)
	ts := time.Now().UnixMilli()
	for i := 5; i >= 0; i-- {
		buf[i] = byte(ts & 0xFF)
		ts >>= 8
	}
	if _, err := rand.Read(buf[6:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}

// logFiles returns the log files in chronological order. The
// YYYY-MM.jsonl naming makes lexical order chronological.
func (l *Logger) logFiles() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(l.path, "*.jsonl"))
	if err != nil {
		return nil, fmt.Errorf("history: failed to list log files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// readLogFile parses all events from one log file.
func readLogFile(path string) ([]Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var events []Event
	for _, line := range splitLines(data) {
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("history: failed to parse record: %w", err)
		}
		events = append(events, event)
	}
	return events, nil
}

func splitLines(data []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, b := range data {
		if b == '\n' {
			if i > start {
				lines = append(lines, data[start:i])
			}
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, data[start:])
	}
	return lines
}

// readAll loads every event across all log files in order.
func (l *Logger) readAll() ([]Event, error) {
	files, err := l.logFiles()
	if err != nil {
		return nil, err
	}
	var all []Event
	for _, file := range files {
		events, err := readLogFile(file)
		if err != nil {
			return nil, fmt.Errorf("history: failed to read %s: %w", file, err)
		}
		all = append(all, events...)
	}
	return all, nil
}

// List returns events, newest last. limit 0 means all; a non-zero
// since drops events at or before that time.
func (l *Logger) List(limit int, since time.Time) ([]Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	all, err := l.readAll()
	if err != nil {
		return nil, err
	}

	filtered := all
	if !since.IsZero() {
		filtered = nil
		for _, event := range all {
			ts, err := time.Parse(time.RFC3339Nano, event.Timestamp)
			if err != nil {
				continue
			}
			if ts.After(since) {
				filtered = append(filtered, event)
			}
		}
	}

	if limit > 0 && len(filtered) > limit {
		filtered = filtered[len(filtered)-limit:]
	}
	return filtered, nil
}

// Verify walks the whole chain and checks sequence continuity, link
// hashes, and per-record HMACs.
func (l *Logger) Verify() (*VerifyResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	all, err := l.readAll()
	if err != nil {
		return nil, err
	}

	result := &VerifyResult{Valid: true}
	expectedPrev := "genesis"
	var expectedSeq int64 = 1

	for _, event := range all {
		result.RecordsTotal++

		if event.Chain.Sequence != expectedSeq {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf(
				"sequence gap at record %s: expected %d, got %d",
				event.ID, expectedSeq, event.Chain.Sequence))
		}
		if event.Chain.PrevHash != expectedPrev {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf(
				"chain broken at record %s: expected prev %s, got %s",
				event.ID, expectedPrev, event.Chain.PrevHash))
		}
		if event.Chain.HMAC != l.recordHMAC(&event) {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf(
				"HMAC mismatch at record %s: possible tampering", event.ID))
		}

		expectedPrev = event.Chain.HMAC
		expectedSeq++
	}

	result.RecordsVerified = result.RecordsTotal
	return result, nil
}
