package history

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Export renders events in the given format ("json" or "csv"). since
// and until bound the time range; zero values mean unbounded.
func (l *Logger) Export(format string, since, until time.Time) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	all, err := l.readAll()
	if err != nil {
		return nil, err
	}

	var filtered []Event
	for _, event := range all {
		ts, err := time.Parse(time.RFC3339Nano, event.Timestamp)
		if err != nil {
			continue
		}
		if !since.IsZero() && ts.Before(since) {
			continue
		}
		if !until.IsZero() && ts.After(until) {
			continue
		}
		filtered = append(filtered, event)
	}

	switch format {
	case "json":
		return json.MarshalIndent(filtered, "", "  ")
	case "csv":
		return formatCSV(filtered), nil
	default:
		return nil, fmt.Errorf("history: unsupported format: %s", format)
	}
}

func formatCSV(events []Event) []byte {
	var b strings.Builder
	b.WriteString("timestamp,fingerprint,length,score,strength,source\n")
	for _, event := range events {
		fp := event.Fingerprint
		if len(fp) > 16 {
			fp = fp[:16] + "..."
		}
		b.WriteString(csvEscape(event.Timestamp))
		b.WriteByte(',')
		b.WriteString(csvEscape(fp))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(event.Length))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(event.Score))
		b.WriteByte(',')
		b.WriteString(csvEscape(event.Strength))
		b.WriteByte(',')
		b.WriteString(csvEscape(event.Source))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// csvEscape quotes fields containing separators and fields that could
// be interpreted as spreadsheet formulas.
func csvEscape(field string) string {
	if field == "" {
		return field
	}
	needsQuoting := strings.ContainsAny(field, ",\"\n\r")
	switch field[0] {
	case '=', '+', '-', '@':
		needsQuoting = true
	}
	if !needsQuoting {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// PrunePreview returns how many events Prune would delete.
func (l *Logger) PrunePreview(olderThan time.Duration) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	all, err := l.readAll()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, event := range all {
		ts, err := time.Parse(time.RFC3339Nano, event.Timestamp)
		if err != nil {
			continue
		}
		if ts.Before(cutoff) {
			count++
		}
	}
	return count, nil
}

// Prune deletes events older than the given duration and returns the
// number removed. Files whose events are all old are deleted whole;
// mixed files are rewritten atomically.
func (l *Logger) Prune(olderThan time.Duration) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	files, err := l.logFiles()
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, file := range files {
		events, err := readLogFile(file)
		if err != nil {
			return deleted, fmt.Errorf("history: failed to read %s: %w", file, err)
		}

		var remaining []Event
		for _, event := range events {
			ts, err := time.Parse(time.RFC3339Nano, event.Timestamp)
			if err != nil || ts.After(cutoff) {
				remaining = append(remaining, event)
				continue
			}
			deleted++
		}

		switch {
		case len(remaining) == len(events):
			// Nothing pruned from this file.
		case len(remaining) == 0:
			if err := os.Remove(file); err != nil {
				return deleted, fmt.Errorf("history: failed to delete %s: %w", file, err)
			}
		default:
			if err := rewriteLogFile(file, remaining); err != nil {
				return deleted, fmt.Errorf("history: failed to rewrite %s: %w", file, err)
			}
		}
	}
	return deleted, nil
}

func rewriteLogFile(path string, events []Event) error {
	tempPath := path + ".tmp"
	f, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	for _, event := range events {
		data, err := json.Marshal(event)
		if err != nil {
			f.Close()
			os.Remove(tempPath)
			return err
		}
		if _, err := f.Write(append(data, '\n')); err != nil {
			f.Close()
			os.Remove(tempPath)
			return err
		}
	}

	if err := f.Close(); err != nil {
		os.Remove(tempPath)
		return err
	}
	return os.Rename(tempPath, path)
}
