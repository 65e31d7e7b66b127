package wordlist

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/xmzio1/passcheck/pkg/strength"
)

// Store keeps an imported wordlist in a local SQLite database. Every
// row is one set entry: each imported line is stored together with its
// lowercase form, matching strength.LoadCommonPasswords semantics, so
// LoadSet can rebuild the set without re-deriving anything.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	entry TEXT PRIMARY KEY
) WITHOUT ROWID;
`

// Open opens the store at path, creating the database and schema on
// first use.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("wordlist: failed to open store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("wordlist: failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// newStore wraps an existing database handle. Used by tests.
func newStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Import inserts wordlist lines into the store inside one transaction.
// Lines are trimmed and empty lines skipped; each remaining line is
// inserted along with its lowercase form when that differs. Existing
// entries are kept, so repeated imports merge lists.
//
// progress, when non-nil, is called once per input line. Returns the
// number of rows actually inserted.
func (s *Store) Import(lines []string, progress func()) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("wordlist: failed to begin import: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO entries (entry) VALUES (?)`)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("wordlist: failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	insert := func(entry string) error {
		res, err := stmt.Exec(entry)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		inserted += int(n)
		return nil
	}

	for _, line := range lines {
		if progress != nil {
			progress()
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := insert(line); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("wordlist: failed to insert entry: %w", err)
		}
		if lower := strings.ToLower(line); lower != line {
			if err := insert(lower); err != nil {
				tx.Rollback()
				return 0, fmt.Errorf("wordlist: failed to insert entry: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("wordlist: failed to commit import: %w", err)
	}
	return inserted, nil
}

// Clear removes all entries from the store.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("wordlist: failed to clear store: %w", err)
	}
	return nil
}

// Count returns the number of entries in the store.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("wordlist: failed to count entries: %w", err)
	}
	return n, nil
}

// LoadSet reads every entry into a strength.CommonSet. Rows already
// contain both the original and lowercase forms, so they map straight
// into the set.
func (s *Store) LoadSet() (strength.CommonSet, error) {
	rows, err := s.db.Query(`SELECT entry FROM entries`)
	if err != nil {
		return nil, fmt.Errorf("wordlist: failed to load entries: %w", err)
	}
	defer rows.Close()

	set := make(strength.CommonSet)
	for rows.Next() {
		var entry string
		if err := rows.Scan(&entry); err != nil {
			return nil, fmt.Errorf("wordlist: failed to scan entry: %w", err)
		}
		set[entry] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("wordlist: failed to read entries: %w", err)
	}
	return set, nil
}
