// Package leads captures marketing leads: a local SQLite store of every
// submission, and a Submitter port for handing leads to downstream systems.
package leads

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Lead is one captured submission. Answers carries the quiz responses that
// produced the lead, keyed by question ID; it is empty for plain signups.
type Lead struct {
	ID        int64             `json:"id"`
	Email     string            `json:"email"`
	Name      string            `json:"name,omitempty"`
	Source    string            `json:"source,omitempty"` // e.g. "quiz", "toolkit-download"
	Archetype string            `json:"archetype,omitempty"`
	Answers   map[string]string `json:"answers,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// Store persists leads in SQLite.
type Store struct {
	conn *sql.DB
	mu   sync.Mutex // serialize writes
}

// Open opens or creates the lead database at the given path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// OpenMemory opens an in-memory store for testing.
func OpenMemory() (*Store, error) {
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, err
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS leads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL,
			name TEXT DEFAULT '',
			source TEXT DEFAULT '',
			archetype TEXT DEFAULT '',
			answers TEXT DEFAULT '{}',
			created_at INTEGER NOT NULL DEFAULT (unixepoch())
		)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_email ON leads(email)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_created ON leads(created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.conn.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// Insert stores a lead and fills in its ID and CreatedAt.
func (s *Store) Insert(lead *Lead) error {
	if lead.Email == "" {
		return fmt.Errorf("lead has no email")
	}

	answers := "{}"
	if len(lead.Answers) > 0 {
		b, err := json.Marshal(lead.Answers)
		if err != nil {
			return fmt.Errorf("encode answers: %w", err)
		}
		answers = string(b)
	}

	now := time.Now().UTC().Truncate(time.Second)

	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.conn.Exec(
		`INSERT INTO leads (email, name, source, archetype, answers, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		lead.Email, lead.Name, lead.Source, lead.Archetype, answers, now.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	lead.ID = id
	lead.CreatedAt = now
	return nil
}

// Recent returns up to limit leads, newest first.
func (s *Store) Recent(limit int) ([]Lead, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.conn.Query(
		`SELECT id, email, name, source, archetype, answers, created_at
		 FROM leads ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query leads: %w", err)
	}
	defer rows.Close()

	var out []Lead
	for rows.Next() {
		var l Lead
		var answers string
		var created int64
		if err := rows.Scan(&l.ID, &l.Email, &l.Name, &l.Source, &l.Archetype, &answers, &created); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		if answers != "" && answers != "{}" {
			if err := json.Unmarshal([]byte(answers), &l.Answers); err != nil {
				return nil, fmt.Errorf("decode answers for lead %d: %w", l.ID, err)
			}
		}
		l.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, l)
	}
	return out, rows.Err()
}

// Count returns the total number of stored leads.
func (s *Store) Count() (int, error) {
	var n int
	err := s.conn.QueryRow(`SELECT COUNT(*) FROM leads`).Scan(&n)
	return n, err
}
