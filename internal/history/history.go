// Package history keeps a local record of plans generated from the CLI,
// so repeated runs with the same profile can be detected without a
// database server.
package history

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/claude/planforge/internal/plan"
	"github.com/claude/planforge/internal/profile"
)

// DB is the SQLite-backed generation history.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the history database at dir/history.db.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS generated_plans (
		profile_hash TEXT PRIMARY KEY,
		profile      TEXT NOT NULL,
		plan         TEXT NOT NULL,
		split        TEXT NOT NULL,
		level        TEXT NOT NULL,
		generated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history table: %w", err)
	}

	return &DB{db: db}, nil
}

// Entry is one remembered generation.
type Entry struct {
	ProfileHash string
	Profile     profile.UserProfile
	Plan        plan.TrainingPlan
	Split       string
	Level       string
	GeneratedAt time.Time
}

// HashProfile derives a stable key for a profile. Generation is
// deterministic, so an identical profile always maps to the same plan.
func HashProfile(up profile.UserProfile) (string, error) {
	data, err := json.Marshal(up)
	if err != nil {
		return "", fmt.Errorf("encoding profile: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Lookup returns the remembered plan for a profile, if any.
func (h *DB) Lookup(hash string) (*Entry, error) {
	var (
		e           Entry
		profileJSON string
		planJSON    string
	)
	err := h.db.QueryRow(
		`SELECT profile_hash, profile, plan, split, level, generated_at
		 FROM generated_plans WHERE profile_hash = ?`, hash,
	).Scan(&e.ProfileHash, &profileJSON, &planJSON, &e.Split, &e.Level, &e.GeneratedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	if err := json.Unmarshal([]byte(profileJSON), &e.Profile); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	if err := json.Unmarshal([]byte(planJSON), &e.Plan); err != nil {
		return nil, fmt.Errorf("decoding plan: %w", err)
	}
	return &e, nil
}

// Record remembers a generated plan, replacing any earlier entry for the
// same profile.
func (h *DB) Record(e Entry) error {
	profileJSON, err := json.Marshal(e.Profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	planJSON, err := json.Marshal(e.Plan)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}

	_, err = h.db.Exec(
		`INSERT OR REPLACE INTO generated_plans (profile_hash, profile, plan, split, level)
		 VALUES (?, ?, ?, ?, ?)`,
		e.ProfileHash, string(profileJSON), string(planJSON), e.Split, e.Level,
	)
	return err
}

// Recent returns the latest entries, newest first.
func (h *DB) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := h.db.Query(
		`SELECT profile_hash, profile, plan, split, level, generated_at
		 FROM generated_plans ORDER BY generated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		var (
			e           Entry
			profileJSON string
			planJSON    string
		)
		if err := rows.Scan(&e.ProfileHash, &profileJSON, &planJSON, &e.Split, &e.Level, &e.GeneratedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if err := json.Unmarshal([]byte(profileJSON), &e.Profile); err != nil {
			return nil, fmt.Errorf("decoding profile: %w", err)
		}
		if err := json.Unmarshal([]byte(planJSON), &e.Plan); err != nil {
			return nil, fmt.Errorf("decoding plan: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// Close closes the history database.
func (h *DB) Close() error {
	return h.db.Close()
}
