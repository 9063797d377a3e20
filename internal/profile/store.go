package profile

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

//go:embed schema.sql
var schemaSQL string

// Store persists profiles in a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new profile store instance.
func NewStore() *Store {
	return &Store{}
}

// DefaultPath returns the profile database path under the user config
// directory, creating the parent directory if needed.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config directory: %w", err)
	}
	dir := filepath.Join(base, "leapdb")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return filepath.Join(dir, "profiles.db"), nil
}

// Open opens a connection to the profile database.
// Use ":memory:" for an in-memory database.
func (s *Store) Open(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open profile database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping profile database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the profile database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InitSchema initializes the database schema.
func (s *Store) InitSchema() error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	_, err := s.db.Exec(schemaSQL)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Save inserts the profile, or updates the existing row when a profile
// with the same id is already saved. An empty id is assigned a new UUID.
func (s *Store) Save(p *Profile) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if err := p.Validate(); err != nil {
		return err
	}

	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	_, err := s.db.Exec(
		`INSERT INTO profiles (id, name, type, host, port, username, password, database, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   type = excluded.type,
		   host = excluded.host,
		   port = excluded.port,
		   username = excluded.username,
		   password = excluded.password,
		   database = excluded.database,
		   updated_at = excluded.updated_at`,
		p.ID, p.Name, p.Type, p.Host, p.Port, p.Username, p.Password, p.Database, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return nil
}

// Get retrieves a profile by id.
func (s *Store) Get(id string) (*Profile, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	p := &Profile{}
	err := s.db.QueryRow(
		`SELECT id, name, type, host, port, username, password, database FROM profiles WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Name, &p.Type, &p.Host, &p.Port, &p.Username, &p.Password, &p.Database)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return p, nil
}

// GetByName retrieves a profile by display name. Names are not unique;
// the first match in name order wins.
func (s *Store) GetByName(name string) (*Profile, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	p := &Profile{}
	err := s.db.QueryRow(
		`SELECT id, name, type, host, port, username, password, database FROM profiles WHERE name = ? ORDER BY name LIMIT 1`,
		name,
	).Scan(&p.ID, &p.Name, &p.Type, &p.Host, &p.Port, &p.Username, &p.Password, &p.Database)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile not found: %s", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return p, nil
}

// List returns all saved profiles ordered by name.
func (s *Store) List() ([]Profile, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(
		`SELECT id, name, type, host, port, username, password, database FROM profiles ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.Host, &p.Port, &p.Username, &p.Password, &p.Database); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}

	return profiles, nil
}

// Delete removes a profile by id.
func (s *Store) Delete(id string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	result, err := s.db.Exec(`DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("profile not found: %s", id)
	}

	return nil
}
