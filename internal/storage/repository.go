package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Repository handles all database operations
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new repository with SQLite
func NewRepository(dbPath string) (*Repository, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := &Repository{db: db}

	// Run migrations
	if err := repo.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repo, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// migrate creates the database schema
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS ids (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			object_id TEXT NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS discord_users (
			discord_id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			joined_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ids_name ON ids(name)`,
		`CREATE INDEX IF NOT EXISTS idx_ids_object_id ON ids(object_id)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// Identifier operations

// PutIdentifier stores an identifier record under a logical name.
// An existing record with the same name is replaced; the delete and insert
// run in one transaction so a crash cannot leave the name half-written.
func (r *Repository) PutIdentifier(objectID, name string, kind Kind) error {
	if !kind.Valid() {
		return fmt.Errorf("invalid identifier kind: %q", kind)
	}

	existing, err := r.IdentifierByName(name)
	if err != nil {
		return err
	}
	if existing != nil {
		slog.Info("Replacing identifier record", "name", name, "oldObjectID", existing.ObjectID, "newObjectID", objectID)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM ids WHERE name = ?`, name); err != nil {
		return err
	}
	if _, err := tx.Exec(
		`INSERT INTO ids (object_id, name, type) VALUES (?, ?, ?)`,
		objectID, name, string(kind),
	); err != nil {
		return err
	}

	return tx.Commit()
}

// RemoveIdentifier deletes the record stored under name.
// Removing an absent name is a logged no-op.
func (r *Repository) RemoveIdentifier(name string) error {
	result, err := r.db.Exec(`DELETE FROM ids WHERE name = ?`, name)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		slog.Warn("No identifier record to delete", "name", name)
		return nil
	}

	slog.Info("Deleted identifier record", "name", name)
	return nil
}

// IdentifierByName finds a record by its logical name.
// Returns (nil, nil) when no record exists.
func (r *Repository) IdentifierByName(name string) (*IdentifierRecord, error) {
	return r.queryIdentifier(`SELECT id, object_id, name, type FROM ids WHERE name = ?`, name)
}

// IdentifierByObjectID finds a record by the Discord object id it tracks.
// Returns (nil, nil) when no record exists.
func (r *Repository) IdentifierByObjectID(objectID string) (*IdentifierRecord, error) {
	return r.queryIdentifier(`SELECT id, object_id, name, type FROM ids WHERE object_id = ?`, objectID)
}

func (r *Repository) queryIdentifier(query string, arg string) (*IdentifierRecord, error) {
	rec := &IdentifierRecord{}
	var kind string
	err := r.db.QueryRow(query, arg).Scan(&rec.ID, &rec.ObjectID, &rec.Name, &kind)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec.Kind = Kind(kind)
	return rec, nil
}

// Member operations

// UpsertMember inserts a member record or overwrites an existing one
func (r *Repository) UpsertMember(memberID, username, joinedAt string) error {
	_, err := r.db.Exec(
		`INSERT INTO discord_users (discord_id, username, joined_at) VALUES (?, ?, ?)
		 ON CONFLICT(discord_id) DO UPDATE SET username = excluded.username, joined_at = excluded.joined_at`,
		memberID, username, joinedAt,
	)
	return err
}

// Member retrieves a member record by Discord user id.
// Returns (nil, nil) when no record exists.
func (r *Repository) Member(memberID string) (*MemberRecord, error) {
	m := &MemberRecord{}
	err := r.db.QueryRow(
		`SELECT discord_id, username, joined_at FROM discord_users WHERE discord_id = ?`,
		memberID,
	).Scan(&m.MemberID, &m.Username, &m.JoinedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// MemberCount returns the number of distinct members tracked
func (r *Repository) MemberCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM discord_users`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// RemoveMember deletes a member record; absent ids are a logged no-op
func (r *Repository) RemoveMember(memberID string) error {
	result, err := r.db.Exec(`DELETE FROM discord_users WHERE discord_id = ?`, memberID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		slog.Warn("No member record to delete", "memberID", memberID)
	}
	return nil
}
