package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rsalab-go/internal/database/migrations"
	"rsalab-go/internal/lab"
	"rsalab-go/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteDatabase implements the Database interface using SQLite.
type SQLiteDatabase struct {
	db   *sql.DB
	path string
}

// NewSQLiteDatabase creates a new SQLite database connection.
// path can be a file path or ":memory:" for in-memory database.
func NewSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	return &SQLiteDatabase{
		db:   db,
		path: path,
	}, nil
}

// NewSQLiteDatabaseFromDB wraps an existing database connection.
// The caller is responsible for ensuring the connection is properly configured.
func NewSQLiteDatabaseFromDB(db *sql.DB) *SQLiteDatabase {
	return &SQLiteDatabase{
		db:   db,
		path: "",
	}
}

// OpenConnection opens and configures a SQLite database connection with appropriate PRAGMAs.
// This is exported for use in tools and tests that need a properly configured SQLite connection.
// path can be a file path or ":memory:" for in-memory database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// Keypair operations

// CreateKeypair stores a new keypair and makes it the active one. Any
// previously active keypair is deactivated in the same transaction.
func (s *SQLiteDatabase) CreateKeypair(kp *model.Keypair) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE keypairs SET active = 0 WHERE active = 1`); err != nil {
		return fmt.Errorf("deactivating previous keypair: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO keypairs (id, created_at, bits, n, e, d, p, q, active)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1)`,
		kp.ID, kp.CreatedAt, kp.Bits, kp.N, kp.E, kp.D, kp.P, kp.Q,
	)
	if err != nil {
		return fmt.Errorf("inserting keypair: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	kp.Active = true
	return nil
}

// ActiveKeypair returns the currently active keypair, or nil when no keypair
// has been stored yet.
func (s *SQLiteDatabase) ActiveKeypair() (*model.Keypair, error) {
	row := s.db.QueryRow(
		`SELECT id, created_at, bits, n, e, d, p, q, active
		 FROM keypairs WHERE active = 1`,
	)

	var kp model.Keypair
	err := row.Scan(&kp.ID, &kp.CreatedAt, &kp.Bits, &kp.N, &kp.E, &kp.D, &kp.P, &kp.Q, &kp.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding active keypair: %w", err)
	}
	return &kp, nil
}

// Message operations

func (s *SQLiteDatabase) CreateMessage(msg *model.Message) error {
	_, err := s.db.Exec(
		`INSERT INTO messages (id, keypair_id, direction, plaintext, ciphertext, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.KeypairID, msg.Direction, msg.Plaintext, msg.Ciphertext, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}
	return nil
}

// LastMessage returns the most recent message with the given direction, or
// nil when there is none.
func (s *SQLiteDatabase) LastMessage(direction string) (*model.Message, error) {
	row := s.db.QueryRow(
		`SELECT id, keypair_id, direction, plaintext, ciphertext, created_at
		 FROM messages WHERE direction = ?
		 ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		direction,
	)

	var msg model.Message
	err := row.Scan(&msg.ID, &msg.KeypairID, &msg.Direction, &msg.Plaintext, &msg.Ciphertext, &msg.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding last message: %w", err)
	}
	return &msg, nil
}

// Operation tracking

func (s *SQLiteDatabase) CreateLabOperation(operation, parameters string, startedAt time.Time) (*model.LabOperation, error) {
	result, err := s.db.Exec(
		`INSERT INTO lab_operations (operation, parameters, started_at, status)
		 VALUES (?, ?, ?, 'running')`,
		operation, parameters, startedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating lab operation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting lab operation ID: %w", err)
	}

	return &model.LabOperation{
		ID:         id,
		Operation:  operation,
		Parameters: parameters,
		StartedAt:  startedAt,
		Status:     "running",
	}, nil
}

func (s *SQLiteDatabase) FinishLabOperation(id int64, status string, finishedAt time.Time) error {
	_, err := s.db.Exec(
		`UPDATE lab_operations SET finished_at = ?, status = ? WHERE id = ?`,
		finishedAt, status, id,
	)
	if err != nil {
		return fmt.Errorf("finishing lab operation: %w", err)
	}
	return nil
}

// ListLabOperations returns the most recent operations, newest first.
func (s *SQLiteDatabase) ListLabOperations(limit int) ([]*model.LabOperation, error) {
	rows, err := s.db.Query(
		`SELECT id, operation, parameters, started_at, finished_at, status
		 FROM lab_operations ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing lab operations: %w", err)
	}
	defer rows.Close()

	var ops []*model.LabOperation
	for rows.Next() {
		var op model.LabOperation
		err := rows.Scan(&op.ID, &op.Operation, &op.Parameters, &op.StartedAt, &op.FinishedAt, &op.Status)
		if err != nil {
			return nil, fmt.Errorf("scanning lab operation: %w", err)
		}
		ops = append(ops, &op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing lab operations: %w", err)
	}
	return ops, nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteDatabase) Path() string {
	return s.path
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteDatabase) CheckMigrations() error {
	return migrations.Check(s.db)
}

// Migrate runs all pending schema migrations.
func (s *SQLiteDatabase) Migrate() error {
	return migrations.Up(s.db)
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteDatabase implements lab.Database interface
var _ lab.Database = (*SQLiteDatabase)(nil)
