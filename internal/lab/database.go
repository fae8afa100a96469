package lab

import (
	"time"

	"rsalab-go/internal/model"
)

// Database provides an interface for session storage: the current keypair,
// the messages encrypted and decrypted with it, and the operation history.
type Database interface {
	// Keypair operations

	// CreateKeypair stores a new keypair and makes it the active one,
	// deactivating any previously active keypair.
	CreateKeypair(kp *model.Keypair) error

	// ActiveKeypair returns the currently active keypair, or nil when no
	// keypair has been generated yet.
	ActiveKeypair() (*model.Keypair, error)

	// Message operations

	// CreateMessage records an encryption or decryption result.
	CreateMessage(msg *model.Message) error

	// LastMessage returns the most recent message with the given
	// direction, or nil when there is none.
	LastMessage(direction string) (*model.Message, error)

	// Operation history

	// CreateLabOperation records the start of a CLI operation and
	// returns it with its database-assigned ID.
	CreateLabOperation(operation, parameters string, startedAt time.Time) (*model.LabOperation, error)

	// FinishLabOperation marks an operation finished with a status.
	FinishLabOperation(id int64, status string, finishedAt time.Time) error

	// ListLabOperations returns the most recent operations, newest first.
	ListLabOperations(limit int) ([]*model.LabOperation, error)

	// Close closes the database connection.
	Close() error
}
