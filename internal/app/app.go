package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"rsalab-go/internal/config"
	"rsalab-go/internal/database"
	"rsalab-go/internal/keyring"
	"rsalab-go/internal/lab"
	"rsalab-go/internal/model"
	"rsalab-go/internal/rsa"
)

// LabApp is the application layer between the CLI and LabService.
// It constructs all dependencies from config, exposes high-level operations,
// and manages the DB lifecycle on Close.
type LabApp struct {
	cfg     *config.Config
	db      lab.Database
	keyring *keyring.Keyring
	service *lab.LabService
	op      *LabOperation
	logFile *os.File
}

// NewLabApp creates a fully wired LabApp from the given config.
// operation identifies the CLI command being run (e.g. "GenerateKeys", "EncryptMessage").
// The caller must call Close when done.
func NewLabApp(cfg *config.Config, operation string) (*LabApp, error) {
	db, err := database.NewDatabaseFromConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("creating database: %w", err)
	}

	opID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	svc := lab.NewLabService(db, &slogAdapter{l: logger}, lab.RealClock{}, lab.UUIDGenerator{})
	op := NewLabOperation(operation, "")

	return &LabApp{
		cfg:     cfg,
		db:      db,
		keyring: keyring.NewKeyring(cfg.Keyring),
		service: svc,
		op:      op,
		logFile: logFile,
	}, nil
}

// persistOperation saves the lab operation to the database, giving it an auto-increment ID.
// This should only be called for DB-mutating commands.
func (a *LabApp) persistOperation() error {
	if a.op.Persisted() {
		return nil // already persisted
	}
	dbOp, err := a.db.CreateLabOperation(a.op.Operation, a.op.Parameters, time.Now())
	if err != nil {
		return fmt.Errorf("persisting lab operation: %w", err)
	}
	a.op.ID = dbOp.ID
	return nil
}

// FailOperation marks the current operation as failed. Close records the
// final status.
func (a *LabApp) FailOperation() {
	a.op.Status = "error"
}

// DefaultBits returns the configured default modulus size for key generation.
func (a *LabApp) DefaultBits() int {
	return a.cfg.Keygen.Bits
}

// GenerateKeys generates a new keypair of the given size and stores it as
// the active one. When bits is zero the configured default is used. The
// progress callback, when non-nil, is invoked as each key component is found.
func (a *LabApp) GenerateKeys(ctx context.Context, bits int, progress rsa.ProgressFunc) (*model.Keypair, error) {
	if bits == 0 {
		bits = a.cfg.Keygen.Bits
	}
	a.op.Parameters = fmt.Sprintf("bits=%d", bits)
	if err := a.persistOperation(); err != nil {
		return nil, err
	}
	return a.service.GenerateKeys(ctx, bits, progress)
}

// ActiveKeypair returns the currently active keypair.
func (a *LabApp) ActiveKeypair() (*model.Keypair, error) {
	return a.service.ActiveKeypair()
}

// EncryptMessage encrypts text with the active public key and records the message.
func (a *LabApp) EncryptMessage(text string) (*model.Message, error) {
	if err := a.persistOperation(); err != nil {
		return nil, err
	}
	return a.service.EncryptMessage(text)
}

// DecryptMessage decrypts the given ciphertext with the active private key.
// When ciphertext is empty the most recently encrypted message is decrypted.
func (a *LabApp) DecryptMessage(ciphertext string) (*model.Message, error) {
	if err := a.persistOperation(); err != nil {
		return nil, err
	}
	return a.service.DecryptMessage(ciphertext)
}

// VerifyLast round-trips the most recently encrypted message.
func (a *LabApp) VerifyLast() (*lab.Verification, error) {
	return a.service.VerifyLast()
}

// GetHistory returns the most recent lab operations.
func (a *LabApp) GetHistory(limit int) ([]*model.LabOperation, error) {
	return a.service.GetHistory(limit)
}

// ExportKeys writes the active keypair to the configured key files, with the
// private half encrypted under the passphrase.
func (a *LabApp) ExportKeys(passphrase string) error {
	kp, err := a.service.ActiveKeypair()
	if err != nil {
		return err
	}
	if err := a.persistOperation(); err != nil {
		return err
	}
	return a.keyring.Export(kp, passphrase)
}

// ImportKeys reads a keypair from the configured key files and makes it the
// active one.
func (a *LabApp) ImportKeys(passphrase string) (*model.Keypair, error) {
	kp, err := a.keyring.Import(passphrase)
	if err != nil {
		return nil, err
	}
	if err := a.persistOperation(); err != nil {
		return nil, err
	}
	return a.service.ImportKeypair(kp)
}

// KeyringConfigured returns true when exported key files exist on disk.
func (a *LabApp) KeyringConfigured() bool {
	return a.keyring.IsConfigured()
}

// Close finalizes the operation record and closes all resources.
func (a *LabApp) Close() error {
	var firstErr error

	if a.op.Persisted() {
		if err := a.db.FinishLabOperation(a.op.ID, a.op.Status, time.Now()); err != nil {
			firstErr = fmt.Errorf("finishing lab operation: %w", err)
		}
	}

	if err := a.db.Close(); err != nil {
		if firstErr == nil {
			firstErr = fmt.Errorf("closing database: %w", err)
		}
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
