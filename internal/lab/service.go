package lab

import (
	"context"
	"fmt"

	"rsalab-go/internal/model"
	"rsalab-go/internal/rsa"
)

// LabService is the orchestration layer that coordinates key generation,
// encryption and decryption with the session store, as needed by the CLI.
type LabService struct {
	database Database
	logger   Logger
	clock    Clock
	idgen    IDGenerator
}

// NewLabService creates a new LabService with the provided dependencies.
// A nil logger disables logging.
func NewLabService(database Database, logger Logger, clock Clock, idgen IDGenerator) *LabService {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &LabService{
		database: database,
		logger:   logger,
		clock:    clock,
		idgen:    idgen,
	}
}

// GenerateKeys generates a fresh RSA keypair of the given modulus size,
// stores it, and makes it the active keypair for the session. The progress
// callback, when non-nil, is invoked as each key component is found.
func (s *LabService) GenerateKeys(ctx context.Context, bits int, progress rsa.ProgressFunc) (*model.Keypair, error) {
	if !keySizeAllowed(bits) {
		return nil, fmt.Errorf("%w: %d bits", ErrKeySizeNotAllowed, bits)
	}

	var opts []rsa.KeypairOption
	if progress != nil {
		opts = append(opts, rsa.WithProgress(progress))
	}

	pub, priv, err := rsa.GenerateKeypair(ctx, bits, opts...)
	if err != nil {
		return nil, fmt.Errorf("generating keypair: %w", err)
	}

	keypair := &model.Keypair{
		ID:        s.idgen.New(),
		CreatedAt: s.clock.Now(),
		Bits:      bits,
		N:         pub.N.String(),
		E:         pub.E.String(),
		D:         priv.D.String(),
		P:         priv.P.String(),
		Q:         priv.Q.String(),
		Active:    true,
	}
	if err := s.database.CreateKeypair(keypair); err != nil {
		return nil, fmt.Errorf("storing keypair: %w", err)
	}

	s.logger.Info("keypair generated", "bits", bits, "id", keypair.ID)
	return keypair, nil
}

// ImportKeypair stores an externally supplied keypair and makes it the
// active one. ID and CreatedAt are assigned here.
func (s *LabService) ImportKeypair(kp *model.Keypair) (*model.Keypair, error) {
	if _, err := PrivateKeyFromModel(kp); err != nil {
		return nil, fmt.Errorf("validating keypair: %w", err)
	}

	kp.ID = s.idgen.New()
	kp.CreatedAt = s.clock.Now()
	if err := s.database.CreateKeypair(kp); err != nil {
		return nil, fmt.Errorf("storing keypair: %w", err)
	}

	s.logger.Info("keypair imported", "bits", kp.Bits, "id", kp.ID)
	return kp, nil
}

// ActiveKeypair returns the currently active keypair, or ErrNoActiveKeypair
// when none exists.
func (s *LabService) ActiveKeypair() (*model.Keypair, error) {
	keypair, err := s.database.ActiveKeypair()
	if err != nil {
		return nil, fmt.Errorf("loading active keypair: %w", err)
	}
	if keypair == nil {
		return nil, ErrNoActiveKeypair
	}
	return keypair, nil
}

// EncryptMessage encrypts text with the active public key and records the
// message. Returns the stored message, whose Ciphertext holds the blocks as
// space separated decimal integers.
func (s *LabService) EncryptMessage(text string) (*model.Message, error) {
	keypair, err := s.ActiveKeypair()
	if err != nil {
		return nil, err
	}
	pub, err := PublicKeyFromModel(keypair)
	if err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}

	blocks, err := rsa.Encrypt(pub, text)
	if err != nil {
		return nil, fmt.Errorf("encrypting message: %w", err)
	}

	message := &model.Message{
		ID:         s.idgen.New(),
		KeypairID:  keypair.ID,
		Direction:  model.DirectionEncrypt,
		Plaintext:  text,
		Ciphertext: FormatBlocks(blocks),
		CreatedAt:  s.clock.Now(),
	}
	if err := s.database.CreateMessage(message); err != nil {
		return nil, fmt.Errorf("storing message: %w", err)
	}

	s.logger.Info("message encrypted", "blocks", len(blocks), "keypair", keypair.ID)
	return message, nil
}

// DecryptMessage decrypts the given ciphertext with the active private key
// and records the message. When ciphertext is empty, the most recently
// encrypted message is decrypted instead; ErrNoCiphertext is returned if
// there is none.
func (s *LabService) DecryptMessage(ciphertext string) (*model.Message, error) {
	keypair, err := s.ActiveKeypair()
	if err != nil {
		return nil, err
	}

	if ciphertext == "" {
		last, err := s.database.LastMessage(model.DirectionEncrypt)
		if err != nil {
			return nil, fmt.Errorf("loading last encrypted message: %w", err)
		}
		if last == nil {
			return nil, ErrNoCiphertext
		}
		ciphertext = last.Ciphertext
	}

	blocks, err := ParseBlocks(ciphertext)
	if err != nil {
		return nil, err
	}

	priv, err := PrivateKeyFromModel(keypair)
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}

	plaintext := rsa.Decrypt(priv, blocks)

	message := &model.Message{
		ID:         s.idgen.New(),
		KeypairID:  keypair.ID,
		Direction:  model.DirectionDecrypt,
		Plaintext:  plaintext,
		Ciphertext: FormatBlocks(blocks),
		CreatedAt:  s.clock.Now(),
	}
	if err := s.database.CreateMessage(message); err != nil {
		return nil, fmt.Errorf("storing message: %w", err)
	}

	s.logger.Info("message decrypted", "blocks", len(blocks), "keypair", keypair.ID)
	return message, nil
}

// Verification is the result of round-tripping the last encrypted message.
type Verification struct {
	Original  string
	Decrypted string
	Match     bool
}

// VerifyLast decrypts the most recently encrypted message and compares the
// result against the original plaintext. Returns ErrNothingToVerify when no
// encrypted message exists.
func (s *LabService) VerifyLast() (*Verification, error) {
	keypair, err := s.ActiveKeypair()
	if err != nil {
		return nil, err
	}

	last, err := s.database.LastMessage(model.DirectionEncrypt)
	if err != nil {
		return nil, fmt.Errorf("loading last encrypted message: %w", err)
	}
	if last == nil {
		return nil, ErrNothingToVerify
	}

	blocks, err := ParseBlocks(last.Ciphertext)
	if err != nil {
		return nil, err
	}
	priv, err := PrivateKeyFromModel(keypair)
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}

	decrypted := rsa.Decrypt(priv, blocks)
	return &Verification{
		Original:  last.Plaintext,
		Decrypted: decrypted,
		Match:     decrypted == last.Plaintext,
	}, nil
}

// GetHistory returns the most recent lab operations, newest first.
func (s *LabService) GetHistory(limit int) ([]*model.LabOperation, error) {
	ops, err := s.database.ListLabOperations(limit)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	return ops, nil
}
