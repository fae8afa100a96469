// Package keyring persists RSA keypairs as files so they can be moved
// between machines. The public half is written as plaintext TOML; the
// private half is wrapped with age's scrypt-based passphrase encryption.
package keyring

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"filippo.io/age"
	"github.com/BurntSushi/toml"

	"rsalab-go/internal/config"
	"rsalab-go/internal/model"
)

// Keyring reads and writes keypair files at the configured paths.
type Keyring struct {
	publicKeyPath  string
	privateKeyPath string
}

// NewKeyring creates a new Keyring from configuration.
func NewKeyring(cfg config.KeyringConfig) *Keyring {
	return &Keyring{
		publicKeyPath:  cfg.PublicKeyPath,
		privateKeyPath: cfg.PrivateKeyPath,
	}
}

// publicKeyFile is the plaintext TOML layout of the exported public key.
type publicKeyFile struct {
	Bits int    `toml:"bits"`
	N    string `toml:"n"`
	E    string `toml:"e"`
}

// privateKeyFile is the TOML layout of the exported private key. It is
// never written to disk unencrypted.
type privateKeyFile struct {
	Bits int    `toml:"bits"`
	N    string `toml:"n"`
	E    string `toml:"e"`
	D    string `toml:"d"`
	P    string `toml:"p"`
	Q    string `toml:"q"`
}

// Export writes the keypair to the configured paths. The public key is
// stored in plaintext; the private key is encrypted with the passphrase.
func (k *Keyring) Export(kp *model.Keypair, passphrase string) error {
	if err := os.MkdirAll(filepath.Dir(k.publicKeyPath), 0700); err != nil {
		return fmt.Errorf("creating public key directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(k.privateKeyPath), 0700); err != nil {
		return fmt.Errorf("creating private key directory: %w", err)
	}

	// Write public key in plaintext.
	var pub bytes.Buffer
	err := toml.NewEncoder(&pub).Encode(publicKeyFile{
		Bits: kp.Bits,
		N:    kp.N,
		E:    kp.E,
	})
	if err != nil {
		return fmt.Errorf("encoding public key: %w", err)
	}
	if err := os.WriteFile(k.publicKeyPath, pub.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing public key: %w", err)
	}

	// Encrypt private key with passphrase and write it.
	privFile, err := os.OpenFile(k.privateKeyPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("creating private key file: %w", err)
	}
	defer privFile.Close()

	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return fmt.Errorf("creating scrypt recipient: %w", err)
	}

	w, err := age.Encrypt(privFile, recipient)
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}

	err = toml.NewEncoder(w).Encode(privateKeyFile{
		Bits: kp.Bits,
		N:    kp.N,
		E:    kp.E,
		D:    kp.D,
		P:    kp.P,
		Q:    kp.Q,
	})
	if err != nil {
		return fmt.Errorf("writing encrypted private key: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing encrypted private key: %w", err)
	}

	return nil
}

// Import decrypts the private key file with the passphrase and returns the
// keypair. ID and CreatedAt are left for the caller to assign when storing.
func (k *Keyring) Import(passphrase string) (*model.Keypair, error) {
	privData, err := os.ReadFile(k.privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("reading private key file: %w", err)
	}

	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt identity: %w", err)
	}

	decReader, err := age.Decrypt(bytes.NewReader(privData), identity)
	if err != nil {
		return nil, fmt.Errorf("decrypting private key: %w", err)
	}

	keyData, err := io.ReadAll(decReader)
	if err != nil {
		return nil, fmt.Errorf("reading decrypted private key: %w", err)
	}

	var priv privateKeyFile
	if err := toml.Unmarshal(keyData, &priv); err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}
	if priv.N == "" || priv.E == "" || priv.D == "" {
		return nil, fmt.Errorf("private key file is missing key components")
	}

	return &model.Keypair{
		Bits: priv.Bits,
		N:    priv.N,
		E:    priv.E,
		D:    priv.D,
		P:    priv.P,
		Q:    priv.Q,
	}, nil
}

// ReadPublic reads the plaintext public key file. It does not require a
// passphrase.
func (k *Keyring) ReadPublic() (*model.Keypair, error) {
	data, err := os.ReadFile(k.publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("reading public key file: %w", err)
	}

	var pub publicKeyFile
	if err := toml.Unmarshal(data, &pub); err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}
	if pub.N == "" || pub.E == "" {
		return nil, fmt.Errorf("public key file is missing key components")
	}

	return &model.Keypair{
		Bits: pub.Bits,
		N:    pub.N,
		E:    pub.E,
	}, nil
}

// IsConfigured returns true if both key files exist.
func (k *Keyring) IsConfigured() bool {
	if _, err := os.Stat(k.publicKeyPath); err != nil {
		return false
	}
	if _, err := os.Stat(k.privateKeyPath); err != nil {
		return false
	}
	return true
}
