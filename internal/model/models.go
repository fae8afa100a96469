package model

import (
	"database/sql"
	"time"
)

// Keypair is a stored RSA keypair. The big integers are kept as decimal
// text: SQLite has no arbitrary-precision integer type, and decimal strings
// round-trip exactly through math/big.
type Keypair struct {
	ID        string // UUID
	CreatedAt time.Time
	Bits      int    // modulus size requested at generation
	N         string // modulus
	E         string // public exponent
	D         string // private exponent
	P         string // first prime factor
	Q         string // second prime factor
	Active    bool   // at most one keypair is active at a time
}

// Message directions.
const (
	DirectionEncrypt = "encrypt"
	DirectionDecrypt = "decrypt"
)

// Message records one encryption or decryption performed with a keypair.
// Ciphertext is the block sequence as space-separated decimal integers,
// preserving block order.
type Message struct {
	ID         string // UUID
	KeypairID  string // Foreign key to Keypair
	Direction  string // DirectionEncrypt or DirectionDecrypt
	Plaintext  string
	Ciphertext string
	CreatedAt  time.Time
}

// LabOperation is one CLI invocation that touched the session database.
type LabOperation struct {
	ID         int64
	Operation  string // e.g. "GenerateKeys", "EncryptMessage"
	Parameters string
	StartedAt  time.Time
	FinishedAt sql.NullTime
	Status     string // "success" or "error"
}
