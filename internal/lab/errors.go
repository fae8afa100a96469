package lab

import "errors"

var (
	// ErrNoActiveKeypair is returned by operations that require a keypair
	// when none has been generated or imported yet.
	ErrNoActiveKeypair = errors.New("no active keypair")

	// ErrNoCiphertext is returned by DecryptLast when no encrypted message
	// has been recorded in this session.
	ErrNoCiphertext = errors.New("no ciphertext to decrypt")

	// ErrNothingToVerify is returned by VerifyLast when no encrypted
	// message exists to round-trip.
	ErrNothingToVerify = errors.New("nothing to verify")

	// ErrKeySizeNotAllowed is returned by GenerateKeys for a bit size
	// outside AllowedKeySizes.
	ErrKeySizeNotAllowed = errors.New("key size not allowed")
)

// AllowedKeySizes lists the modulus sizes, in bits, that GenerateKeys
// accepts.
var AllowedKeySizes = []int{128, 256, 384, 512, 768, 1024, 1536, 2048}

func keySizeAllowed(bits int) bool {
	for _, s := range AllowedKeySizes {
		if s == bits {
			return true
		}
	}
	return false
}
