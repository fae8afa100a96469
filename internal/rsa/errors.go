package rsa

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrInvalidKeySize is returned when the requested key size is not a
	// positive even number of bits.
	ErrInvalidKeySize = errors.New("rsa: key size must be a positive even number of bits")

	// ErrNoInverse is returned by ModInverse when the arguments are not
	// coprime and no modular inverse exists.
	ErrNoInverse = errors.New("rsa: no modular inverse exists")

	// ErrPrimeSearchExhausted is returned when the prime candidate loop
	// gives up after its attempt budget without finding a probable prime.
	ErrPrimeSearchExhausted = errors.New("rsa: prime search exhausted attempt budget")

	// ErrExponentSearchExhausted is returned when no public exponent
	// coprime with the totient is found within the attempt budget.
	ErrExponentSearchExhausted = errors.New("rsa: public exponent search exhausted attempt budget")

	// ErrCodePointTooLarge is returned by Encrypt when a character's code
	// point does not fit below the key modulus. Use errors.As with
	// *CodePointError to recover the offending character and position.
	ErrCodePointTooLarge = errors.New("rsa: character code point too large for modulus")
)

// CodePointError reports a plaintext character whose code point is >= the
// key modulus, making it impossible to encrypt as a single block.
// Position counts characters, not bytes.
type CodePointError struct {
	Char     rune
	Position int
	Modulus  *big.Int
}

func (e *CodePointError) Error() string {
	return fmt.Sprintf("rsa: character %q (code point %d) at position %d does not fit below modulus %s",
		e.Char, e.Char, e.Position, e.Modulus)
}

// Is reports ErrCodePointTooLarge as the sentinel for errors.Is checks.
func (e *CodePointError) Is(target error) bool {
	return target == ErrCodePointTooLarge
}
