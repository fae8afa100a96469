package rsa

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// maxPrimeAttempts bounds the candidate loop per requested prime. By the
// prime number theorem a random odd bits-bit integer is prime with
// probability about 2/(bits*ln 2), so 64*bits attempts leave the failure
// probability vanishingly small while still terminating on a broken RNG.
const maxPrimeAttempts = 64

// GeneratePrime returns a probable prime occupying exactly bits bits. The
// top and bottom bits of every candidate are forced to 1, guaranteeing the
// requested bit length and oddness; candidates are screened with
// DefaultRounds Miller-Rabin trials. The context is checked between
// candidate trials, so a deadline or cancellation bounds the search.
func GeneratePrime(ctx context.Context, bits int) (*big.Int, error) {
	if bits < 2 {
		return nil, fmt.Errorf("generating %d-bit prime: %w", bits, ErrInvalidKeySize)
	}

	buf := make([]byte, (bits+7)/8)
	p := new(big.Int)

	for attempt := 0; attempt < maxPrimeAttempts*bits; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generating %d-bit prime: %w", bits, err)
		}

		if _, err := io.ReadFull(rand.Reader, buf); err != nil {
			return nil, fmt.Errorf("generating %d-bit prime: %w", bits, err)
		}

		// Clear excess high bits when bits is not a byte multiple.
		if excess := len(buf)*8 - bits; excess > 0 {
			buf[0] &= 0xff >> excess
		}

		p.SetBytes(buf)
		p.SetBit(p, bits-1, 1)
		p.SetBit(p, 0, 1)

		if IsProbablePrime(p, DefaultRounds) {
			return p, nil
		}
	}

	return nil, fmt.Errorf("generating %d-bit prime: %w", bits, ErrPrimeSearchExhausted)
}
