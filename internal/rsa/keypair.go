package rsa

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
)

// DefaultPublicExponent is the public exponent tried first during keypair
// generation, the conventional F4 = 2^16 + 1.
const DefaultPublicExponent = 65537

// maxExponentAttempts bounds the fallback search for a public exponent
// coprime with the totient. The fallback is only reached when 65537
// divides phi(n), which essentially never happens at realistic sizes.
const maxExponentAttempts = 1000

// PublicKey is the encryption half of an RSA keypair.
type PublicKey struct {
	N *big.Int // modulus
	E *big.Int // public exponent
}

// PrivateKey is the decryption half of an RSA keypair. It embeds the
// public half, and retains the generating primes so callers can display
// them or verify the keypair invariants.
type PrivateKey struct {
	PublicKey
	D *big.Int // private exponent
	P *big.Int // first prime factor of N
	Q *big.Int // second prime factor of N
}

// GenerateKeypair produces an RSA keypair with a modulus of the requested
// bit size. bits must be positive and even; each prime gets bits/2 bits.
// The two primes are guaranteed distinct. The public exponent defaults to
// 65537, falling back to random candidates coprime with the totient in the
// degenerate case. The context bounds the prime searches.
func GenerateKeypair(ctx context.Context, bits int, opts ...KeypairOption) (*PublicKey, *PrivateKey, error) {
	if bits <= 0 || bits%2 != 0 {
		return nil, nil, fmt.Errorf("generating %d-bit keypair: %w", bits, ErrInvalidKeySize)
	}

	var cfg keypairConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	emit := func(step Step, value *big.Int) {
		if cfg.progress != nil {
			cfg.progress(step, value)
		}
	}

	p, err := GeneratePrime(ctx, bits/2)
	if err != nil {
		return nil, nil, fmt.Errorf("generating prime p: %w", err)
	}
	emit(StepPrimeP, p)

	q, err := GeneratePrime(ctx, bits/2)
	if err != nil {
		return nil, nil, fmt.Errorf("generating prime q: %w", err)
	}
	// Astronomically unlikely at realistic sizes, but p == q would make
	// the modulus a perfect square and the totient formula wrong.
	for p.Cmp(q) == 0 {
		q, err = GeneratePrime(ctx, bits/2)
		if err != nil {
			return nil, nil, fmt.Errorf("regenerating prime q: %w", err)
		}
	}
	emit(StepPrimeQ, q)

	n := new(big.Int).Mul(p, q)
	emit(StepModulus, n)

	phi := new(big.Int).Mul(
		new(big.Int).Sub(p, one),
		new(big.Int).Sub(q, one),
	)
	emit(StepTotient, phi)

	e, err := choosePublicExponent(ctx, phi)
	if err != nil {
		return nil, nil, fmt.Errorf("choosing public exponent: %w", err)
	}
	emit(StepPublicExponent, e)

	d, err := ModInverse(e, phi)
	if err != nil {
		return nil, nil, fmt.Errorf("deriving private exponent: %w", err)
	}
	emit(StepPrivateExponent, d)

	pub := &PublicKey{N: n, E: e}
	priv := &PrivateKey{PublicKey: *pub, D: d, P: p, Q: q}
	return pub, priv, nil
}

// choosePublicExponent returns 65537 when it is coprime with phi, otherwise
// draws random candidates in [2, phi-1] until one is coprime.
func choosePublicExponent(ctx context.Context, phi *big.Int) (*big.Int, error) {
	e := big.NewInt(DefaultPublicExponent)
	if GCD(e, phi).Cmp(one) == 0 {
		return e, nil
	}

	bound := new(big.Int).Sub(phi, two)
	for attempt := 0; attempt < maxExponentAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := rand.Int(rand.Reader, bound)
		if err != nil {
			return nil, err
		}
		c.Add(c, two)
		if GCD(c, phi).Cmp(one) == 0 {
			return c, nil
		}
	}
	return nil, ErrExponentSearchExhausted
}
