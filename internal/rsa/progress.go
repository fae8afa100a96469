package rsa

import "math/big"

// Step identifies one stage of keypair generation. Steps are emitted in
// order through the WithProgress callback so a caller can narrate key
// generation without the engine knowing how the values are displayed.
type Step int

const (
	// StepPrimeP reports the first generated prime.
	StepPrimeP Step = iota
	// StepPrimeQ reports the second generated prime.
	StepPrimeQ
	// StepModulus reports n = p*q.
	StepModulus
	// StepTotient reports phi(n) = (p-1)*(q-1).
	StepTotient
	// StepPublicExponent reports the chosen public exponent e.
	StepPublicExponent
	// StepPrivateExponent reports the derived private exponent d.
	StepPrivateExponent
)

func (s Step) String() string {
	switch s {
	case StepPrimeP:
		return "prime p"
	case StepPrimeQ:
		return "prime q"
	case StepModulus:
		return "modulus n"
	case StepTotient:
		return "totient phi(n)"
	case StepPublicExponent:
		return "public exponent e"
	case StepPrivateExponent:
		return "private exponent d"
	default:
		return "unknown"
	}
}

// ProgressFunc receives keypair generation steps as they complete. The
// value is owned by the engine; callbacks must not modify it.
type ProgressFunc func(step Step, value *big.Int)

// keypairConfig holds options for GenerateKeypair.
type keypairConfig struct {
	progress ProgressFunc
}

// KeypairOption configures keypair generation.
type KeypairOption func(*keypairConfig)

// WithProgress subscribes fn to generation steps. Pass nil to disable.
func WithProgress(fn ProgressFunc) KeypairOption {
	return func(c *keypairConfig) {
		c.progress = fn
	}
}
