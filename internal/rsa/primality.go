package rsa

import (
	"crypto/rand"
	"math/big"
)

// DefaultRounds is the number of Miller-Rabin trials used when a caller
// does not choose its own confidence level. Five rounds bound the
// false-positive probability by 4^-5, under 0.1%.
const DefaultRounds = 5

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
	four  = big.NewInt(4)
)

// IsProbablePrime runs rounds independent Miller-Rabin trials against n and
// reports whether n survived all of them. A false return is definitive: n is
// composite. A true return means n is prime except with probability at most
// 4^-rounds. Rounds below 1 are treated as DefaultRounds.
func IsProbablePrime(n *big.Int, rounds int) bool {
	if rounds < 1 {
		rounds = DefaultRounds
	}

	// Small cases the witness loop cannot handle: the witness range
	// [2, n-2] is empty below n=5, and 4 is the one even value that
	// sneaks past a naive n<=3 check.
	if n.Cmp(one) <= 0 || n.Cmp(four) == 0 {
		return false
	}
	if n.Cmp(three) <= 0 {
		return true
	}
	if n.Bit(0) == 0 {
		return false
	}

	// Write n-1 as 2^s * d with d odd.
	nMinusOne := new(big.Int).Sub(n, one)
	d := new(big.Int).Set(nMinusOne)
	s := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		s++
	}

	x := new(big.Int)
	for i := 0; i < rounds; i++ {
		a := randomWitness(n)
		x.Exp(a, d, n)
		if x.Cmp(one) == 0 || x.Cmp(nMinusOne) == 0 {
			continue
		}

		witnessed := false
		for j := 0; j < s-1; j++ {
			x.Mul(x, x).Mod(x, n)
			if x.Cmp(nMinusOne) == 0 {
				witnessed = true
				break
			}
		}
		if !witnessed {
			return false
		}
	}
	return true
}

// randomWitness draws a uniformly random base in [2, n-2]. The caller
// guarantees n >= 5, so the range is non-empty.
func randomWitness(n *big.Int) *big.Int {
	// rand.Int over [0, n-4), shifted up by 2.
	bound := new(big.Int).Sub(n, three)
	a, err := rand.Int(rand.Reader, bound)
	if err != nil {
		// crypto/rand failure means the platform's entropy source is
		// broken; there is no meaningful recovery for a primality trial.
		panic("rsa: crypto/rand unavailable: " + err.Error())
	}
	return a.Add(a, two)
}
