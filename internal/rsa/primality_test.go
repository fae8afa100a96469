package rsa_test

import (
	"math/big"
	"testing"

	"rsalab-go/internal/rsa"
)

func TestIsProbablePrime_SmallValues(t *testing.T) {
	primes := []int64{
		2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59,
		61, 67, 71, 73, 79, 83, 89, 97, 101, 103, 107, 109, 113, 127,
		131, 137, 139, 149, 151, 157, 163, 167, 173, 179, 181, 191, 193,
		197, 199, 211, 223, 227, 229, 233, 239, 241, 251, 257, 263, 269,
		271, 277, 281, 283, 293, 307, 311, 313, 317, 331, 337, 347, 349,
	}
	for _, p := range primes {
		if !rsa.IsProbablePrime(big.NewInt(p), rsa.DefaultRounds) {
			t.Errorf("IsProbablePrime(%d) = false, want true", p)
		}
	}

	composites := []int64{
		0, 1, 4, 6, 8, 9, 10, 12, 14, 15, 16, 18, 20, 21, 22, 24, 25,
		26, 27, 28, 33, 35, 39, 49, 51, 55, 57, 63, 65, 77, 81, 91, 95,
		99, 100, 111, 119, 121, 125, 133, 143, 169, 187, 209, 221, 247,
		289, 299, 323, 343,
	}
	for _, c := range composites {
		if rsa.IsProbablePrime(big.NewInt(c), rsa.DefaultRounds) {
			t.Errorf("IsProbablePrime(%d) = true, want false", c)
		}
	}
}

func TestIsProbablePrime_CarmichaelNumbers(t *testing.T) {
	// Carmichael numbers fool Fermat tests but not Miller-Rabin.
	for _, c := range []int64{561, 1105, 1729, 2465, 2821, 6601, 41041} {
		if rsa.IsProbablePrime(big.NewInt(c), rsa.DefaultRounds) {
			t.Errorf("IsProbablePrime(%d) = true for Carmichael number", c)
		}
	}
}

func TestIsProbablePrime_LargeValues(t *testing.T) {
	// 2^89 - 1, a Mersenne prime.
	m89 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 89), big.NewInt(1))
	if !rsa.IsProbablePrime(m89, rsa.DefaultRounds) {
		t.Errorf("IsProbablePrime(2^89-1) = false, want true")
	}

	// 2^89 + 1 is divisible by 3.
	m89plus := new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 89), big.NewInt(1))
	if rsa.IsProbablePrime(m89plus, rsa.DefaultRounds) {
		t.Errorf("IsProbablePrime(2^89+1) = true, want false")
	}

	// RSA-ish semiprime: product of two large primes.
	p := new(big.Int).SetUint64(18446744073709551557) // largest 64-bit prime
	q := new(big.Int).SetUint64(4294967311)           // smallest prime above 2^32
	if rsa.IsProbablePrime(new(big.Int).Mul(p, q), rsa.DefaultRounds) {
		t.Errorf("IsProbablePrime(p*q) = true for semiprime")
	}
}

func TestIsProbablePrime_RoundsBelowOneUseDefault(t *testing.T) {
	if !rsa.IsProbablePrime(big.NewInt(97), 0) {
		t.Errorf("IsProbablePrime(97, 0) = false, want true")
	}
	if rsa.IsProbablePrime(big.NewInt(95), -3) {
		t.Errorf("IsProbablePrime(95, -3) = true, want false")
	}
}

func TestIsProbablePrime_DoesNotModifyInput(t *testing.T) {
	n := big.NewInt(104729) // 10000th prime
	want := new(big.Int).Set(n)
	rsa.IsProbablePrime(n, rsa.DefaultRounds)
	if n.Cmp(want) != 0 {
		t.Errorf("input modified: got %s, want %s", n, want)
	}
}
