package rsa_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"rsalab-go/internal/rsa"
)

func TestGenerateKeypair(t *testing.T) {
	pub, priv, err := rsa.GenerateKeypair(context.Background(), 128)
	if err != nil {
		t.Fatalf("GenerateKeypair() error = %v", err)
	}

	if pub.N.Cmp(priv.N) != 0 {
		t.Errorf("public and private moduli differ: %s vs %s", pub.N, priv.N)
	}
	if priv.P.Cmp(priv.Q) == 0 {
		t.Error("p and q are equal")
	}
	if got := new(big.Int).Mul(priv.P, priv.Q); got.Cmp(pub.N) != 0 {
		t.Errorf("n != p*q: n=%s, p*q=%s", pub.N, got)
	}
	if got := priv.P.BitLen(); got != 64 {
		t.Errorf("p bit length = %d, want 64", got)
	}
	if got := priv.Q.BitLen(); got != 64 {
		t.Errorf("q bit length = %d, want 64", got)
	}

	one := big.NewInt(1)
	phi := new(big.Int).Mul(
		new(big.Int).Sub(priv.P, one),
		new(big.Int).Sub(priv.Q, one),
	)
	if rsa.GCD(pub.E, phi).Cmp(one) != 0 {
		t.Errorf("gcd(e, phi) != 1 for e=%s", pub.E)
	}

	// e*d == 1 (mod phi) ties the two exponents together.
	check := new(big.Int).Mul(pub.E, priv.D)
	check.Mod(check, phi)
	if check.Cmp(one) != 0 {
		t.Errorf("(e*d) mod phi = %s, want 1", check)
	}
}

func TestGenerateKeypair_DefaultExponent(t *testing.T) {
	// 65537 is essentially always coprime with phi, so the default
	// exponent should be chosen.
	pub, _, err := rsa.GenerateKeypair(context.Background(), 128)
	if err != nil {
		t.Fatalf("GenerateKeypair() error = %v", err)
	}
	if pub.E.Int64() != rsa.DefaultPublicExponent {
		t.Errorf("e = %s, want %d", pub.E, rsa.DefaultPublicExponent)
	}
}

func TestGenerateKeypair_InvalidBits(t *testing.T) {
	for _, bits := range []int{0, -128, 127} {
		_, _, err := rsa.GenerateKeypair(context.Background(), bits)
		if !errors.Is(err, rsa.ErrInvalidKeySize) {
			t.Errorf("GenerateKeypair(%d) error = %v, want ErrInvalidKeySize", bits, err)
		}
	}
}

func TestGenerateKeypair_ProgressSteps(t *testing.T) {
	var steps []rsa.Step
	values := map[rsa.Step]*big.Int{}

	pub, priv, err := rsa.GenerateKeypair(context.Background(), 128,
		rsa.WithProgress(func(step rsa.Step, value *big.Int) {
			steps = append(steps, step)
			values[step] = new(big.Int).Set(value)
		}))
	if err != nil {
		t.Fatalf("GenerateKeypair() error = %v", err)
	}

	want := []rsa.Step{
		rsa.StepPrimeP,
		rsa.StepPrimeQ,
		rsa.StepModulus,
		rsa.StepTotient,
		rsa.StepPublicExponent,
		rsa.StepPrivateExponent,
	}
	if len(steps) != len(want) {
		t.Fatalf("got %d progress steps, want %d", len(steps), len(want))
	}
	for i, s := range want {
		if steps[i] != s {
			t.Errorf("step[%d] = %v, want %v", i, steps[i], s)
		}
	}

	// The narrated values must be the same ones in the returned keys.
	if values[rsa.StepPrimeP].Cmp(priv.P) != 0 {
		t.Errorf("narrated p = %s, key p = %s", values[rsa.StepPrimeP], priv.P)
	}
	if values[rsa.StepModulus].Cmp(pub.N) != 0 {
		t.Errorf("narrated n = %s, key n = %s", values[rsa.StepModulus], pub.N)
	}
	if values[rsa.StepPrivateExponent].Cmp(priv.D) != 0 {
		t.Errorf("narrated d = %s, key d = %s", values[rsa.StepPrivateExponent], priv.D)
	}
}

func TestGenerateKeypair_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := rsa.GenerateKeypair(ctx, 512)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("GenerateKeypair() error = %v, want context.Canceled", err)
	}
}

func TestStepString(t *testing.T) {
	tests := []struct {
		step rsa.Step
		want string
	}{
		{rsa.StepPrimeP, "prime p"},
		{rsa.StepPrimeQ, "prime q"},
		{rsa.StepModulus, "modulus n"},
		{rsa.StepTotient, "totient phi(n)"},
		{rsa.StepPublicExponent, "public exponent e"},
		{rsa.StepPrivateExponent, "private exponent d"},
		{rsa.Step(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.step.String(); got != tt.want {
			t.Errorf("Step(%d).String() = %q, want %q", tt.step, got, tt.want)
		}
	}
}
