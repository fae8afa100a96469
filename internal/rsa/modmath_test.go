package rsa_test

import (
	"errors"
	"math/big"
	"testing"

	"rsalab-go/internal/rsa"
)

func TestGCD(t *testing.T) {
	tests := []struct {
		a, b, want int64
	}{
		{48, 18, 6},
		{18, 48, 6},
		{7, 13, 1},
		{65537, 65536, 1},
		{100, 10, 10},
		{0, 5, 5},
		{5, 0, 5},
		{1, 1, 1},
	}
	for _, tt := range tests {
		got := rsa.GCD(big.NewInt(tt.a), big.NewInt(tt.b))
		if got.Int64() != tt.want {
			t.Errorf("GCD(%d, %d) = %s, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestGCD_DoesNotModifyInputs(t *testing.T) {
	a := big.NewInt(48)
	b := big.NewInt(18)
	rsa.GCD(a, b)
	if a.Int64() != 48 || b.Int64() != 18 {
		t.Errorf("inputs modified: a=%s b=%s", a, b)
	}
}

func TestModInverse(t *testing.T) {
	tests := []struct {
		a, m, want int64
	}{
		{3, 11, 4},
		{7, 40, 23},
		{65537, 100280245440, 39861462593},
		{2, 7, 4},
		{10, 17, 12},
	}
	for _, tt := range tests {
		got, err := rsa.ModInverse(big.NewInt(tt.a), big.NewInt(tt.m))
		if err != nil {
			t.Errorf("ModInverse(%d, %d) error = %v", tt.a, tt.m, err)
			continue
		}
		if got.Int64() != tt.want {
			t.Errorf("ModInverse(%d, %d) = %s, want %d", tt.a, tt.m, got, tt.want)
		}
	}
}

func TestModInverse_Property(t *testing.T) {
	// (a * inverse) mod m == 1 for coprime pairs, including big ones.
	pairs := [][2]string{
		{"3", "11"},
		{"65537", "3120"},
		{"12345678901234567891", "98765432109876543211"},
		{"65537", "340282366920938463463374607431768211297"},
	}
	for _, pair := range pairs {
		a, _ := new(big.Int).SetString(pair[0], 10)
		m, _ := new(big.Int).SetString(pair[1], 10)
		if rsa.GCD(a, m).Cmp(big.NewInt(1)) != 0 {
			t.Fatalf("test pair (%s, %s) is not coprime", a, m)
		}

		inv, err := rsa.ModInverse(a, m)
		if err != nil {
			t.Fatalf("ModInverse(%s, %s) error = %v", a, m, err)
		}
		if inv.Sign() < 0 || inv.Cmp(m) >= 0 {
			t.Errorf("ModInverse(%s, %s) = %s, outside [0, m)", a, m, inv)
		}

		check := new(big.Int).Mul(a, inv)
		check.Mod(check, m)
		if check.Cmp(big.NewInt(1)) != 0 {
			t.Errorf("(%s * %s) mod %s = %s, want 1", a, inv, m, check)
		}
	}
}

func TestModInverse_ModulusOne(t *testing.T) {
	got, err := rsa.ModInverse(big.NewInt(42), big.NewInt(1))
	if err != nil {
		t.Fatalf("ModInverse(42, 1) error = %v", err)
	}
	if got.Sign() != 0 {
		t.Errorf("ModInverse(42, 1) = %s, want 0", got)
	}
}

func TestModInverse_NotCoprime(t *testing.T) {
	for _, tt := range [][2]int64{{4, 8}, {6, 9}, {10, 15}} {
		_, err := rsa.ModInverse(big.NewInt(tt[0]), big.NewInt(tt[1]))
		if !errors.Is(err, rsa.ErrNoInverse) {
			t.Errorf("ModInverse(%d, %d) error = %v, want ErrNoInverse", tt[0], tt[1], err)
		}
	}
}
