package rsa

import "math/big"

// GCD returns the greatest common divisor of a and b by the Euclidean
// algorithm. The inputs are not modified.
func GCD(a, b *big.Int) *big.Int {
	x := new(big.Int).Set(a)
	y := new(big.Int).Set(b)
	for y.Sign() != 0 {
		x.Mod(x, y)
		x, y = y, x
	}
	return x
}

// ModInverse returns x such that (a*x) mod m == 1, computed with the
// extended Euclidean algorithm. When m == 1 the inverse is 0 by convention.
// If a and m are not coprime no inverse exists and ErrNoInverse is
// returned rather than a meaningless value.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if m.Cmp(one) == 0 {
		return new(big.Int), nil
	}

	m0 := new(big.Int).Set(m)
	r := new(big.Int).Set(a)
	rNext := new(big.Int).Set(m)
	x := big.NewInt(1)
	y := new(big.Int)

	q := new(big.Int)
	t := new(big.Int)
	for rNext.Sign() != 0 {
		q.Div(r, rNext)

		t.Mod(r, rNext)
		r.Set(rNext)
		rNext.Set(t)

		t.Mul(q, y)
		t.Sub(x, t)
		x.Set(y)
		y.Set(t)
	}

	// r is now gcd(a, m); anything above 1 means no inverse.
	if r.Cmp(one) != 0 {
		return nil, ErrNoInverse
	}

	if x.Sign() < 0 {
		x.Add(x, m0)
	}
	return x, nil
}
