package lab

import (
	"fmt"
	"math/big"

	"rsalab-go/internal/model"
	"rsalab-go/internal/rsa"
)

func parseBig(field, s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("keypair field %s: invalid decimal %q", field, s)
	}
	return v, nil
}

// PublicKeyFromModel reconstructs the public half of a stored keypair.
func PublicKeyFromModel(kp *model.Keypair) (*rsa.PublicKey, error) {
	n, err := parseBig("n", kp.N)
	if err != nil {
		return nil, err
	}
	e, err := parseBig("e", kp.E)
	if err != nil {
		return nil, err
	}
	return &rsa.PublicKey{N: n, E: e}, nil
}

// PrivateKeyFromModel reconstructs the full private key of a stored keypair.
func PrivateKeyFromModel(kp *model.Keypair) (*rsa.PrivateKey, error) {
	pub, err := PublicKeyFromModel(kp)
	if err != nil {
		return nil, err
	}
	d, err := parseBig("d", kp.D)
	if err != nil {
		return nil, err
	}
	p, err := parseBig("p", kp.P)
	if err != nil {
		return nil, err
	}
	q, err := parseBig("q", kp.Q)
	if err != nil {
		return nil, err
	}
	return &rsa.PrivateKey{PublicKey: *pub, D: d, P: p, Q: q}, nil
}
