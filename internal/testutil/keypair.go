package testutil

import (
	"time"

	"rsalab-go/internal/model"
)

// FixedKeypair returns the classic small RSA example (p=61, q=53) used
// throughout the tests. The numbers are tiny enough to check by hand:
// n=3233, phi=3120, e=17, d=2753.
func FixedKeypair() *model.Keypair {
	return &model.Keypair{
		ID:        "fixed-keypair",
		CreatedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Bits:      12,
		N:         "3233",
		E:         "17",
		D:         "2753",
		P:         "61",
		Q:         "53",
		Active:    true,
	}
}
