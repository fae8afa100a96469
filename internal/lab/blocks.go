package lab

import (
	"fmt"
	"math/big"
	"strings"
)

// FormatBlocks renders ciphertext blocks as space separated decimal
// integers. This is the storage and display format for ciphertexts.
func FormatBlocks(blocks []*big.Int) string {
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = b.String()
	}
	return strings.Join(parts, " ")
}

// ParseBlocks parses a space separated list of non-negative decimal
// integers back into ciphertext blocks.
func ParseBlocks(s string) ([]*big.Int, error) {
	fields := strings.Fields(s)
	blocks := make([]*big.Int, 0, len(fields))
	for _, f := range fields {
		b, ok := new(big.Int).SetString(f, 10)
		if !ok || b.Sign() < 0 {
			return nil, fmt.Errorf("invalid ciphertext block %q", f)
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}
