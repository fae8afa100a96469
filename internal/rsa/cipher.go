package rsa

import "math/big"

// Encrypt encrypts plaintext under pub, one character per block. Each
// character's code point m becomes m^e mod n, and the resulting blocks
// positionally correspond to the input characters. If any character's code
// point is >= the modulus the whole call fails with a *CodePointError and
// no partial ciphertext is returned.
func Encrypt(pub *PublicKey, plaintext string) ([]*big.Int, error) {
	blocks := make([]*big.Int, 0, len(plaintext))
	m := new(big.Int)

	pos := 0 // character index, not byte offset
	for _, r := range plaintext {
		m.SetInt64(int64(r))
		if m.Cmp(pub.N) >= 0 {
			return nil, &CodePointError{Char: r, Position: pos, Modulus: pub.N}
		}
		blocks = append(blocks, new(big.Int).Exp(m, pub.E, pub.N))
		pos++
	}
	return blocks, nil
}

// Decrypt decrypts a sequence of ciphertext blocks under priv, computing
// c^d mod n per block and interpreting each result as a character code
// point, in order. No bounds checking is performed: blocks that were not
// produced by Encrypt under the matching public key decode to some
// character, not necessarily a meaningful one. That mirrors the textbook
// cipher and is inherent to it.
func Decrypt(priv *PrivateKey, ciphertext []*big.Int) string {
	runes := make([]rune, len(ciphertext))
	m := new(big.Int)
	for i, c := range ciphertext {
		m.Exp(c, priv.D, priv.N)
		runes[i] = rune(m.Int64())
	}
	return string(runes)
}
