// Package rsa implements a textbook RSA engine: Miller-Rabin primality
// testing, probable-prime generation, keypair derivation over two primes,
// and per-character modular-exponentiation encryption.
//
// This is teaching code. There is no padding, no blocking of messages, and
// no constant-time arithmetic — each character of a message is encrypted
// independently as one integer block, which leaks equal characters and is
// trivially attackable. Do not use it to protect real data; use crypto/rsa.
//
// All functions are pure: they take inputs, return values, and perform no
// I/O. Key generation can take long for large sizes and accepts a context
// checked between candidate trials. Callers interested in the intermediate
// values (the generated primes, modulus, totient, exponents) can subscribe
// with WithProgress; the engine itself never prints.
package rsa
