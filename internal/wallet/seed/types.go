package seed

import "context"

// Manager caches stretched BIP-39 seeds so that repeated derivations for the
// same mnemonic do not pay for PBKDF2 again
type Manager interface {
	// Seed returns the seed of the mnemonic, computing and caching it on first use
	Seed(m *Mnemonic) []byte

	// Forget drops and wipes the cached seed of the mnemonic
	Forget(m *Mnemonic)

	// Len returns the number of cached seeds
	Len() int

	// Clear wipes every cached seed from memory
	Clear()
}

// Generator produces fresh mnemonics from random entropy
type Generator interface {
	Generate(ctx context.Context) (*Mnemonic, error)
}
