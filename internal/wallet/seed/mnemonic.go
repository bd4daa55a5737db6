package seed

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
)

// DefaultEntropyBits yields a 12 word mnemonic
const DefaultEntropyBits = 128

var (
	// ErrInvalidMnemonic is returned when word count or checksum validation fails
	ErrInvalidMnemonic = errors.New("mnemonic is invalid")
	// ErrInvalidEntropySize is returned for entropy sizes outside [128,256] or not a multiple of 32
	ErrInvalidEntropySize = errors.New("entropy size must be a multiple of 32 in the range [128,256]")
)

// Mnemonic is an immutable, checksum-valid BIP-39 phrase
type Mnemonic struct {
	phrase string
}

// NewMnemonic normalises whitespace and validates the BIP-39 checksum of phrase
func NewMnemonic(phrase string) (*Mnemonic, error) {
	normalized := strings.Join(strings.Fields(phrase), " ")
	if normalized == "" || !bip39.IsMnemonicValid(normalized) {
		return nil, ErrInvalidMnemonic
	}

	return &Mnemonic{phrase: normalized}, nil
}

// Phrase returns the space separated word sequence
func (m *Mnemonic) Phrase() string {
	return m.phrase
}

// Words returns the phrase split into words
func (m *Mnemonic) Words() []string {
	return strings.Split(m.phrase, " ")
}

// Seed stretches the phrase into the 64 byte BIP-39 seed.
// seed = PBKDF2(phrase, "mnemonic" + passphrase, 2048, 64, SHA512)
func (m *Mnemonic) Seed(passphrase string) []byte {
	return bip39.NewSeed(m.phrase, passphrase)
}

// Equal reports whether both mnemonics hold the same phrase
func (m *Mnemonic) Equal(other *Mnemonic) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.phrase == other.phrase
}

type entropyGenerator struct {
	bits int
}

// NewEntropyGenerator returns a Generator drawing bits of entropy per mnemonic
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewEntropyGenerator(bits int) (Generator, error) {
	if bits == 0 {
		bits = DefaultEntropyBits
	}
	if bits < 128 || bits > 256 || bits%32 != 0 {
		return nil, ErrInvalidEntropySize
	}

	return &entropyGenerator{bits: bits}, nil
}

// Generate draws fresh entropy and encodes it as a mnemonic
func (g *entropyGenerator) Generate(ctx context.Context) (*Mnemonic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entropy, err := bip39.NewEntropy(g.bits)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate entropy")
	}

	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode mnemonic")
	}

	return NewMnemonic(phrase)
}

// StaticGenerator always hands out the same phrase, used by tests and restores
type StaticGenerator string

// Generate validates and returns the static phrase
func (g StaticGenerator) Generate(_ context.Context) (*Mnemonic, error) {
	return NewMnemonic(string(g))
}
