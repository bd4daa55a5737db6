package seed_test

import (
	"context"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-hdwallet/internal/wallet/seed"
)

//nolint:dupword // BIP-39 test vector
const abandonMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestNewMnemonic(t *testing.T) {
	m, err := seed.NewMnemonic("  abandon abandon abandon abandon abandon abandon\n abandon abandon abandon abandon abandon about ")
	require.NoError(t, err)
	assert.Equal(t, abandonMnemonic, m.Phrase())
	assert.Len(t, m.Words(), 12)
}

func TestNewMnemonicRejectsInvalid(t *testing.T) {
	tests := []string{
		"",
		"   ",
		// corrupted last word breaks the checksum
		strings.Replace(abandonMnemonic, "about", "abandon", 1),
		// unknown word
		strings.Replace(abandonMnemonic, "about", "aboutt", 1),
		// bad word count
		"abandon abandon abandon",
		"legal winner thank year wave sausage worth useful legal winner thank yellow yellow",
	}
	for _, tt := range tests {
		m, err := seed.NewMnemonic(tt)
		assert.ErrorIs(t, err, seed.ErrInvalidMnemonic, tt)
		assert.Nil(t, m)
	}
}

func TestSeedVector(t *testing.T) {
	m, err := seed.NewMnemonic(abandonMnemonic)
	require.NoError(t, err)

	// BIP-39 reference vector with passphrase "TREZOR"
	assert.Equal(t,
		"c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04",
		hex.EncodeToString(m.Seed("TREZOR")),
	)
	assert.Equal(t, m.Seed(""), m.Seed(""))
	assert.Len(t, m.Seed(""), 64)
}

func TestEntropyGenerator(t *testing.T) {
	for bits, words := range map[int]int{0: 12, 128: 12, 160: 15, 256: 24} {
		gen, err := seed.NewEntropyGenerator(bits)
		require.NoError(t, err)

		m, err := gen.Generate(context.Background())
		require.NoError(t, err)
		assert.Len(t, m.Words(), words)

		other, err := gen.Generate(context.Background())
		require.NoError(t, err)
		assert.False(t, m.Equal(other))
	}

	for _, bits := range []int{-1, 127, 130, 257, 512} {
		_, err := seed.NewEntropyGenerator(bits)
		assert.ErrorIs(t, err, seed.ErrInvalidEntropySize)
	}
}

func TestEntropyGeneratorCanceled(t *testing.T) {
	gen, err := seed.NewEntropyGenerator(128)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = gen.Generate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStaticGenerator(t *testing.T) {
	m, err := seed.StaticGenerator(abandonMnemonic).Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, abandonMnemonic, m.Phrase())

	_, err = seed.StaticGenerator("nope").Generate(context.Background())
	assert.ErrorIs(t, err, seed.ErrInvalidMnemonic)
}
