package hdkey_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-hdwallet/internal/wallet/hdkey"
	"github/chapool/go-hdwallet/internal/wallet/seed"
)

//nolint:dupword // BIP-32 test vector
const testMnemonic = "test test test test test test test test test test test junk"

func TestBIP32Vector1(t *testing.T) {
	seedBytes, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)

	master, err := hdkey.NewMasterTree(seedBytes)
	require.NoError(t, err)
	assert.Equal(t,
		"xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi",
		master.String(),
	)

	child, err := master.DerivePath("m/0'/1/2'/2/1000000000")
	require.NoError(t, err)
	assert.Equal(t,
		"xprvA41z7zogVVwxVSgdKUHDy1SKmdb533PjDz7J6N6mV6uS3ze1ai8FHa8kmHScGpWmj4WggLyQjgPie1rFSruoUihUZREPSL39UNdE3BBDu76",
		child.String(),
	)
	assert.Equal(t, "m/0'/1/2'/2/1000000000", child.Path().String())
}

func TestDerivePathIsDeterministic(t *testing.T) {
	a, err := hdkey.DeriveMasterKey(testMnemonic)
	require.NoError(t, err)
	b, err := hdkey.DeriveMasterKey(testMnemonic)
	require.NoError(t, err)

	ka, err := a.DerivePath("m/44'/60'/0'/0/0")
	require.NoError(t, err)
	kb, err := b.DerivePath("m/44'/60'/0'/0/0")
	require.NoError(t, err)

	assert.Equal(t, ka.PrivateKey(), kb.PrivateKey())
	assert.Len(t, ka.PrivateKey(), 32)
	assert.Len(t, ka.PublicKey(), 33)
	assert.Equal(t,
		"ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80",
		hex.EncodeToString(ka.PrivateKey()),
	)

	// stepwise derivation matches the one-shot path
	account, err := a.DerivePath("m/44'/60'/0'")
	require.NoError(t, err)
	leaf, err := account.DerivePath("0/0")
	require.NoError(t, err)
	assert.Equal(t, ka.PrivateKey(), leaf.PrivateKey())
	assert.Equal(t, "m/44'/60'/0'/0/0", leaf.Path().String())
}

func TestDeriveMasterKeyRejectsInvalidMnemonic(t *testing.T) {
	_, err := hdkey.DeriveMasterKey("test test test test test test test test test test junk")
	assert.ErrorIs(t, err, seed.ErrInvalidMnemonic)
}

func TestDerivePathRejectsMalformed(t *testing.T) {
	master, err := hdkey.DeriveMasterKey(testMnemonic)
	require.NoError(t, err)

	_, err = master.DerivePath("m/44'//0")
	assert.ErrorIs(t, err, hdkey.ErrMalformedDerivationPath)
}

func TestDerivePathOnChild(t *testing.T) {
	master, err := hdkey.DeriveMasterKey(testMnemonic)
	require.NoError(t, err)

	purpose, err := master.DerivePath("m/44'")
	require.NoError(t, err)

	_, err = purpose.DerivePath("m/0")
	require.ErrorIs(t, err, hdkey.ErrAbsolutePathOnChild)

	relative, err := purpose.DerivePath("60'/0'/0/0")
	require.NoError(t, err)
	assert.Equal(t, "m/44'/60'/0'/0/0", relative.Path().String())

	absolute, err := master.DerivePath("m/44'/60'/0'/0/0")
	require.NoError(t, err)
	assert.Equal(t, absolute.PrivateKey(), relative.PrivateKey())
}
