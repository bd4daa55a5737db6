package address

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/wallet/hdkey"
)

const solanaCoinType = 501

// SolanaKeypair holds a base58 public key and the hex encoded 64 byte ed25519 secret key
type SolanaKeypair struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}

// Chain implements Keypair
func (k SolanaKeypair) Chain() Chain { return ChainSolana }

// Identifier implements Keypair
func (k SolanaKeypair) Identifier() string { return k.PublicKey }

// SecretKey decodes the 64 byte secret key
func (k SolanaKeypair) SecretKey() (solana.PrivateKey, error) {
	raw, err := hex.DecodeString(k.PrivateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode secret key")
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, errors.Errorf("secret key must be %d bytes, got %d", ed25519.PrivateKeySize, len(raw))
	}

	return solana.PrivateKey(raw), nil
}

// Verify implements Keypair
func (k SolanaKeypair) Verify() error {
	secret, err := k.SecretKey()
	if err != nil {
		return err
	}

	// the secret key is seed || public key, both halves must agree
	expected := ed25519.NewKeyFromSeed(secret[:ed25519.SeedSize])
	if !bytes.Equal(expected, secret) {
		return errors.Wrap(ErrKeypairMismatch, "secret key halves do not match")
	}

	pub, err := solana.PublicKeyFromBase58(k.PublicKey)
	if err != nil {
		return errors.Wrap(err, "failed to decode public key")
	}
	if !pub.Equals(secret.PublicKey()) {
		return errors.Wrap(ErrKeypairMismatch, "public key does not match secret key")
	}

	return nil
}

type solanaDeriver struct{}

// NewSolanaDeriver returns the deriver for m/44'/501'/0'/0/{index}
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewSolanaDeriver() Deriver {
	return solanaDeriver{}
}

func (solanaDeriver) Chain() Chain { return ChainSolana }

func (solanaDeriver) PathTemplate() string { return "m/44'/501'/0'/0/{index}" }

func (solanaDeriver) Path(index uint32) (hdkey.DerivationPath, error) {
	return bip44Path(solanaCoinType, index)
}

//nolint:ireturn // Keypair variant is chosen by the deriver
func (d solanaDeriver) Derive(tree *hdkey.Tree, index uint32) (Keypair, error) {
	return d.derive(tree, index)
}

// derive walks the secp256k1 BIP-32 tree and uses the 32 byte child private
// key as ed25519 seed. This is not SLIP-10.
func (d solanaDeriver) derive(tree *hdkey.Tree, index uint32) (SolanaKeypair, error) {
	path, err := d.Path(index)
	if err != nil {
		return SolanaKeypair{}, err
	}

	child, err := tree.Derive(path)
	if err != nil {
		return SolanaKeypair{}, errors.Wrap(err, "failed to derive key from path")
	}

	edSeed := child.PrivateKey()
	defer wipe(edSeed)

	secret := solana.PrivateKey(ed25519.NewKeyFromSeed(edSeed[:ed25519.SeedSize]))

	return SolanaKeypair{
		PublicKey:  secret.PublicKey().String(),
		PrivateKey: hex.EncodeToString(secret),
	}, nil
}
