package address

import (
	"bytes"
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/wallet/hdkey"
)

const ethereumCoinType = 60

// EthereumKeypair holds hex encoded secp256k1 key material and the EIP-55 address
type EthereumKeypair struct {
	Address    string `json:"address"`
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}

// Chain implements Keypair
func (k EthereumKeypair) Chain() Chain { return ChainEthereum }

// Identifier implements Keypair
func (k EthereumKeypair) Identifier() string { return k.Address }

// ECDSA decodes the private key
func (k EthereumKeypair) ECDSA() (*ecdsa.PrivateKey, error) {
	raw, err := hexutil.Decode(k.PrivateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode private key")
	}

	key, err := crypto.ToECDSA(raw)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert to ECDSA private key")
	}

	return key, nil
}

// Verify implements Keypair
func (k EthereumKeypair) Verify() error {
	key, err := k.ECDSA()
	if err != nil {
		return err
	}

	if crypto.PubkeyToAddress(key.PublicKey).Hex() != k.Address {
		return errors.Wrap(ErrKeypairMismatch, "address does not match private key")
	}

	pub, err := hexutil.Decode(k.PublicKey)
	if err != nil {
		return errors.Wrap(err, "failed to decode public key")
	}
	if !bytes.Equal(pub, crypto.FromECDSAPub(&key.PublicKey)) {
		return errors.Wrap(ErrKeypairMismatch, "public key does not match private key")
	}

	return nil
}

type ethereumDeriver struct{}

// NewEthereumDeriver returns the deriver for m/44'/60'/0'/0/{index}
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewEthereumDeriver() Deriver {
	return ethereumDeriver{}
}

func (ethereumDeriver) Chain() Chain { return ChainEthereum }

func (ethereumDeriver) PathTemplate() string { return "m/44'/60'/0'/0/{index}" }

func (ethereumDeriver) Path(index uint32) (hdkey.DerivationPath, error) {
	return bip44Path(ethereumCoinType, index)
}

//nolint:ireturn // Keypair variant is chosen by the deriver
func (d ethereumDeriver) Derive(tree *hdkey.Tree, index uint32) (Keypair, error) {
	return d.derive(tree, index)
}

// derive uses the raw child private key as the secp256k1 key
func (d ethereumDeriver) derive(tree *hdkey.Tree, index uint32) (EthereumKeypair, error) {
	path, err := d.Path(index)
	if err != nil {
		return EthereumKeypair{}, err
	}

	child, err := tree.Derive(path)
	if err != nil {
		return EthereumKeypair{}, errors.Wrap(err, "failed to derive key from path")
	}

	privateKey := child.PrivateKey()
	defer wipe(privateKey)

	ecdsaPrivateKey, err := crypto.ToECDSA(privateKey)
	if err != nil {
		return EthereumKeypair{}, errors.Wrap(err, "failed to convert to ECDSA private key")
	}

	return EthereumKeypair{
		Address:    crypto.PubkeyToAddress(ecdsaPrivateKey.PublicKey).Hex(),
		PublicKey:  hexutil.Encode(crypto.FromECDSAPub(&ecdsaPrivateKey.PublicKey)),
		PrivateKey: hexutil.Encode(crypto.FromECDSA(ecdsaPrivateKey)),
	}, nil
}

// SameEthereumAddress compares two addresses ignoring checksum casing
func SameEthereumAddress(a, b string) bool {
	return strings.EqualFold(a, b)
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
