package address

import (
	"context"

	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/wallet/hdkey"
)

// Chain tags the closed set of supported chains
type Chain string

const (
	ChainEthereum Chain = "ethereum"
	ChainSolana   Chain = "solana"
)

// Chains lists every supported chain in derivation order
var Chains = []Chain{ChainEthereum, ChainSolana}

var (
	// ErrUnsupportedChain is returned for chains other than ethereum and solana
	ErrUnsupportedChain = errors.New("unsupported chain")
	// ErrIndexOutOfRange is returned for indices in the hardened range
	ErrIndexOutOfRange = errors.New("derivation index must be below 2^31")
	// ErrKeypairMismatch is returned when stored key material does not match itself
	ErrKeypairMismatch = errors.New("keypair is inconsistent")
)

// ParseChain maps a chain name to its tag
func ParseChain(s string) (Chain, error) {
	for _, c := range Chains {
		if string(c) == s {
			return c, nil
		}
	}
	return "", errors.Wrapf(ErrUnsupportedChain, "chain %q", s)
}

// Keypair is implemented by every chain specific keypair
type Keypair interface {
	Chain() Chain
	// Identifier is the string a balance oracle or explorer is queried with
	Identifier() string
	// Verify checks that the public parts match the private key
	Verify() error
}

// Deriver derives the keypair of one chain from an HD tree
type Deriver interface {
	Chain() Chain
	// PathTemplate is the BIP-44 template with {index} as placeholder
	PathTemplate() string
	Path(index uint32) (hdkey.DerivationPath, error)
	Derive(tree *hdkey.Tree, index uint32) (Keypair, error)
}

// Keys bundles the keypairs of every chain derived at the same index
type Keys struct {
	Index    uint32
	Ethereum EthereumKeypair
	Solana   SolanaKeypair
}

// Service derives per-chain keypairs from HD trees
type Service interface {
	// DeriveWallet derives the keypairs of all chains at index
	DeriveWallet(ctx context.Context, tree *hdkey.Tree, index uint32) (*Keys, error)

	// DeriveAddress derives the public identifier of a single chain at index
	DeriveAddress(ctx context.Context, tree *hdkey.Tree, chain Chain, index uint32) (string, error)

	// Deriver returns the deriver of chain
	Deriver(chain Chain) (Deriver, error)
}

func bip44Path(coinType, index uint32) (hdkey.DerivationPath, error) {
	if index >= hdkey.HardenedKeyStart {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d", index)
	}

	return hdkey.DerivationPath{
		hdkey.HardenedKeyStart + bip44Purpose,
		hdkey.HardenedKeyStart + coinType,
		hdkey.HardenedKeyStart + bip44Account,
		bip44Change,
		index,
	}, nil
}

const (
	bip44Purpose = 44
	bip44Account = 0
	bip44Change  = 0
)
