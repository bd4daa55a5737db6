package wallet

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/wallet/address"
	"github/chapool/go-hdwallet/internal/wallet/seed"
)

// Wallet holds the keypairs of every chain derived at Index
type Wallet struct {
	Index    uint32
	Ethereum address.EthereumKeypair
	Solana   address.SolanaKeypair
}

func newWallet(keys *address.Keys) *Wallet {
	return &Wallet{
		Index:    keys.Index,
		Ethereum: keys.Ethereum,
		Solana:   keys.Solana,
	}
}

// Keypair returns the keypair of chain
//
//nolint:ireturn // Keypair variant is chosen by chain
func (w *Wallet) Keypair(chain address.Chain) (address.Keypair, error) {
	switch chain {
	case address.ChainEthereum:
		return w.Ethereum, nil
	case address.ChainSolana:
		return w.Solana, nil
	default:
		return nil, errors.Wrapf(address.ErrUnsupportedChain, "chain %q", chain)
	}
}

// Matches reports whether the keys of other identify the same wallet.
// Hex casing is ignored.
func (w *Wallet) Matches(other *Wallet) bool {
	return strings.EqualFold(w.Ethereum.Address, other.Ethereum.Address) &&
		strings.EqualFold(w.Ethereum.PrivateKey, other.Ethereum.PrivateKey) &&
		w.Solana.PublicKey == other.Solana.PublicKey &&
		strings.EqualFold(w.Solana.PrivateKey, other.Solana.PrivateKey)
}

func (w *Wallet) clone() *Wallet {
	c := *w
	return &c
}

// Account owns one mnemonic and the wallets derived from it
type Account struct {
	Mnemonic        *seed.Mnemonic
	Wallets         []*Wallet
	MnemonicVisible bool
	// NextIndex is the lowest derivation index never handed out
	NextIndex uint32
}

// Clone returns a deep copy of the account
func (a *Account) Clone() *Account {
	c := &Account{
		Mnemonic:        a.Mnemonic,
		Wallets:         make([]*Wallet, len(a.Wallets)),
		MnemonicVisible: a.MnemonicVisible,
		NextIndex:       a.NextIndex,
	}
	for i, w := range a.Wallets {
		c.Wallets[i] = w.clone()
	}
	return c
}

// IndexPolicy decides which derivation index a new wallet gets
type IndexPolicy string

const (
	// IndexPolicyMonotonic derives at NextIndex, indices are never reused
	IndexPolicyMonotonic IndexPolicy = "monotonic"
	// IndexPolicyLength derives at len(wallets) and may re-derive the key of a
	// deleted wallet
	IndexPolicyLength IndexPolicy = "length"
)

// ParseIndexPolicy maps a policy name to the policy, empty means monotonic
func ParseIndexPolicy(s string) (IndexPolicy, error) {
	switch IndexPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case IndexPolicyMonotonic, "":
		return IndexPolicyMonotonic, nil
	case IndexPolicyLength:
		return IndexPolicyLength, nil
	default:
		return "", errors.Errorf("unknown index policy %q", s)
	}
}

// Quarantined is a persisted account entry that could not be loaded
type Quarantined struct {
	Position int             `json:"position"`
	Reason   string          `json:"reason"`
	Entry    json.RawMessage `json:"entry"`
}
