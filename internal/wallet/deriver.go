package wallet

import (
	"context"

	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/metrics"
	"github/chapool/go-hdwallet/internal/wallet/address"
	"github/chapool/go-hdwallet/internal/wallet/hdkey"
	"github/chapool/go-hdwallet/internal/wallet/seed"
)

// Deriver turns (mnemonic, index) into a Wallet
type Deriver struct {
	seeds     seed.Manager
	addresses address.Service
	metrics   *metrics.Metrics
}

// NewDeriver derives wallets with addresses, caching seeds in seeds
func NewDeriver(seeds seed.Manager, addresses address.Service, m *metrics.Metrics) *Deriver {
	return &Deriver{
		seeds:     seeds,
		addresses: addresses,
		metrics:   m,
	}
}

// DeriveWallet derives both chain keypairs of mnemonic at index
func (d *Deriver) DeriveWallet(ctx context.Context, mnemonic *seed.Mnemonic, index uint32) (*Wallet, error) {
	s := d.seeds.Seed(mnemonic)
	defer wipe(s)

	tree, err := hdkey.NewMasterTree(s)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create master key")
	}

	keys, err := d.addresses.DeriveWallet(ctx, tree, index)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to derive wallet at index %d", index)
	}

	for _, chain := range address.Chains {
		d.metrics.DerivedKeypair(string(chain))
	}

	return newWallet(keys), nil
}

// Forget drops the cached seed of mnemonic
func (d *Deriver) Forget(mnemonic *seed.Mnemonic) {
	d.seeds.Forget(mnemonic)
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
