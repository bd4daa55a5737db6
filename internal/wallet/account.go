package wallet

import (
	"context"

	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/util"
)

// CreateInitialWallet derives the wallet at index 0. It fails once the
// account holds any wallet.
func (a *Account) CreateInitialWallet(ctx context.Context, d *Deriver) (*Wallet, error) {
	if len(a.Wallets) > 0 || a.NextIndex > 0 {
		return nil, ErrInitialWalletExists
	}

	w, err := d.DeriveWallet(ctx, a.Mnemonic, 0)
	if err != nil {
		return nil, err
	}

	a.Wallets = []*Wallet{w}
	a.NextIndex = 1

	return w, nil
}

// AddWallet derives the next wallet according to policy and appends it
func (a *Account) AddWallet(ctx context.Context, d *Deriver, policy IndexPolicy) (*Wallet, error) {
	log := util.LogFromContext(ctx)

	var index uint32
	switch policy {
	case IndexPolicyLength:
		index = uint32(len(a.Wallets)) //nolint:gosec // wallet count stays far below 2^31
	case IndexPolicyMonotonic, "":
		index = a.NextIndex
	default:
		return nil, errors.Errorf("unknown index policy %q", policy)
	}

	if _, held := a.WalletByIndex(index); held {
		return nil, errors.Wrapf(ErrDerivationIndexConflict, "index %d", index)
	}

	w, err := d.DeriveWallet(ctx, a.Mnemonic, index)
	if err != nil {
		return nil, err
	}

	if index < a.NextIndex {
		log.Warn().
			Uint32("wallet_index", index).
			Uint32("next_index", a.NextIndex).
			Msg("Re-deriving index of a deleted wallet, duplicate key reappears")
	}

	a.Wallets = append(a.Wallets, w)
	if index >= a.NextIndex {
		a.NextIndex = index + 1
	}

	return w, nil
}

// RemoveWallet removes the wallet at position. Remaining wallets keep their
// derivation index.
func (a *Account) RemoveWallet(position int) (*Wallet, error) {
	if err := checkPosition("wallet", position, len(a.Wallets)); err != nil {
		return nil, err
	}

	removed := a.Wallets[position]
	a.Wallets = append(a.Wallets[:position:position], a.Wallets[position+1:]...)

	return removed, nil
}

// ToggleMnemonicVisibility flips the display flag and returns the new value
func (a *Account) ToggleMnemonicVisibility() bool {
	a.MnemonicVisible = !a.MnemonicVisible
	return a.MnemonicVisible
}

// WalletByIndex returns the first wallet derived at index
func (a *Account) WalletByIndex(index uint32) (*Wallet, bool) {
	for _, w := range a.Wallets {
		if w.Index == index {
			return w, true
		}
	}
	return nil, false
}

// Indices returns the derivation index of every wallet in order
func (a *Account) Indices() []uint32 {
	indices := make([]uint32, len(a.Wallets))
	for i, w := range a.Wallets {
		indices[i] = w.Index
	}
	return indices
}
