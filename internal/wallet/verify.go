package wallet

import (
	"context"

	"github/chapool/go-hdwallet/internal/util"
	"github/chapool/go-hdwallet/internal/wallet/address"
)

// Mismatch describes a stored wallet whose keys do not re-derive
type Mismatch struct {
	AccountPosition int           `json:"account"`
	WalletPosition  int           `json:"wallet"`
	Index           uint32        `json:"index"`
	Chain           address.Chain `json:"chain,omitempty"`
	Reason          string        `json:"reason"`
}

// Verify re-derives every stored wallet and compares it with the stored keys.
// The registry lock is only held while taking the snapshot.
func (r *Registry) Verify(ctx context.Context) ([]Mismatch, error) {
	log := util.LogFromContext(ctx).With().Str("component", "wallet_verification").Logger()

	var mismatches []Mismatch
	for ai, account := range r.Accounts() {
		for wi, stored := range account.Wallets {
			if err := ctx.Err(); err != nil {
				return mismatches, err
			}

			for _, chain := range address.Chains {
				keypair, err := stored.Keypair(chain)
				if err != nil {
					return mismatches, err
				}
				if err := keypair.Verify(); err != nil {
					mismatches = append(mismatches, Mismatch{
						AccountPosition: ai,
						WalletPosition:  wi,
						Index:           stored.Index,
						Chain:           chain,
						Reason:          err.Error(),
					})
				}
			}

			derived, err := r.deriver.DeriveWallet(ctx, account.Mnemonic, stored.Index)
			if err != nil {
				mismatches = append(mismatches, Mismatch{
					AccountPosition: ai,
					WalletPosition:  wi,
					Index:           stored.Index,
					Reason:          err.Error(),
				})
				continue
			}

			if !derived.Matches(stored) {
				log.Warn().
					Int("account", ai).
					Uint32("wallet_index", stored.Index).
					Msg("Verification failed: stored keys do not match derived keys")
				mismatches = append(mismatches, Mismatch{
					AccountPosition: ai,
					WalletPosition:  wi,
					Index:           stored.Index,
					Reason:          ErrVerificationFailed.Error(),
				})
			}
		}
	}

	if len(mismatches) == 0 {
		log.Info().Msg("Verification successful")
	}

	return mismatches, nil
}
