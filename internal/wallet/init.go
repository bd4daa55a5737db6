package wallet

import (
	"context"

	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/util"
)

// Initialize loads the persisted accounts at startup and verifies that every
// stored key still derives from its mnemonic
func Initialize(ctx context.Context, svc Service) error {
	log := util.LogFromContext(ctx).With().Str("component", "wallet_init").Logger()

	if err := svc.Reload(ctx); err != nil {
		return errors.Wrap(err, "failed to load accounts")
	}

	if q := svc.Quarantine(ctx); len(q) > 0 {
		log.Warn().Int("quarantined", len(q)).Msg("Some stored accounts are quarantined")
	}

	mismatches, err := svc.Verify(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to verify accounts")
	}

	if len(mismatches) > 0 {
		for _, m := range mismatches {
			log.Error().
				Int("account", m.AccountPosition).
				Uint32("wallet_index", m.Index).
				Str("chain", string(m.Chain)).
				Str("reason", m.Reason).
				Msg("Stored wallet failed verification")
		}
		return errors.Wrapf(ErrVerificationFailed, "%d wallets", len(mismatches))
	}

	log.Info().Int("accounts", len(svc.Accounts(ctx))).Msg("Wallet initialized")
	return nil
}
