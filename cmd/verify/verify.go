package verify

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github/chapool/go-hdwallet/internal/api"
	"github/chapool/go-hdwallet/internal/util/command"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Re-derive every stored wallet and report mismatches",
		Long: `Re-derive every stored wallet and report mismatches.

Loading the store already verifies it and fails on mismatches, this command
additionally lists the quarantined entries.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return command.RunWithServer(cmd, func(ctx context.Context, s *api.Server) error {
				mismatches, err := s.Wallet.Verify(ctx)
				if err != nil {
					return err
				}

				for _, m := range mismatches {
					fmt.Fprintf(cmd.OutOrStdout(), "account %d wallet %d (index %d, %s): %s\n",
						m.AccountPosition, m.WalletPosition, m.Index, m.Chain, m.Reason)
				}
				for _, q := range s.Wallet.Quarantine(ctx) {
					fmt.Fprintf(cmd.OutOrStdout(), "quarantined entry at position %d: %s\n", q.Position, q.Reason)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%d accounts verified, %d mismatches\n", len(s.Wallet.Accounts(ctx)), len(mismatches))
				return nil
			})
		},
	}
}
