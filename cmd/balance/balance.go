package balance

import (
	"context"

	"github.com/spf13/cobra"
	"github/chapool/go-hdwallet/internal/api"
	"github/chapool/go-hdwallet/internal/util/command"
	walletbalance "github/chapool/go-hdwallet/internal/wallet/balance"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <account> <wallet>",
		Short: "Print the Ethereum and Solana balance of a wallet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountPos, err := command.ParsePosition(args[0], "account")
			if err != nil {
				return err
			}
			walletPos, err := command.ParsePosition(args[1], "wallet")
			if err != nil {
				return err
			}

			return command.RunWithServer(cmd, func(ctx context.Context, s *api.Server) error {
				w, err := s.Wallet.Wallet(ctx, accountPos, walletPos)
				if err != nil {
					return err
				}

				return command.PrintJSON(cmd, walletbalance.Lookup(ctx, s.Balance, w.Ethereum.Address, w.Solana.PublicKey))
			})
		},
	}
}
