package wallet

import (
	"context"

	"github.com/spf13/cobra"
	"github/chapool/go-hdwallet/internal/api"
	"github/chapool/go-hdwallet/internal/util/command"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("wallet",
		newAdd(),
		newRemove(),
		newList(),
	)
}

func newAdd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <account>",
		Short: "Derive the next wallet of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountPos, err := command.ParsePosition(args[0], "account")
			if err != nil {
				return err
			}

			return command.RunWithServer(cmd, func(ctx context.Context, s *api.Server) error {
				w, err := s.Wallet.CreateWallet(ctx, accountPos)
				if err != nil {
					return err
				}

				account, err := s.Wallet.Account(ctx, accountPos)
				if err != nil {
					return err
				}

				return command.PrintJSON(cmd, w.ToWalletResponse(len(account.Wallets)-1))
			})
		},
	}
}

func newRemove() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <account> <wallet>",
		Short: "Remove a wallet, the other wallets keep their indices",
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
				_, err := s.Wallet.DeleteWallet(ctx, accountPos, walletPos)
				return err
			})
		},
	}
}

func newList() *cobra.Command {
	return &cobra.Command{
		Use:   "list <account>",
		Short: "List the wallets of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountPos, err := command.ParsePosition(args[0], "account")
			if err != nil {
				return err
			}

			return command.RunWithServer(cmd, func(ctx context.Context, s *api.Server) error {
				account, err := s.Wallet.Account(ctx, accountPos)
				if err != nil {
					return err
				}

				for i, w := range account.Wallets {
					if err := command.PrintJSON(cmd, w.ToWalletResponse(i)); err != nil {
						return err
					}
				}

				return nil
			})
		},
	}
}
