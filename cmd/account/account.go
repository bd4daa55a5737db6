package account

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github/chapool/go-hdwallet/internal/api"
	"github/chapool/go-hdwallet/internal/util/command"
)

const importFlag = "import"

func New() *cobra.Command {
	return command.NewSubcommandGroup("account",
		newCreate(),
		newList(),
		newShow(),
		newDelete(),
		newToggleMnemonic(),
	)
}

func newCreate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account from a new mnemonic, or import one with --import",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			importMnemonic, _ := cmd.Flags().GetBool(importFlag)

			var phrase string
			if importMnemonic {
				p, err := command.PromptSecret(cmd.ErrOrStderr(), "Enter mnemonic: ")
				if err != nil {
					return err
				}
				phrase = p
			}

			return command.RunWithServer(cmd, func(ctx context.Context, s *api.Server) error {
				account, pos, err := s.Wallet.CreateAccount(ctx, phrase)
				if err != nil {
					return err
				}

				return command.PrintJSON(cmd, account.ToAccountResponse(pos))
			})
		},
	}

	cmd.Flags().Bool(importFlag, false, "read the mnemonic from the terminal instead of generating one")

	return cmd
}

func newList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts and their wallets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return command.RunWithServer(cmd, func(ctx context.Context, s *api.Server) error {
				for i, a := range s.Wallet.Accounts(ctx) {
					if err := command.PrintJSON(cmd, a.ToAccountResponse(i)); err != nil {
						return err
					}
				}

				for _, q := range s.Wallet.Quarantine(ctx) {
					fmt.Fprintf(cmd.ErrOrStderr(), "quarantined entry at position %d: %s\n", q.Position, q.Reason)
				}

				return nil
			})
		},
	}
}

func newShow() *cobra.Command {
	return &cobra.Command{
		Use:   "show <account>",
		Short: "Show one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := command.ParsePosition(args[0], "account")
			if err != nil {
				return err
			}

			return command.RunWithServer(cmd, func(ctx context.Context, s *api.Server) error {
				account, err := s.Wallet.Account(ctx, pos)
				if err != nil {
					return err
				}

				return command.PrintJSON(cmd, account.ToAccountResponse(pos))
			})
		},
	}
}

func newDelete() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <account>",
		Short: "Delete an account and all its wallets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := command.ParsePosition(args[0], "account")
			if err != nil {
				return err
			}

			return command.RunWithServer(cmd, func(ctx context.Context, s *api.Server) error {
				return s.Wallet.DeleteAccount(ctx, pos)
			})
		},
	}
}

func newToggleMnemonic() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-mnemonic <account>",
		Short: "Show or hide the mnemonic of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := command.ParsePosition(args[0], "account")
			if err != nil {
				return err
			}

			return command.RunWithServer(cmd, func(ctx context.Context, s *api.Server) error {
				visible, err := s.Wallet.ToggleMnemonicVisibility(ctx, pos)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "mnemonic visible: %t\n", visible)
				return nil
			})
		},
	}
}
