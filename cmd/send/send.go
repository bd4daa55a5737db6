package send

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github/chapool/go-hdwallet/internal/api"
	"github/chapool/go-hdwallet/internal/util/command"
	"github/chapool/go-hdwallet/internal/wallet/address"
	"github/chapool/go-hdwallet/internal/wallet/signer"
)

const (
	chainFlag  = "chain"
	toFlag     = "to"
	amountFlag = "amount"
)

var errSubmitFailed = errors.New("transaction failed, see log for details")

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send <account> <wallet>",
		Short: "Transfer ether or SOL from a wallet after terminal confirmation",
		Args:  cobra.ExactArgs(2),
		RunE:  run,
	}

	cmd.Flags().String(chainFlag, string(address.ChainEthereum), "ethereum or solana")
	cmd.Flags().String(toFlag, "", "recipient address")
	cmd.Flags().String(amountFlag, "", "amount in ether or SOL")
	_ = cmd.MarkFlagRequired(toFlag)
	_ = cmd.MarkFlagRequired(amountFlag)

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	accountPos, err := command.ParsePosition(args[0], "account")
	if err != nil {
		return err
	}
	walletPos, err := command.ParsePosition(args[1], "wallet")
	if err != nil {
		return err
	}

	chainName, _ := cmd.Flags().GetString(chainFlag)
	chainTag, err := address.ParseChain(chainName)
	if err != nil {
		return err
	}

	to, _ := cmd.Flags().GetString(toFlag)
	rawAmount, _ := cmd.Flags().GetString(amountFlag)
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return errors.Wrapf(err, "invalid amount %q", rawAmount)
	}

	return command.RunWithServer(cmd, func(ctx context.Context, s *api.Server) error {
		w, err := s.Wallet.Wallet(ctx, accountPos, walletPos)
		if err != nil {
			return err
		}

		keypair, err := w.Keypair(chainTag)
		if err != nil {
			return err
		}

		req := signer.TransferRequest{
			Chain:  chainTag,
			To:     to,
			Amount: amount,
		}
		switch kp := keypair.(type) {
		case address.EthereumKeypair:
			req.PrivateKey = kp.PrivateKey
		case address.SolanaKeypair:
			req.PrivateKey = kp.PrivateKey
		}

		transfer, err := signer.Confirm(ctx, command.NewTerminalPrompt(os.Stdin, cmd.ErrOrStderr()), req)
		if err != nil {
			return err
		}

		id, ok := s.Submitter.Submit(ctx, transfer)
		if !ok {
			return errSubmitFailed
		}

		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	})
}
