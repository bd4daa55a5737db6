package signer

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/wallet/address"
)

// Validate checks the request shape without touching the network
func (r TransferRequest) Validate() error {
	if !r.Amount.IsPositive() {
		return errors.Wrap(ErrInvalidTransfer, "amount must be positive")
	}
	if r.PrivateKey == "" {
		return errors.Wrap(ErrInvalidTransfer, "private key is required")
	}

	switch r.Chain {
	case address.ChainEthereum:
		if !common.IsHexAddress(r.To) {
			return errors.Wrapf(ErrInvalidTransfer, "invalid ethereum recipient %q", r.To)
		}
		if _, err := weiAmount(r.Amount); err != nil {
			return err
		}
	case address.ChainSolana:
		if _, err := solana.PublicKeyFromBase58(r.To); err != nil {
			return errors.Wrapf(ErrInvalidTransfer, "invalid solana recipient %q", r.To)
		}
		if _, err := lamportsAmount(r.Amount); err != nil {
			return err
		}
	default:
		return errors.Wrapf(address.ErrUnsupportedChain, "chain %q", r.Chain)
	}

	return nil
}

// Confirm validates req and asks the prompt for approval
func Confirm(ctx context.Context, prompt ConfirmationPrompt, req TransferRequest) (*ConfirmedTransfer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ok, err := prompt.Confirm(ctx, req.Summary())
	if err != nil {
		return nil, errors.Wrap(err, "failed to ask for confirmation")
	}
	if !ok {
		return nil, ErrNotConfirmed
	}

	return &ConfirmedTransfer{request: req}, nil
}

// ConfirmFunc adapts a function to ConfirmationPrompt
type ConfirmFunc func(ctx context.Context, summary string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, summary string) (bool, error) {
	return f(ctx, summary)
}

// AutoApprove approves every transfer
var AutoApprove = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })
