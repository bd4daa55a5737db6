package signer

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github/chapool/go-hdwallet/internal/wallet/address"
)

var (
	// ErrNotConfirmed is returned when the user declines a transfer
	ErrNotConfirmed       = errors.New("transfer not confirmed")
	ErrInvalidTransfer    = errors.New("invalid transfer")
	ErrBackendUnavailable = errors.New("chain backend not configured")
	ErrTransferReverted   = errors.New("transfer reverted")
	ErrConfirmTimeout     = errors.New("timed out waiting for confirmation")
)

const (
	DefaultPollInterval   = 2 * time.Second
	DefaultConfirmTimeout = 2 * time.Minute
)

// TransferRequest moves Amount (in ether or SOL) from the key's address to To
type TransferRequest struct {
	Chain address.Chain
	// PrivateKey is 0x hex for Ethereum and the 64 byte secret key in hex for Solana
	PrivateKey string
	To         string
	Amount     decimal.Decimal
}

// Summary describes the transfer without the key
func (r TransferRequest) Summary() string {
	unit := "ETH"
	if r.Chain == address.ChainSolana {
		unit = "SOL"
	}

	return fmt.Sprintf("Send %s %s to %s on %s", r.Amount.String(), unit, r.To, r.Chain)
}

// ConfirmationPrompt asks the user to approve a transfer
type ConfirmationPrompt interface {
	Confirm(ctx context.Context, summary string) (bool, error)
}

// ConfirmedTransfer is a TransferRequest the user approved. It can only be
// obtained from Confirm.
type ConfirmedTransfer struct {
	request TransferRequest
}

// Request returns the approved request
func (c *ConfirmedTransfer) Request() TransferRequest {
	return c.request
}

// Submitter signs and broadcasts transfers
type Submitter interface {
	// Submit returns the transaction hash or signature, or ("", false) on any failure
	Submit(ctx context.Context, transfer *ConfirmedTransfer) (string, bool)

	SendEthereum(ctx context.Context, transfer *ConfirmedTransfer) (string, error)
	SendSolana(ctx context.Context, transfer *ConfirmedTransfer) (string, error)
}

// Config tunes the submitter
type Config struct {
	// ChainID overrides the chain ID reported by the Ethereum backend when > 0
	ChainID        int64
	PollInterval   time.Duration
	ConfirmTimeout time.Duration
}
