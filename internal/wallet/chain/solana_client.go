package chain

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
)

// ErrTransactionFailed is returned for transactions that landed with an error
var ErrTransactionFailed = errors.New("transaction failed on chain")

// SolanaClient adapts the solana-go RPC client at confirmed commitment
type SolanaClient struct {
	client *rpc.Client
}

var _ SolanaBackend = (*SolanaClient)(nil)

// NewSolanaClient creates a client for the JSON-RPC endpoint
func NewSolanaClient(endpoint string) (*SolanaClient, error) {
	if endpoint == "" {
		return nil, errors.New("solana RPC URL is required")
	}

	return &SolanaClient{client: rpc.New(endpoint)}, nil
}

// Close releases the underlying HTTP client
func (c *SolanaClient) Close() error {
	return c.client.Close()
}

func (c *SolanaClient) GetBalance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	res, err := c.client.GetBalance(ctx, account, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get balance")
	}

	return res.Value, nil
}

func (c *SolanaClient) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	res, err := c.client.GetLatestBlockhash(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return solana.Hash{}, errors.Wrap(err, "failed to get recent blockhash")
	}

	return res.Value.Blockhash, nil
}

func (c *SolanaClient) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := c.client.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to send transaction")
	}

	return sig, nil
}

func (c *SolanaClient) SignatureConfirmed(ctx context.Context, sig solana.Signature) (bool, error) {
	res, err := c.client.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		return false, errors.Wrap(err, "failed to get signature status")
	}

	if len(res.Value) == 0 || res.Value[0] == nil {
		return false, nil
	}

	status := res.Value[0]
	if status.Err != nil {
		return false, errors.Wrapf(ErrTransactionFailed, "%v", status.Err)
	}

	switch status.ConfirmationStatus {
	case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
		return true, nil
	default:
		return false, nil
	}
}
