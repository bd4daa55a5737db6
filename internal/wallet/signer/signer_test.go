package signer_test

import (
	"context"
	"encoding/hex"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-hdwallet/internal/metrics"
	"github/chapool/go-hdwallet/internal/wallet/address"
	"github/chapool/go-hdwallet/internal/wallet/chain"
	"github/chapool/go-hdwallet/internal/wallet/chain/chaintest"
	"github/chapool/go-hdwallet/internal/wallet/signer"
)

const recipient = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"

var fastConfig = signer.Config{PollInterval: time.Millisecond, ConfirmTimeout: time.Second}

func ethereumRequest(t *testing.T, amount string) (signer.TransferRequest, string) {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	return signer.TransferRequest{
		Chain:      address.ChainEthereum,
		PrivateKey: hexutil.Encode(crypto.FromECDSA(key)),
		To:         recipient,
		Amount:     decimal.RequireFromString(amount),
	}, crypto.PubkeyToAddress(key.PublicKey).Hex()
}

func solanaRequest(t *testing.T, amount string) (signer.TransferRequest, solana.PublicKey) {
	t.Helper()

	from := solana.NewWallet()
	to := solana.NewWallet().PublicKey()

	return signer.TransferRequest{
		Chain:      address.ChainSolana,
		PrivateKey: hex.EncodeToString(from.PrivateKey),
		To:         to.String(),
		Amount:     decimal.RequireFromString(amount),
	}, from.PublicKey()
}

func confirmed(t *testing.T, req signer.TransferRequest) *signer.ConfirmedTransfer {
	t.Helper()

	transfer, err := signer.Confirm(context.Background(), signer.AutoApprove, req)
	require.NoError(t, err)
	return transfer
}

func TestConfirmDeclined(t *testing.T) {
	req, _ := ethereumRequest(t, "1")

	var summary string
	prompt := signer.ConfirmFunc(func(_ context.Context, s string) (bool, error) {
		summary = s
		return false, nil
	})

	transfer, err := signer.Confirm(context.Background(), prompt, req)
	require.ErrorIs(t, err, signer.ErrNotConfirmed)
	assert.Nil(t, transfer)
	assert.Equal(t, "Send 1 ETH to "+recipient+" on ethereum", summary)
	assert.NotContains(t, summary, req.PrivateKey)
}

func TestConfirmPromptError(t *testing.T) {
	req, _ := ethereumRequest(t, "1")
	prompt := signer.ConfirmFunc(func(context.Context, string) (bool, error) {
		return false, errors.New("no terminal")
	})

	_, err := signer.Confirm(context.Background(), prompt, req)
	require.Error(t, err)
	assert.NotErrorIs(t, err, signer.ErrNotConfirmed)
}

func TestConfirmRejectsInvalidRequests(t *testing.T) {
	eth, _ := ethereumRequest(t, "1")
	sol, _ := solanaRequest(t, "1")

	tests := []struct {
		name   string
		mutate func() signer.TransferRequest
	}{
		{name: "zero amount", mutate: func() signer.TransferRequest {
			r := eth
			r.Amount = decimal.Zero
			return r
		}},
		{name: "negative amount", mutate: func() signer.TransferRequest {
			r := sol
			r.Amount = decimal.RequireFromString("-1")
			return r
		}},
		{name: "bad ethereum recipient", mutate: func() signer.TransferRequest {
			r := eth
			r.To = "0x1234"
			return r
		}},
		{name: "bad solana recipient", mutate: func() signer.TransferRequest {
			r := sol
			r.To = recipient
			return r
		}},
		{name: "sub-wei amount", mutate: func() signer.TransferRequest {
			r := eth
			r.Amount = decimal.RequireFromString("0.0000000000000000001")
			return r
		}},
		{name: "sub-lamport amount", mutate: func() signer.TransferRequest {
			r := sol
			r.Amount = decimal.RequireFromString("0.0000000001")
			return r
		}},
		{name: "missing key", mutate: func() signer.TransferRequest {
			r := eth
			r.PrivateKey = ""
			return r
		}},
		{name: "unknown chain", mutate: func() signer.TransferRequest {
			r := eth
			r.Chain = "bitcoin"
			return r
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asked := false
			prompt := signer.ConfirmFunc(func(context.Context, string) (bool, error) {
				asked = true
				return true, nil
			})

			_, err := signer.Confirm(context.Background(), prompt, tt.mutate())
			require.Error(t, err)
			assert.False(t, asked)
		})
	}
}

func TestSubmitEthereum(t *testing.T) {
	backend := chaintest.NewEthereum()
	backend.Nonce = 7
	backend.PendingPolls = 2

	req, from := ethereumRequest(t, "1.5")
	sub := signer.NewSubmitter(backend, nil, fastConfig, metrics.New())

	hash, ok := sub.Submit(context.Background(), confirmed(t, req))
	require.True(t, ok)

	sent := backend.SentTransactions()
	require.Len(t, sent, 1)
	tx := sent[0]

	assert.Equal(t, tx.Hash().Hex(), hash)
	assert.Equal(t, uint8(types.DynamicFeeTxType), tx.Type())
	assert.Equal(t, uint64(7), tx.Nonce())
	assert.Equal(t, uint64(21000), tx.Gas())
	assert.Equal(t, big.NewInt(1_000_000_000), tx.GasTipCap())
	assert.Equal(t, big.NewInt(21_000_000_000), tx.GasFeeCap())
	assert.Equal(t, "1500000000000000000", tx.Value().String())
	assert.Equal(t, recipient, tx.To().Hex())

	sender, err := types.Sender(types.NewLondonSigner(big.NewInt(1)), tx)
	require.NoError(t, err)
	assert.Equal(t, from, sender.Hex())
}

func TestSubmitEthereumChainIDOverride(t *testing.T) {
	backend := chaintest.NewEthereum()
	req, _ := ethereumRequest(t, "0.01")

	cfg := fastConfig
	cfg.ChainID = 11155111
	sub := signer.NewSubmitter(backend, nil, cfg, nil)

	_, ok := sub.Submit(context.Background(), confirmed(t, req))
	require.True(t, ok)
	assert.Equal(t, int64(11155111), backend.SentTransactions()[0].ChainId().Int64())
}

func TestSubmitEthereumReverted(t *testing.T) {
	backend := chaintest.NewEthereum()
	backend.ReceiptStatus = types.ReceiptStatusFailed

	req, _ := ethereumRequest(t, "1")
	sub := signer.NewSubmitter(backend, nil, fastConfig, nil)

	_, err := sub.SendEthereum(context.Background(), confirmed(t, req))
	require.ErrorIs(t, err, signer.ErrTransferReverted)

	hash, ok := sub.Submit(context.Background(), confirmed(t, req))
	assert.False(t, ok)
	assert.Empty(t, hash)
}

func TestSubmitEthereumTimeout(t *testing.T) {
	backend := chaintest.NewEthereum()
	backend.PendingPolls = 1 << 30

	req, _ := ethereumRequest(t, "1")
	sub := signer.NewSubmitter(backend, nil, signer.Config{PollInterval: time.Millisecond, ConfirmTimeout: 20 * time.Millisecond}, nil)

	_, err := sub.SendEthereum(context.Background(), confirmed(t, req))
	require.ErrorIs(t, err, signer.ErrConfirmTimeout)
}

func TestSubmitEthereumRetriesReceiptErrors(t *testing.T) {
	backend := chaintest.NewEthereum()
	backend.FailingPolls = 2
	backend.PollErr = errors.New("connection reset by peer")
	backend.PendingPolls = 1

	req, _ := ethereumRequest(t, "1")
	sub := signer.NewSubmitter(backend, nil, fastConfig, nil)

	hash, ok := sub.Submit(context.Background(), confirmed(t, req))
	require.True(t, ok)

	sent := backend.SentTransactions()
	require.Len(t, sent, 1)
	assert.Equal(t, sent[0].Hash().Hex(), hash)
}

func TestSendEthereumTimeoutKeepsHash(t *testing.T) {
	backend := chaintest.NewEthereum()
	backend.FailingPolls = 1 << 30
	backend.PollErr = errors.New("connection reset by peer")

	req, _ := ethereumRequest(t, "1")
	sub := signer.NewSubmitter(backend, nil, signer.Config{PollInterval: time.Millisecond, ConfirmTimeout: 20 * time.Millisecond}, nil)

	hash, err := sub.SendEthereum(context.Background(), confirmed(t, req))
	require.ErrorIs(t, err, signer.ErrConfirmTimeout)
	assert.Contains(t, err.Error(), "connection reset by peer")

	sent := backend.SentTransactions()
	require.Len(t, sent, 1)
	assert.Equal(t, sent[0].Hash().Hex(), hash)
	assert.Contains(t, err.Error(), hash)
}

func TestSubmitEthereumRPCFailure(t *testing.T) {
	backend := chaintest.NewEthereum()
	backend.Err = errors.New("rpc down")

	req, _ := ethereumRequest(t, "1")
	sub := signer.NewSubmitter(backend, nil, fastConfig, nil)

	hash, ok := sub.Submit(context.Background(), confirmed(t, req))
	assert.False(t, ok)
	assert.Empty(t, hash)
	assert.Empty(t, backend.SentTransactions())
}

func TestSubmitSolana(t *testing.T) {
	backend := chaintest.NewSolana()
	backend.PendingPolls = 3

	req, from := solanaRequest(t, "0.25")
	sub := signer.NewSubmitter(nil, backend, fastConfig, metrics.New())

	sig, ok := sub.Submit(context.Background(), confirmed(t, req))
	require.True(t, ok)

	sent := backend.SentTransactions()
	require.Len(t, sent, 1)
	tx := sent[0]

	require.Len(t, tx.Signatures, 1)
	assert.Equal(t, tx.Signatures[0].String(), sig)
	assert.Equal(t, backend.Blockhash, tx.Message.RecentBlockhash)
	assert.Equal(t, from, tx.Message.AccountKeys[0])
	require.NoError(t, tx.VerifySignatures())
}

func TestSubmitSolanaFailedTransaction(t *testing.T) {
	backend := chaintest.NewSolana()
	backend.TxErr = errors.New("insufficient funds for rent")

	req, _ := solanaRequest(t, "1")
	sub := signer.NewSubmitter(nil, backend, fastConfig, nil)

	sig, ok := sub.Submit(context.Background(), confirmed(t, req))
	assert.False(t, ok)
	assert.Empty(t, sig)

	_, err := sub.SendSolana(context.Background(), confirmed(t, req))
	require.ErrorIs(t, err, chain.ErrTransactionFailed)
	assert.NotErrorIs(t, err, signer.ErrConfirmTimeout)
}

func TestSubmitSolanaRetriesStatusErrors(t *testing.T) {
	backend := chaintest.NewSolana()
	backend.FailingPolls = 2
	backend.PollErr = errors.New("connection reset by peer")
	backend.PendingPolls = 1

	req, _ := solanaRequest(t, "0.5")
	sub := signer.NewSubmitter(nil, backend, fastConfig, nil)

	sig, ok := sub.Submit(context.Background(), confirmed(t, req))
	require.True(t, ok)

	sent := backend.SentTransactions()
	require.Len(t, sent, 1)
	assert.Equal(t, sent[0].Signatures[0].String(), sig)
}

func TestSendSolanaTimeoutKeepsSignature(t *testing.T) {
	backend := chaintest.NewSolana()
	backend.FailingPolls = 1 << 30
	backend.PollErr = errors.New("connection reset by peer")

	req, _ := solanaRequest(t, "0.5")
	sub := signer.NewSubmitter(nil, backend, signer.Config{PollInterval: time.Millisecond, ConfirmTimeout: 20 * time.Millisecond}, nil)

	sig, err := sub.SendSolana(context.Background(), confirmed(t, req))
	require.ErrorIs(t, err, signer.ErrConfirmTimeout)
	assert.Equal(t, backend.SentTransactions()[0].Signatures[0].String(), sig)
	assert.Contains(t, err.Error(), sig)
}

func TestSubmitRefusesUnconfirmedOrUnavailable(t *testing.T) {
	sub := signer.NewSubmitter(nil, nil, fastConfig, nil)

	_, ok := sub.Submit(context.Background(), nil)
	assert.False(t, ok)

	eth, _ := ethereumRequest(t, "1")
	_, err := sub.SendEthereum(context.Background(), confirmed(t, eth))
	require.ErrorIs(t, err, signer.ErrBackendUnavailable)

	sol, _ := solanaRequest(t, "1")
	_, err = sub.SendSolana(context.Background(), confirmed(t, sol))
	require.ErrorIs(t, err, signer.ErrBackendUnavailable)
}
