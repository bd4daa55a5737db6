package chain_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-hdwallet/internal/metrics"
	"github/chapool/go-hdwallet/internal/wallet/chain"
	"github/chapool/go-hdwallet/internal/wallet/chain/chaintest"
)

func TestParseRPCURLs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "single", in: "http://localhost:8545", want: []string{"http://localhost:8545"}},
		{name: "list with blanks", in: " http://a , ,http://b,", want: []string{"http://a", "http://b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, chain.ParseRPCURLs(tt.in))
		})
	}
}

func TestNewEVMClientWithoutURLs(t *testing.T) {
	_, err := chain.NewEVMClient(context.Background(), nil)
	require.Error(t, err)
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	fake := chaintest.NewEthereum()
	fake.Err = errors.New("connection refused")

	guarded := chain.NewGuardedEthereum(fake, chain.NewBreaker("ethereum", time.Second, metrics.New()))

	for i := 0; i < 10; i++ {
		_, err := guarded.BalanceAt(context.Background(), common.Address{})
		require.Error(t, err)
	}
	assert.Equal(t, 10, fake.Calls)

	_, err := guarded.BalanceAt(context.Background(), common.Address{})
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 10, fake.Calls, "open breaker must not reach the backend")
}

func TestGuardedEthereumPassesThrough(t *testing.T) {
	fake := chaintest.NewEthereum()
	guarded := chain.NewGuardedEthereum(fake, chain.NewBreaker("ethereum", 0, nil))

	id, err := guarded.ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Int64())

	gas, err := guarded.EstimateGas(context.Background(), ethereum.CallMsg{})
	require.NoError(t, err)
	assert.Equal(t, uint64(21000), gas)
}

func TestGuardedReceiptPendingIsNotAFailure(t *testing.T) {
	fake := chaintest.NewEthereum()
	fake.PendingPolls = 20

	breaker := chain.NewBreaker("ethereum", time.Second, nil)
	guarded := chain.NewGuardedEthereum(fake, breaker)

	for i := 0; i < 20; i++ {
		_, err := guarded.TransactionReceipt(context.Background(), common.Hash{})
		require.ErrorIs(t, err, ethereum.NotFound)
	}
	assert.Equal(t, gobreaker.StateClosed, breaker.State())

	receipt, err := guarded.TransactionReceipt(context.Background(), common.Hash{1})
	require.NoError(t, err)
	assert.Equal(t, common.Hash{1}, receipt.TxHash)
}

func TestGuardedSolana(t *testing.T) {
	fake := chaintest.NewSolana()
	pub := solana.NewWallet().PublicKey()
	fake.Balances[pub] = 1_500_000_000

	guarded := chain.NewGuardedSolana(fake, chain.NewBreaker("solana", time.Second, nil))

	lamports, err := guarded.GetBalance(context.Background(), pub)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_500_000_000), lamports)

	hash, err := guarded.LatestBlockhash(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fake.Blockhash, hash)

	fake.Err = errors.New("timeout")
	_, err = guarded.GetBalance(context.Background(), pub)
	require.Error(t, err)
}
