package api_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-hdwallet/internal/api"
	"github/chapool/go-hdwallet/internal/metrics"
	"github/chapool/go-hdwallet/internal/store"
	"github/chapool/go-hdwallet/internal/test"
)

func TestNewStoreEncrypted(t *testing.T) {
	cfg := test.DefaultTestConfig()
	cfg.Store.Passphrase = "correct horse battery staple"
	cfg.Wallet.LightScrypt = true

	kv, err := api.NewStore(cfg)
	require.NoError(t, err)
	defer kv.Close()

	_, ok := kv.(*store.Encrypted)
	assert.True(t, ok)

	require.NoError(t, kv.Set(t.Context(), "k", "v"))
	v, err := kv.Get(t.Context(), "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}

func TestNewStoreUnknownDriver(t *testing.T) {
	cfg := test.DefaultTestConfig()
	cfg.Store.Driver = "redis"

	_, err := api.NewStore(cfg)
	require.Error(t, err)
}

func TestChainBackendsDisabledWithoutURLs(t *testing.T) {
	cfg := test.DefaultTestConfig()

	eth, err := api.NewEthereumBackend(cfg, metrics.New())
	require.NoError(t, err)
	assert.Nil(t, eth)

	sol, err := api.NewSolanaBackend(cfg, metrics.New())
	require.NoError(t, err)
	assert.Nil(t, sol)
}

func TestSolanaBackendConfigured(t *testing.T) {
	cfg := test.DefaultTestConfig()
	cfg.Solana.RPCURL = "http://127.0.0.1:8899"

	sol, err := api.NewSolanaBackend(cfg, nil)
	require.NoError(t, err)
	assert.NotNil(t, sol)
}

func TestNewWalletServiceRejectsUnknownPolicy(t *testing.T) {
	cfg := test.DefaultTestConfig()
	cfg.Wallet.IndexPolicy = "random"

	_, err := api.NewWalletService(cfg, store.NewMemory(), nil)
	require.Error(t, err)
}

func TestInitNewServerWithStoreLoadsAccounts(t *testing.T) {
	kv := store.NewMemory()

	test.WithTestServerWithStore(t, test.DefaultTestConfig(), kv, func(s *api.Server) {
		_, _, err := s.Wallet.CreateAccount(t.Context(), test.MnemonicJunk)
		require.NoError(t, err)
	})

	s, err := api.InitNewServerWithStore(test.DefaultTestConfig(), kv)
	require.NoError(t, err)
	require.Len(t, s.Wallet.Accounts(t.Context()), 1)
	assert.True(t, s.Ready())
}
