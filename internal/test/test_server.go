package test

import (
	"context"
	"testing"

	"github/chapool/go-hdwallet/internal/api"
	"github/chapool/go-hdwallet/internal/api/router"
	"github/chapool/go-hdwallet/internal/config"
	"github/chapool/go-hdwallet/internal/store"
)

// Mnemonics with well known derived keys
const (
	MnemonicJunk    = "test test test test test test test test test test test junk"
	MnemonicAbandon = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
)

// WithTestServer returns a fully configured server backed by an in-memory
// store and no chain backends
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerConfigurable(t, DefaultTestConfig(), closure)
}

// WithTestServerConfigurable is WithTestServer with a caller supplied config
func WithTestServerConfigurable(t *testing.T, config config.Server, closure func(s *api.Server)) {
	t.Helper()

	kv, err := store.NewLevelDBInMemory()
	if err != nil {
		t.Fatalf("Failed to open in-memory store: %v", err)
	}

	WithTestServerWithStore(t, config, kv, closure)
}

// WithTestServerWithStore runs closure against a server using kv
func WithTestServerWithStore(t *testing.T, config config.Server, kv store.KeyValueStore, closure func(s *api.Server)) {
	t.Helper()

	s, err := api.InitNewServerWithStore(config, kv)
	if err != nil {
		t.Fatalf("Failed to init server: %v", err)
	}

	router.Init(s)

	closure(s)

	// echo is shut down, the store may already be closed by the test
	if errs := s.Shutdown(context.Background()); len(errs) > 0 {
		t.Logf("Shutdown reported %d error(s): %v", len(errs), errs)
	}
}

// DefaultTestConfig is the env config with chain RPC disabled and fast polling
func DefaultTestConfig() config.Server {
	cfg := config.DefaultServiceConfigFromEnv()

	cfg.Store.Driver = string(store.DriverMemory)
	cfg.Store.Passphrase = ""
	cfg.Wallet.IndexPolicy = "monotonic"
	cfg.Wallet.MnemonicEntropyBits = 128
	cfg.Ethereum.RPCURLs = nil
	cfg.Solana.RPCURL = ""
	cfg.Logger.PrettyPrintConsole = false

	return cfg
}
