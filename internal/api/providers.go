package api

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/go-hdwallet/internal/config"
	"github/chapool/go-hdwallet/internal/metrics"
	"github/chapool/go-hdwallet/internal/store"
	"github/chapool/go-hdwallet/internal/util"
	"github/chapool/go-hdwallet/internal/wallet"
	"github/chapool/go-hdwallet/internal/wallet/address"
	"github/chapool/go-hdwallet/internal/wallet/chain"
	"github/chapool/go-hdwallet/internal/wallet/keystore"
	"github/chapool/go-hdwallet/internal/wallet/seed"
	"github/chapool/go-hdwallet/internal/wallet/signer"
)

// NewStore opens the configured key-value store
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewStore(cfg config.Server) (store.KeyValueStore, error) {
	path := cfg.Store.Path
	if store.Driver(cfg.Store.Driver) == store.DriverPostgres {
		path = cfg.Store.DatabaseURL
	}

	kv, err := store.Open(context.Background(), store.Options{
		Driver: store.Driver(cfg.Store.Driver),
		Path:   path,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open wallet store")
	}

	if cfg.Store.Passphrase == "" {
		return kv, nil
	}

	params := keystore.DefaultScryptParams()
	if cfg.Wallet.LightScrypt {
		params = keystore.LightScryptParams()
	}

	return store.NewEncryptedWithKeystore(kv, keystore.NewService(params), cfg.Store.Passphrase), nil
}

// NewWalletService assembles the account registry and loads the persisted accounts
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewWalletService(cfg config.Server, kv store.KeyValueStore, m *metrics.Metrics) (wallet.Service, error) {
	policy, err := wallet.ParseIndexPolicy(cfg.Wallet.IndexPolicy)
	if err != nil {
		return nil, err
	}

	generator, err := seed.NewEntropyGenerator(cfg.Wallet.MnemonicEntropyBits)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create mnemonic generator")
	}

	deriver := wallet.NewDeriver(seed.NewManager(), address.NewService(), m)

	opts := []wallet.Option{
		wallet.WithIndexPolicy(policy),
		wallet.WithMetrics(m),
	}
	if cfg.Wallet.LegacyScanLimit > 0 {
		opts = append(opts, wallet.WithLegacyScanLimit(uint32(cfg.Wallet.LegacyScanLimit)))
	}

	svc := wallet.NewService(wallet.NewRegistry(generator, deriver, opts...), kv)

	ctx := util.WithLogger(context.Background(), log.Logger)
	if err := wallet.Initialize(ctx, svc); err != nil {
		return nil, errors.Wrap(err, "failed to initialize wallet")
	}

	return svc, nil
}

// NewEthereumBackend returns nil when no RPC URL is configured
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewEthereumBackend(cfg config.Server, m *metrics.Metrics) (chain.EthereumBackend, error) {
	if len(cfg.Ethereum.RPCURLs) == 0 {
		return nil, nil
	}

	client, err := chain.NewEVMClient(context.Background(), cfg.Ethereum.RPCURLs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create ethereum client")
	}

	return chain.NewGuardedEthereum(client, chain.NewBreaker(string(address.ChainEthereum), cfg.RPC.Timeout, m)), nil
}

// NewSolanaBackend returns nil when no RPC URL is configured
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewSolanaBackend(cfg config.Server, m *metrics.Metrics) (chain.SolanaBackend, error) {
	if cfg.Solana.RPCURL == "" {
		return nil, nil
	}

	client, err := chain.NewSolanaClient(cfg.Solana.RPCURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create solana client")
	}

	return chain.NewGuardedSolana(client, chain.NewBreaker(string(address.ChainSolana), cfg.RPC.Timeout, m)), nil
}

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewSubmitter(cfg config.Server, ethereum chain.EthereumBackend, solana chain.SolanaBackend, m *metrics.Metrics) signer.Submitter {
	return signer.NewSubmitter(ethereum, solana, signer.Config{
		ChainID:        cfg.Ethereum.ChainID,
		PollInterval:   cfg.RPC.PollInterval,
		ConfirmTimeout: cfg.RPC.ConfirmTimeout,
	}, m)
}
