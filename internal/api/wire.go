//go:build wireinject

package api

import (
	"github.com/google/wire"
	"github/chapool/go-hdwallet/internal/config"
	"github/chapool/go-hdwallet/internal/metrics"
	"github/chapool/go-hdwallet/internal/store"
	"github/chapool/go-hdwallet/internal/wallet/balance"
)

// INJECTORS - https://github.com/google/wire/blob/main/docs/guide.md#injectors

// serviceSet groups the default set of providers that are required for initing a server
var serviceSet = wire.NewSet(
	newServerWithComponents,
	store.NewPreferences,
	metrics.New,
	NewWalletService,
	NewEthereumBackend,
	NewSolanaBackend,
	balance.NewOracle,
	NewSubmitter,
)

// InitNewServer returns a new Server instance.
func InitNewServer(
	_ config.Server,
) (*Server, error) {
	wire.Build(serviceSet, NewStore)
	return new(Server), nil
}

// InitNewServerWithStore returns a new Server instance with the given store.
// All the other components are initialized via go wire according to the configuration.
func InitNewServerWithStore(
	_ config.Server,
	_ store.KeyValueStore,
) (*Server, error) {
	wire.Build(serviceSet)
	return new(Server), nil
}
