package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github/chapool/go-hdwallet/internal/config"
	"github/chapool/go-hdwallet/internal/metrics"
	"github/chapool/go-hdwallet/internal/store"
	"github/chapool/go-hdwallet/internal/util"
	"github/chapool/go-hdwallet/internal/wallet"
	"github/chapool/go-hdwallet/internal/wallet/balance"
	"github/chapool/go-hdwallet/internal/wallet/signer"
)

type Router struct {
	Routes     []*echo.Route
	Root       *echo.Group
	Management *echo.Group
	APIV1      *echo.Group
	// APIV1Account is /api/v1/accounts/:account
	APIV1Account *echo.Group
}

// Server is a central struct keeping all the dependencies.
// It is initialized with wire, which handles making the new instances of the components
// in the right order. To add a new component, 3 steps are required:
// - declaring it in this struct
// - adding a provider function in providers.go
// - adding the provider's function name to the arguments of wire.Build() in wire.go
//
// Components labeled as `wire:"-"` will be skipped and have to be initialized after the InitNewServer* call.
// For more information about wire refer to https://pkg.go.dev/github.com/google/wire
type Server struct {
	// skip wire:
	// -> initialized with router.Init(s) function
	Echo   *echo.Echo `wire:"-"`
	Router *Router    `wire:"-"`

	Config      config.Server
	Store       store.KeyValueStore
	Preferences *store.Preferences
	Metrics     *metrics.Metrics
	Wallet      wallet.Service
	Balance     balance.Oracle
	Submitter   signer.Submitter
}

// newServerWithComponents is used by wire to initialize the server components.
// Components not listed here won't be handled by wire and should be initialized separately.
// Components which shouldn't be handled must be labeled `wire:"-"` in Server struct.
func newServerWithComponents(
	cfg config.Server,
	kv store.KeyValueStore,
	preferences *store.Preferences,
	m *metrics.Metrics,
	walletService wallet.Service,
	oracle balance.Oracle,
	submitter signer.Submitter,
) *Server {
	return &Server{
		Config:      cfg,
		Store:       kv,
		Preferences: preferences,
		Metrics:     m,
		Wallet:      walletService,
		Balance:     oracle,
		Submitter:   submitter,
	}
}

func NewServer(config config.Server) *Server {
	s := &Server{
		Config: config,
	}

	return s
}

func (s *Server) Ready() bool {
	if err := util.IsStructInitialized(s); err != nil {
		log.Debug().Err(err).Msg("Server is not fully initialized")
		return false
	}

	return true
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	if s.Store != nil {
		log.Debug().Msg("Closing wallet store")

		if err := s.Store.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close wallet store")
			errs = append(errs, err)
		}
	}

	return errs
}
