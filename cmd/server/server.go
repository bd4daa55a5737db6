package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-hdwallet/internal/api"
	"github/chapool/go-hdwallet/internal/api/router"
	"github/chapool/go-hdwallet/internal/util/command"
)

const shutdownTimeout = 10 * time.Second

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Starts the local JSON API",
		Long: `Starts the local JSON API.

Requires configuration through ENV.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := command.LoadConfig(cmd)
			if err != nil {
				return err
			}
			command.ConfigureLogger(cfg.Logger)

			s, err := api.InitNewServer(cfg)
			if err != nil {
				log.Error().Err(err).Msg("Failed to initialize server")
				return err
			}

			router.Init(s)

			go func() {
				log.Info().Str("address", cfg.Echo.ListenAddress).Msg("Starting server")
				if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("Failed to start server")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
			<-quit

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if errs := s.Shutdown(ctx); len(errs) > 0 {
				log.Error().Errs("shutdownErrors", errs).Msg("Failed to gracefully shut down server")
			}

			log.Info().Msg("Server shut down")
			return nil
		},
	}
}
