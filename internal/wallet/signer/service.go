package signer

import (
	"context"

	"github/chapool/go-hdwallet/internal/metrics"
	"github/chapool/go-hdwallet/internal/util"
	"github/chapool/go-hdwallet/internal/wallet/address"
	"github/chapool/go-hdwallet/internal/wallet/chain"
)

type submitter struct {
	ethereum chain.EthereumBackend
	solana   chain.SolanaBackend
	config   Config
	metrics  *metrics.Metrics
}

// NewSubmitter creates a Submitter, either backend may be nil
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewSubmitter(ethereum chain.EthereumBackend, solana chain.SolanaBackend, config Config, m *metrics.Metrics) Submitter {
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultPollInterval
	}
	if config.ConfirmTimeout <= 0 {
		config.ConfirmTimeout = DefaultConfirmTimeout
	}

	return &submitter{
		ethereum: ethereum,
		solana:   solana,
		config:   config,
		metrics:  m,
	}
}

// Submit sends the transfer on its chain. Failures are logged, with the
// transaction id when it was already broadcast.
func (s *submitter) Submit(ctx context.Context, transfer *ConfirmedTransfer) (string, bool) {
	log := util.LogFromContext(ctx)

	if transfer == nil {
		log.Error().Msg("Refusing to submit an unconfirmed transfer")
		return "", false
	}

	chainName := transfer.Request().Chain

	var (
		id  string
		err error
	)
	switch chainName {
	case address.ChainEthereum:
		id, err = s.SendEthereum(ctx, transfer)
	case address.ChainSolana:
		id, err = s.SendSolana(ctx, transfer)
	default:
		err = address.ErrUnsupportedChain
	}

	s.metrics.SubmittedTransaction(string(chainName), err == nil)
	if err != nil {
		event := log.Error().Err(err).Str("chain", string(chainName)).Str("to", transfer.Request().To)
		if id != "" {
			// broadcast already happened, resending may pay twice
			event = event.Str("tx_id", id)
		}
		event.Msg("Failed to submit transaction")
		return "", false
	}

	return id, true
}
