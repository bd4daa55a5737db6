package chain

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"github/chapool/go-hdwallet/internal/metrics"
)

const (
	breakerMinRequests  = 10
	breakerFailureRatio = 0.6
	breakerOpenTimeout  = 30 * time.Second
	defaultCallTimeout  = 10 * time.Second
)

// Breaker bounds every call with a timeout and stops calling an endpoint
// that keeps failing
type Breaker struct {
	cb      *gobreaker.CircuitBreaker
	name    string
	timeout time.Duration
	metrics *metrics.Metrics
}

// NewBreaker returns a breaker named after the chain it guards
func NewBreaker(name string, timeout time.Duration, m *metrics.Metrics) *Breaker {
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}

	return &Breaker{
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    name,
			Timeout: breakerOpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= breakerMinRequests && failureRatio >= breakerFailureRatio
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				if to == gobreaker.StateOpen {
					log.Warn().Str("chain", name).Msg("RPC seems down, stop allowing requests")
				}
				if from == gobreaker.StateOpen && to == gobreaker.StateHalfOpen {
					log.Info().Str("chain", name).Msg("Checking RPC status")
				}
				if from == gobreaker.StateHalfOpen && to == gobreaker.StateClosed {
					log.Info().Str("chain", name).Msg("RPC seems ok, restart allowing requests")
				}
			},
		}),
		name:    name,
		timeout: timeout,
		metrics: m,
	}
}

// State reports the breaker state
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// Do runs fn under the per-call timeout
func (b *Breaker) Do(ctx context.Context, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	res, err := b.cb.Execute(func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(ctx, b.timeout)
		defer cancel()

		return fn(callCtx)
	})
	b.metrics.RPCRequest(b.name, err == nil)

	return res, err
}

// GuardedEthereum routes every call of an EthereumBackend through a Breaker
type GuardedEthereum struct {
	inner   EthereumBackend
	breaker *Breaker
}

var _ EthereumBackend = (*GuardedEthereum)(nil)

// NewGuardedEthereum routes every call of inner through breaker
func NewGuardedEthereum(inner EthereumBackend, breaker *Breaker) *GuardedEthereum {
	return &GuardedEthereum{inner: inner, breaker: breaker}
}

func (g *GuardedEthereum) ChainID(ctx context.Context) (*big.Int, error) {
	res, err := g.breaker.Do(ctx, func(ctx context.Context) (interface{}, error) {
		return g.inner.ChainID(ctx)
	})
	if err != nil {
		return nil, err
	}
	return res.(*big.Int), nil
}

func (g *GuardedEthereum) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	res, err := g.breaker.Do(ctx, func(ctx context.Context) (interface{}, error) {
		return g.inner.BalanceAt(ctx, account)
	})
	if err != nil {
		return nil, err
	}
	return res.(*big.Int), nil
}

func (g *GuardedEthereum) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	res, err := g.breaker.Do(ctx, func(ctx context.Context) (interface{}, error) {
		return g.inner.PendingNonceAt(ctx, account)
	})
	if err != nil {
		return 0, err
	}
	return res.(uint64), nil
}

func (g *GuardedEthereum) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	res, err := g.breaker.Do(ctx, func(ctx context.Context) (interface{}, error) {
		return g.inner.SuggestGasTipCap(ctx)
	})
	if err != nil {
		return nil, err
	}
	return res.(*big.Int), nil
}

func (g *GuardedEthereum) BaseFee(ctx context.Context) (*big.Int, error) {
	res, err := g.breaker.Do(ctx, func(ctx context.Context) (interface{}, error) {
		return g.inner.BaseFee(ctx)
	})
	if err != nil {
		return nil, err
	}
	return res.(*big.Int), nil
}

func (g *GuardedEthereum) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	res, err := g.breaker.Do(ctx, func(ctx context.Context) (interface{}, error) {
		return g.inner.EstimateGas(ctx, msg)
	})
	if err != nil {
		return 0, err
	}
	return res.(uint64), nil
}

func (g *GuardedEthereum) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	_, err := g.breaker.Do(ctx, func(ctx context.Context) (interface{}, error) {
		return nil, g.inner.SendTransaction(ctx, tx)
	})
	return err
}

// TransactionReceipt does not count a pending transaction as a failure
func (g *GuardedEthereum) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	res, err := g.breaker.Do(ctx, func(ctx context.Context) (interface{}, error) {
		receipt, err := g.inner.TransactionReceipt(ctx, txHash)
		if errors.Is(err, ethereum.NotFound) {
			return (*types.Receipt)(nil), nil
		}
		return receipt, err
	})
	if err != nil {
		return nil, err
	}

	receipt, _ := res.(*types.Receipt)
	if receipt == nil {
		return nil, ethereum.NotFound
	}
	return receipt, nil
}

// GuardedSolana routes every call of a SolanaBackend through a Breaker
type GuardedSolana struct {
	inner   SolanaBackend
	breaker *Breaker
}

var _ SolanaBackend = (*GuardedSolana)(nil)

// NewGuardedSolana routes every call of inner through breaker
func NewGuardedSolana(inner SolanaBackend, breaker *Breaker) *GuardedSolana {
	return &GuardedSolana{inner: inner, breaker: breaker}
}

func (g *GuardedSolana) GetBalance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	res, err := g.breaker.Do(ctx, func(ctx context.Context) (interface{}, error) {
		return g.inner.GetBalance(ctx, account)
	})
	if err != nil {
		return 0, err
	}
	return res.(uint64), nil
}

func (g *GuardedSolana) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	res, err := g.breaker.Do(ctx, func(ctx context.Context) (interface{}, error) {
		return g.inner.LatestBlockhash(ctx)
	})
	if err != nil {
		return solana.Hash{}, err
	}
	return res.(solana.Hash), nil
}

func (g *GuardedSolana) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	res, err := g.breaker.Do(ctx, func(ctx context.Context) (interface{}, error) {
		return g.inner.SendTransaction(ctx, tx)
	})
	if err != nil {
		return solana.Signature{}, err
	}
	return res.(solana.Signature), nil
}

func (g *GuardedSolana) SignatureConfirmed(ctx context.Context, sig solana.Signature) (bool, error) {
	res, err := g.breaker.Do(ctx, func(ctx context.Context) (interface{}, error) {
		return g.inner.SignatureConfirmed(ctx, sig)
	})
	if err != nil {
		return false, err
	}
	return res.(bool), nil
}
