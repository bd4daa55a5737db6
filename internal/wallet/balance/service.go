//nolint:ireturn // Returning interface is intentional for dependency injection
package balance

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/util"
	"github/chapool/go-hdwallet/internal/wallet/chain"
)

var (
	ErrBackendUnavailable = errors.New("balance backend not configured")
	ErrInvalidAddress     = errors.New("invalid address")
)

type oracle struct {
	ethereum chain.EthereumBackend
	solana   chain.SolanaBackend
}

// NewOracle returns an Oracle over the given backends, either may be nil
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewOracle(ethereum chain.EthereumBackend, solana chain.SolanaBackend) Oracle {
	return &oracle{
		ethereum: ethereum,
		solana:   solana,
	}
}

func (o *oracle) EthereumBalance(ctx context.Context, address string) string {
	balance, err := o.ethereumBalance(ctx, address)
	if err != nil {
		util.LogFromContext(ctx).Error().Err(err).Str("chain", "ethereum").Str("address", address).Msg("Failed to get balance")
		return "0"
	}

	return balance
}

func (o *oracle) ethereumBalance(ctx context.Context, address string) (string, error) {
	if o.ethereum == nil {
		return "", ErrBackendUnavailable
	}
	if !common.IsHexAddress(address) {
		return "", errors.Wrapf(ErrInvalidAddress, "ethereum address %q", address)
	}

	wei, err := o.ethereum.BalanceAt(ctx, common.HexToAddress(address))
	if err != nil {
		return "", errors.Wrap(err, "failed to query ethereum balance")
	}

	return FormatEther(wei), nil
}

func (o *oracle) SolanaBalance(ctx context.Context, publicKey string) string {
	balance, err := o.solanaBalance(ctx, publicKey)
	if err != nil {
		util.LogFromContext(ctx).Error().Err(err).Str("chain", "solana").Str("address", publicKey).Msg("Failed to get balance")
		return "0"
	}

	return balance
}

func (o *oracle) solanaBalance(ctx context.Context, publicKey string) (string, error) {
	if o.solana == nil {
		return "", ErrBackendUnavailable
	}

	pub, err := solana.PublicKeyFromBase58(publicKey)
	if err != nil {
		return "", errors.Wrapf(ErrInvalidAddress, "solana public key %q: %v", publicKey, err)
	}

	lamports, err := o.solana.GetBalance(ctx, pub)
	if err != nil {
		return "", errors.Wrap(err, "failed to query solana balance")
	}

	return FormatSOL(lamports), nil
}

// Lookup queries both chains concurrently
func Lookup(ctx context.Context, o Oracle, ethereumAddress string, solanaPublicKey string) Balances {
	var (
		result Balances
		wg     sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		result.Ethereum = o.EthereumBalance(ctx, ethereumAddress)
	}()
	go func() {
		defer wg.Done()
		result.Solana = o.SolanaBalance(ctx, solanaPublicKey)
	}()
	wg.Wait()

	return result
}
