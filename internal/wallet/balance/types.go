package balance

import (
	"context"
	"math/big"

	"github.com/shopspring/decimal"
)

const (
	etherDecimals = 18
	solDecimals   = 9
	// solDisplayPlaces matches how SOL balances are shown to the user
	solDisplayPlaces = 2
)

// Oracle reports account balances as decimal strings. A failed lookup
// reports "0" and is logged, never returned.
type Oracle interface {
	EthereumBalance(ctx context.Context, address string) string
	SolanaBalance(ctx context.Context, publicKey string) string
}

// Balances holds both chain balances of one wallet
type Balances struct {
	Ethereum string `json:"ethereum"`
	Solana   string `json:"solana"`
}

// FormatEther renders wei as ether with trailing zeros trimmed
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return decimal.NewFromBigInt(wei, -etherDecimals).String()
}

// FormatSOL renders lamports as SOL with two decimals
func FormatSOL(lamports uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(lamports), -solDecimals).StringFixed(solDisplayPlaces)
}
