package balance_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github/chapool/go-hdwallet/internal/wallet/balance"
	"github/chapool/go-hdwallet/internal/wallet/chain/chaintest"
)

const testAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

func TestFormatEther(t *testing.T) {
	oneAndHalf, _ := new(big.Int).SetString("1500000000000000000", 10)
	oneWei := big.NewInt(1)

	assert.Equal(t, "0", balance.FormatEther(nil))
	assert.Equal(t, "0", balance.FormatEther(big.NewInt(0)))
	assert.Equal(t, "1.5", balance.FormatEther(oneAndHalf))
	assert.Equal(t, "0.000000000000000001", balance.FormatEther(oneWei))
}

func TestFormatSOL(t *testing.T) {
	assert.Equal(t, "0.00", balance.FormatSOL(0))
	assert.Equal(t, "1.50", balance.FormatSOL(1_500_000_000))
	assert.Equal(t, "0.01", balance.FormatSOL(12_345_678))
	assert.Equal(t, "2.00", balance.FormatSOL(1_999_999_999))
}

func TestEthereumBalance(t *testing.T) {
	eth := chaintest.NewEthereum()
	wei, _ := new(big.Int).SetString("10000000000000000000000", 10)
	eth.Balances[common.HexToAddress(testAddress)] = wei

	oracle := balance.NewOracle(eth, nil)
	assert.Equal(t, "10000", oracle.EthereumBalance(context.Background(), testAddress))
	assert.Equal(t, "0", oracle.EthereumBalance(context.Background(), "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"))
}

func TestBalanceFailuresReportZero(t *testing.T) {
	eth := chaintest.NewEthereum()
	eth.Err = errors.New("rpc down")
	sol := chaintest.NewSolana()
	sol.Err = errors.New("rpc down")

	oracle := balance.NewOracle(eth, sol)
	pub := solana.NewWallet().PublicKey().String()

	assert.Equal(t, "0", oracle.EthereumBalance(context.Background(), testAddress))
	assert.Equal(t, "0", oracle.SolanaBalance(context.Background(), pub))

	assert.Equal(t, "0", oracle.EthereumBalance(context.Background(), "not-an-address"))
	assert.Equal(t, "0", oracle.SolanaBalance(context.Background(), "not-base58-0OIl"))

	unconfigured := balance.NewOracle(nil, nil)
	assert.Equal(t, "0", unconfigured.EthereumBalance(context.Background(), testAddress))
	assert.Equal(t, "0", unconfigured.SolanaBalance(context.Background(), pub))
}

func TestLookup(t *testing.T) {
	eth := chaintest.NewEthereum()
	eth.Balances[common.HexToAddress(testAddress)] = big.NewInt(2_000_000_000_000_000_000)
	sol := chaintest.NewSolana()
	pub := solana.NewWallet().PublicKey()
	sol.Balances[pub] = 3_250_000_000

	got := balance.Lookup(context.Background(), balance.NewOracle(eth, sol), testAddress, pub.String())
	assert.Equal(t, balance.Balances{Ethereum: "2", Solana: "3.25"}, got)
}
