// Package chaintest provides in-memory chain backends for tests.
package chaintest

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/wallet/chain"
)

var (
	_ chain.EthereumBackend = (*Ethereum)(nil)
	_ chain.SolanaBackend   = (*Solana)(nil)
)

// Ethereum is a fake EthereumBackend. When Err is set every call fails with it.
type Ethereum struct {
	mu sync.Mutex

	ID       *big.Int
	Balances map[common.Address]*big.Int
	Nonce    uint64
	Tip      *big.Int
	Base     *big.Int
	Gas      uint64
	Err      error
	// PendingPolls is the number of receipt queries answered with ethereum.NotFound
	PendingPolls int
	// FailingPolls is the number of receipt queries answered with PollErr
	FailingPolls  int
	PollErr       error
	ReceiptStatus uint64

	Sent  []*types.Transaction
	Calls int
}

// NewEthereum returns a fake with mainnet-like defaults
func NewEthereum() *Ethereum {
	return &Ethereum{
		ID:            big.NewInt(1),
		Balances:      make(map[common.Address]*big.Int),
		Tip:           big.NewInt(1_000_000_000),
		Base:          big.NewInt(10_000_000_000),
		Gas:           21000,
		ReceiptStatus: types.ReceiptStatusSuccessful,
	}
}

func (e *Ethereum) call() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Calls++
	return e.Err
}

func (e *Ethereum) ChainID(_ context.Context) (*big.Int, error) {
	if err := e.call(); err != nil {
		return nil, err
	}
	return new(big.Int).Set(e.ID), nil
}

func (e *Ethereum) BalanceAt(_ context.Context, account common.Address) (*big.Int, error) {
	if err := e.call(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if b, ok := e.Balances[account]; ok {
		return new(big.Int).Set(b), nil
	}
	return big.NewInt(0), nil
}

func (e *Ethereum) PendingNonceAt(_ context.Context, _ common.Address) (uint64, error) {
	if err := e.call(); err != nil {
		return 0, err
	}
	return e.Nonce, nil
}

func (e *Ethereum) SuggestGasTipCap(_ context.Context) (*big.Int, error) {
	if err := e.call(); err != nil {
		return nil, err
	}
	return new(big.Int).Set(e.Tip), nil
}

func (e *Ethereum) BaseFee(_ context.Context) (*big.Int, error) {
	if err := e.call(); err != nil {
		return nil, err
	}
	return new(big.Int).Set(e.Base), nil
}

func (e *Ethereum) EstimateGas(_ context.Context, _ ethereum.CallMsg) (uint64, error) {
	if err := e.call(); err != nil {
		return 0, err
	}
	return e.Gas, nil
}

func (e *Ethereum) SendTransaction(_ context.Context, tx *types.Transaction) error {
	if err := e.call(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.Sent = append(e.Sent, tx)
	return nil
}

func (e *Ethereum) TransactionReceipt(_ context.Context, txHash common.Hash) (*types.Receipt, error) {
	if err := e.call(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.FailingPolls > 0 {
		e.FailingPolls--
		return nil, e.PollErr
	}
	if e.PendingPolls > 0 {
		e.PendingPolls--
		return nil, ethereum.NotFound
	}
	return &types.Receipt{TxHash: txHash, Status: e.ReceiptStatus}, nil
}

// SentTransactions returns a copy of the sent transactions
func (e *Ethereum) SentTransactions() []*types.Transaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*types.Transaction(nil), e.Sent...)
}

// Solana is a fake SolanaBackend. When Err is set every call fails with it.
type Solana struct {
	mu sync.Mutex

	Balances  map[solana.PublicKey]uint64
	Blockhash solana.Hash
	Err       error
	// PendingPolls is the number of status queries answered with false
	PendingPolls int
	// FailingPolls is the number of status queries answered with PollErr
	FailingPolls int
	PollErr      error
	// TxErr is the on-chain error of the transaction, reported wrapped in
	// chain.ErrTransactionFailed once the signature is final
	TxErr error

	Sent  []*solana.Transaction
	Calls int
}

// NewSolana returns a fake with a random recent blockhash
func NewSolana() *Solana {
	return &Solana{
		Balances:  make(map[solana.PublicKey]uint64),
		Blockhash: solana.Hash(solana.NewWallet().PublicKey()),
	}
}

func (s *Solana) call() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	return s.Err
}

func (s *Solana) GetBalance(_ context.Context, account solana.PublicKey) (uint64, error) {
	if err := s.call(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Balances[account], nil
}

func (s *Solana) LatestBlockhash(_ context.Context) (solana.Hash, error) {
	if err := s.call(); err != nil {
		return solana.Hash{}, err
	}
	return s.Blockhash, nil
}

func (s *Solana) SendTransaction(_ context.Context, tx *solana.Transaction) (solana.Signature, error) {
	if err := s.call(); err != nil {
		return solana.Signature{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, tx)
	if len(tx.Signatures) == 0 {
		return solana.Signature{}, nil
	}
	return tx.Signatures[0], nil
}

func (s *Solana) SignatureConfirmed(_ context.Context, _ solana.Signature) (bool, error) {
	if err := s.call(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailingPolls > 0 {
		s.FailingPolls--
		return false, s.PollErr
	}
	if s.PendingPolls > 0 {
		s.PendingPolls--
		return false, nil
	}
	if s.TxErr != nil {
		return false, errors.Wrapf(chain.ErrTransactionFailed, "%v", s.TxErr)
	}
	return true, nil
}

// SentTransactions returns a copy of the sent transactions
func (s *Solana) SentTransactions() []*solana.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*solana.Transaction(nil), s.Sent...)
}
