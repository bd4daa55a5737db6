package wallet

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/store"
	"github/chapool/go-hdwallet/internal/util"
)

// Service provides account management persisted after every mutation
type Service interface {
	// CreateAccount creates an account from phrase, or from a generated mnemonic when
	// phrase is empty, and returns it with its position
	CreateAccount(ctx context.Context, phrase string) (*Account, int, error)

	// DeleteAccount removes the account at accountPos
	DeleteAccount(ctx context.Context, accountPos int) error

	// CreateWallet derives the next wallet of an account
	CreateWallet(ctx context.Context, accountPos int) (*Wallet, error)

	// DeleteWallet removes a wallet without renumbering the others
	DeleteWallet(ctx context.Context, accountPos int, walletPos int) (*Wallet, error)

	// ToggleMnemonicVisibility flips the display flag of an account
	ToggleMnemonicVisibility(ctx context.Context, accountPos int) (bool, error)

	// Accounts lists copies of every account
	Accounts(ctx context.Context) []*Account

	// Account returns a copy of one account
	Account(ctx context.Context, accountPos int) (*Account, error)

	// Wallet returns a copy of one wallet
	Wallet(ctx context.Context, accountPos int, walletPos int) (*Wallet, error)

	// Quarantine lists the persisted entries that could not be loaded
	Quarantine(ctx context.Context) []Quarantined

	// Verify re-derives every stored wallet
	Verify(ctx context.Context) ([]Mismatch, error)

	// Reload replaces the in-memory state with the persisted one
	Reload(ctx context.Context) error
}

type service struct {
	mu       sync.Mutex
	registry *Registry
	kv       store.KeyValueStore
}

// NewService creates a new wallet Service writing through to kv
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(registry *Registry, kv store.KeyValueStore) Service {
	return &service{
		registry: registry,
		kv:       kv,
	}
}

// mutate runs fn and persists the result, restoring the previous state when persisting fails
func (s *service) mutate(ctx context.Context, operation string, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.registry.snapshot()

	if err := fn(); err != nil {
		return err
	}

	if err := s.registry.Save(ctx, s.kv); err != nil {
		s.registry.restore(before)
		util.LogFromContext(ctx).Error().Err(err).Str("operation", operation).Msg("Failed to persist accounts, mutation rolled back")
		return errors.Wrapf(err, "failed to persist %s", operation)
	}

	return nil
}

func (s *service) CreateAccount(ctx context.Context, phrase string) (*Account, int, error) {
	var account *Account
	var pos int

	err := s.mutate(ctx, "create_account", func() error {
		var err error
		account, pos, err = s.registry.CreateAccount(ctx, phrase)
		return err
	})
	if err != nil {
		return nil, 0, err
	}

	return account, pos, nil
}

func (s *service) DeleteAccount(ctx context.Context, accountPos int) error {
	return s.mutate(ctx, "delete_account", func() error {
		return s.registry.DeleteAccount(ctx, accountPos)
	})
}

func (s *service) CreateWallet(ctx context.Context, accountPos int) (*Wallet, error) {
	var w *Wallet

	err := s.mutate(ctx, "create_wallet", func() error {
		var err error
		w, err = s.registry.CreateWallet(ctx, accountPos)
		return err
	})
	if err != nil {
		return nil, err
	}

	return w, nil
}

func (s *service) DeleteWallet(ctx context.Context, accountPos int, walletPos int) (*Wallet, error) {
	var w *Wallet

	err := s.mutate(ctx, "delete_wallet", func() error {
		var err error
		w, err = s.registry.DeleteWallet(ctx, accountPos, walletPos)
		return err
	})
	if err != nil {
		return nil, err
	}

	return w, nil
}

func (s *service) ToggleMnemonicVisibility(ctx context.Context, accountPos int) (bool, error) {
	var visible bool

	err := s.mutate(ctx, "toggle_mnemonic", func() error {
		var err error
		visible, err = s.registry.ToggleMnemonicVisibility(ctx, accountPos)
		return err
	})

	return visible, err
}

func (s *service) Accounts(_ context.Context) []*Account {
	return s.registry.Accounts()
}

func (s *service) Account(_ context.Context, accountPos int) (*Account, error) {
	return s.registry.Account(accountPos)
}

func (s *service) Wallet(_ context.Context, accountPos int, walletPos int) (*Wallet, error) {
	return s.registry.Wallet(accountPos, walletPos)
}

func (s *service) Quarantine(_ context.Context) []Quarantined {
	return s.registry.Quarantine()
}

func (s *service) Verify(ctx context.Context) ([]Mismatch, error) {
	return s.registry.Verify(ctx)
}

func (s *service) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.registry.Load(ctx, s.kv)
}
