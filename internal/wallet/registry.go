package wallet

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/metrics"
	"github/chapool/go-hdwallet/internal/util"
	"github/chapool/go-hdwallet/internal/wallet/seed"
)

// DefaultLegacyScanLimit bounds the index search for wallets persisted without index
const DefaultLegacyScanLimit = 64

// Registry is the root of every account. All methods are safe for concurrent use.
type Registry struct {
	mu         sync.Mutex
	accounts   []*Account
	quarantine []Quarantined

	generator       seed.Generator
	deriver         *Deriver
	policy          IndexPolicy
	legacyScanLimit uint32
	metrics         *metrics.Metrics
}

// Option configures a Registry
type Option func(*Registry)

// WithIndexPolicy sets the derivation index policy of new wallets
func WithIndexPolicy(policy IndexPolicy) Option {
	return func(r *Registry) {
		r.policy = policy
	}
}

// WithLegacyScanLimit sets how many indices are tried when recovering wallets without index
func WithLegacyScanLimit(limit uint32) Option {
	return func(r *Registry) {
		r.legacyScanLimit = limit
	}
}

// WithMetrics records mutations and derived keypairs in m
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// NewRegistry returns an empty registry
func NewRegistry(generator seed.Generator, deriver *Deriver, opts ...Option) *Registry {
	r := &Registry{
		generator:       generator,
		deriver:         deriver,
		policy:          IndexPolicyMonotonic,
		legacyScanLimit: DefaultLegacyScanLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Policy returns the configured index policy
func (r *Registry) Policy() IndexPolicy {
	return r.policy
}

// CreateAccount appends an account holding one wallet at index 0 and returns
// it with its position. An empty phrase asks the generator for a fresh mnemonic.
func (r *Registry) CreateAccount(ctx context.Context, phrase string) (*Account, int, error) {
	account, err := r.newAccount(ctx, phrase)
	r.metrics.Mutation("create_account", err == nil)
	if err != nil {
		return nil, 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.accounts = append(r.accounts, account)
	pos := len(r.accounts) - 1
	r.metrics.Accounts(len(r.accounts))

	util.LogFromContext(ctx).Info().
		Int("account", pos).
		Str("address", account.Wallets[0].Ethereum.Address).
		Msg("Account created")

	return account.Clone(), pos, nil
}

// newAccount runs outside the lock, nothing is shared until it is appended
func (r *Registry) newAccount(ctx context.Context, phrase string) (*Account, error) {
	var (
		mnemonic *seed.Mnemonic
		err      error
	)

	if phrase == "" {
		mnemonic, err = r.generator.Generate(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to generate mnemonic")
		}
	} else {
		mnemonic, err = seed.NewMnemonic(phrase)
		if err != nil {
			return nil, err
		}
	}

	account := &Account{Mnemonic: mnemonic}
	if _, err := account.CreateInitialWallet(ctx, r.deriver); err != nil {
		return nil, errors.Wrap(err, "failed to derive initial wallet")
	}

	return account, nil
}

// CreateWallet derives the next wallet of the account at accountPos
func (r *Registry) CreateWallet(ctx context.Context, accountPos int) (*Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, err := r.createWallet(ctx, accountPos)
	r.metrics.Mutation("create_wallet", err == nil)
	if err != nil {
		return nil, err
	}

	util.LogFromContext(ctx).Info().
		Int("account", accountPos).
		Uint32("wallet_index", w.Index).
		Str("address", w.Ethereum.Address).
		Msg("Wallet created")

	return w.clone(), nil
}

func (r *Registry) createWallet(ctx context.Context, accountPos int) (*Wallet, error) {
	if err := checkPosition("account", accountPos, len(r.accounts)); err != nil {
		return nil, err
	}

	// derive on a copy so a failed derivation leaves the account untouched
	account := r.accounts[accountPos].Clone()

	w, err := account.AddWallet(ctx, r.deriver, r.policy)
	if err != nil {
		return nil, err
	}

	r.accounts[accountPos] = account
	return w, nil
}

// DeleteWallet removes the wallet at walletPos of the account at accountPos
func (r *Registry) DeleteWallet(ctx context.Context, accountPos int, walletPos int) (*Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, err := r.deleteWallet(accountPos, walletPos)
	r.metrics.Mutation("delete_wallet", err == nil)
	if err != nil {
		return nil, err
	}

	util.LogFromContext(ctx).Info().
		Int("account", accountPos).
		Uint32("wallet_index", w.Index).
		Msg("Wallet deleted")

	return w.clone(), nil
}

func (r *Registry) deleteWallet(accountPos int, walletPos int) (*Wallet, error) {
	if err := checkPosition("account", accountPos, len(r.accounts)); err != nil {
		return nil, err
	}

	return r.accounts[accountPos].RemoveWallet(walletPos)
}

// DeleteAccount removes the account at accountPos. Later accounts shift down.
func (r *Registry) DeleteAccount(ctx context.Context, accountPos int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := checkPosition("account", accountPos, len(r.accounts))
	r.metrics.Mutation("delete_account", err == nil)
	if err != nil {
		return err
	}

	removed := r.accounts[accountPos]
	r.accounts = append(r.accounts[:accountPos:accountPos], r.accounts[accountPos+1:]...)
	r.metrics.Accounts(len(r.accounts))

	if !r.holdsMnemonic(removed.Mnemonic) {
		r.deriver.Forget(removed.Mnemonic)
	}

	util.LogFromContext(ctx).Info().Int("account", accountPos).Msg("Account deleted")

	return nil
}

func (r *Registry) holdsMnemonic(m *seed.Mnemonic) bool {
	for _, a := range r.accounts {
		if a.Mnemonic.Equal(m) {
			return true
		}
	}
	return false
}

// ToggleMnemonicVisibility flips the display flag of the account at accountPos
func (r *Registry) ToggleMnemonicVisibility(ctx context.Context, accountPos int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := checkPosition("account", accountPos, len(r.accounts))
	r.metrics.Mutation("toggle_mnemonic", err == nil)
	if err != nil {
		return false, err
	}

	visible := r.accounts[accountPos].ToggleMnemonicVisibility()
	util.LogFromContext(ctx).Debug().Int("account", accountPos).Bool("visible", visible).Msg("Mnemonic visibility toggled")

	return visible, nil
}

// Accounts returns deep copies of every account in order
func (r *Registry) Accounts() []*Account {
	r.mu.Lock()
	defer r.mu.Unlock()

	return cloneAccounts(r.accounts)
}

// Account returns a deep copy of the account at accountPos
func (r *Registry) Account(accountPos int) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := checkPosition("account", accountPos, len(r.accounts)); err != nil {
		return nil, err
	}

	return r.accounts[accountPos].Clone(), nil
}

// Wallet returns a copy of the wallet at walletPos of the account at accountPos
func (r *Registry) Wallet(accountPos int, walletPos int) (*Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := checkPosition("account", accountPos, len(r.accounts)); err != nil {
		return nil, err
	}

	account := r.accounts[accountPos]
	if err := checkPosition("wallet", walletPos, len(account.Wallets)); err != nil {
		return nil, err
	}

	return account.Wallets[walletPos].clone(), nil
}

// Len returns the number of accounts
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.accounts)
}

// Quarantine returns the entries set aside by Load
func (r *Registry) Quarantine() []Quarantined {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Quarantined(nil), r.quarantine...)
}

type snapshot struct {
	accounts   []*Account
	quarantine []Quarantined
}

func (r *Registry) snapshot() snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return snapshot{
		accounts:   cloneAccounts(r.accounts),
		quarantine: append([]Quarantined(nil), r.quarantine...),
	}
}

func (r *Registry) restore(s snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.accounts = s.accounts
	r.quarantine = s.quarantine
	r.metrics.Accounts(len(r.accounts))
}

func cloneAccounts(accounts []*Account) []*Account {
	out := make([]*Account, len(accounts))
	for i, a := range accounts {
		out[i] = a.Clone()
	}
	return out
}
