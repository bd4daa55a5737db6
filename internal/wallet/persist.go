package wallet

import (
	"context"
	"encoding/json"
	"reflect"

	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/store"
	"github/chapool/go-hdwallet/internal/util"
	"github/chapool/go-hdwallet/internal/wallet/seed"
)

const (
	// AccountsKey holds the JSON encoded account list
	AccountsKey = "accounts"
	// QuarantineKey holds entries that failed to load
	QuarantineKey = "accounts.quarantine"
)

// Save writes every account to kv
func (r *Registry) Save(ctx context.Context, kv store.KeyValueStore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.save(ctx, kv)
}

func (r *Registry) save(ctx context.Context, kv store.KeyValueStore) error {
	data, err := encodeAccounts(r.accounts)
	if err != nil {
		return err
	}

	if err := kv.Set(ctx, AccountsKey, data); err != nil {
		return errors.Wrap(err, "failed to persist accounts")
	}

	return nil
}

// Load replaces the registry content with the accounts stored in kv. Entries
// that cannot be trusted are moved to the quarantine instead of failing the load.
func (r *Registry) Load(ctx context.Context, kv store.KeyValueStore) error {
	log := util.LogFromContext(ctx)

	previous, repaired, err := loadQuarantine(ctx, kv)
	if err != nil {
		return err
	}
	if repaired {
		log.Warn().Str("key", QuarantineKey).Msg("Quarantine is corrupt, keeping it as a single raw entry")
	}

	raw, err := kv.Get(ctx, AccountsKey)
	if errors.Is(err, store.ErrNotFound) {
		raw = "[]"
	} else if err != nil {
		return errors.Wrap(err, "failed to read accounts")
	}

	accounts, quarantined := r.decodeAccounts(ctx, raw)
	merged := append(previous, quarantined...)

	if len(quarantined) > 0 {
		log.Warn().Int("quarantined", len(quarantined)).Msg("Quarantined malformed account entries")
		r.metrics.Quarantined(len(quarantined))
	}

	if len(quarantined) > 0 || repaired {
		if err := storeQuarantine(ctx, kv, merged); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.accounts = accounts
	r.quarantine = merged
	r.metrics.Accounts(len(r.accounts))

	log.Info().Int("accounts", len(accounts)).Msg("Accounts loaded")

	// legacy and quarantined entries are rewritten in the current format
	if len(quarantined) > 0 || r.needsRewrite(raw) {
		return r.save(ctx, kv)
	}

	return nil
}

func (r *Registry) needsRewrite(raw string) bool {
	current, err := encodeAccounts(r.accounts)
	if err != nil {
		return false
	}
	return !jsonEqual(raw, current)
}

func jsonEqual(a, b string) bool {
	var va, vb interface{}
	if json.Unmarshal([]byte(a), &va) != nil || json.Unmarshal([]byte(b), &vb) != nil {
		return false
	}
	return reflect.DeepEqual(va, vb)
}

// loadQuarantine reads the stored quarantine. A blob that does not decode is
// returned as one raw entry and reported as repaired.
func loadQuarantine(ctx context.Context, kv store.KeyValueStore) ([]Quarantined, bool, error) {
	raw, err := kv.Get(ctx, QuarantineKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to read quarantine")
	}

	var entries []Quarantined
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return []Quarantined{{
			Position: -1,
			Reason:   "quarantine could not be decoded: " + err.Error(),
			Entry:    json.RawMessage(mustJSON(raw)),
		}}, true, nil
	}
	return entries, false, nil
}

func storeQuarantine(ctx context.Context, kv store.KeyValueStore, entries []Quarantined) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return errors.Wrap(err, "failed to marshal quarantine")
	}

	if err := kv.Set(ctx, QuarantineKey, string(data)); err != nil {
		return errors.Wrap(err, "failed to persist quarantine")
	}
	return nil
}

func (r *Registry) decodeAccounts(ctx context.Context, raw string) ([]*Account, []Quarantined) {
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, []Quarantined{{
			Position: -1,
			Reason:   "account list is not a JSON array: " + err.Error(),
			Entry:    json.RawMessage(mustJSON(raw)),
		}}
	}

	var (
		accounts    = make([]*Account, 0, len(entries))
		quarantined []Quarantined
	)

	for i, entry := range entries {
		account, err := r.decodeAccount(ctx, entry)
		if err != nil {
			util.LogFromContext(ctx).Warn().Err(err).Int("account", i).Msg("Skipping malformed account entry")
			quarantined = append(quarantined, Quarantined{
				Position: i,
				Reason:   err.Error(),
				Entry:    entry,
			})
			continue
		}
		accounts = append(accounts, account)
	}

	return accounts, quarantined
}

func mustJSON(raw string) []byte {
	if json.Valid([]byte(raw)) {
		return []byte(raw)
	}
	data, _ := json.Marshal(raw)
	return data
}

func (r *Registry) decodeAccount(ctx context.Context, entry json.RawMessage) (*Account, error) {
	var ra rawAccount
	if err := json.Unmarshal(entry, &ra); err != nil {
		return nil, errors.Wrap(err, "malformed entry")
	}

	if ra.Mnemonic == nil || *ra.Mnemonic == "" {
		return nil, errors.New("missing mnemonic")
	}

	mnemonic, err := seed.NewMnemonic(*ra.Mnemonic)
	if err != nil {
		return nil, err
	}

	account := &Account{
		Mnemonic:        mnemonic,
		Wallets:         make([]*Wallet, 0, len(ra.Wallets)),
		MnemonicVisible: ra.visible(),
	}

	for pos := range ra.Wallets {
		w, err := r.decodeWallet(ctx, mnemonic, pos, &ra.Wallets[pos])
		if err != nil {
			return nil, errors.Wrapf(err, "wallet %d", pos)
		}

		if _, dup := account.WalletByIndex(w.Index); dup {
			util.LogFromContext(ctx).Warn().Uint32("wallet_index", w.Index).Msg("Account holds the same derivation index twice")
		}

		account.Wallets = append(account.Wallets, w)
		if w.Index >= account.NextIndex {
			account.NextIndex = w.Index + 1
		}
	}

	if len(ra.NextIndex) > 0 {
		next, err := parseIndex(ra.NextIndex)
		if err != nil && !errors.Is(err, errIndexMissing) {
			return nil, errors.Wrap(err, "nextIndex")
		}
		if next > account.NextIndex {
			account.NextIndex = next
		}
	}

	return account, nil
}

// decodeWallet re-derives the stored keys. Wallets without index are
// searched at their position first, then over the scan window.
func (r *Registry) decodeWallet(ctx context.Context, mnemonic *seed.Mnemonic, pos int, rw *rawWallet) (*Wallet, error) {
	index, err := parseIndex(rw.Index)
	switch {
	case err == nil:
		derived, err := r.deriver.DeriveWallet(ctx, mnemonic, index)
		if err != nil {
			return nil, err
		}
		if !derived.Matches(rw.toWallet(index)) {
			return nil, errors.Wrapf(ErrVerificationFailed, "keys do not re-derive at index %d", index)
		}
		return derived, nil

	case errors.Is(err, errIndexMissing):
		return r.recoverLegacyWallet(ctx, mnemonic, pos, rw)

	default:
		return nil, err
	}
}

func (r *Registry) recoverLegacyWallet(ctx context.Context, mnemonic *seed.Mnemonic, pos int, rw *rawWallet) (*Wallet, error) {
	candidates := make([]uint32, 0, r.legacyScanLimit+1)
	//nolint:gosec // positions stay far below 2^31
	candidates = append(candidates, uint32(pos))
	for i := uint32(0); i < r.legacyScanLimit; i++ {
		if int(i) != pos {
			candidates = append(candidates, i)
		}
	}

	for _, index := range candidates {
		derived, err := r.deriver.DeriveWallet(ctx, mnemonic, index)
		if err != nil {
			return nil, err
		}
		if derived.Matches(rw.toWallet(index)) {
			util.LogFromContext(ctx).Debug().
				Int("position", pos).
				Uint32("wallet_index", index).
				Msg("Recovered derivation index of legacy wallet")
			return derived, nil
		}
	}

	return nil, errors.Wrapf(ErrVerificationFailed, "keys not found within the first %d indices", r.legacyScanLimit)
}
