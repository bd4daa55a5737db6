package store

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
)

// DarkModeKey holds the UI theme preference
const DarkModeKey = "darkMode"

// Preferences reads and writes UI preferences kept next to the accounts
type Preferences struct {
	kv KeyValueStore
}

// NewPreferences stores preferences in kv
func NewPreferences(kv KeyValueStore) *Preferences {
	return &Preferences{kv: kv}
}

// DarkMode returns the stored preference, or fallback when none is stored
func (p *Preferences) DarkMode(ctx context.Context, fallback bool) (bool, error) {
	raw, err := p.kv.Get(ctx, DarkModeKey)
	if errors.Is(err, ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		return fallback, err
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback, errors.Wrapf(err, "invalid %s value %q", DarkModeKey, raw)
	}

	return v, nil
}

// SetDarkMode stores the preference as a JSON boolean
func (p *Preferences) SetDarkMode(ctx context.Context, enabled bool) error {
	return p.kv.Set(ctx, DarkModeKey, strconv.FormatBool(enabled))
}
