package config

import (
	"fmt"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"
)

var (
	storeDrivers  = []string{"memory", "leveldb", "badger", "postgres"}
	indexPolicies = []string{"monotonic", "length"}
	entropyBits   = []int{128, 160, 192, 224, 256}
)

// Validate reports every invalid setting at once
func (s Server) Validate() error {
	err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(s.Echo.ListenAddress, "Echo.ListenAddress"),
		oneOf(s.Store.Driver, storeDrivers, "Store.Driver"),
		requiredFor(s.Store.Driver == "leveldb" || s.Store.Driver == "badger", s.Store.Path, "Store.Path"),
		requiredFor(s.Store.Driver == "postgres", s.Store.DatabaseURL, "Store.DatabaseURL"),
		oneOf(s.Wallet.IndexPolicy, indexPolicies, "Wallet.IndexPolicy"),
		validEntropy(s.Wallet.MnemonicEntropyBits),
		positive(int64(s.Wallet.LegacyScanLimit), "Wallet.LegacyScanLimit"),
		positive(int64(s.RPC.Timeout), "RPC.Timeout"),
		positive(int64(s.RPC.PollInterval), "RPC.PollInterval"),
		positive(int64(s.RPC.ConfirmTimeout), "RPC.ConfirmTimeout"),
	).Check()
	if err != nil {
		return errors.Wrap(err, "invalid server config")
	}

	return nil
}

func oneOf(value string, allowed []string, name string) vala.Checker {
	return func() (bool, string) {
		for _, a := range allowed {
			if value == a {
				return true, ""
			}
		}
		return false, fmt.Sprintf("parameter %s must be one of %v, got %q", name, allowed, value)
	}
}

func requiredFor(required bool, value string, name string) vala.Checker {
	return func() (bool, string) {
		if required && value == "" {
			return false, fmt.Sprintf("parameter %s is required", name)
		}
		return true, ""
	}
}

func validEntropy(bits int) vala.Checker {
	return func() (bool, string) {
		for _, b := range entropyBits {
			if bits == b {
				return true, ""
			}
		}
		return false, fmt.Sprintf("parameter Wallet.MnemonicEntropyBits must be one of %v, got %d", entropyBits, bits)
	}
}

func positive(value int64, name string) vala.Checker {
	return func() (bool, string) {
		if value <= 0 {
			return false, fmt.Sprintf("parameter %s must be positive", name)
		}
		return true, ""
	}
}
