package wallet

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrOutOfRange is matched by every *OutOfRangeError
	ErrOutOfRange = errors.New("position out of range")
	// ErrDerivationIndexConflict is returned when a new wallet would reuse the
	// derivation index of a wallet that is still held by the account
	ErrDerivationIndexConflict = errors.New("derivation index already in use")
	// ErrInitialWalletExists is returned when the initial wallet is derived twice
	ErrInitialWalletExists = errors.New("account already holds wallets")
	// ErrVerificationFailed is returned when stored keys do not re-derive
	ErrVerificationFailed = errors.New("stored keys do not match their mnemonic")
)

// OutOfRangeError reports an account or wallet position that does not exist
type OutOfRangeError struct {
	Kind     string
	Position int
	Length   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s position %d out of range, have %d", e.Kind, e.Position, e.Length)
}

// Is makes errors.Is(err, ErrOutOfRange) hold
func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

func checkPosition(kind string, position int, length int) error {
	if position < 0 || position >= length {
		return &OutOfRangeError{Kind: kind, Position: position, Length: length}
	}
	return nil
}
