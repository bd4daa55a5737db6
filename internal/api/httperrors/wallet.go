package httperrors

import (
	"net/http"

	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/types"
	"github/chapool/go-hdwallet/internal/wallet"
	"github/chapool/go-hdwallet/internal/wallet/seed"
)

var (
	ErrBadRequestInvalidMnemonic = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeINVALIDMNEMONIC, "The mnemonic is invalid.")
	ErrNotFoundAccount           = NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeACCOUNTNOTFOUND, "The account does not exist.")
	ErrNotFoundWallet            = NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeWALLETNOTFOUND, "The wallet does not exist.")
	ErrConflictDerivationIndex   = NewHTTPError(http.StatusConflict, types.PublicHTTPErrorTypeDERIVATIONINDEXCONFLICT, "The next derivation index is still held by a wallet.")
)

// FromWalletError maps registry errors to their HTTP error, other errors are
// returned unchanged
func FromWalletError(err error) error {
	var outOfRange *wallet.OutOfRangeError

	switch {
	case errors.Is(err, seed.ErrInvalidMnemonic):
		return ErrBadRequestInvalidMnemonic.Wrap(err)
	case errors.As(err, &outOfRange):
		if outOfRange.Kind == "wallet" {
			return ErrNotFoundWallet.Wrap(err)
		}
		return ErrNotFoundAccount.Wrap(err)
	case errors.Is(err, wallet.ErrDerivationIndexConflict):
		return ErrConflictDerivationIndex.Wrap(err)
	default:
		return err
	}
}
