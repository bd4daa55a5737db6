package httperrors

import (
	"net/http"

	"github/chapool/go-hdwallet/internal/types"
)

var (
	ErrBadRequestInvalidBody      = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeINVALIDBODY, "The request body is invalid.")
	ErrBadRequestInvalidPathParam = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeINVALIDPATHPARAM, "A path parameter is invalid.")
)
