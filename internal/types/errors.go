package types

// PublicHTTPErrorType is the machine readable type of an HTTP error
type PublicHTTPErrorType string

const (
	PublicHTTPErrorTypeGeneric                 PublicHTTPErrorType = "generic"
	PublicHTTPErrorTypeINVALIDMNEMONIC         PublicHTTPErrorType = "INVALID_MNEMONIC"
	PublicHTTPErrorTypeACCOUNTNOTFOUND         PublicHTTPErrorType = "ACCOUNT_NOT_FOUND"
	PublicHTTPErrorTypeWALLETNOTFOUND          PublicHTTPErrorType = "WALLET_NOT_FOUND"
	PublicHTTPErrorTypeDERIVATIONINDEXCONFLICT PublicHTTPErrorType = "DERIVATION_INDEX_CONFLICT"
	PublicHTTPErrorTypeINVALIDPATHPARAM        PublicHTTPErrorType = "INVALID_PATH_PARAM"
	PublicHTTPErrorTypeINVALIDBODY             PublicHTTPErrorType = "INVALID_BODY"
)

// HTTPError is the JSON body of every error response
type HTTPError struct {
	Code   int                 `json:"status"`
	Type   PublicHTTPErrorType `json:"type"`
	Title  string              `json:"title"`
	Detail string              `json:"detail,omitempty"`
}
