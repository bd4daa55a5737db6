package keystore

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidPassphrase is returned when the envelope MAC does not match
	ErrInvalidPassphrase = errors.New("invalid passphrase: MAC mismatch")
	// ErrUnsupportedEnvelope is returned for envelopes this package cannot open
	ErrUnsupportedEnvelope = errors.New("unsupported keystore envelope")
)

const (
	envelopeVersion = 3
	cipherName      = "aes-128-ctr"
	kdfName         = "scrypt"
)

// Envelope is the keystore v3 JSON structure, reused for arbitrary payloads
type Envelope struct {
	Version int    `json:"version"`
	ID      string `json:"id"`
	Crypto  struct {
		Ciphertext   string `json:"ciphertext"`
		CipherParams struct {
			IV string `json:"iv"`
		} `json:"cipherparams"`
		Cipher    string `json:"cipher"`
		KDF       string `json:"kdf"`
		KDFParams struct {
			DKLen int    `json:"dklen"`
			Salt  string `json:"salt"`
			N     int    `json:"n"`
			R     int    `json:"r"`
			P     int    `json:"p"`
		} `json:"kdfparams"`
		MAC string `json:"mac"`
	} `json:"crypto"`
}

// ScryptParams defines scrypt KDF parameters
type ScryptParams struct {
	DKLen int // Derived key length (32 bytes)
	N     int // CPU/memory cost parameter
	R     int // Block size parameter
	P     int // Parallelization parameter
}

// DefaultScryptParams returns the standard keystore v3 scrypt parameters
func DefaultScryptParams() ScryptParams {
	const (
		scryptDKLen = 32
		scryptN     = 262144 // 2^18
		scryptR     = 8
		scryptP     = 1
	)

	return ScryptParams{
		DKLen: scryptDKLen,
		N:     scryptN,
		R:     scryptR,
		P:     scryptP,
	}
}

// LightScryptParams trades strength for speed, used by tests and low power hosts
func LightScryptParams() ScryptParams {
	const (
		scryptDKLen = 32
		scryptN     = 4096 // 2^12
		scryptR     = 8
		scryptP     = 6
	)

	return ScryptParams{
		DKLen: scryptDKLen,
		N:     scryptN,
		R:     scryptR,
		P:     scryptP,
	}
}
