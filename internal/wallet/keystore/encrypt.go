package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
)

const (
	saltSize = 32
	ivSize   = aes.BlockSize
	keySize  = 16
)

// encrypt seals plaintext into a keystore v3 envelope
//
//nolint:varnamelen // iv is a common abbreviation for initialization vector
func encrypt(plaintext []byte, passphrase string, params ScryptParams) (*Envelope, error) {
	if params.DKLen < 2*keySize {
		return nil, errors.Errorf("derived key length must be at least %d bytes", 2*keySize)
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrap(err, "failed to generate salt")
	}

	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, errors.Wrap(err, "failed to generate IV")
	}

	derivedKey, err := scrypt.Key([]byte(passphrase), salt, params.N, params.R, params.P, params.DKLen)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive key")
	}

	ciphertext, err := aes128CTR(derivedKey[:keySize], iv, plaintext)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encrypt payload")
	}

	mac := calculateMAC(derivedKey[keySize:2*keySize], ciphertext)

	envelope := &Envelope{
		Version: envelopeVersion,
		ID:      uuid.New().String(),
	}

	envelope.Crypto.Ciphertext = hex.EncodeToString(ciphertext)
	envelope.Crypto.CipherParams.IV = hex.EncodeToString(iv)
	envelope.Crypto.Cipher = cipherName
	envelope.Crypto.KDF = kdfName
	envelope.Crypto.KDFParams.DKLen = params.DKLen
	envelope.Crypto.KDFParams.Salt = hex.EncodeToString(salt)
	envelope.Crypto.KDFParams.N = params.N
	envelope.Crypto.KDFParams.R = params.R
	envelope.Crypto.KDFParams.P = params.P
	envelope.Crypto.MAC = hex.EncodeToString(mac)

	return envelope, nil
}

// aes128CTR encrypts and decrypts, CTR mode is symmetric
//
//nolint:varnamelen // iv is a common abbreviation for initialization vector
func aes128CTR(key []byte, iv []byte, in []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cipher")
	}

	out := make([]byte, len(in))
	cipher.NewCTR(block, iv).XORKeyStream(out, in)

	return out, nil
}

// calculateMAC returns Keccak-256(derivedKey[16:32] || ciphertext)
func calculateMAC(key []byte, ciphertext []byte) []byte {
	return crypto.Keccak256(key, ciphertext)
}
