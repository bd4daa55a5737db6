package keystore

import (
	"crypto/subtle"
	"encoding/hex"

	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
)

// decrypt opens a keystore v3 envelope
func decrypt(envelope *Envelope, passphrase string) ([]byte, error) {
	if envelope.Version != envelopeVersion {
		return nil, errors.Wrapf(ErrUnsupportedEnvelope, "version %d", envelope.Version)
	}
	if envelope.Crypto.Cipher != cipherName || envelope.Crypto.KDF != kdfName {
		return nil, errors.Wrapf(ErrUnsupportedEnvelope, "%s/%s", envelope.Crypto.Cipher, envelope.Crypto.KDF)
	}

	salt, err := hex.DecodeString(envelope.Crypto.KDFParams.Salt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode salt")
	}

	//nolint:varnamelen // iv is a common abbreviation for initialization vector
	iv, err := hex.DecodeString(envelope.Crypto.CipherParams.IV)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode IV")
	}
	if len(iv) != ivSize {
		return nil, errors.Errorf("IV must be %d bytes", ivSize)
	}

	ciphertext, err := hex.DecodeString(envelope.Crypto.Ciphertext)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode ciphertext")
	}

	expectedMAC, err := hex.DecodeString(envelope.Crypto.MAC)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode MAC")
	}

	params := envelope.Crypto.KDFParams
	if params.DKLen < 2*keySize {
		return nil, errors.Errorf("derived key length must be at least %d bytes", 2*keySize)
	}

	derivedKey, err := scrypt.Key([]byte(passphrase), salt, params.N, params.R, params.P, params.DKLen)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive key")
	}

	mac := calculateMAC(derivedKey[keySize:2*keySize], ciphertext)
	if subtle.ConstantTimeCompare(mac, expectedMAC) != 1 {
		return nil, ErrInvalidPassphrase
	}

	plaintext, err := aes128CTR(derivedKey[:keySize], iv, ciphertext)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decrypt payload")
	}

	return plaintext, nil
}
