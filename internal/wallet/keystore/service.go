package keystore

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/util"
)

// Service seals and opens payloads with a passphrase
type Service interface {
	// Seal encrypts plaintext and returns the JSON envelope
	Seal(ctx context.Context, plaintext []byte, passphrase string) ([]byte, error)

	// Open decrypts a JSON envelope produced by Seal
	Open(ctx context.Context, envelope []byte, passphrase string) ([]byte, error)
}

type service struct {
	params ScryptParams
}

// NewService creates a new keystore Service using params for new envelopes
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(params ScryptParams) Service {
	return &service{
		params: params,
	}
}

// Seal encrypts plaintext and returns the JSON envelope
func (s *service) Seal(ctx context.Context, plaintext []byte, passphrase string) ([]byte, error) {
	log := util.LogFromContext(ctx)

	envelope, err := encrypt(plaintext, passphrase, s.params)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encrypt payload")
		return nil, errors.Wrap(err, "failed to encrypt payload")
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal keystore JSON")
	}

	return data, nil
}

// Open decrypts a JSON envelope produced by Seal
func (s *service) Open(ctx context.Context, data []byte, passphrase string) ([]byte, error) {
	log := util.LogFromContext(ctx)

	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal keystore JSON")
	}

	plaintext, err := decrypt(&envelope, passphrase)
	if err != nil {
		log.Error().Err(err).Msg("Failed to decrypt payload")
		return nil, errors.Wrap(err, "failed to decrypt payload")
	}

	return plaintext, nil
}
