package store

import (
	"context"

	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/wallet/keystore"
)

// Encrypted seals every value with a keystore v3 envelope before handing it to
// the inner store. Keys stay in plaintext.
type Encrypted struct {
	inner      KeyValueStore
	keystore   keystore.Service
	passphrase string
}

// NewEncrypted wraps inner using the standard scrypt parameters
func NewEncrypted(inner KeyValueStore, passphrase string) *Encrypted {
	return NewEncryptedWithKeystore(inner, keystore.NewService(keystore.DefaultScryptParams()), passphrase)
}

// NewEncryptedWithKeystore wraps inner using ks for sealing
func NewEncryptedWithKeystore(inner KeyValueStore, ks keystore.Service, passphrase string) *Encrypted {
	return &Encrypted{
		inner:      inner,
		keystore:   ks,
		passphrase: passphrase,
	}
}

func (e *Encrypted) Get(ctx context.Context, key string) (string, error) {
	sealed, err := e.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}

	plaintext, err := e.keystore.Open(ctx, []byte(sealed), e.passphrase)
	if err != nil {
		return "", errors.Wrapf(err, "failed to open %s", key)
	}

	return string(plaintext), nil
}

func (e *Encrypted) Set(ctx context.Context, key string, value string) error {
	sealed, err := e.keystore.Seal(ctx, []byte(value), e.passphrase)
	if err != nil {
		return errors.Wrapf(err, "failed to seal %s", key)
	}

	return e.inner.Set(ctx, key, string(sealed))
}

func (e *Encrypted) Delete(ctx context.Context, key string) error {
	return e.inner.Delete(ctx, key)
}

func (e *Encrypted) Close() error {
	return e.inner.Close()
}
