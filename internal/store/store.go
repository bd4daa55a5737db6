package store

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by Get for keys that were never set or were deleted
var ErrNotFound = errors.New("key not found")

// KeyValueStore persists string values by key
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Driver names a KeyValueStore implementation
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverLevelDB  Driver = "leveldb"
	DriverBadger   Driver = "badger"
	DriverPostgres Driver = "postgres"
)

// Options selects and configures a KeyValueStore
type Options struct {
	Driver Driver
	// Path is the database directory for leveldb and badger, or the DSN for postgres
	Path string
	// Passphrase enables at-rest encryption when set
	Passphrase string
}

// Open creates the store described by opts
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func Open(ctx context.Context, opts Options) (KeyValueStore, error) {
	var (
		kv  KeyValueStore
		err error
	)

	switch opts.Driver {
	case DriverMemory, "":
		kv = NewMemory()
	case DriverLevelDB:
		kv, err = NewLevelDB(opts.Path)
	case DriverBadger:
		kv, err = NewBadger(ctx, opts.Path)
	case DriverPostgres:
		kv, err = NewPostgres(ctx, opts.Path)
	default:
		return nil, errors.Errorf("unknown store driver %q", opts.Driver)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s store", opts.Driver)
	}

	if opts.Passphrase != "" {
		kv = NewEncrypted(kv, opts.Passphrase)
	}

	return kv, nil
}
