package store

import (
	"context"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

// LevelDB is a KeyValueStore on top of goleveldb
type LevelDB struct {
	db *leveldb.DB
}

// NewLevelDB opens or creates the database at path
func NewLevelDB(path string) (*LevelDB, error) {
	if path == "" {
		return nil, errors.New("leveldb path is empty")
	}

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open leveldb at %s", path)
	}

	return &LevelDB{db: db}, nil
}

// NewLevelDBInMemory opens a database backed by memory storage
func NewLevelDBInMemory() (*LevelDB, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open in-memory leveldb")
	}

	return &LevelDB{db: db}, nil
}

func (l *LevelDB) Get(_ context.Context, key string) (string, error) {
	v, err := l.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to get %s", key)
	}
	return string(v), nil
}

func (l *LevelDB) Set(_ context.Context, key string, value string) error {
	if err := l.db.Put([]byte(key), []byte(value), nil); err != nil {
		return errors.Wrapf(err, "failed to set %s", key)
	}
	return nil
}

func (l *LevelDB) Delete(_ context.Context, key string) error {
	if err := l.db.Delete([]byte(key), nil); err != nil {
		return errors.Wrapf(err, "failed to delete %s", key)
	}
	return nil
}

func (l *LevelDB) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}
