package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-hdwallet/internal/store"
	"github/chapool/go-hdwallet/internal/wallet/keystore"
)

func testStores(t *testing.T) map[string]store.KeyValueStore {
	t.Helper()
	ctx := context.Background()

	level, err := store.NewLevelDBInMemory()
	require.NoError(t, err)

	levelDir, err := store.NewLevelDB(t.TempDir())
	require.NoError(t, err)

	badgerMem, err := store.NewBadger(ctx, "")
	require.NoError(t, err)

	badgerDir, err := store.NewBadger(ctx, t.TempDir())
	require.NoError(t, err)

	stores := map[string]store.KeyValueStore{
		"memory":      store.NewMemory(),
		"leveldb-mem": level,
		"leveldb-dir": levelDir,
		"badger-mem":  badgerMem,
		"badger-dir":  badgerDir,
		"encrypted":   store.NewEncryptedWithKeystore(store.NewMemory(), keystore.NewService(keystore.LightScryptParams()), "secret"),
	}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		pg, err := store.NewPostgres(ctx, dsn)
		require.NoError(t, err)
		require.NoError(t, pg.Delete(ctx, "accounts"))
		stores["postgres"] = pg
	}

	for _, kv := range stores {
		t.Cleanup(func() { _ = kv.Close() })
	}

	return stores
}

func TestKeyValueStores(t *testing.T) {
	ctx := context.Background()

	for name, kv := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := kv.Get(ctx, "accounts")
			require.ErrorIs(t, err, store.ErrNotFound)

			require.NoError(t, kv.Set(ctx, "accounts", `[{"mnemonic":"a"}]`))
			v, err := kv.Get(ctx, "accounts")
			require.NoError(t, err)
			assert.Equal(t, `[{"mnemonic":"a"}]`, v)

			require.NoError(t, kv.Set(ctx, "accounts", "[]"))
			v, err = kv.Get(ctx, "accounts")
			require.NoError(t, err)
			assert.Equal(t, "[]", v)

			require.NoError(t, kv.Delete(ctx, "accounts"))
			_, err = kv.Get(ctx, "accounts")
			require.ErrorIs(t, err, store.ErrNotFound)

			require.NoError(t, kv.Delete(ctx, "never-set"))
		})
	}
}

func TestLevelDBPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	kv, err := store.NewLevelDB(dir)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "accounts", "[]"))
	require.NoError(t, kv.Close())

	kv, err = store.NewLevelDB(dir)
	require.NoError(t, err)
	defer kv.Close()

	v, err := kv.Get(ctx, "accounts")
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestEncryptedStoresCiphertext(t *testing.T) {
	ctx := context.Background()
	inner := store.NewMemory()
	kv := store.NewEncryptedWithKeystore(inner, keystore.NewService(keystore.LightScryptParams()), "secret")

	require.NoError(t, kv.Set(ctx, "accounts", "plaintext mnemonic"))

	raw, err := inner.Get(ctx, "accounts")
	require.NoError(t, err)
	assert.NotContains(t, raw, "plaintext mnemonic")

	wrong := store.NewEncryptedWithKeystore(inner, keystore.NewService(keystore.LightScryptParams()), "other")
	_, err = wrong.Get(ctx, "accounts")
	require.ErrorIs(t, err, keystore.ErrInvalidPassphrase)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	kv, err := store.Open(ctx, store.Options{Driver: store.DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &store.Memory{}, kv)

	kv, err = store.Open(ctx, store.Options{Driver: store.DriverLevelDB, Path: t.TempDir(), Passphrase: "x"})
	require.NoError(t, err)
	assert.IsType(t, &store.Encrypted{}, kv)
	require.NoError(t, kv.Close())

	_, err = store.Open(ctx, store.Options{Driver: "s3"})
	require.Error(t, err)

	_, err = store.Open(ctx, store.Options{Driver: store.DriverLevelDB})
	require.Error(t, err)
}

func TestPreferences(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	prefs := store.NewPreferences(kv)

	dark, err := prefs.DarkMode(ctx, true)
	require.NoError(t, err)
	assert.True(t, dark)

	require.NoError(t, prefs.SetDarkMode(ctx, false))
	dark, err = prefs.DarkMode(ctx, true)
	require.NoError(t, err)
	assert.False(t, dark)

	raw, err := kv.Get(ctx, store.DarkModeKey)
	require.NoError(t, err)
	assert.Equal(t, "false", raw)

	require.NoError(t, kv.Set(ctx, store.DarkModeKey, "maybe"))
	_, err = prefs.DarkMode(ctx, false)
	require.Error(t, err)
}
