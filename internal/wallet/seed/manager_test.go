package seed_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-hdwallet/internal/wallet/seed"
)

func TestManagerCachesSeed(t *testing.T) {
	m, err := seed.NewMnemonic(abandonMnemonic)
	require.NoError(t, err)

	mgr := seed.NewManager()
	first := mgr.Seed(m)
	assert.Equal(t, m.Seed(""), first)
	assert.Equal(t, 1, mgr.Len())

	// callers get copies, mutating one does not poison the cache
	first[0] ^= 0xff
	assert.Equal(t, m.Seed(""), mgr.Seed(m))

	mgr.Forget(m)
	assert.Equal(t, 0, mgr.Len())
}

func TestManagerConcurrentAccess(t *testing.T) {
	m, err := seed.NewMnemonic(abandonMnemonic)
	require.NoError(t, err)

	mgr := seed.NewManager()
	expected := m.Seed("")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, expected, mgr.Seed(m))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, mgr.Len())
	mgr.Clear()
	assert.Equal(t, 0, mgr.Len())
}
