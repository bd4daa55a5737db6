package wallet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-hdwallet/internal/wallet/address"
	"github/chapool/go-hdwallet/internal/wallet/seed"
)

//nolint:dupword // well-known development mnemonic
const junkPhrase = "test test test test test test test test test test test junk"

func TestVerifyReportsTamperedKeys(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(seed.StaticGenerator(junkPhrase), NewDeriver(seed.NewManager(), address.NewService(), nil))

	_, _, err := r.CreateAccount(ctx, "")
	require.NoError(t, err)
	_, err = r.CreateWallet(ctx, 0)
	require.NoError(t, err)

	mismatches, err := r.Verify(ctx)
	require.NoError(t, err)
	assert.Empty(t, mismatches)

	r.mu.Lock()
	r.accounts[0].Wallets[1].Index = 5
	r.accounts[0].Wallets[0].Solana.PublicKey = r.accounts[0].Wallets[1].Solana.PublicKey
	r.mu.Unlock()

	mismatches, err = r.Verify(ctx)
	require.NoError(t, err)
	require.Len(t, mismatches, 3)

	assert.Equal(t, 0, mismatches[0].WalletPosition)
	assert.Equal(t, address.ChainSolana, mismatches[0].Chain)
	assert.Equal(t, 0, mismatches[1].WalletPosition)
	assert.Equal(t, 1, mismatches[2].WalletPosition)
	assert.Equal(t, uint32(5), mismatches[2].Index)
}

func TestVerifyCanceledContext(t *testing.T) {
	r := NewRegistry(seed.StaticGenerator(junkPhrase), NewDeriver(seed.NewManager(), address.NewService(), nil))

	_, _, err := r.CreateAccount(context.Background(), "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = r.Verify(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		raw     string
		want    uint32
		missing bool
		wantErr bool
	}{
		{raw: `0`, want: 0},
		{raw: `17`, want: 17},
		{raw: `"3"`, want: 3},
		{raw: ``, missing: true},
		{raw: `null`, missing: true},
		{raw: `"abc"`, wantErr: true},
		{raw: `-1`, wantErr: true},
		{raw: `1.5`, wantErr: true},
		{raw: `2147483648`, wantErr: true},
		{raw: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseIndex([]byte(tt.raw))
			switch {
			case tt.missing:
				require.ErrorIs(t, err, errIndexMissing)
			case tt.wantErr:
				require.Error(t, err)
				require.NotErrorIs(t, err, errIndexMissing)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
