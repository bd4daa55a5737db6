package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-hdwallet/internal/api"
	"github/chapool/go-hdwallet/internal/test"
	"github/chapool/go-hdwallet/internal/util/command"
)

func TestWithServer(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		ctx := t.Context()

		var testError = errors.New("test error")

		s.Config.Logger.PrettyPrintConsole = false
		resultErr := command.WithServer(ctx, s.Config, func(ctx context.Context, s *api.Server) error {
			account, _, err := s.Wallet.CreateAccount(ctx, test.MnemonicJunk)
			require.NoError(t, err)

			assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", account.Wallets[0].Ethereum.Address)

			return testError
		})

		assert.Equal(t, testError, resultErr)
	})
}

func TestNewSubcommandGroup(t *testing.T) {
	child := &cobra.Command{Use: "child", Run: func(*cobra.Command, []string) {}}
	group := command.NewSubcommandGroup("group", child)

	assert.Equal(t, "group", group.Use)
	require.Len(t, group.Commands(), 1)
	assert.Equal(t, "child", group.Commands()[0].Use)
}

func TestParsePosition(t *testing.T) {
	pos, err := command.ParsePosition("3", "account")
	require.NoError(t, err)
	assert.Equal(t, 3, pos)

	_, err = command.ParsePosition("-1", "account")
	require.Error(t, err)
	_, err = command.ParsePosition("one", "wallet")
	require.Error(t, err)
}
