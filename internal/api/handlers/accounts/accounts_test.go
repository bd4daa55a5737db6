package accounts_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-hdwallet/internal/api"
	"github/chapool/go-hdwallet/internal/test"
	"github/chapool/go-hdwallet/internal/types"
)

func TestPostCreateAccountImport(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := test.GenericPayload{"mnemonic": test.MnemonicJunk}
		res := test.PerformRequest(t, s, "POST", "/api/v1/accounts", payload, nil)
		require.Equal(t, http.StatusCreated, res.Result().StatusCode)

		var account types.AccountResponse
		test.ParseResponse(t, res, &account)

		assert.Equal(t, 0, account.Position)
		assert.Empty(t, account.Mnemonic, "mnemonic is hidden by default")
		assert.False(t, account.MnemonicVisible)
		require.Len(t, account.Wallets, 1)
		assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", account.Wallets[0].Ethereum.Address)
		assert.NotEmpty(t, account.Wallets[0].Solana.PublicKey)
		assert.Equal(t, uint32(1), account.NextIndex)
	})
}

func TestPostCreateAccountGenerated(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/accounts", test.GenericPayload{}, nil)
		require.Equal(t, http.StatusCreated, res.Result().StatusCode)

		accounts := s.Wallet.Accounts(t.Context())
		require.Len(t, accounts, 1)
		assert.Len(t, accounts[0].Mnemonic.Words(), 12)
	})
}

func TestPostCreateAccountPosition(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		for i, phrase := range []string{test.MnemonicJunk, test.MnemonicAbandon} {
			res := test.PerformRequest(t, s, "POST", "/api/v1/accounts", test.GenericPayload{"mnemonic": phrase}, nil)
			require.Equal(t, http.StatusCreated, res.Result().StatusCode)

			var account types.AccountResponse
			test.ParseResponse(t, res, &account)
			assert.Equal(t, i, account.Position)
		}
	})
}

func TestPostCreateAccountInvalidMnemonic(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		phrase := strings.TrimSpace(strings.Repeat("abandon ", 12))
		res := test.PerformRequest(t, s, "POST", "/api/v1/accounts", test.GenericPayload{"mnemonic": phrase}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var body types.HTTPError
		test.ParseResponse(t, res, &body)
		assert.Equal(t, types.PublicHTTPErrorTypeINVALIDMNEMONIC, body.Type)
		assert.Empty(t, s.Wallet.Accounts(t.Context()))

		res = test.PerformRequest(t, s, "POST", "/api/v1/accounts", test.GenericPayload{"mnemonic": "too short"}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}

func TestResponsesNeverContainPrivateKeys(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		account, _, err := s.Wallet.CreateAccount(t.Context(), test.MnemonicJunk)
		require.NoError(t, err)
		_, err = s.Wallet.ToggleMnemonicVisibility(t.Context(), 0)
		require.NoError(t, err)

		for _, path := range []string{"/api/v1/accounts", "/api/v1/accounts/0"} {
			res := test.PerformRequest(t, s, "GET", path, nil, nil)
			require.Equal(t, http.StatusOK, res.Result().StatusCode)

			body := res.Body.String()
			assert.NotContains(t, body, account.Wallets[0].Ethereum.PrivateKey)
			assert.NotContains(t, body, strings.TrimPrefix(account.Wallets[0].Ethereum.PrivateKey, "0x"))
			assert.NotContains(t, body, account.Wallets[0].Solana.PrivateKey)
			assert.Contains(t, body, test.MnemonicJunk, "visible mnemonic is shown")
		}
	})
}

func TestGetAccounts(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		_, _, err := s.Wallet.CreateAccount(t.Context(), test.MnemonicJunk)
		require.NoError(t, err)
		_, _, err = s.Wallet.CreateAccount(t.Context(), test.MnemonicAbandon)
		require.NoError(t, err)

		res := test.PerformRequest(t, s, "GET", "/api/v1/accounts", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.GetAccountsResponse
		test.ParseResponse(t, res, &response)
		require.Len(t, response.Accounts, 2)
		assert.Equal(t, 1, response.Accounts[1].Position)
		assert.Equal(t, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", response.Accounts[1].Wallets[0].Ethereum.Address)
	})
}

func TestGetAccountNotFound(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/accounts/3", nil, nil)
		require.Equal(t, http.StatusNotFound, res.Result().StatusCode)

		var body types.HTTPError
		test.ParseResponse(t, res, &body)
		assert.Equal(t, types.PublicHTTPErrorTypeACCOUNTNOTFOUND, body.Type)

		res = test.PerformRequest(t, s, "GET", "/api/v1/accounts/first", nil, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}

func TestDeleteAccount(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		_, _, err := s.Wallet.CreateAccount(t.Context(), test.MnemonicJunk)
		require.NoError(t, err)

		res := test.PerformRequest(t, s, "DELETE", "/api/v1/accounts/0", nil, nil)
		require.Equal(t, http.StatusNoContent, res.Result().StatusCode)
		assert.Empty(t, s.Wallet.Accounts(t.Context()))

		res = test.PerformRequest(t, s, "DELETE", "/api/v1/accounts/0", nil, nil)
		require.Equal(t, http.StatusNotFound, res.Result().StatusCode)
	})
}

func TestPostToggleMnemonic(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		_, _, err := s.Wallet.CreateAccount(t.Context(), test.MnemonicJunk)
		require.NoError(t, err)

		var toggled types.ToggleMnemonicResponse
		res := test.PerformRequest(t, s, "POST", "/api/v1/accounts/0/mnemonic/toggle", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		test.ParseResponse(t, res, &toggled)
		assert.True(t, toggled.MnemonicVisible)

		res = test.PerformRequest(t, s, "POST", "/api/v1/accounts/0/mnemonic/toggle", nil, nil)
		test.ParseResponse(t, res, &toggled)
		assert.False(t, toggled.MnemonicVisible)
	})
}
