package handlers

import (
	"github.com/labstack/echo/v4"
	"github/chapool/go-hdwallet/internal/api"
	"github/chapool/go-hdwallet/internal/api/handlers/accounts"
	"github/chapool/go-hdwallet/internal/api/handlers/common"
	"github/chapool/go-hdwallet/internal/api/handlers/preferences"
	"github/chapool/go-hdwallet/internal/api/handlers/wallets"
)

func AttachAllRoutes(s *api.Server) {
	// attach our routes
	s.Router.Routes = []*echo.Route{
		accounts.DeleteAccountRoute(s),
		accounts.GetAccountRoute(s),
		accounts.GetAccountsRoute(s),
		accounts.PostCreateAccountRoute(s),
		accounts.PostToggleMnemonicRoute(s),
		common.GetMetricsRoute(s),
		common.GetReadyRoute(s),
		preferences.GetDarkModeRoute(s),
		preferences.PutDarkModeRoute(s),
		wallets.DeleteWalletRoute(s),
		wallets.GetWalletBalanceRoute(s),
		wallets.PostCreateWalletRoute(s),
	}
}
