package accounts

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-hdwallet/internal/api"
	"github/chapool/go-hdwallet/internal/types"
	"github/chapool/go-hdwallet/internal/util"
)

func GetAccountsRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1.GET("/accounts", getAccountsHandler(s))
}

func getAccountsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		accounts := s.Wallet.Accounts(ctx)

		response := &types.GetAccountsResponse{
			Accounts: make([]*types.AccountResponse, 0, len(accounts)),
		}
		for i, a := range accounts {
			response.Accounts = append(response.Accounts, a.ToAccountResponse(i))
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
