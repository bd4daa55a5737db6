package accounts

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-hdwallet/internal/api"
	"github/chapool/go-hdwallet/internal/api/httperrors"
	"github/chapool/go-hdwallet/internal/util"
)

func GetAccountRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Account.GET("", getAccountHandler(s))
}

func getAccountHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		pos, err := accountParam(c)
		if err != nil {
			return err
		}

		account, err := s.Wallet.Account(ctx, pos)
		if err != nil {
			return httperrors.FromWalletError(err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, account.ToAccountResponse(pos))
	}
}
