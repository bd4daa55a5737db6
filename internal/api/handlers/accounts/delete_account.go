package accounts

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-hdwallet/internal/api"
	"github/chapool/go-hdwallet/internal/api/httperrors"
)

func DeleteAccountRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Account.DELETE("", deleteAccountHandler(s))
}

func deleteAccountHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		pos, err := accountParam(c)
		if err != nil {
			return err
		}

		if err := s.Wallet.DeleteAccount(ctx, pos); err != nil {
			return httperrors.FromWalletError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}
