package wallets

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-hdwallet/internal/api"
	"github/chapool/go-hdwallet/internal/api/httperrors"
)

func DeleteWalletRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Account.DELETE("/wallets/:wallet", deleteWalletHandler(s))
}

func deleteWalletHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		accountPos, walletPos, err := positionParams(c)
		if err != nil {
			return err
		}

		if _, err := s.Wallet.DeleteWallet(ctx, accountPos, walletPos); err != nil {
			return httperrors.FromWalletError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}
