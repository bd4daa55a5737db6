package accounts

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-hdwallet/internal/api"
	"github/chapool/go-hdwallet/internal/api/httperrors"
	"github/chapool/go-hdwallet/internal/types"
	"github/chapool/go-hdwallet/internal/util"
)

func PostToggleMnemonicRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Account.POST("/mnemonic/toggle", postToggleMnemonicHandler(s))
}

func postToggleMnemonicHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		pos, err := accountParam(c)
		if err != nil {
			return err
		}

		visible, err := s.Wallet.ToggleMnemonicVisibility(ctx, pos)
		if err != nil {
			return httperrors.FromWalletError(err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.ToggleMnemonicResponse{MnemonicVisible: visible})
	}
}
