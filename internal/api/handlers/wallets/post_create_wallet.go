package wallets

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-hdwallet/internal/api"
	"github/chapool/go-hdwallet/internal/api/httperrors"
	"github/chapool/go-hdwallet/internal/util"
)

func PostCreateWalletRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Account.POST("/wallets", postCreateWalletHandler(s))
}

func postCreateWalletHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		accountPos, err := accountParam(c)
		if err != nil {
			return err
		}

		wallet, err := s.Wallet.CreateWallet(ctx, accountPos)
		if err != nil {
			log.Debug().Err(err).Int("account", accountPos).Msg("Failed to create wallet")
			return httperrors.FromWalletError(err)
		}

		account, err := s.Wallet.Account(ctx, accountPos)
		if err != nil {
			return httperrors.FromWalletError(err)
		}

		return util.ValidateAndReturn(c, http.StatusCreated, wallet.ToWalletResponse(len(account.Wallets)-1))
	}
}
