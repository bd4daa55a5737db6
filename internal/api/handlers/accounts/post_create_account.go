package accounts

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-hdwallet/internal/api"
	"github/chapool/go-hdwallet/internal/api/httperrors"
	"github/chapool/go-hdwallet/internal/types"
	"github/chapool/go-hdwallet/internal/util"
)

func PostCreateAccountRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1.POST("/accounts", postCreateAccountHandler(s))
}

func postCreateAccountHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostCreateAccountPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return httperrors.ErrBadRequestInvalidBody.Wrap(err)
		}

		account, pos, err := s.Wallet.CreateAccount(ctx, body.Mnemonic)
		if err != nil {
			log.Debug().Err(err).Msg("Failed to create account")
			return httperrors.FromWalletError(err)
		}

		return util.ValidateAndReturn(c, http.StatusCreated, account.ToAccountResponse(pos))
	}
}
