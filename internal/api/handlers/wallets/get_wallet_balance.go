package wallets

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-hdwallet/internal/api"
	"github/chapool/go-hdwallet/internal/api/httperrors"
	"github/chapool/go-hdwallet/internal/types"
	"github/chapool/go-hdwallet/internal/util"
	"github/chapool/go-hdwallet/internal/wallet/balance"
)

func GetWalletBalanceRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Account.GET("/wallets/:wallet/balance", getWalletBalanceHandler(s))
}

func getWalletBalanceHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		accountPos, walletPos, err := positionParams(c)
		if err != nil {
			return err
		}

		wallet, err := s.Wallet.Wallet(ctx, accountPos, walletPos)
		if err != nil {
			return httperrors.FromWalletError(err)
		}

		balances := balance.Lookup(ctx, s.Balance, wallet.Ethereum.Address, wallet.Solana.PublicKey)

		return util.ValidateAndReturn(c, http.StatusOK, &types.BalanceResponse{
			Ethereum: balances.Ethereum,
			Solana:   balances.Solana,
		})
	}
}
