package wallets

import (
	"github.com/labstack/echo/v4"
	"github/chapool/go-hdwallet/internal/api/httperrors"
	"github/chapool/go-hdwallet/internal/util"
)

func accountParam(c echo.Context) (int, error) {
	pos, err := util.ParamAsInt(c, "account")
	if err != nil {
		return 0, httperrors.ErrBadRequestInvalidPathParam.Wrap(err)
	}
	return pos, nil
}

func positionParams(c echo.Context) (int, int, error) {
	accountPos, err := accountParam(c)
	if err != nil {
		return 0, 0, err
	}

	walletPos, err := util.ParamAsInt(c, "wallet")
	if err != nil {
		return 0, 0, httperrors.ErrBadRequestInvalidPathParam.Wrap(err)
	}

	return accountPos, walletPos, nil
}
