package preferences

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-hdwallet/internal/api"
	"github/chapool/go-hdwallet/internal/api/httperrors"
	"github/chapool/go-hdwallet/internal/types"
	"github/chapool/go-hdwallet/internal/util"
)

func PutDarkModeRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1.PUT("/preferences/dark-mode", putDarkModeHandler(s))
}

func putDarkModeHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PutDarkModePayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return httperrors.ErrBadRequestInvalidBody.Wrap(err)
		}

		if err := s.Preferences.SetDarkMode(ctx, *body.DarkMode); err != nil {
			util.LogFromContext(ctx).Error().Err(err).Msg("Failed to store dark mode preference")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.DarkModeResponse{DarkMode: *body.DarkMode})
	}
}
