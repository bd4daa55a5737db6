package preferences

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-hdwallet/internal/api"
	"github/chapool/go-hdwallet/internal/types"
	"github/chapool/go-hdwallet/internal/util"
)

func GetDarkModeRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1.GET("/preferences/dark-mode", getDarkModeHandler(s))
}

func getDarkModeHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		enabled, err := s.Preferences.DarkMode(ctx, false)
		if err != nil {
			// an unreadable value falls back to the light theme
			util.LogFromContext(ctx).Warn().Err(err).Msg("Failed to read dark mode preference")
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.DarkModeResponse{DarkMode: enabled})
	}
}
