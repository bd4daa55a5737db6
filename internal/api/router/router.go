package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"github/chapool/go-hdwallet/internal/api"
	"github/chapool/go-hdwallet/internal/api/handlers"
	"github/chapool/go-hdwallet/internal/api/httperrors"
	"github/chapool/go-hdwallet/internal/api/middleware"
)

// Init creates the echo instance and attaches every route to s
func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.Debug = s.Config.Echo.Debug
	s.Echo.HideBanner = true
	s.Echo.HidePort = true
	s.Echo.HTTPErrorHandler = httperrors.HTTPErrorHandler(s.Config.Echo.HideInternalServerErrorDetails)

	if s.Config.Echo.EnableRecoverMiddleware {
		s.Echo.Use(echoMiddleware.Recover())
	} else {
		log.Warn().Msg("Disabling recover middleware due to environment config")
	}

	if s.Config.Echo.EnableRequestIDMiddleware {
		s.Echo.Use(echoMiddleware.RequestID())
	}

	if s.Config.Echo.EnableLoggerMiddleware {
		s.Echo.Use(middleware.Logger(s.Config.Logger.RequestLevel))
	}

	apiV1 := s.Echo.Group("/api/v1")

	s.Router = &api.Router{
		Routes:       nil, // will be populated by handlers.AttachAllRoutes(s)
		Root:         s.Echo.Group(""),
		Management:   s.Echo.Group("/-"),
		APIV1:        apiV1,
		APIV1Account: apiV1.Group("/accounts/:account"),
	}

	handlers.AttachAllRoutes(s)
}
