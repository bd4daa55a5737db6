package httperrors

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-hdwallet/internal/types"
	"github/chapool/go-hdwallet/internal/util"
)

// HTTPError is an error with a public JSON representation
type HTTPError struct {
	types.HTTPError
	Internal error `json:"-"`
}

func NewHTTPError(code int, errorType types.PublicHTTPErrorType, title string) *HTTPError {
	return &HTTPError{
		HTTPError: types.HTTPError{
			Code:  code,
			Type:  errorType,
			Title: title,
		},
	}
}

func NewHTTPErrorWithDetail(code int, errorType types.PublicHTTPErrorType, title string, detail string) *HTTPError {
	e := NewHTTPError(code, errorType, title)
	e.Detail = detail
	return e
}

func (e *HTTPError) Error() string {
	var msg string
	if len(e.Detail) > 0 {
		msg = fmt.Sprintf("HTTPError %d (%s): %s - %s", e.Code, e.Type, e.Title, e.Detail)
	} else {
		msg = fmt.Sprintf("HTTPError %d (%s): %s", e.Code, e.Type, e.Title)
	}
	if e.Internal != nil {
		msg = fmt.Sprintf("%s, %v", msg, e.Internal)
	}
	return msg
}

// Unwrap exposes the internal error to errors.Is
func (e *HTTPError) Unwrap() error {
	return e.Internal
}

// Wrap returns a copy of e carrying err
func (e *HTTPError) Wrap(err error) *HTTPError {
	c := *e
	c.Internal = err
	return &c
}

// HTTPErrorHandler renders errors as types.HTTPError JSON
func HTTPErrorHandler(hideInternalServerErrorDetails bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var body types.HTTPError

		switch e := err.(type) { //nolint:errorlint // echo hands over the error it got
		case *HTTPError:
			body = e.HTTPError
		case *echo.HTTPError:
			body = types.HTTPError{
				Code:  e.Code,
				Type:  types.PublicHTTPErrorTypeGeneric,
				Title: http.StatusText(e.Code),
			}
			if msg, ok := e.Message.(string); ok {
				body.Title = msg
			}
		default:
			body = types.HTTPError{
				Code:  http.StatusInternalServerError,
				Type:  types.PublicHTTPErrorTypeGeneric,
				Title: http.StatusText(http.StatusInternalServerError),
			}
			if !hideInternalServerErrorDetails {
				body.Detail = err.Error()
			}
		}

		log := util.LogFromContext(c.Request().Context())
		if body.Code >= http.StatusInternalServerError {
			log.Error().Err(err).Int("status", body.Code).Msg("Request failed")
		} else {
			log.Debug().Err(err).Int("status", body.Code).Msg("Request rejected")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(body.Code)
		} else {
			err = c.JSON(body.Code, body)
		}
		if err != nil {
			log.Warn().Err(err).Msg("Failed to write error response")
		}
	}
}
