package util

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Validatable is a request payload that can check itself
type Validatable interface {
	Validate() error
}

// BindAndValidateBody binds the JSON body into v and validates it
func BindAndValidateBody(c echo.Context, v Validatable) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, v); err != nil {
		return errors.Wrap(err, "failed to bind request body")
	}

	if err := v.Validate(); err != nil {
		return errors.Wrap(err, "request body is invalid")
	}

	return nil
}

// ValidateAndReturn writes v as JSON, validating it first when it implements Validatable
func ValidateAndReturn(c echo.Context, code int, v interface{}) error {
	if val, ok := v.(Validatable); ok {
		if err := val.Validate(); err != nil {
			LogFromContext(c.Request().Context()).Error().Err(err).Msg("Response failed validation")
			return err
		}
	}

	return c.JSON(code, v)
}

// ParamAsInt parses a non-negative integer path parameter
func ParamAsInt(c echo.Context, name string) (int, error) {
	raw := c.Param(name)

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "path parameter %s=%q is not an integer", name, raw)
	}
	if v < 0 {
		return 0, errors.Errorf("path parameter %s=%d must not be negative", name, v)
	}

	return v, nil
}
