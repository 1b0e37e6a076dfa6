package middleware

import (
	"github.com/labstack/echo/v4"

	"microblog/internal/utils/apierror"
)

// HeaderAPIKey is the request header carrying the caller's static credential.
const HeaderAPIKey = "api-key"

// NewAPIKeyMiddleware requires the api-key header and stores its raw value in
// the request context. The key is not resolved or rejected here: an invalid
// key must flow through to the storage queries, where it matches zero rows.
func NewAPIKeyMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Request().Header.Get(HeaderAPIKey)
			if key == "" {
				apierr := apierror.MissingAPIKeyError
				return c.JSON(apierr.Code(), apierr)
			}

			c.Set("apiKey", key)
			return next(c)
		}
	}
}
