package utils

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"microblog/internal/utils/apierror"
)

// GetAPIKeyFromContext reads the raw api-key string placed there by the auth
// middleware. The key is deliberately not resolved to a user at this point;
// identity resolution happens inside the request's transaction.
func GetAPIKeyFromContext(c echo.Context) (string, apierror.ErrorResponse) {
	val := c.Get("apiKey")
	if val == nil {
		log.Warnf("route %s attempted to read nil api key from context", c.Request().URL)
		return "", apierror.MissingAPIKeyError
	}

	key, ok := val.(string)
	if !ok {
		log.Warnf("expected string at 'apiKey' context key, got %v", val)
		return "", apierror.InternalServerError
	}
	return key, nil
}
