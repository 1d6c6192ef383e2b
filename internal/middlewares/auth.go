package middlewares

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/broadcast-hub/pkg/response"
)

const (
	APIKeyHeader = "x-broadcast-key"
)

// secureCompare compares two strings in a way that is safer against timing attacks.
func secureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// APIKeyAuth guards a route group with a shared key. An empty apiKey leaves
// the group open.
func APIKeyAuth(apiKey string) echo.MiddlewareFunc {
	if apiKey == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(APIKeyHeader)
			if token == "" || !secureCompare(token, apiKey) {
				return response.Unauthorized(c)
			}

			return next(c)
		}
	}
}
