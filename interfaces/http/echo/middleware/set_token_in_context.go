package middleware

import (
	"github.com/labstack/echo/v4"
)

// SetTokenInContext exposes the API token of the loaded session for
// outbound calls. It must run after SetSessionInContext.
func SetTokenInContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			_, s := SessionFrom(c)
			c.Set(TokenKey, s.Token)
			return next(c)
		}
	}
}

func TokenFrom(c echo.Context) string {
	token, _ := c.Get(TokenKey).(string)
	return token
}
