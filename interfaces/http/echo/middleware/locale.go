package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/octabyte/emaar-web/enums"
	reqctx "github.com/octabyte/emaar-web/utils/context"
)

// LocaleNegotiator picks a locale from an Accept-Language header.
type LocaleNegotiator interface {
	Negotiate(acceptLanguage string) enums.Locale
}

// SetLocale resolves the :lang route param, falling back to the browser's
// Accept-Language.
func SetLocale(n LocaleNegotiator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			locale, ok := enums.ParseLocale(c.Param("lang"))
			if !ok {
				locale = n.Negotiate(c.Request().Header.Get("Accept-Language"))
			}

			c.Set(LocaleKey, locale)
			c.SetRequest(c.Request().WithContext(reqctx.WithLocale(c.Request().Context(), locale)))
			return next(c)
		}
	}
}

func LocaleFrom(c echo.Context) enums.Locale {
	if l, ok := c.Get(LocaleKey).(enums.Locale); ok {
		return l
	}
	return enums.DefaultLocale
}
