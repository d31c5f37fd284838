package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/octabyte/emaar-web/apierr"
	"github.com/octabyte/emaar-web/interfaces/http/echo/middleware"
	"github.com/octabyte/emaar-web/utils/logger"
)

// errorHandler renders every unhandled error as a localized page, or as
// JSON for the location endpoints.
func (h *Handler) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var he *echo.HTTPError
	var apiErr *apierr.Error
	switch {
	case errors.As(err, &he):
		code = he.Code
	case errors.As(err, &apiErr):
		code = statusForKind(apiErr.Kind)
	}

	if c.Get(middleware.LocaleKey) == nil {
		c.Set(middleware.LocaleKey, h.bundle.Negotiate(c.Request().Header.Get("Accept-Language")))
	}
	locale := middleware.LocaleFrom(c)
	message := h.bundle.T(locale, messageKeyForStatus(code))

	var werr error
	switch {
	case c.Request().Method == http.MethodHead:
		werr = c.NoContent(code)
	case wantsJSON(c):
		werr = c.JSON(code, map[string]string{"message": message})
	default:
		werr = c.Render(code, "error.html", pongo2.Context{
			"status":  code,
			"message": message,
		})
		if werr != nil && !c.Response().Committed {
			werr = c.String(code, message)
		}
	}
	if werr != nil {
		logger.LogError("write error response", zap.Error(werr), zap.NamedError("cause", err))
	}
}

func messageKeyForStatus(code int) string {
	switch {
	case code == http.StatusNotFound:
		return "errors.not_found"
	case code == http.StatusUnauthorized:
		return apierr.MessageKey(apierr.KindUnauthorized)
	case code == http.StatusForbidden:
		return apierr.MessageKey(apierr.KindForbidden)
	case code == http.StatusTooManyRequests:
		return apierr.MessageKey(apierr.KindRateLimited)
	case code == http.StatusBadRequest, code == http.StatusUnprocessableEntity, code == http.StatusRequestEntityTooLarge:
		return apierr.MessageKey(apierr.KindValidation)
	case code == http.StatusBadGateway, code == http.StatusServiceUnavailable, code == http.StatusGatewayTimeout:
		return apierr.MessageKey(apierr.KindNetwork)
	case code >= 500:
		return apierr.MessageKey(apierr.KindServer)
	default:
		return apierr.MessageKey(apierr.KindUnknown)
	}
}

func wantsJSON(c echo.Context) bool {
	return strings.Contains(c.Request().URL.Path, "/locations/") ||
		strings.HasPrefix(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
