package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/octabyte/emaar-web/enums"
	"github.com/octabyte/emaar-web/otel/metrics"
)

// GuardConfig decides who may see a group of routes.
type GuardConfig struct {
	RequireAuth bool
	// Roles, when set, also implies RequireAuth.
	Roles            []enums.Role
	LoginPath        string
	UnauthorizedPath string
	// Pending reports a login still in flight for the session id. While it
	// is, the guard answers with Waiting instead of deciding.
	Pending func(sid string) bool
	Waiting echo.HandlerFunc
}

// Guard is re-evaluated on every request. It must run after
// SetSessionInContext and SetLocale.
func Guard(cfg GuardConfig) echo.MiddlewareFunc {
	if cfg.LoginPath == "" {
		cfg.LoginPath = DefaultLoginPath
	}
	if cfg.UnauthorizedPath == "" {
		cfg.UnauthorizedPath = DefaultUnauthorizedPath
	}
	if cfg.Waiting == nil {
		cfg.Waiting = defaultWaiting
	}
	requireAuth := cfg.RequireAuth || len(cfg.Roles) > 0

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			sid, s := SessionFrom(c)

			if cfg.Pending != nil && cfg.Pending(sid) {
				metrics.RecordGuardDecision(ctx, metrics.GuardWait)
				c.Response().Header().Set("Refresh", "1")
				c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
				return cfg.Waiting(c)
			}

			lang := string(LocaleFrom(c))

			if requireAuth && !s.IsAuthenticated() {
				metrics.RecordGuardDecision(ctx, metrics.GuardLogin)
				target := "/" + lang + cfg.LoginPath + "?next=" + url.QueryEscape(c.Request().URL.RequestURI())
				return c.Redirect(http.StatusSeeOther, target)
			}

			if len(cfg.Roles) > 0 && !s.User.HasRole(cfg.Roles) {
				metrics.RecordGuardDecision(ctx, metrics.GuardUnauthorized)
				return c.Redirect(http.StatusSeeOther, "/"+lang+cfg.UnauthorizedPath)
			}

			metrics.RecordGuardDecision(ctx, metrics.GuardAllow)
			return next(c)
		}
	}
}

func defaultWaiting(c echo.Context) error {
	return c.HTML(http.StatusOK, `<!doctype html><meta charset="utf-8"><p aria-busy="true">…</p>`)
}
