package web

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"unicode"

	"github.com/flosch/pongo2/v6"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/octabyte/emaar-web/apierr"
	"github.com/octabyte/emaar-web/interfaces/http/echo/middleware"
	otellog "github.com/octabyte/emaar-web/otel/logger"
)

type loginPage struct {
	status int
	email  string
	next   string
	errors map[string]string
	err    string
	notice string
}

func (h *Handler) renderLogin(c echo.Context, page loginPage) error {
	return c.Render(page.status, "login.html", pongo2.Context{
		"email":      page.email,
		"next":       page.next,
		"errors":     page.errors,
		"form_error": page.err,
		"notice":     page.notice,
	})
}

func (h *Handler) LoginForm(c echo.Context) error {
	next := safeNext(c.QueryParam("next"))
	if _, s := middleware.SessionFrom(c); s.IsAuthenticated() {
		return c.Redirect(http.StatusSeeOther, h.afterLogin(c, next))
	}

	page := loginPage{status: http.StatusOK, next: next}
	if c.QueryParam("expired") == "1" {
		page.notice = "errors.session_expired"
	}
	return h.renderLogin(c, page)
}

func (h *Handler) Login(c echo.Context) error {
	locale := middleware.LocaleFrom(c)
	sid, _ := middleware.SessionFrom(c)

	email := strings.TrimSpace(c.FormValue("email"))
	next := safeNext(c.FormValue("next"))

	ctx := c.Request().Context()
	sess, err := h.auth.Login(ctx, sid, email, c.FormValue("password"))
	if err == nil {
		// A session id chosen before sign-in must not survive it.
		fresh, err := h.auth.Rotate(ctx, sid)
		if err != nil {
			otellog.ErrorCtx(ctx, "rotate session id", err, zap.String("session_id", sid))
			h.auth.Invalidate(ctx, sid)
			return err
		}
		middleware.SetSessionCookie(c, h.opts.Cookie, fresh)
		middleware.Attach(c, fresh, sess)
		return c.Redirect(http.StatusSeeOther, h.afterLogin(c, next))
	}

	kind := apierr.KindOf(err)
	page := loginPage{
		status: statusForKind(kind),
		email:  email,
		next:   next,
		errors: h.bundle.ValidationMessages(locale, err),
		err:    h.bundle.T(locale, apierr.MessageKey(kind)),
	}
	var apiErr *apierr.Error
	if page.errors == nil && errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		page.errors = make(map[string]string, len(apiErr.Fields))
		for field, msgs := range apiErr.Fields {
			page.errors[field] = msgs[0]
		}
	}
	return h.renderLogin(c, page)
}

func (h *Handler) Logout(c echo.Context) error {
	sid, _ := middleware.SessionFrom(c)
	// Upstream failures are already swallowed by the service; an error here
	// means the session is still stored, so the visitor is not signed out.
	if err := h.auth.Logout(c.Request().Context(), sid); err != nil {
		otellog.ErrorCtx(c.Request().Context(), "logout left the session in place", err, zap.String("session_id", sid))
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}
	return c.Redirect(http.StatusSeeOther, localPath(c))
}

func (h *Handler) Unauthorized(c echo.Context) error {
	return c.Render(http.StatusForbidden, "unauthorized.html", nil)
}

// Waiting is shown while a login for the same session is still in flight.
// The guard adds a Refresh header so the browser polls.
func (h *Handler) Waiting(c echo.Context) error {
	return c.Render(http.StatusOK, "waiting.html", nil)
}

// reauth drops a session the API no longer accepts and sends the visitor to
// sign in again, coming back to the current page afterwards.
func (h *Handler) reauth(c echo.Context) error {
	sid, _ := middleware.SessionFrom(c)
	h.auth.Invalidate(c.Request().Context(), sid)

	q := url.Values{}
	q.Set("expired", "1")
	q.Set("next", c.Request().URL.RequestURI())
	return c.Redirect(http.StatusSeeOther, localPath(c, middleware.DefaultLoginPath, "?", q.Encode()))
}

func (h *Handler) afterLogin(c echo.Context, next string) string {
	if next != "" {
		return next
	}
	return localPath(c, "/dashboard")
}

// safeNext only lets local absolute paths through, so the login form cannot
// be used as an open redirect. Browsers drop tabs and newlines from URLs,
// so any control character is refused before the prefix checks.
func safeNext(next string) string {
	if strings.IndexFunc(next, unicode.IsControl) >= 0 {
		return ""
	}
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.ContainsRune(next, '\\') {
		return ""
	}
	return next
}

// statusForKind is the response status for a page re-rendered after an
// upstream failure.
func statusForKind(kind apierr.Kind) int {
	switch kind {
	case apierr.KindNetwork:
		return http.StatusServiceUnavailable
	case apierr.KindUnauthorized:
		return http.StatusUnauthorized
	case apierr.KindForbidden:
		return http.StatusForbidden
	case apierr.KindValidation:
		return http.StatusUnprocessableEntity
	case apierr.KindRateLimited:
		return http.StatusTooManyRequests
	case apierr.KindServer:
		return http.StatusBadGateway
	case apierr.KindUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
