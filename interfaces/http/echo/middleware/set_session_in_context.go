package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/octabyte/emaar-web/models"
	"github.com/octabyte/emaar-web/session"
	reqctx "github.com/octabyte/emaar-web/utils/context"
	"github.com/octabyte/emaar-web/utils/logger"
)

// CookieConfig controls the browser session id cookie.
type CookieConfig struct {
	Name   string
	Domain string
	Secure bool
	MaxAge time.Duration
}

func (cfg CookieConfig) withDefaults() CookieConfig {
	if cfg.Name == "" {
		cfg.Name = DefaultCookieName
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = session.DefaultTTL
	}
	return cfg
}

func SetSessionInContext(store session.Store, cfg CookieConfig) echo.MiddlewareFunc {
	cfg = cfg.withDefaults()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Attempt to get the session id from the request header first
			sid := c.Request().Header.Get(SessionHeader)

			// If not present, attempt to get it from the cookie
			if sid == "" {
				cookie, err := c.Cookie(cfg.Name)
				if err != nil && !errors.Is(err, http.ErrNoCookie) {
					logger.LogWarn("reading session cookie", zap.Error(err))
				}
				if err == nil {
					sid = cookie.Value
				}
			}

			if !session.ValidID(sid) {
				sid = session.NewID()
				c.SetCookie(newSessionCookie(cfg, sid))
			}

			s := store.Get(c.Request().Context(), sid)
			Attach(c, sid, s)
			return next(c)
		}
	}
}

// Attach puts the session id and session on both the echo context and the
// request context.
func Attach(c echo.Context, sid string, s models.Session) {
	c.Set(SessionIDKey, sid)
	c.Set(RequestSessionKey, s)
	c.SetRequest(c.Request().WithContext(reqctx.WithSession(c.Request().Context(), sid, s)))
}

// SetSessionCookie points the browser at a new session id.
func SetSessionCookie(c echo.Context, cfg CookieConfig, sid string) {
	c.SetCookie(newSessionCookie(cfg.withDefaults(), sid))
}

// SessionFrom returns what SetSessionInContext attached.
func SessionFrom(c echo.Context) (string, models.Session) {
	sid, _ := c.Get(SessionIDKey).(string)
	s, _ := c.Get(RequestSessionKey).(models.Session)
	return sid, s
}

func newSessionCookie(cfg CookieConfig, sid string) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.Name,
		Value:    sid,
		Path:     "/",
		Domain:   cfg.Domain,
		MaxAge:   int(cfg.MaxAge.Seconds()),
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
