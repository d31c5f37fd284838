// Package web serves the public site and the staff dashboard.
package web

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/bytes"

	"github.com/octabyte/emaar-web/enums"
	"github.com/octabyte/emaar-web/interfaces/http/echo/middleware"
	otelecho "github.com/octabyte/emaar-web/otel/echo"
)

const csrfField = "_csrf"

// multipart framing and the other form fields on top of the file itself
const formOverhead = 1 << 20

// NewServer builds the echo instance with every route registered.
func NewServer(d Deps) (*echo.Echo, error) {
	if d.API == nil || d.Auth == nil || d.Store == nil || d.Bundle == nil {
		return nil, fmt.Errorf("web: api, auth, store and bundle are required")
	}
	if d.Validator == nil {
		v, err := d.Bundle.NewValidator()
		if err != nil {
			return nil, err
		}
		d.Validator = v
	}

	renderer, err := NewRenderer(d.Bundle, d.Options.Debug)
	if err != nil {
		return nil, err
	}
	h := newHandler(d)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.JSONSerializer = jsonSerializer{}
	e.HTTPErrorHandler = h.errorHandler

	serviceName := d.Options.ServiceName
	if serviceName == "" {
		serviceName = "emaar-web"
	}

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(
		echomw.Recover(),
		middleware.RequestLogger(skipHealth),
		otelecho.MiddlewareWithConfig(serviceName, skipHealth),
		otelecho.Metrics(skipHealth),
		echomw.Secure(),
		echomw.BodyLimit(bytes.Format(h.opts.MaxUploadSize+formOverhead)),
	)

	e.GET("/healthz", h.Healthz)
	e.GET("/", h.RootRedirect)

	g := e.Group("/:lang",
		middleware.SetLocale(d.Bundle),
		requireLocale,
		middleware.SetSessionInContext(d.Store, d.Options.Cookie),
		middleware.SetTokenInContext(),
		echomw.CSRFWithConfig(echomw.CSRFConfig{
			TokenLookup:    "form:" + csrfField,
			CookiePath:     "/",
			CookieHTTPOnly: true,
			CookieSecure:   d.Options.Cookie.Secure,
			CookieSameSite: http.SameSiteLaxMode,
		}),
	)

	g.GET("", h.Home)
	g.GET("/projects", h.Projects)
	g.GET("/projects/:id", h.Project)
	g.POST("/projects/:id/donate", h.Donate)
	g.GET("/mosques", h.Mosques)

	g.GET("/login", h.LoginForm)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
	g.GET("/unauthorized", h.Unauthorized)

	g.GET("/locations/governorates", h.Governorates)
	g.GET("/locations/governorates/:id/districts", h.Districts)
	g.GET("/locations/districts/:id/sub-districts", h.SubDistricts)
	g.GET("/locations/sub-districts/:id/neighborhoods", h.Neighborhoods)

	guard := func(cfg middleware.GuardConfig) echo.MiddlewareFunc {
		cfg.Pending = d.Auth.Pending
		cfg.Waiting = h.Waiting
		return middleware.Guard(cfg)
	}
	signedIn := guard(middleware.GuardConfig{RequireAuth: true})
	staff := guard(middleware.GuardConfig{Roles: enums.StaffRoles})
	importers := guard(middleware.GuardConfig{Roles: enums.ImportRoles})

	g.GET("/dashboard", h.Dashboard, signedIn)
	g.GET("/dashboard/mosques", h.DashboardMosques, signedIn)
	g.GET("/dashboard/donations", h.DashboardDonations, staff)
	g.POST("/dashboard/donations/:id/status", h.ReviewDonation, staff)
	g.GET("/dashboard/mosques/:id", h.DashboardMosque, signedIn)
	g.POST("/dashboard/mosques/:id/media", h.UploadMedia, staff)
	g.GET("/dashboard/mosques/import", h.ImportForm, importers)
	g.POST("/dashboard/mosques/import", h.Import, importers)

	return e, nil
}

func skipHealth(c echo.Context) bool {
	return c.Request().URL.Path == "/healthz"
}

// requireLocale 404s paths whose first segment is not a supported locale,
// such as /favicon.ico.
func requireLocale(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := enums.ParseLocale(c.Param("lang")); !ok {
			return echo.ErrNotFound
		}
		return next(c)
	}
}

// RootRedirect sends / to the visitor's preferred locale.
func (h *Handler) RootRedirect(c echo.Context) error {
	locale := h.bundle.Negotiate(c.Request().Header.Get("Accept-Language"))
	return c.Redirect(http.StatusFound, "/"+string(locale))
}

// localPath builds a path under the current locale.
func localPath(c echo.Context, parts ...string) string {
	return "/" + string(middleware.LocaleFrom(c)) + strings.Join(parts, "")
}
