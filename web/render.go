package web

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/flosch/pongo2/v6"
	"github.com/labstack/echo/v4"

	"github.com/octabyte/emaar-web/enums"
	"github.com/octabyte/emaar-web/i18n"
	"github.com/octabyte/emaar-web/interfaces/http/echo/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders the embedded pongo2 templates. Every template receives
// the locale, translation helpers and the signed-in user on top of the
// handler's own data.
type Renderer struct {
	set    *pongo2.TemplateSet
	bundle *i18n.Bundle
}

func NewRenderer(bundle *i18n.Bundle, debug bool) (*Renderer, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	loader, err := pongo2.NewHttpFileSystemLoader(http.FS(sub), "")
	if err != nil {
		return nil, fmt.Errorf("template loader: %w", err)
	}
	set := pongo2.NewSet("emaar-web", loader)
	set.Debug = debug

	return &Renderer{set: set, bundle: bundle}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	// FromCache rereads the file on every call when the set is in debug mode.
	tpl, err := r.set.FromCache(name)
	if err != nil {
		return fmt.Errorf("load template %s: %w", name, err)
	}

	ctx := r.baseContext(c)
	if extra, ok := data.(pongo2.Context); ok {
		ctx = ctx.Update(extra)
	}
	return tpl.ExecuteWriter(ctx, w)
}

func (r *Renderer) baseContext(c echo.Context) pongo2.Context {
	locale := middleware.LocaleFrom(c)
	other := i18n.Other(locale)
	_, s := middleware.SessionFrom(c)
	csrf, _ := c.Get(echomwCSRFKey).(string)

	ctx := pongo2.Context{
		"lang":       string(locale),
		"dir":        i18n.Dir(locale),
		"other_lang": string(other),
		"switch_url": i18n.SwitchPath(c.Request().URL.RequestURI(), other),
		"path":       c.Request().URL.Path,
		"year":       time.Now().Year(),
		"csrf":       csrf,
		"csrf_field": csrfField,
		"t": func(key string) string {
			return r.bundle.T(locale, key)
		},
		"t1": func(key, p0 string) string {
			return r.bundle.T(locale, key, p0)
		},
		"t2": func(key, p0, p1 string) string {
			return r.bundle.T(locale, key, p0, p1)
		},
		"authenticated": s.IsAuthenticated(),
	}
	if s.IsAuthenticated() {
		ctx["user"] = s.User
		ctx["is_staff"] = s.User.HasRole(enums.StaffRoles)
		ctx["can_import"] = s.User.HasRole(enums.ImportRoles)
	}
	return ctx
}

// echo's CSRF middleware stores the token under this context key.
const echomwCSRFKey = "csrf"
