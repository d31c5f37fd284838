package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/octabyte/emaar-web/apierr"
	"github.com/octabyte/emaar-web/cache"
	"github.com/octabyte/emaar-web/enums"
	"github.com/octabyte/emaar-web/interfaces/http/echo/middleware"
	"github.com/octabyte/emaar-web/models"
	otellog "github.com/octabyte/emaar-web/otel/logger"
)

// locationItem is what the cascading location selects consume.
type locationItem struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func (h *Handler) Governorates(c echo.Context) error {
	govs, err := h.loadGovernorates(c.Request().Context())
	return h.locationJSON(c, err, len(govs), func(i int) (uint64, models.Localized) {
		return govs[i].ID, govs[i].Name
	})
}

func (h *Handler) Districts(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return echo.ErrNotFound
	}
	items, err := cache.Fetch(c.Request().Context(), h.cache, locationKey("districts", id), h.opts.CacheTTL,
		func(ctx context.Context) ([]models.District, error) { return h.api.Districts(ctx, id) })
	return h.locationJSON(c, err, len(items), func(i int) (uint64, models.Localized) {
		return items[i].ID, items[i].Name
	})
}

func (h *Handler) SubDistricts(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return echo.ErrNotFound
	}
	items, err := cache.Fetch(c.Request().Context(), h.cache, locationKey("sub_districts", id), h.opts.CacheTTL,
		func(ctx context.Context) ([]models.SubDistrict, error) { return h.api.SubDistricts(ctx, id) })
	return h.locationJSON(c, err, len(items), func(i int) (uint64, models.Localized) {
		return items[i].ID, items[i].Name
	})
}

func (h *Handler) Neighborhoods(c echo.Context) error {
	id, ok := idParam(c, "id")
	if !ok {
		return echo.ErrNotFound
	}
	items, err := cache.Fetch(c.Request().Context(), h.cache, locationKey("neighborhoods", id), h.opts.CacheTTL,
		func(ctx context.Context) ([]models.Neighborhood, error) { return h.api.Neighborhoods(ctx, id) })
	return h.locationJSON(c, err, len(items), func(i int) (uint64, models.Localized) {
		return items[i].ID, items[i].Name
	})
}

func (h *Handler) locationJSON(c echo.Context, err error, n int, at func(i int) (uint64, models.Localized)) error {
	locale := middleware.LocaleFrom(c)
	if err != nil {
		otellog.WarnCtx(c.Request().Context(), "locations unavailable",
			zap.String("path", c.Path()), zap.String("kind", string(apierr.KindOf(err))))
		return c.JSON(http.StatusBadGateway, map[string]string{
			"message": h.bundle.T(locale, apierr.MessageKey(apierr.KindOf(err))),
		})
	}

	out := make([]locationItem, 0, n)
	for i := 0; i < n; i++ {
		id, name := at(i)
		out = append(out, locationItem{ID: id, Name: name.In(locale)})
	}
	return c.JSON(http.StatusOK, out)
}

func locationKey(kind string, parent uint64) string {
	return fmt.Sprintf("%s:%s:%d", enums.LocationResource, kind, parent)
}
