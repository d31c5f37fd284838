package web

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/bytes"
	"go.uber.org/zap"

	"github.com/octabyte/emaar-web/activity"
	"github.com/octabyte/emaar-web/apierr"
	"github.com/octabyte/emaar-web/enums"
	"github.com/octabyte/emaar-web/interfaces/http/echo/middleware"
	"github.com/octabyte/emaar-web/models"
	otellog "github.com/octabyte/emaar-web/otel/logger"
)

const dashboardPreview = 5

var importExtensions = map[string]bool{".xlsx": true, ".xls": true, ".csv": true}

func (h *Handler) Dashboard(c echo.Context) error {
	locale := middleware.LocaleFrom(c)
	ctx := c.Request().Context()
	token := middleware.TokenFrom(c)
	_, s := middleware.SessionFrom(c)

	data := pongo2.Context{
		"welcome": h.bundle.T(locale, "dashboard.welcome", s.User.Name),
		"role":    h.bundle.T(locale, "dashboard.role", s.Role()),
	}

	mosques, err := h.api.ListMosques(ctx, token, models.ListQuery{Page: 1, PerPage: 1})
	switch {
	case apierr.Is(err, apierr.KindUnauthorized):
		return h.reauth(c)
	case err != nil:
		otellog.WarnCtx(ctx, "dashboard mosque count unavailable", zap.Error(err))
		data["notice"] = "common.fetch_err"
	default:
		data["mosque_count"] = h.bundle.FormatNumber(locale, float64(mosques.Meta.Total), 0)
	}

	if s.User.HasRole(enums.StaffRoles) {
		pending, err := h.api.ListDonations(ctx, token, models.ListQuery{
			Page:    1,
			PerPage: dashboardPreview,
			Filters: map[string]string{"status": string(enums.DonationPending)},
		})
		switch {
		case apierr.Is(err, apierr.KindUnauthorized):
			return h.reauth(c)
		case err != nil:
			otellog.WarnCtx(ctx, "dashboard donations unavailable", zap.Error(err))
			data["notice"] = "common.fetch_err"
		default:
			data["pending"] = h.donationViews(locale, pending.Data)
			data["pending_count"] = h.bundle.FormatNumber(locale, float64(pending.Meta.Total), 0)
		}
	}

	return c.Render(http.StatusOK, "dashboard.html", data)
}

func (h *Handler) DashboardMosques(c echo.Context) error {
	locale := middleware.LocaleFrom(c)
	ctx := c.Request().Context()
	search := strings.TrimSpace(c.QueryParam("q"))

	notice := ""
	env, err := h.api.ListMosques(ctx, middleware.TokenFrom(c), models.ListQuery{
		Page:    pageParam(c),
		PerPage: h.opts.PerPage,
		Search:  search,
	})
	switch {
	case apierr.Is(err, apierr.KindUnauthorized):
		return h.reauth(c)
	case err != nil:
		otellog.WarnCtx(ctx, "dashboard mosques unavailable", zap.Error(err))
		notice = "common.fetch_err"
	}

	return c.Render(http.StatusOK, "dashboard_mosques.html", pongo2.Context{
		"mosques": mosqueViews(locale, env.Data),
		"q":       search,
		"notice":  notice,
		"pager":   newPager(c, env.Meta),
	})
}

func (h *Handler) DashboardDonations(c echo.Context) error {
	locale := middleware.LocaleFrom(c)
	ctx := c.Request().Context()

	status := enums.DonationStatus(c.QueryParam("status"))
	if c.QueryParam("status") == "" {
		status = enums.DonationPending
	} else if status != "all" && !status.Valid() {
		status = enums.DonationPending
	}
	filter := string(status)
	if status == "all" {
		filter = ""
	}

	data := pongo2.Context{}
	env, err := h.api.ListDonations(ctx, middleware.TokenFrom(c), models.ListQuery{
		Page:    pageParam(c),
		PerPage: h.opts.PerPage,
		Filters: map[string]string{"status": filter},
	})
	switch {
	case apierr.Is(err, apierr.KindUnauthorized):
		return h.reauth(c)
	case err != nil:
		otellog.WarnCtx(ctx, "donation list unavailable", zap.Error(err))
		data["notice"] = "common.fetch_err"
	}

	statuses := []option{{Value: "all", Label: h.bundle.T(locale, "common.all"), Selected: status == "all"}}
	for _, s := range []enums.DonationStatus{enums.DonationPending, enums.DonationApproved, enums.DonationRejected} {
		statuses = append(statuses, option{
			Value:    string(s),
			Label:    h.bundle.T(locale, "donation.status."+string(s)),
			Selected: s == status,
		})
	}

	if c.QueryParam("saved") == "1" {
		data["saved"] = true
	}
	if kind := apierr.Kind(c.QueryParam("error")); kind != "" {
		for _, k := range apierr.Kinds {
			if k == kind {
				data["form_error"] = h.bundle.T(locale, apierr.MessageKey(kind))
			}
		}
	}

	data["donations"] = h.donationViews(locale, env.Data)
	data["statuses"] = statuses
	data["status"] = string(status)
	data["pager"] = newPager(c, env.Meta)
	return c.Render(http.StatusOK, "dashboard_donations.html", data)
}

func (h *Handler) ReviewDonation(c echo.Context) error {
	ctx := c.Request().Context()
	id, ok := idParam(c, "id")
	if !ok {
		return echo.ErrNotFound
	}
	status := enums.DonationStatus(c.FormValue("status"))
	if status != enums.DonationApproved && status != enums.DonationRejected {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "status must be approved or rejected")
	}
	note := strings.TrimSpace(c.FormValue("note"))

	back := localPath(c, "/dashboard/donations")
	donation, err := h.api.UpdateDonationStatus(ctx, middleware.TokenFrom(c), id, status, note)
	switch {
	case apierr.Is(err, apierr.KindUnauthorized):
		return h.reauth(c)
	case err != nil:
		otellog.ErrorCtx(ctx, "donation review failed", err, zap.Uint64("donation_id", id))
		return c.Redirect(http.StatusSeeOther, back+"?error="+string(apierr.KindOf(err)))
	}

	h.publisher.Publish(ctx, activity.Event{
		Name: activity.DonationReviewed,
		Data: map[string]any{
			"donation_id": donation.ID,
			"status":      string(status),
			"note":        note,
		},
	})
	// Raised totals change once a donation is approved.
	h.cache.Delete(ctx, enums.ProjectResource+":"+strconv.FormatUint(donation.ProjectID, 10))
	return c.Redirect(http.StatusSeeOther, back+"?saved=1")
}

func (h *Handler) DashboardMosque(c echo.Context) error {
	return h.renderMosque(c, http.StatusOK, "")
}

func (h *Handler) renderMosque(c echo.Context, status int, formError string) error {
	locale := middleware.LocaleFrom(c)
	id, ok := idParam(c, "id")
	if !ok {
		return echo.ErrNotFound
	}

	ctx := c.Request().Context()
	_, s := middleware.SessionFrom(c)
	data := pongo2.Context{
		"uploaded":   c.QueryParam("uploaded") == "1",
		"form_error": formError,
		"can_upload": s.User.HasRole(enums.StaffRoles),
	}

	mosque, err := h.api.GetMosque(ctx, id)
	var apiErr *apierr.Error
	switch {
	case err == nil:
	case errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound:
		return echo.ErrNotFound
	case apierr.Is(err, apierr.KindUnauthorized):
		return h.reauth(c)
	default:
		otellog.WarnCtx(ctx, "mosque detail unavailable", zap.Uint64("mosque_id", id), zap.Error(err))
		mosque = models.Mosque{ID: id}
		data["notice"] = "common.fetch_err"
		data["missing"] = true
	}
	data["mosque"] = h.mosqueDetail(locale, mosque)
	return c.Render(status, "dashboard_mosque.html", data)
}

func (h *Handler) UploadMedia(c echo.Context) error {
	locale := middleware.LocaleFrom(c)
	ctx := c.Request().Context()
	id, ok := idParam(c, "id")
	if !ok {
		return echo.ErrNotFound
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return h.renderMosque(c, http.StatusUnprocessableEntity, h.bundle.T(locale, "media.missing"))
	}
	if !receiptExtensions[strings.ToLower(filepath.Ext(fh.Filename))] {
		return h.renderMosque(c, http.StatusUnprocessableEntity, h.bundle.T(locale, "media.bad_type"))
	}
	if fh.Size > h.opts.MaxUploadSize {
		return h.renderMosque(c, http.StatusRequestEntityTooLarge, h.bundle.T(locale, "import.too_large", bytes.Format(h.opts.MaxUploadSize)))
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	media, err := h.api.UploadMosqueMedia(ctx, middleware.TokenFrom(c), id, filepath.Base(fh.Filename), f)
	switch {
	case apierr.Is(err, apierr.KindUnauthorized):
		return h.reauth(c)
	case err != nil:
		otellog.ErrorCtx(ctx, "mosque media upload failed", err, zap.Uint64("mosque_id", id))
		kind := apierr.KindOf(err)
		return h.renderMosque(c, statusForKind(kind), h.bundle.T(locale, apierr.MessageKey(kind)))
	}

	h.publisher.Publish(ctx, activity.Event{
		Name: activity.MosqueMediaAdded,
		Data: map[string]any{
			"mosque_id": id,
			"media_id":  media.ID,
			"type":      media.Type,
		},
	})
	return c.Redirect(http.StatusSeeOther, localPath(c, "/dashboard/mosques/"+strconv.FormatUint(id, 10)+"?uploaded=1"))
}

type importPage struct {
	status int
	err    string
}

func (h *Handler) ImportForm(c echo.Context) error {
	return h.renderImport(c, importPage{status: http.StatusOK})
}

func (h *Handler) renderImport(c echo.Context, page importPage) error {
	locale := middleware.LocaleFrom(c)
	ctx := c.Request().Context()

	data := pongo2.Context{
		"form_error": page.err,
		"queued":     c.QueryParam("queued") == "1",
	}
	env, err := h.api.ListImports(ctx, middleware.TokenFrom(c), models.ListQuery{Page: pageParam(c), PerPage: h.opts.PerPage})
	switch {
	case apierr.Is(err, apierr.KindUnauthorized):
		return h.reauth(c)
	case err != nil:
		otellog.WarnCtx(ctx, "import history unavailable", zap.Error(err))
		data["notice"] = "common.fetch_err"
	}
	data["imports"] = h.importViews(locale, env.Data)
	data["pager"] = newPager(c, env.Meta)
	return c.Render(page.status, "dashboard_import.html", data)
}

func (h *Handler) Import(c echo.Context) error {
	locale := middleware.LocaleFrom(c)
	ctx := c.Request().Context()

	fh, err := c.FormFile("file")
	if err != nil {
		return h.renderImport(c, importPage{status: http.StatusUnprocessableEntity, err: h.bundle.T(locale, "import.missing")})
	}
	if !importExtensions[strings.ToLower(filepath.Ext(fh.Filename))] {
		return h.renderImport(c, importPage{status: http.StatusUnprocessableEntity, err: h.bundle.T(locale, "import.bad_type")})
	}
	if fh.Size > h.opts.MaxUploadSize {
		return h.renderImport(c, importPage{
			status: http.StatusRequestEntityTooLarge,
			err:    h.bundle.T(locale, "import.too_large", bytes.Format(h.opts.MaxUploadSize)),
		})
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	batch, err := h.api.ImportMosques(ctx, middleware.TokenFrom(c), filepath.Base(fh.Filename), f)
	switch {
	case apierr.Is(err, apierr.KindUnauthorized):
		return h.reauth(c)
	case err != nil:
		otellog.ErrorCtx(ctx, "mosque import failed", err)
		kind := apierr.KindOf(err)
		return h.renderImport(c, importPage{status: statusForKind(kind), err: h.bundle.T(locale, apierr.MessageKey(kind))})
	}

	h.publisher.Publish(ctx, activity.Event{
		Name: activity.MosquesImported,
		Data: map[string]any{
			"batch_id":  batch.ID,
			"file_name": batch.FileName,
			"size":      fh.Size,
		},
	})
	return c.Redirect(http.StatusSeeOther, localPath(c, "/dashboard/mosques/import?queued=1"))
}
