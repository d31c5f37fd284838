package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/flosch/pongo2/v6"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/bytes"
	"go.uber.org/zap"

	"github.com/octabyte/emaar-web/activity"
	"github.com/octabyte/emaar-web/apierr"
	"github.com/octabyte/emaar-web/cache"
	"github.com/octabyte/emaar-web/enums"
	"github.com/octabyte/emaar-web/interfaces/http/echo/middleware"
	"github.com/octabyte/emaar-web/models"
	otellog "github.com/octabyte/emaar-web/otel/logger"
	"github.com/octabyte/emaar-web/otel/metrics"
)

const featuredCount = 6

var receiptExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".pdf": true}

// loadProjects fetches a page of projects. When the API fails it falls back
// to demo content, or to an empty page, and names the notice to show.
func (h *Handler) loadProjects(ctx context.Context, q models.ListQuery) (models.Envelope[[]models.Project], string) {
	key := fmt.Sprintf("%s:list:%d:%d:%s:%s", enums.ProjectResource, q.Page, q.PerPage, q.Filters["status"], strings.ToLower(q.Search))
	env, err := cache.Fetch(ctx, h.cache, key, h.opts.CacheTTL, func(ctx context.Context) (models.Envelope[[]models.Project], error) {
		return h.api.ListProjects(ctx, q)
	})
	if err == nil {
		return env, ""
	}

	otellog.WarnCtx(ctx, "project list unavailable", zap.String("kind", string(apierr.KindOf(err))))
	if !h.opts.DemoContent {
		return models.Envelope[[]models.Project]{Data: []models.Project{}, Meta: models.Meta{CurrentPage: 1, LastPage: 1}}, "common.fetch_err"
	}
	filtered := FilterProjects(demoProjects, enums.ProjectStatus(q.Filters["status"]), q.Search)
	return paginate(filtered, q.Page, q.PerPage), "common.demo"
}

func (h *Handler) Home(c echo.Context) error {
	locale := middleware.LocaleFrom(c)
	env, notice := h.loadProjects(c.Request().Context(), models.ListQuery{
		Page:    1,
		PerPage: featuredCount,
		Filters: map[string]string{"status": string(enums.ProjectActive)},
	})

	var raised float64
	currency := ""
	for _, p := range env.Data {
		raised += p.RaisedAmount
		if currency == "" {
			currency = p.Currency
		}
	}

	return c.Render(http.StatusOK, "home.html", pongo2.Context{
		"projects":     h.projectViews(locale, env.Data),
		"notice":       notice,
		"total_raised": h.money(locale, raised, currency),
		"active_count": h.bundle.FormatNumber(locale, float64(env.Meta.Total), 0),
	})
}

func (h *Handler) Projects(c echo.Context) error {
	locale := middleware.LocaleFrom(c)
	status := enums.ProjectStatus(c.QueryParam("status"))
	if !status.Valid() {
		status = ""
	}
	search := strings.TrimSpace(c.QueryParam("q"))

	env, notice := h.loadProjects(c.Request().Context(), models.ListQuery{
		Page:    pageParam(c),
		PerPage: h.opts.PerPage,
		Search:  search,
		Filters: map[string]string{"status": string(status)},
	})

	statuses := []option{{Value: "", Label: h.bundle.T(locale, "common.all"), Selected: status == ""}}
	for _, s := range enums.ProjectStatuses {
		statuses = append(statuses, option{
			Value:    string(s),
			Label:    h.bundle.T(locale, "projects.status."+string(s)),
			Selected: s == status,
		})
	}

	return c.Render(http.StatusOK, "projects.html", pongo2.Context{
		"projects": h.projectViews(locale, env.Data),
		"notice":   notice,
		"statuses": statuses,
		"q":        search,
		"pager":    newPager(c, env.Meta),
	})
}

// donationForm is what the donate form posts, kept as strings so the page
// can be re-rendered exactly as submitted.
type donationForm struct {
	DonorName  string `form:"donor_name"`
	DonorPhone string `form:"donor_phone"`
	Amount     string `form:"amount"`
	Currency   string `form:"currency"`
	Notes      string `form:"notes"`
}

type projectPage struct {
	status    int
	form      donationForm
	errors    map[string]string
	formError string
}

func (h *Handler) Project(c echo.Context) error {
	return h.renderProject(c, projectPage{status: http.StatusOK, form: donationForm{Currency: "IQD"}})
}

func (h *Handler) renderProject(c echo.Context, page projectPage) error {
	locale := middleware.LocaleFrom(c)
	ctx := c.Request().Context()
	id, ok := idParam(c, "id")
	if !ok {
		return echo.ErrNotFound
	}

	notice := ""
	key := fmt.Sprintf("%s:%d", enums.ProjectResource, id)
	project, err := cache.Fetch(ctx, h.cache, key, h.opts.CacheTTL, func(ctx context.Context) (models.Project, error) {
		return h.api.GetProject(ctx, id)
	})
	if err != nil {
		var apiErr *apierr.Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return echo.ErrNotFound
		}
		otellog.WarnCtx(ctx, "project unavailable", zap.Uint64("project_id", id), zap.Error(err))

		demo, found := demoProject(id)
		switch {
		case h.opts.DemoContent && found:
			project, notice = demo, "common.demo"
		case h.opts.DemoContent:
			return echo.ErrNotFound
		default:
			return c.Render(http.StatusServiceUnavailable, "project.html", pongo2.Context{"notice": "common.fetch_err"})
		}
	}

	return c.Render(page.status, "project.html", pongo2.Context{
		"project":    h.projectView(locale, project),
		"notice":     notice,
		"form":       page.form,
		"errors":     page.errors,
		"form_error": page.formError,
		"donated":    c.QueryParam("donated") == "1",
		"currencies": []string{"IQD", "USD"},
	})
}

func (h *Handler) Donate(c echo.Context) error {
	locale := middleware.LocaleFrom(c)
	ctx := c.Request().Context()
	id, ok := idParam(c, "id")
	if !ok {
		return echo.ErrNotFound
	}

	var form donationForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}
	page := projectPage{status: http.StatusUnprocessableEntity, form: form, errors: map[string]string{}}

	amount, _ := strconv.ParseFloat(strings.TrimSpace(form.Amount), 64)
	in := models.DonationInput{
		ProjectID:  id,
		DonorName:  strings.TrimSpace(form.DonorName),
		DonorPhone: strings.TrimSpace(form.DonorPhone),
		Amount:     amount,
		Currency:   strings.ToUpper(strings.TrimSpace(form.Currency)),
		Notes:      strings.TrimSpace(form.Notes),
	}

	if err := h.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		page.errors = h.bundle.ValidationMessages(locale, err)
	}

	receipt, err := c.FormFile("receipt")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	case !receiptExtensions[strings.ToLower(filepath.Ext(receipt.Filename))]:
		page.errors["receipt"] = h.bundle.T(locale, "donate.bad_receipt")
	case receipt.Size > h.opts.MaxUploadSize:
		page.errors["receipt"] = h.bundle.T(locale, "import.too_large", bytes.Format(h.opts.MaxUploadSize))
	}
	if len(page.errors) > 0 {
		return h.renderProject(c, page)
	}

	if receipt != nil {
		f, err := receipt.Open()
		if err != nil {
			return err
		}
		defer f.Close()
		in.ReceiptName, in.Receipt = receipt.Filename, f
	}

	donation, err := h.api.CreateDonation(ctx, in)
	if err != nil {
		var apiErr *apierr.Error
		if errors.As(err, &apiErr) && apiErr.Kind == apierr.KindValidation && len(apiErr.Fields) > 0 {
			for field, msgs := range apiErr.Fields {
				page.errors[field] = msgs[0]
			}
		} else {
			page.status = statusForKind(apierr.KindOf(err))
			page.formError = h.bundle.T(locale, apierr.MessageKey(apierr.KindOf(err)))
		}
		return h.renderProject(c, page)
	}

	metrics.RecordDonationSubmitted(ctx, in.Currency)
	h.publisher.Publish(ctx, activity.Event{
		Name: activity.DonationSubmitted,
		Data: map[string]any{
			"donation_id": donation.ID,
			"project_id":  id,
			"amount":      in.Amount,
			"currency":    in.Currency,
		},
	})
	return c.Redirect(http.StatusSeeOther, localPath(c, "/projects/", strconv.FormatUint(id, 10), "?donated=1"))
}

func (h *Handler) loadGovernorates(ctx context.Context) ([]models.Governorate, error) {
	return cache.Fetch(ctx, h.cache, enums.LocationResource+":governorates", h.opts.CacheTTL, h.api.Governorates)
}

func (h *Handler) Mosques(c echo.Context) error {
	locale := middleware.LocaleFrom(c)
	ctx := c.Request().Context()

	govID := c.QueryParam("governorate_id")
	if _, err := strconv.ParseUint(govID, 10, 64); err != nil {
		govID = ""
	}
	search := strings.TrimSpace(c.QueryParam("q"))

	governorates := []option{{Value: "", Label: h.bundle.T(locale, "common.all"), Selected: govID == ""}}
	if govs, err := h.loadGovernorates(ctx); err == nil {
		for _, g := range govs {
			value := strconv.FormatUint(g.ID, 10)
			governorates = append(governorates, option{Value: value, Label: g.Name.In(locale), Selected: value == govID})
		}
	}

	notice := ""
	env, err := h.api.ListMosques(ctx, "", models.ListQuery{
		Page:    pageParam(c),
		PerPage: h.opts.PerPage,
		Search:  search,
		Filters: map[string]string{"governorate_id": govID},
	})
	if err != nil {
		otellog.WarnCtx(ctx, "mosque list unavailable", zap.String("kind", string(apierr.KindOf(err))))
		notice = "common.fetch_err"
	}

	return c.Render(http.StatusOK, "mosques.html", pongo2.Context{
		"mosques":      mosqueViews(locale, env.Data),
		"governorates": governorates,
		"q":            search,
		"notice":       notice,
		"pager":        newPager(c, env.Meta),
	})
}

func (h *Handler) Healthz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(h.health))
	for name, check := range h.health {
		if err := check(ctx); err != nil {
			status = http.StatusServiceUnavailable
			checks[name] = err.Error()
			continue
		}
		checks[name] = "ok"
	}
	return c.JSON(status, map[string]any{"status": http.StatusText(status), "checks": checks})
}
