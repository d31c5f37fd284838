package web

import (
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/octabyte/emaar-web/enums"
	"github.com/octabyte/emaar-web/models"
	"github.com/octabyte/emaar-web/utils"
)

// projectView is a project with every display string resolved for one
// locale.
type projectView struct {
	ID          uint64
	Name        string
	Description string
	Status      string
	StatusLabel string
	ImageURL    string
	Mosque      string
	Target      string
	Raised      string
	Remaining   string
	Progress    float64
	ProgressPct string
	Donors      string
	StartDate   string
	EndDate     string
}

func (h *Handler) projectView(locale enums.Locale, p models.Project) projectView {
	progress := utils.CalculateProgress(p.RaisedAmount, p.TargetAmount)
	v := projectView{
		ID:          p.ID,
		Name:        p.Name.In(locale),
		Description: p.Description.In(locale),
		Status:      string(p.Status),
		StatusLabel: h.bundle.T(locale, "projects.status."+string(p.Status)),
		ImageURL:    p.ImageURL,
		Target:      h.money(locale, p.TargetAmount, p.Currency),
		Raised:      h.money(locale, p.RaisedAmount, p.Currency),
		Remaining:   h.money(locale, utils.Remaining(p.RaisedAmount, p.TargetAmount), p.Currency),
		Progress:    progress,
		ProgressPct: h.bundle.FormatPercent(locale, progress, 0),
		Donors:      h.bundle.T(locale, "projects.donors", h.bundle.FormatNumber(locale, float64(p.DonorsCount), 0)),
	}
	if p.Mosque != nil {
		v.Mosque = p.Mosque.Name.In(locale)
	}
	if p.StartDate != nil {
		v.StartDate = utils.FormatDate(*p.StartDate, h.opts.Timezone)
	}
	if p.EndDate != nil {
		v.EndDate = utils.FormatDate(*p.EndDate, h.opts.Timezone)
	}
	return v
}

func (h *Handler) projectViews(locale enums.Locale, projects []models.Project) []projectView {
	out := make([]projectView, 0, len(projects))
	for _, p := range projects {
		out = append(out, h.projectView(locale, p))
	}
	return out
}

func (h *Handler) money(locale enums.Locale, amount float64, currency string) string {
	n := h.bundle.FormatNumber(locale, amount, 0)
	if currency == "" {
		return n
	}
	return n + " " + currency
}

type mosqueView struct {
	ID          uint64
	Name        string
	Governorate string
	DamageLevel string
	Status      string
}

func mosqueViews(locale enums.Locale, mosques []models.Mosque) []mosqueView {
	out := make([]mosqueView, 0, len(mosques))
	for _, m := range mosques {
		v := mosqueView{ID: m.ID, Name: m.Name.In(locale), DamageLevel: m.DamageLevel, Status: m.Status}
		if m.Governorate != nil {
			v.Governorate = m.Governorate.Name.In(locale)
		}
		out = append(out, v)
	}
	return out
}

type mosqueDetail struct {
	mosqueView
	Description string
	Latitude    string
	Longitude   string
	Media       []models.MosqueMedia
}

func (h *Handler) mosqueDetail(locale enums.Locale, m models.Mosque) mosqueDetail {
	return mosqueDetail{
		mosqueView:  mosqueViews(locale, []models.Mosque{m})[0],
		Description: m.Description.In(locale),
		Latitude:    h.bundle.FormatNumber(locale, m.Latitude, 5),
		Longitude:   h.bundle.FormatNumber(locale, m.Longitude, 5),
		Media:       m.Media,
	}
}

type donationView struct {
	ID          uint64
	Project     string
	Donor       string
	Phone       string
	Amount      string
	Status      string
	StatusLabel string
	ReceiptURL  string
	Notes       string
	Date        string
	Pending     bool
}

func (h *Handler) donationViews(locale enums.Locale, donations []models.Donation) []donationView {
	out := make([]donationView, 0, len(donations))
	for _, d := range donations {
		v := donationView{
			ID:          d.ID,
			Donor:       d.DonorName,
			Phone:       d.DonorPhone,
			Amount:      h.money(locale, d.Amount, d.Currency),
			Status:      string(d.Status),
			StatusLabel: h.bundle.T(locale, "donation.status."+string(d.Status)),
			ReceiptURL:  d.ReceiptURL,
			Notes:       d.Notes,
			Date:        utils.FormatDateTime(d.CreatedAt, h.opts.Timezone),
			Pending:     d.Status == enums.DonationPending,
		}
		if d.Project != nil {
			v.Project = d.Project.Name.In(locale)
		}
		out = append(out, v)
	}
	return out
}

type importView struct {
	ID          uint64
	FileName    string
	StatusLabel string
	Rows        string
	Date        string
	Errors      []models.ImportRowError
}

func (h *Handler) importViews(locale enums.Locale, batches []models.ImportBatch) []importView {
	out := make([]importView, 0, len(batches))
	for _, b := range batches {
		out = append(out, importView{
			ID:          b.ID,
			FileName:    b.FileName,
			StatusLabel: h.bundle.T(locale, "import.status."+string(b.Status)),
			Rows:        h.bundle.T(locale, "import.rows", strconv.Itoa(b.ImportedRows), strconv.Itoa(b.TotalRows)),
			Date:        utils.FormatDateTime(b.CreatedAt, h.opts.Timezone),
			Errors:      b.Errors,
		})
	}
	return out
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

type pager struct {
	Page    int
	Last    int
	PrevURL string
	NextURL string
}

// newPager links to neighbouring pages, keeping the current filters.
func newPager(c echo.Context, meta models.Meta) *pager {
	if meta.LastPage <= 1 {
		return nil
	}
	p := &pager{Page: meta.CurrentPage, Last: meta.LastPage}
	if meta.HasPrev() {
		p.PrevURL = pageURL(c, meta.CurrentPage-1)
	}
	if meta.HasNext() {
		p.NextURL = pageURL(c, meta.CurrentPage+1)
	}
	return p
}

func pageURL(c echo.Context, page int) string {
	q := url.Values{}
	for k, v := range c.QueryParams() {
		q[k] = v
	}
	q.Set("page", strconv.Itoa(page))
	return c.Request().URL.Path + "?" + q.Encode()
}

func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func idParam(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}
