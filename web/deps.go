package web

import (
	"context"
	"io"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/octabyte/emaar-web/activity"
	"github.com/octabyte/emaar-web/cache"
	"github.com/octabyte/emaar-web/enums"
	"github.com/octabyte/emaar-web/i18n"
	"github.com/octabyte/emaar-web/interfaces/http/echo/middleware"
	"github.com/octabyte/emaar-web/models"
	"github.com/octabyte/emaar-web/session"
)

// API is the upstream REST API as the pages use it. *apiclient.Client
// satisfies it.
type API interface {
	ListProjects(ctx context.Context, q models.ListQuery) (models.Envelope[[]models.Project], error)
	GetProject(ctx context.Context, id uint64) (models.Project, error)
	ListMosques(ctx context.Context, token string, q models.ListQuery) (models.Envelope[[]models.Mosque], error)
	GetMosque(ctx context.Context, id uint64) (models.Mosque, error)
	UploadMosqueMedia(ctx context.Context, token string, mosqueID uint64, fileName string, file io.Reader) (models.MosqueMedia, error)
	ListDonations(ctx context.Context, token string, q models.ListQuery) (models.Envelope[[]models.Donation], error)
	CreateDonation(ctx context.Context, in models.DonationInput) (models.Donation, error)
	UpdateDonationStatus(ctx context.Context, token string, id uint64, status enums.DonationStatus, note string) (models.Donation, error)
	Governorates(ctx context.Context) ([]models.Governorate, error)
	Districts(ctx context.Context, governorateID uint64) ([]models.District, error)
	SubDistricts(ctx context.Context, districtID uint64) ([]models.SubDistrict, error)
	Neighborhoods(ctx context.Context, subDistrictID uint64) ([]models.Neighborhood, error)
	ImportMosques(ctx context.Context, token, fileName string, file io.Reader) (models.ImportBatch, error)
	ListImports(ctx context.Context, token string, q models.ListQuery) (models.Envelope[[]models.ImportBatch], error)
}

// Authenticator is the sign-in flow. *auth.Service satisfies it.
type Authenticator interface {
	Login(ctx context.Context, sid, email, password string) (models.Session, error)
	Logout(ctx context.Context, sid string) error
	Rotate(ctx context.Context, sid string) (string, error)
	Invalidate(ctx context.Context, sid string)
	Pending(sid string) bool
}

// HealthCheck reports whether a backing service is reachable.
type HealthCheck func(ctx context.Context) error

type Options struct {
	Cookie        middleware.CookieConfig
	MaxUploadSize int64
	Timezone      string
	CacheTTL      time.Duration
	DemoContent   bool
	PerPage       int
	ServiceName   string
	Debug         bool
}

type Deps struct {
	API       API
	Auth      Authenticator
	Store     session.Store
	Bundle    *i18n.Bundle
	Validator *validator.Validate
	Cache     cache.Cache
	Publisher activity.Publisher
	Health    map[string]HealthCheck
	Options   Options
}

type Handler struct {
	api       API
	auth      Authenticator
	bundle    *i18n.Bundle
	validate  *validator.Validate
	cache     cache.Cache
	publisher activity.Publisher
	health    map[string]HealthCheck
	opts      Options
}

func newHandler(d Deps) *Handler {
	h := &Handler{
		api:       d.API,
		auth:      d.Auth,
		bundle:    d.Bundle,
		validate:  d.Validator,
		cache:     d.Cache,
		publisher: d.Publisher,
		health:    d.Health,
		opts:      d.Options,
	}
	if h.cache == nil {
		h.cache = cache.Noop{}
	}
	if h.publisher == nil {
		h.publisher = activity.Noop{}
	}
	if h.opts.PerPage <= 0 {
		h.opts.PerPage = 12
	}
	if h.opts.Timezone == "" {
		h.opts.Timezone = "UTC"
	}
	if h.opts.MaxUploadSize <= 0 {
		h.opts.MaxUploadSize = 10 << 20
	}
	return h
}
