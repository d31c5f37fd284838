package web

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/octabyte/emaar-web/activity"
	"github.com/octabyte/emaar-web/apiclient"
	"github.com/octabyte/emaar-web/apierr"
	"github.com/octabyte/emaar-web/auth"
	"github.com/octabyte/emaar-web/enums"
	"github.com/octabyte/emaar-web/i18n"
	"github.com/octabyte/emaar-web/interfaces/http/echo/middleware"
	"github.com/octabyte/emaar-web/models"
	"github.com/octabyte/emaar-web/session"
)

type fakeAPI struct {
	mu sync.Mutex

	projects    []models.Project
	projectsErr error
	projectErr  error
	mosquesErr  error
	mosqueErr   error
	locationErr error
	createErr   error
	loginErr    error
	role        enums.Role

	loginCalls  int
	logoutCalls []string
	donations   []models.DonationInput
	reviews     []enums.DonationStatus
	imports     []string
	media       []string
}

func (f *fakeAPI) Login(_ context.Context, email, _ string) (apiclient.LoginResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	if f.loginErr != nil {
		return apiclient.LoginResult{}, f.loginErr
	}
	return apiclient.LoginResult{
		Token: "tok-123",
		User:  models.User{ID: 7, Name: "Huda", Email: email, Role: models.Role{RoleName: f.role}},
	}, nil
}

func (f *fakeAPI) Logout(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls = append(f.logoutCalls, token)
	return nil
}

func (f *fakeAPI) ListProjects(context.Context, models.ListQuery) (models.Envelope[[]models.Project], error) {
	if f.projectsErr != nil {
		return models.Envelope[[]models.Project]{}, f.projectsErr
	}
	return models.Envelope[[]models.Project]{
		Status: true,
		Data:   f.projects,
		Meta:   models.Meta{CurrentPage: 1, LastPage: 1, Total: len(f.projects)},
	}, nil
}

func (f *fakeAPI) GetProject(_ context.Context, id uint64) (models.Project, error) {
	if f.projectErr != nil {
		return models.Project{}, f.projectErr
	}
	for _, p := range f.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Project{}, &apierr.Error{Kind: apierr.KindUnknown, Status: http.StatusNotFound}
}

func (f *fakeAPI) ListMosques(context.Context, string, models.ListQuery) (models.Envelope[[]models.Mosque], error) {
	if f.mosquesErr != nil {
		return models.Envelope[[]models.Mosque]{}, f.mosquesErr
	}
	return models.Envelope[[]models.Mosque]{
		Data: []models.Mosque{{ID: 1, Name: models.Localized{Ar: "جامع النوري", En: "Al-Nuri Mosque"}}},
		Meta: models.Meta{CurrentPage: 1, LastPage: 1, Total: 1},
	}, nil
}

func (f *fakeAPI) ListDonations(context.Context, string, models.ListQuery) (models.Envelope[[]models.Donation], error) {
	return models.Envelope[[]models.Donation]{
		Data: []models.Donation{{ID: 3, DonorName: "Omar", Amount: 5000, Currency: "IQD", Status: enums.DonationPending}},
		Meta: models.Meta{CurrentPage: 1, LastPage: 1, Total: 1},
	}, nil
}

func (f *fakeAPI) CreateDonation(_ context.Context, in models.DonationInput) (models.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return models.Donation{}, f.createErr
	}
	if in.Receipt != nil {
		if _, err := io.ReadAll(in.Receipt); err != nil {
			return models.Donation{}, err
		}
	}
	f.donations = append(f.donations, in)
	return models.Donation{ID: 99, ProjectID: in.ProjectID, Status: enums.DonationPending}, nil
}

func (f *fakeAPI) UpdateDonationStatus(_ context.Context, _ string, id uint64, status enums.DonationStatus, _ string) (models.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviews = append(f.reviews, status)
	return models.Donation{ID: id, ProjectID: 1, Status: status}, nil
}

func (f *fakeAPI) Governorates(context.Context) ([]models.Governorate, error) {
	if f.locationErr != nil {
		return nil, f.locationErr
	}
	return []models.Governorate{{ID: 1, Name: models.Localized{Ar: "نينوى", En: "Nineveh"}}}, nil
}

func (f *fakeAPI) Districts(_ context.Context, governorateID uint64) ([]models.District, error) {
	return []models.District{{ID: 10, GovernorateID: governorateID, Name: models.Localized{Ar: "الموصل", En: "Mosul"}}}, nil
}

func (f *fakeAPI) SubDistricts(context.Context, uint64) ([]models.SubDistrict, error) {
	return []models.SubDistrict{}, nil
}

func (f *fakeAPI) Neighborhoods(context.Context, uint64) ([]models.Neighborhood, error) {
	return []models.Neighborhood{}, nil
}

func (f *fakeAPI) ImportMosques(_ context.Context, _, fileName string, _ io.Reader) (models.ImportBatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imports = append(f.imports, fileName)
	return models.ImportBatch{ID: 5, FileName: fileName, Status: enums.ImportQueued}, nil
}

func (f *fakeAPI) ListImports(context.Context, string, models.ListQuery) (models.Envelope[[]models.ImportBatch], error) {
	return models.Envelope[[]models.ImportBatch]{Data: []models.ImportBatch{}}, nil
}

func (f *fakeAPI) GetMosque(_ context.Context, id uint64) (models.Mosque, error) {
	if f.mosqueErr != nil {
		return models.Mosque{}, f.mosqueErr
	}
	if id != 12 {
		return models.Mosque{}, &apierr.Error{Kind: apierr.KindUnknown, Status: http.StatusNotFound}
	}
	return models.Mosque{
		ID:          12,
		Name:        models.Localized{Ar: "جامع النوري", En: "Al-Nuri Mosque"},
		DamageLevel: "severe",
		Media:       []models.MosqueMedia{{ID: 1, URL: "https://cdn.example.org/m/1.jpg", Type: "image"}},
	}, nil
}

func (f *fakeAPI) UploadMosqueMedia(_ context.Context, _ string, _ uint64, fileName string, _ io.Reader) (models.MosqueMedia, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.media = append(f.media, fileName)
	return models.MosqueMedia{ID: 2, URL: "https://cdn.example.org/m/2.jpg", Type: "image"}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []activity.Event
}

func (r *recordingPublisher) Publish(_ context.Context, e activity.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recordingPublisher) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Name)
	}
	return out
}

// flakyStore fails Clear on demand, like a Redis outage during logout.
type flakyStore struct {
	*session.MemoryStore
	clearErr error
}

func (f *flakyStore) Clear(ctx context.Context, id string) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	return f.MemoryStore.Clear(ctx, id)
}

// browser keeps cookies between requests like a real client, which the
// session and CSRF middlewares rely on.
type browser struct {
	e       *echo.Echo
	cookies map[string]*http.Cookie
	lang    string
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range b.cookies {
		req.AddCookie(ck)
	}
	if req.Header.Get("Accept-Language") == "" {
		req.Header.Set("Accept-Language", b.lang)
	}
	rec := httptest.NewRecorder()
	b.e.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		b.cookies[ck.Name] = ck
	}
	return rec
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) csrf() string {
	if ck, ok := b.cookies["_csrf"]; ok {
		return ck.Value
	}
	return ""
}

func (b *browser) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	if form.Get(csrfField) == "" {
		form.Set(csrfField, b.csrf())
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return b.do(req)
}

func (b *browser) postMultipart(path string, fields map[string]string, fileField, fileName string, content []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	_ = w.WriteField(csrfField, b.csrf())
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	if fileField != "" {
		part, _ := w.CreateFormFile(fileField, fileName)
		_, _ = part.Write(content)
	}
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return b.do(req)
}

type ServerTestSuite struct {
	suite.Suite
	api       *fakeAPI
	store     *flakyStore
	publisher *recordingPublisher
	health    map[string]HealthCheck
	opts      Options
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	s.api = &fakeAPI{
		role: enums.RoleAdmin,
		projects: []models.Project{{
			ID:           1,
			Name:         models.Localized{Ar: "ترميم جامع النوري", En: "Nuri restoration"},
			Status:       enums.ProjectActive,
			TargetAmount: 1000,
			RaisedAmount: 250,
			Currency:     "IQD",
		}},
	}
	s.store = &flakyStore{MemoryStore: session.NewMemoryStore(time.Hour)}
	s.publisher = &recordingPublisher{}
	s.health = nil
	s.opts = Options{MaxUploadSize: 1 << 20}
}

func (s *ServerTestSuite) newBrowser(lang string) *browser {
	bundle, err := i18n.New()
	s.Require().NoError(err)
	validate, err := bundle.NewValidator()
	s.Require().NoError(err)

	svc := auth.NewService(s.api, s.store, auth.WithPublisher(s.publisher), auth.WithValidator(validate))
	e, err := NewServer(Deps{
		API:       s.api,
		Auth:      svc,
		Store:     s.store,
		Bundle:    bundle,
		Validator: validate,
		Publisher: s.publisher,
		Health:    s.health,
		Options:   s.opts,
	})
	s.Require().NoError(err)
	return &browser{e: e, cookies: map[string]*http.Cookie{}, lang: lang}
}

func (s *ServerTestSuite) signIn(b *browser) {
	s.Require().Equal(http.StatusOK, b.get("/"+b.lang+"/login").Code)
	rec := b.postForm("/"+b.lang+"/login", url.Values{"email": {"huda@example.org"}, "password": {"secret"}})
	s.Require().Equal(http.StatusSeeOther, rec.Code)
}

func (s *ServerTestSuite) TestRootRedirectsToPreferredLocale() {
	b := s.newBrowser("en-US,en;q=0.9")
	rec := b.get("/")
	s.Equal(http.StatusFound, rec.Code)
	s.Equal("/en", rec.Header().Get(echo.HeaderLocation))
}

func (s *ServerTestSuite) TestHomeRendersInBothLocales() {
	en := s.newBrowser("en").get("/en")
	s.Equal(http.StatusOK, en.Code)
	s.Contains(en.Body.String(), `dir="ltr"`)
	s.Contains(en.Body.String(), "Nuri restoration")

	ar := s.newBrowser("ar").get("/ar")
	s.Equal(http.StatusOK, ar.Code)
	s.Contains(ar.Body.String(), `dir="rtl"`)
	s.Contains(ar.Body.String(), "ترميم جامع النوري")
	s.Contains(ar.Body.String(), `href="/en"`)
}

func (s *ServerTestSuite) TestUnknownLocaleIsNotFound() {
	rec := s.newBrowser("en").get("/fr/projects")
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "The page you requested does not exist.")
}

func (s *ServerTestSuite) TestDemoContentWhenAPIIsDown() {
	s.api.projectsErr = &apierr.Error{Kind: apierr.KindNetwork}
	s.opts.DemoContent = true

	rec := s.newBrowser("en").get("/en/projects?status=completed")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Showing sample content")
	s.Contains(rec.Body.String(), "Al-Khidr Mosque restoration")
	s.NotContains(rec.Body.String(), "Nabi Yunus")
}

func (s *ServerTestSuite) TestFetchErrorWithoutDemoContent() {
	s.api.projectsErr = &apierr.Error{Kind: apierr.KindServer, Status: http.StatusInternalServerError}

	rec := s.newBrowser("en").get("/en/projects")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "We could not load this section.")
	s.NotContains(rec.Body.String(), "Al-Khidr")
}

func (s *ServerTestSuite) TestProjectNotFound() {
	b := s.newBrowser("en")
	s.Equal(http.StatusNotFound, b.get("/en/projects/abc").Code)
	s.Equal(http.StatusNotFound, b.get("/en/projects/42").Code)

	rec := b.get("/en/projects/1?donated=1")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Thank you. Your donation was received")
}

func (s *ServerTestSuite) TestDonate() {
	b := s.newBrowser("en")
	s.Require().Equal(http.StatusOK, b.get("/en/projects/1").Code)

	rec := b.postMultipart("/en/projects/1/donate", map[string]string{
		"donor_name": "Ali",
		"amount":     "25000",
		"currency":   "iqd",
	}, "receipt", "receipt.pdf", []byte("%PDF-1.4"))

	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/en/projects/1?donated=1", rec.Header().Get(echo.HeaderLocation))
	s.Require().Len(s.api.donations, 1)
	s.Equal("IQD", s.api.donations[0].Currency)
	s.Equal(uint64(1), s.api.donations[0].ProjectID)
	s.Equal("receipt.pdf", s.api.donations[0].ReceiptName)
	s.Equal([]string{activity.DonationSubmitted}, s.publisher.names())
}

func (s *ServerTestSuite) TestDonateValidation() {
	b := s.newBrowser("en")
	s.Require().Equal(http.StatusOK, b.get("/en/projects/1").Code)

	rec := b.postMultipart("/en/projects/1/donate", map[string]string{
		"donor_name": "",
		"amount":     "0",
		"currency":   "IQD",
	}, "receipt", "receipt.exe", []byte("MZ"))

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "The receipt must be an image or a PDF.")
	s.Empty(s.api.donations)
	s.Empty(s.publisher.names())
}

func (s *ServerTestSuite) TestDonateUpstreamValidation() {
	s.api.createErr = &apierr.Error{
		Kind:   apierr.KindValidation,
		Status: http.StatusUnprocessableEntity,
		Fields: map[string][]string{"donor_phone": {"The phone number is not valid."}},
	}
	b := s.newBrowser("en")
	s.Require().Equal(http.StatusOK, b.get("/en/projects/1").Code)

	rec := b.postMultipart("/en/projects/1/donate", map[string]string{
		"donor_name":  "Ali",
		"donor_phone": "abc",
		"amount":      "100",
		"currency":    "USD",
	}, "", "", nil)

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "The phone number is not valid.")
}

func (s *ServerTestSuite) TestPostWithoutCSRFTokenIsRejected() {
	b := s.newBrowser("en")
	req := httptest.NewRequest(http.MethodPost, "/en/login", strings.NewReader("email=a%40b.c&password=x"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := b.do(req)

	s.Contains([]int{http.StatusBadRequest, http.StatusForbidden}, rec.Code)
	s.Zero(s.api.loginCalls)
}

func (s *ServerTestSuite) TestDashboardRequiresLogin() {
	rec := s.newBrowser("ar").get("/ar/dashboard")
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/ar/login?next=%2Far%2Fdashboard", rec.Header().Get(echo.HeaderLocation))
}

func (s *ServerTestSuite) TestLoginFlow() {
	b := s.newBrowser("en")
	s.Require().Equal(http.StatusOK, b.get("/en/login?next=/en/dashboard/donations").Code)

	rec := b.postForm("/en/login", url.Values{
		"email":    {"huda@example.org"},
		"password": {"secret"},
		"next":     {"/en/dashboard/donations"},
	})
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/en/dashboard/donations", rec.Header().Get(echo.HeaderLocation))

	rec = b.get("/en/dashboard")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Welcome, Huda")
	s.Contains(rec.Body.String(), "Omar")

	rec = b.get("/en/login")
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/en/dashboard", rec.Header().Get(echo.HeaderLocation))

	rec = b.postForm("/en/logout", url.Values{})
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/en", rec.Header().Get(echo.HeaderLocation))
	s.Equal([]string{"tok-123"}, s.api.logoutCalls)
	s.Equal([]string{activity.LoginSucceeded, activity.Logout}, s.publisher.names())

	s.Equal(http.StatusSeeOther, b.get("/en/dashboard").Code)
}

func (s *ServerTestSuite) TestLoginRejectsOpenRedirect() {
	b := s.newBrowser("en")
	s.Require().Equal(http.StatusOK, b.get("/en/login").Code)

	rec := b.postForm("/en/login", url.Values{
		"email":    {"huda@example.org"},
		"password": {"secret"},
		"next":     {"//evil.example.com"},
	})
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/en/dashboard", rec.Header().Get(echo.HeaderLocation))

	// Already signed in: the login page redirects straight away.
	rec = b.get("/en/login?next=" + url.QueryEscape("/\t/evil.example"))
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/en/dashboard", rec.Header().Get(echo.HeaderLocation))
}

func (s *ServerTestSuite) TestLoginRotatesSessionID() {
	b := s.newBrowser("en")
	s.Require().Equal(http.StatusOK, b.get("/en/login").Code)
	before := b.cookies[middleware.DefaultCookieName].Value
	s.Require().NotEmpty(before)

	s.signIn(b)
	after := b.cookies[middleware.DefaultCookieName].Value
	s.NotEqual(before, after)
	s.False(s.store.Get(context.Background(), before).IsAuthenticated())
	s.True(s.store.Get(context.Background(), after).IsAuthenticated())
	s.Equal(http.StatusOK, b.get("/en/dashboard").Code)
}

func (s *ServerTestSuite) TestLogoutFailureKeepsVisitorInformed() {
	b := s.newBrowser("en")
	s.signIn(b)
	s.store.clearErr = errors.New("redis: connection refused")

	rec := b.postForm("/en/logout", url.Values{})
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal(http.StatusOK, b.get("/en/dashboard").Code)
}

func (s *ServerTestSuite) TestLoginFailures() {
	b := s.newBrowser("en")
	s.Require().Equal(http.StatusOK, b.get("/en/login").Code)

	rec := b.postForm("/en/login", url.Values{"email": {"not-an-email"}, "password": {"x"}})
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Zero(s.api.loginCalls)

	s.api.loginErr = &apierr.Error{Kind: apierr.KindUnauthorized, Status: http.StatusUnauthorized}
	rec = b.postForm("/en/login", url.Values{"email": {"huda@example.org"}, "password": {"wrong"}})
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "The email or password is incorrect.")
	s.Contains(rec.Body.String(), `value="huda@example.org"`)

	s.api.loginErr = &apierr.Error{Kind: apierr.KindRateLimited, Status: http.StatusTooManyRequests}
	rec = b.postForm("/en/login", url.Values{"email": {"huda@example.org"}, "password": {"wrong"}})
	s.Equal(http.StatusTooManyRequests, rec.Code)
	s.Contains(rec.Body.String(), "Too many attempts.")
}

func (s *ServerTestSuite) TestRoleGuard() {
	s.api.role = enums.RoleDonor
	b := s.newBrowser("en")
	s.signIn(b)

	rec := b.get("/en/dashboard/donations")
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/en/unauthorized", rec.Header().Get(echo.HeaderLocation))

	rec = b.get("/en/unauthorized")
	s.Equal(http.StatusForbidden, rec.Code)
	s.Contains(rec.Body.String(), "Access denied")

	s.Equal(http.StatusOK, b.get("/en/dashboard/mosques").Code)
}

func (s *ServerTestSuite) TestExpiredTokenSignsOut() {
	b := s.newBrowser("en")
	s.signIn(b)

	s.api.mosquesErr = &apierr.Error{Kind: apierr.KindUnauthorized, Status: http.StatusUnauthorized}
	rec := b.get("/en/dashboard/mosques")
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/en/login?expired=1&next=%2Fen%2Fdashboard%2Fmosques", rec.Header().Get(echo.HeaderLocation))

	rec = b.get("/en/login?expired=1")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Your session has expired.")
	s.Contains(s.publisher.names(), activity.SessionInvalidated)
}

func (s *ServerTestSuite) TestReviewDonation() {
	b := s.newBrowser("en")
	s.signIn(b)

	rec := b.postForm("/en/dashboard/donations/3/status", url.Values{"status": {"pending"}})
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	rec = b.postForm("/en/dashboard/donations/3/status", url.Values{"status": {"approved"}, "note": {"ok"}})
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/en/dashboard/donations?saved=1", rec.Header().Get(echo.HeaderLocation))
	s.Equal([]enums.DonationStatus{enums.DonationApproved}, s.api.reviews)
	s.Contains(s.publisher.names(), activity.DonationReviewed)

	rec = b.get("/en/dashboard/donations?saved=1")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Saved.")
}

func (s *ServerTestSuite) TestImport() {
	b := s.newBrowser("en")
	s.signIn(b)
	s.Require().Equal(http.StatusOK, b.get("/en/dashboard/mosques/import").Code)

	rec := b.postMultipart("/en/dashboard/mosques/import", nil, "file", "mosques.txt", []byte("x"))
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "Only .xlsx, .xls and .csv files are accepted.")

	rec = b.postMultipart("/en/dashboard/mosques/import", nil, "", "", nil)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	rec = b.postMultipart("/en/dashboard/mosques/import", nil, "file", "mosques.csv", []byte("name\nNuri\n"))
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/en/dashboard/mosques/import?queued=1", rec.Header().Get(echo.HeaderLocation))
	s.Equal([]string{"mosques.csv"}, s.api.imports)
	s.Contains(s.publisher.names(), activity.MosquesImported)
}

func (s *ServerTestSuite) TestMosqueMedia() {
	b := s.newBrowser("en")
	s.signIn(b)

	rec := b.get("/en/dashboard/mosques/12")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Al-Nuri Mosque")
	s.Contains(rec.Body.String(), "https://cdn.example.org/m/1.jpg")
	s.Equal(http.StatusNotFound, b.get("/en/dashboard/mosques/99").Code)

	rec = b.postMultipart("/en/dashboard/mosques/12/media", nil, "file", "plan.exe", []byte("x"))
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "Only images and PDF files are accepted.")

	rec = b.postMultipart("/en/dashboard/mosques/12/media", nil, "file", "minaret.jpg", []byte("jpeg"))
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/en/dashboard/mosques/12?uploaded=1", rec.Header().Get(echo.HeaderLocation))
	s.Equal([]string{"minaret.jpg"}, s.api.media)
	s.Contains(s.publisher.names(), activity.MosqueMediaAdded)
}

func (s *ServerTestSuite) TestMosqueDetailFallsBackWhenAPIIsDown() {
	b := s.newBrowser("en")
	s.signIn(b)
	s.api.mosqueErr = &apierr.Error{Kind: apierr.KindNetwork}

	rec := b.get("/en/dashboard/mosques/12")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "We could not load this section.")
	s.Contains(rec.Body.String(), `action="/en/dashboard/mosques/12/media"`)

	rec = b.postMultipart("/en/dashboard/mosques/12/media", nil, "file", "plan.exe", []byte("x"))
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "Only images and PDF files are accepted.")
	s.Contains(rec.Body.String(), "We could not load this section.")
}

func (s *ServerTestSuite) TestImportNeedsAdmin() {
	s.api.role = enums.RoleStaff
	b := s.newBrowser("en")
	s.signIn(b)

	rec := b.get("/en/dashboard/mosques/import")
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/en/unauthorized", rec.Header().Get(echo.HeaderLocation))
}

func (s *ServerTestSuite) TestLocations() {
	b := s.newBrowser("ar")

	rec := b.get("/ar/locations/governorates")
	s.Equal(http.StatusOK, rec.Code)
	var govs []locationItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &govs))
	s.Equal([]locationItem{{ID: 1, Name: "نينوى"}}, govs)

	rec = b.get("/en/locations/governorates/1/districts")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[{"id":10,"name":"Mosul"}]`, rec.Body.String())

	rec = b.get("/en/locations/districts/0/sub-districts")
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)

	s.api.locationErr = &apierr.Error{Kind: apierr.KindNetwork}
	rec = b.get("/en/locations/governorates")
	s.Equal(http.StatusBadGateway, rec.Code)
	s.Contains(rec.Body.String(), "Unable to reach the server.")
}

func (s *ServerTestSuite) TestHealthz() {
	s.health = map[string]HealthCheck{
		"redis": func(context.Context) error { return nil },
	}
	rec := s.newBrowser("en").get("/healthz")
	s.Equal(http.StatusOK, rec.Code)

	s.health["redis"] = func(context.Context) error { return errors.New("connection refused") }
	rec = s.newBrowser("en").get("/healthz")
	s.Equal(http.StatusServiceUnavailable, rec.Code)
	s.Contains(rec.Body.String(), "connection refused")
}

func TestSafeNext(t *testing.T) {
	cases := map[string]string{
		"":                      "",
		"/en/dashboard":         "/en/dashboard",
		"//evil.example.com":    "",
		"https://evil.example":  "",
		"/\\evil.example.com":   "",
		"/en/projects?page=2":   "/en/projects?page=2",
		"dashboard":             "",
		"/en/x\r\nSet-Cookie:a": "",
		"/\t/evil.example":       "",
		"/\x00/evil.example":     "",
	}
	for in, want := range cases {
		if got := safeNext(in); got != want {
			t.Errorf("safeNext(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStatusForKindCoversEveryKind(t *testing.T) {
	for _, k := range apierr.Kinds {
		if code := statusForKind(k); code < 400 {
			t.Errorf("statusForKind(%s) = %d", k, code)
		}
	}
}
