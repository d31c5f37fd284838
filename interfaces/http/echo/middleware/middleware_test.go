package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/octabyte/emaar-web/enums"
	"github.com/octabyte/emaar-web/models"
	"github.com/octabyte/emaar-web/session"
	reqctx "github.com/octabyte/emaar-web/utils/context"
)

type fixedNegotiator enums.Locale

func (f fixedNegotiator) Negotiate(string) enums.Locale { return enums.Locale(f) }

type MiddlewareTestSuite struct {
	suite.Suite
	store   *session.MemoryStore
	pending map[string]bool
}

func TestMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareTestSuite))
}

func (s *MiddlewareTestSuite) SetupTest() {
	s.store = session.NewMemoryStore(time.Hour)
	s.pending = map[string]bool{}
}

func (s *MiddlewareTestSuite) newEcho(guard GuardConfig) *echo.Echo {
	guard.Pending = func(sid string) bool { return s.pending[sid] }

	e := echo.New()
	g := e.Group("/:lang",
		SetLocale(fixedNegotiator(enums.LocaleArabic)),
		SetSessionInContext(s.store, CookieConfig{}),
		SetTokenInContext(),
	)
	g.GET("/dashboard", func(c echo.Context) error {
		return c.String(http.StatusOK, "dashboard:"+TokenFrom(c))
	}, Guard(guard))
	g.GET("/public", func(c echo.Context) error {
		sid, _ := SessionFrom(c)
		if reqctx.GetSessionIDFromContext(c.Request().Context()) != sid {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.String(http.StatusOK, string(LocaleFrom(c)))
	})
	return e
}

func (s *MiddlewareTestSuite) login(sid string, role enums.Role) {
	s.Require().NoError(s.store.Set(context.Background(), sid, models.Session{
		Token: "tok",
		User:  &models.User{ID: 1, Role: models.Role{RoleName: role}},
	}))
}

func (s *MiddlewareTestSuite) do(e *echo.Echo, path, sid string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: sid})
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func (s *MiddlewareTestSuite) TestIssuesSessionCookie() {
	rec := s.do(s.newEcho(GuardConfig{}), "/en/public", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("en", rec.Body.String())
	cookies := rec.Result().Cookies()
	s.Require().Len(cookies, 1)
	s.Equal(DefaultCookieName, cookies[0].Name)
	s.True(session.ValidID(cookies[0].Value))
	s.True(cookies[0].HttpOnly)
}

func (s *MiddlewareTestSuite) TestForgedSessionIDIsReplaced() {
	rec := s.do(s.newEcho(GuardConfig{}), "/en/public", "../../etc/passwd")

	cookies := rec.Result().Cookies()
	s.Require().Len(cookies, 1)
	s.NotEqual("../../etc/passwd", cookies[0].Value)
}

func (s *MiddlewareTestSuite) TestUnknownLangFallsBackToNegotiation() {
	rec := s.do(s.newEcho(GuardConfig{}), "/fr/public", "")
	s.Equal("ar", rec.Body.String())
}

func (s *MiddlewareTestSuite) TestGuardRedirectsAnonymousToLogin() {
	rec := s.do(s.newEcho(GuardConfig{RequireAuth: true}), "/en/dashboard?tab=1", session.NewID())

	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/en/login?next=%2Fen%2Fdashboard%3Ftab%3D1", rec.Header().Get(echo.HeaderLocation))
}

func (s *MiddlewareTestSuite) TestGuardWaitsWhileLoginInFlight() {
	sid := session.NewID()
	s.pending[sid] = true

	rec := s.do(s.newEcho(GuardConfig{RequireAuth: true}), "/en/dashboard", sid)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("1", rec.Header().Get("Refresh"))
	s.Empty(rec.Header().Get(echo.HeaderLocation))
	s.NotContains(rec.Body.String(), "dashboard:")
}

func (s *MiddlewareTestSuite) TestGuardRoleMismatchRedirectsToUnauthorized() {
	sid := session.NewID()
	s.login(sid, enums.RoleDonor)

	rec := s.do(s.newEcho(GuardConfig{Roles: enums.StaffRoles}), "/ar/dashboard", sid)

	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/ar/unauthorized", rec.Header().Get(echo.HeaderLocation))
}

func (s *MiddlewareTestSuite) TestGuardRolesImplyAuth() {
	rec := s.do(s.newEcho(GuardConfig{Roles: enums.StaffRoles}), "/ar/dashboard", session.NewID())

	s.Equal(http.StatusSeeOther, rec.Code)
	s.Contains(rec.Header().Get(echo.HeaderLocation), "/ar/login?next=")
}

func (s *MiddlewareTestSuite) TestGuardAllowsMatchingRole() {
	sid := session.NewID()
	s.login(sid, enums.RoleStaff)

	rec := s.do(s.newEcho(GuardConfig{Roles: enums.StaffRoles}), "/en/dashboard", sid)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("dashboard:tok", rec.Body.String())
}

func (s *MiddlewareTestSuite) TestGuardReevaluatesEachRequest() {
	sid := session.NewID()
	e := s.newEcho(GuardConfig{RequireAuth: true})

	s.Equal(http.StatusSeeOther, s.do(e, "/en/dashboard", sid).Code)
	s.login(sid, enums.RoleDonor)
	s.Equal(http.StatusOK, s.do(e, "/en/dashboard", sid).Code)
	s.Require().NoError(s.store.Clear(context.Background(), sid))
	s.Equal(http.StatusSeeOther, s.do(e, "/en/dashboard", sid).Code)
}

func (s *MiddlewareTestSuite) TestRequestLogger() {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	e := echo.New()
	e.Use(RequestLogger(nil))
	e.GET("/missing", func(c echo.Context) error {
		return echo.ErrNotFound
	})

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("req-123", rec.Header().Get(RequestIDHeader))
	s.Require().Equal(1, logs.Len())
	entry := logs.All()[0]
	s.Equal(zapcore.WarnLevel, entry.Level)
	s.Equal("req-123", entry.ContextMap()["request_id"])
	s.Equal(int64(http.StatusNotFound), entry.ContextMap()["status"])
}
