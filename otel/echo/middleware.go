package echo

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/octabyte/emaar-web/otel/metrics"
	reqctx "github.com/octabyte/emaar-web/utils/context"
)

// Middleware returns an Echo middleware that instruments HTTP requests with OpenTelemetry
func Middleware(serviceName string) echo.MiddlewareFunc {
	return MiddlewareWithConfig(serviceName, nil)
}

// MiddlewareWithConfig returns an Echo middleware that skips tracing for
// requests matched by skipper, such as health checks and static assets.
func MiddlewareWithConfig(serviceName string, skipper func(c echo.Context) bool) echo.MiddlewareFunc {
	opts := []otelecho.Option{}
	if skipper != nil {
		opts = append(opts, otelecho.WithSkipper(skipper))
	}
	baseMiddleware := otelecho.Middleware(serviceName, opts...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		// Session middleware runs inside the span, so attributes are set
		// after the handler chain returns.
		annotated := func(c echo.Context) error {
			err := next(c)
			annotateSpan(c, err)
			return err
		}
		return baseMiddleware(annotated)
	}
}

func annotateSpan(c echo.Context, err error) {
	span := trace.SpanFromContext(c.Request().Context())
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(
		attribute.String("http.route", c.Path()),
		attribute.String("app.locale", string(reqctx.GetLocaleFromContext(c.Request().Context()))),
	)

	s := reqctx.GetSessionFromContext(c.Request().Context())
	span.SetAttributes(attribute.Bool("user.authenticated", s.IsAuthenticated()))
	if s.IsAuthenticated() {
		span.SetAttributes(
			attribute.Int64("user.id", int64(s.User.ID)),
			attribute.String("user.role", s.Role()),
		)
	}

	if err != nil {
		span.SetAttributes(attribute.String("error.message", err.Error()))
	}
}

// Metrics records request counters, latency and in-flight requests keyed by
// the matched route.
func Metrics(skipper func(c echo.Context) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}

			ctx := c.Request().Context()
			method := c.Request().Method
			route := c.Path()
			start := time.Now()

			done := metrics.TrackInFlight(ctx, method, route)
			defer done()

			err := next(c)
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else if status < 400 {
					status = 500
				}
			}
			metrics.RecordHTTPRequest(ctx, method, route, status, time.Since(start))
			return err
		}
	}
}
