package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	otellog "github.com/octabyte/emaar-web/otel/logger"
	reqctx "github.com/octabyte/emaar-web/utils/context"
	"github.com/octabyte/emaar-web/utils/logger"
)

// RequestLogger assigns a request id (reusing an inbound X-Request-ID) and
// writes one access log line per request.
func RequestLogger(skipper func(c echo.Context) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}

			req := c.Request()
			id := req.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(RequestIDHeader, id)
			c.SetRequest(req.WithContext(reqctx.WithRequestID(req.Context(), id)))

			start := time.Now()
			err := next(c)
			if err != nil {
				// Let the error handler write the response so the logged
				// status is the one the client sees.
				c.Error(err)
			}

			fields := []zap.Field{
				zap.String("request_id", id),
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.String("route", c.Path()),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.Int64("bytes_out", c.Response().Size),
				zap.String("remote_ip", c.RealIP()),
			}
			fields = append(fields, otellog.TraceFields(c.Request().Context())...)

			switch status := c.Response().Status; {
			case status >= 500:
				logger.LogError("request", append(fields, zap.Error(err))...)
			case status >= 400:
				logger.LogWarn("request", fields...)
			default:
				logger.LogInfo("request", fields...)
			}
			return nil
		}
	}
}
