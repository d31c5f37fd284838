package metrics

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Login outcomes recorded by RecordLoginAttempt.
const (
	LoginSucceeded = "succeeded"
	LoginFailed    = "failed"
)

// Guard decisions recorded by RecordGuardDecision.
const (
	GuardAllow        = "allow"
	GuardWait         = "wait"
	GuardLogin        = "login"
	GuardUnauthorized = "unauthorized"
)

var (
	meter metric.Meter

	// HTTP metrics
	httpRequestsTotal    metric.Int64Counter
	httpRequestDuration  metric.Float64Histogram
	httpRequestsInFlight metric.Int64UpDownCounter

	// Domain metrics
	loginAttemptsTotal   metric.Int64Counter
	guardDecisionsTotal  metric.Int64Counter
	upstreamCallsTotal   metric.Int64Counter
	upstreamCallDuration metric.Float64Histogram
	donationsSubmitted   metric.Int64Counter

	// Runtime metrics
	goGoroutines metric.Int64ObservableGauge
)

// Init creates every instrument on the global meter provider. Recording
// functions are no-ops until Init succeeds.
func Init(serviceName string) error {
	meter = otel.Meter(serviceName)

	var err error

	httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	httpRequestsInFlight, err = meter.Int64UpDownCounter(
		"http_requests_in_flight",
		metric.WithDescription("Number of HTTP requests currently in flight"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create http_requests_in_flight gauge: %w", err)
	}

	loginAttemptsTotal, err = meter.Int64Counter(
		"login_attempts_total",
		metric.WithDescription("Login attempts by outcome and error kind"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create login_attempts_total counter: %w", err)
	}

	guardDecisionsTotal, err = meter.Int64Counter(
		"guard_decisions_total",
		metric.WithDescription("Route guard decisions"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create guard_decisions_total counter: %w", err)
	}

	upstreamCallsTotal, err = meter.Int64Counter(
		"upstream_calls_total",
		metric.WithDescription("Total number of calls to the upstream API"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create upstream_calls_total counter: %w", err)
	}

	upstreamCallDuration, err = meter.Float64Histogram(
		"upstream_call_duration_seconds",
		metric.WithDescription("Upstream API call duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create upstream_call_duration_seconds histogram: %w", err)
	}

	donationsSubmitted, err = meter.Int64Counter(
		"donations_submitted_total",
		metric.WithDescription("Donation forms accepted by the upstream API"),
		metric.WithUnit("{donation}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create donations_submitted_total counter: %w", err)
	}

	goGoroutines, err = meter.Int64ObservableGauge(
		"go_goroutines",
		metric.WithDescription("Number of goroutines currently running"),
		metric.WithUnit("{goroutine}"),
		metric.WithInt64Callback(func(ctx context.Context, observer metric.Int64Observer) error {
			observer.Observe(int64(runtime.NumGoroutine()))
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create go_goroutines gauge: %w", err)
	}

	return nil
}

// RecordHTTPRequest records a served request.
func RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, duration time.Duration) {
	if httpRequestsTotal == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", statusCode),
	)
	httpRequestsTotal.Add(ctx, 1, attrs)
	httpRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// TrackInFlight increments the in-flight gauge and returns the matching decrement.
func TrackInFlight(ctx context.Context, method, route string) func() {
	if httpRequestsInFlight == nil {
		return func() {}
	}
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
	)
	httpRequestsInFlight.Add(ctx, 1, attrs)
	return func() {
		httpRequestsInFlight.Add(ctx, -1, attrs)
	}
}

// RecordLoginAttempt counts a login by outcome. kind is the error kind for
// failures and empty otherwise.
func RecordLoginAttempt(ctx context.Context, outcome, kind string) {
	if loginAttemptsTotal == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String("outcome", outcome)}
	if kind != "" {
		attrs = append(attrs, attribute.String("error.kind", kind))
	}
	loginAttemptsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordGuardDecision counts what the route guard did with a request.
func RecordGuardDecision(ctx context.Context, decision string) {
	if guardDecisionsTotal == nil {
		return
	}
	guardDecisionsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("decision", decision)))
}

// RecordUpstreamCall records metrics for calls to the upstream API.
func RecordUpstreamCall(ctx context.Context, operation string, duration time.Duration, success bool) {
	if upstreamCallsTotal == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.Bool("success", success),
	)
	upstreamCallsTotal.Add(ctx, 1, attrs)
	upstreamCallDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordDonationSubmitted counts an accepted donation in the given currency.
func RecordDonationSubmitted(ctx context.Context, currency string) {
	if donationsSubmitted == nil {
		return
	}
	donationsSubmitted.Add(ctx, 1, metric.WithAttributes(attribute.String("currency", currency)))
}
