package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitOpenTelemetryDisabled(t *testing.T) {
	shutdown, err := InitOpenTelemetry(context.Background(), Config{Enabled: false})
	require.NoError(t, err)

	assert.NoError(t, shutdown(context.Background()))
	assert.NotNil(t, otel.GetTextMapPropagator())
}

func TestInitOpenTelemetryRejectsBadConfig(t *testing.T) {
	testCases := []struct {
		name string
		cfg  Config
	}{
		{"missing service", Config{Enabled: true, Endpoint: "localhost:4318", SampleRate: 1}},
		{"missing endpoint", Config{Enabled: true, ServiceName: "emaar-web", SampleRate: 1}},
		{"sample rate too high", Config{Enabled: true, ServiceName: "emaar-web", Endpoint: "localhost:4318", SampleRate: 1.5}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := InitOpenTelemetry(context.Background(), tc.cfg)
			assert.Error(t, err)
		})
	}
}

func TestEndpointHost(t *testing.T) {
	host, insecure := endpointHost("https://otel.example.org:4318")
	assert.Equal(t, "otel.example.org:4318", host)
	assert.False(t, insecure)

	host, insecure = endpointHost("http://collector:4318")
	assert.Equal(t, "collector:4318", host)
	assert.True(t, insecure)

	host, insecure = endpointHost("otel")
	assert.Equal(t, "otel", host)
	assert.True(t, insecure)
}

func TestNewResource(t *testing.T) {
	res := newResource(Config{ServiceName: "emaar-web", Environment: "test"})
	require.NotNil(t, res)

	var version string
	for _, kv := range res.Attributes() {
		if kv.Key == "service.version" {
			version = kv.Value.AsString()
		}
	}
	assert.Equal(t, "dev", version)
}
