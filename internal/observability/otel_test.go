package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExportSettingsFromEnv(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "yes")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-token=abc, broken, =v,k=")
	t.Setenv("OTEL_SAMPLER_RATIO", "3")
	t.Setenv("OTEL_TRACES_EXPORTER", "")

	s := exportSettingsFromEnv()
	require.True(t, s.Enabled)
	require.Equal(t, ExporterOTLP, s.Exporter)
	require.Equal(t, map[string]string{"x-token": "abc"}, s.Headers)
	require.Equal(t, float64(1), s.SampleRatio)
}

func TestExportSettingsDefaults(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")
	t.Setenv("OTEL_SAMPLER_RATIO", "-1")
	t.Setenv("OTEL_TRACES_EXPORTER", "bogus")

	s := exportSettingsFromEnv()
	require.False(t, s.Enabled)
	require.Equal(t, ExporterStdout, s.Exporter)
	require.Nil(t, s.Headers)
	require.Equal(t, float64(0), s.SampleRatio)
}

func TestNewSpanExporterNone(t *testing.T) {
	exp, err := newSpanExporter(context.Background(), exportSettings{Exporter: ExporterNone})
	require.NoError(t, err)
	require.Nil(t, exp)
}

func TestServiceNameOrDefault(t *testing.T) {
	require.Equal(t, "deckgen", serviceNameOrDefault("  "))
	require.Equal(t, "api", serviceNameOrDefault("api"))
}
