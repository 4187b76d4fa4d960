package otel

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/pipsheet/internal/platform/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Settings controls tracing export. Fields are read from PIPSHEET_OTEL_*.
type Settings struct {
	Enabled     string  `env:"OTEL_ENABLED"`
	Endpoint    string  `env:"OTEL_ENDPOINT"`
	SampleRatio float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// Active reports whether the settings call for a real exporter.
func (s Settings) Active() bool {
	if strings.EqualFold(strings.TrimSpace(s.Enabled), "false") {
		return false
	}
	return strings.TrimSpace(s.Endpoint) != ""
}

func (s Settings) sampler() sdktrace.Sampler {
	if s.SampleRatio >= 1 {
		return sdktrace.AlwaysSample()
	}
	if s.SampleRatio <= 0 {
		return sdktrace.NeverSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(s.SampleRatio))
}

// Setup initialises OpenTelemetry tracing for the given service.
//
// Tracing is opt-in: when PIPSHEET_OTEL_ENDPOINT is empty or
// PIPSHEET_OTEL_ENABLED is "false", Setup returns a no-op shutdown function
// and the global provider stays the SDK default (spans are dropped).
func Setup(ctx context.Context, serviceName string) (shutdown func(context.Context) error, err error) {
	var settings Settings
	if err := config.ParseEnvWithPrefix(&settings, config.EnvPrefix); err != nil {
		return noop, err
	}
	return SetupWithSettings(ctx, serviceName, settings)
}

// SetupWithSettings is Setup with explicit settings instead of the environment.
func SetupWithSettings(ctx context.Context, serviceName string, settings Settings) (func(context.Context) error, error) {
	if !settings.Active() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(strings.TrimSpace(settings.Endpoint)),
	)
	if err != nil {
		return noop, fmt.Errorf("create otlp exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return noop, fmt.Errorf("build otel resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(settings.sampler()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns a named tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

func noop(context.Context) error { return nil }
