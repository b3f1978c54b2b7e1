// Package metrics records operational counters for the dashboard via the
// OpenTelemetry metric API, exported over OTLP gRPC when an endpoint is
// configured and silently dropped otherwise.
package metrics

import (
	"context"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	serviceName    = "fleetwatch"
	serviceVersion = "1.0.0"
)

// Config holds OTLP exporter configuration.
type Config struct {
	Endpoint string
	Insecure bool
}

// Recorder wraps the instrument set used by the service and web layers.
type Recorder struct {
	provider *sdkmetric.MeterProvider

	fetchesTotal   metric.Int64Counter
	reportsTotal   metric.Int64Counter
	reportDuration metric.Float64Histogram
}

// New creates a Recorder exporting to the configured OTLP endpoint.
func New(ctx context.Context, cfg Config) (*Recorder, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("metrics endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	rec, err := newInstruments(provider.Meter(serviceName))
	if err != nil {
		return nil, err
	}
	rec.provider = provider
	return rec, nil
}

// Noop returns a Recorder whose instruments discard every measurement. Used
// when no exporter endpoint is configured and in tests.
func Noop() *Recorder {
	rec, _ := newInstruments(noop.NewMeterProvider().Meter(serviceName))
	return rec
}

func newInstruments(meter metric.Meter) (*Recorder, error) {
	fetchesTotal, err := meter.Int64Counter(
		"fleetwatch_dataset_fetches_total",
		metric.WithDescription("Dataset fetches against the BI service"),
		metric.WithUnit("{fetch}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fetches counter: %w", err)
	}

	reportsTotal, err := meter.Int64Counter(
		"fleetwatch_reports_total",
		metric.WithDescription("Compliance reports built"),
		metric.WithUnit("{report}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating reports counter: %w", err)
	}

	reportDuration, err := meter.Float64Histogram(
		"fleetwatch_report_duration_seconds",
		metric.WithDescription("Time spent fetching and aggregating a report"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating report duration histogram: %w", err)
	}

	return &Recorder{
		fetchesTotal:   fetchesTotal,
		reportsTotal:   reportsTotal,
		reportDuration: reportDuration,
	}, nil
}

// DatasetFetched records one fetch attempt against the BI service.
func (r *Recorder) DatasetFetched(ctx context.Context, queryID int, ok bool) {
	r.fetchesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("query_id", strconv.Itoa(queryID)),
		attribute.Bool("ok", ok),
	))
}

// ReportBuilt records one completed report build.
func (r *Recorder) ReportBuilt(ctx context.Context, seconds float64) {
	r.reportsTotal.Add(ctx, 1)
	r.reportDuration.Record(ctx, seconds)
}

// Shutdown flushes pending measurements. No-op recorders return nil.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if r.provider == nil {
		return nil
	}
	return r.provider.Shutdown(ctx)
}
