package metrics

import (
	"context"
	"fmt"
	"net/http"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter provides OpenTelemetry metrics export following OTel standards
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	registry      *promclient.Registry
	collector     Collector

	// OTel meters and instruments
	meter         metric.Meter
	instanceGauge metric.Int64ObservableGauge
	bookGauge     metric.Int64ObservableGauge
	authorGauge   metric.Int64ObservableGauge
}

// NewOTelExporter creates a new OpenTelemetry metrics exporter with Prometheus format.
// Each exporter has its own registry, served by ServeHTTP.
func NewOTelExporter(collector Collector) (*OTelExporter, error) {
	registry := promclient.NewRegistry()

	// Create Prometheus exporter
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	// Create meter provider
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	// Create meter with service info
	meter := meterProvider.Meter(
		"local-library",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		registry:      registry,
		collector:     collector,
		meter:         meter,
	}

	// Register metrics instruments
	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

// registerInstruments creates and registers all OpenTelemetry metric instruments
func (oe *OTelExporter) registerInstruments() error {
	var err error

	// Instance count gauge (per status)
	oe.instanceGauge, err = oe.meter.Int64ObservableGauge(
		"library.instances.count",
		metric.WithDescription("Number of book instances by status"),
		metric.WithUnit("{instances}"),
		metric.WithInt64Callback(oe.observeStatusCounts),
	)
	if err != nil {
		return fmt.Errorf("creating instance count gauge: %w", err)
	}

	oe.bookGauge, err = oe.meter.Int64ObservableGauge(
		"library.books.count",
		metric.WithDescription("Number of books in the catalog"),
		metric.WithUnit("{books}"),
		metric.WithInt64Callback(oe.observeBooks),
	)
	if err != nil {
		return fmt.Errorf("creating book count gauge: %w", err)
	}

	oe.authorGauge, err = oe.meter.Int64ObservableGauge(
		"library.authors.count",
		metric.WithDescription("Number of authors in the catalog"),
		metric.WithUnit("{authors}"),
		metric.WithInt64Callback(oe.observeAuthors),
	)
	if err != nil {
		return fmt.Errorf("creating author count gauge: %w", err)
	}

	return nil
}

// observeStatusCounts is a callback that reports instance counts by status
func (oe *OTelExporter) observeStatusCounts(ctx context.Context, observer metric.Int64Observer) error {
	statusCounts, err := oe.collector.GetStatusCounts(ctx)
	if err != nil {
		return err
	}

	for status, count := range statusCounts {
		observer.Observe(count, metric.WithAttributes(
			attribute.String("instance.status", status),
		))
	}

	return nil
}

func (oe *OTelExporter) observeBooks(ctx context.Context, observer metric.Int64Observer) error {
	n, err := oe.collector.GetBookCount(ctx)
	if err != nil {
		return err
	}
	observer.Observe(n)
	return nil
}

func (oe *OTelExporter) observeAuthors(ctx context.Context, observer metric.Int64Observer) error {
	n, err := oe.collector.GetAuthorCount(ctx)
	if err != nil {
		return err
	}
	observer.Observe(n)
	return nil
}

// ServeHTTP serves Prometheus-formatted metrics on the given HTTP handler
func (oe *OTelExporter) ServeHTTP() http.Handler {
	return promhttp.HandlerFor(oe.registry, promhttp.HandlerOpts{})
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
