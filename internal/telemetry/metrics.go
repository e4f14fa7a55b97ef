// Package telemetry provides OpenTelemetry instrumentation for the sync server.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PipelineMetricsMeterName is the name used for the pipeline metrics meter
const PipelineMetricsMeterName = "github.com/mvnpm/central-sync-server/pipeline"

// PipelineMetrics holds the OpenTelemetry instruments for the sync pipeline
type PipelineMetrics struct {
	uploadsTotal   metric.Int64Counter
	releasesTotal  metric.Int64Counter
	queueDepth     metric.Int64Gauge
	uploadDuration metric.Float64Histogram
}

// NewPipelineMetrics creates a new PipelineMetrics instance with the given
// meter provider. If provider is nil, it returns nil (no-op metrics).
func NewPipelineMetrics(provider metric.MeterProvider) (*PipelineMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(PipelineMetricsMeterName)

	uploadsTotal, err := meter.Int64Counter(
		"central_sync_uploads_total",
		metric.WithDescription("Number of bundle uploads attempted"),
		metric.WithUnit("{upload}"),
	)
	if err != nil {
		return nil, err
	}

	releasesTotal, err := meter.Int64Counter(
		"central_sync_releases_total",
		metric.WithDescription("Number of staging repository releases attempted"),
		metric.WithUnit("{release}"),
	)
	if err != nil {
		return nil, err
	}

	queueDepth, err := meter.Int64Gauge(
		"central_sync_queue_depth",
		metric.WithDescription("Number of tasks resident in each pipeline queue"),
		metric.WithUnit("{task}"),
	)
	if err != nil {
		return nil, err
	}

	uploadDuration, err := meter.Float64Histogram(
		"central_sync_upload_duration_seconds",
		metric.WithDescription("Duration of bundle-and-upload operations in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.5, 1, 2.5, 5, 10, 30, 60, 120, 300),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		uploadsTotal:   uploadsTotal,
		releasesTotal:  releasesTotal,
		queueDepth:     queueDepth,
		uploadDuration: uploadDuration,
	}, nil
}

// RecordUpload records one upload attempt and its duration
func (m *PipelineMetrics) RecordUpload(ctx context.Context, duration time.Duration, success bool) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.Bool("success", success))
	m.uploadsTotal.Add(ctx, 1, attrs)
	m.uploadDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordRelease records one release attempt
func (m *PipelineMetrics) RecordRelease(ctx context.Context, success bool) {
	if m == nil {
		return
	}
	m.releasesTotal.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", success)))
}

// RecordQueueDepth records the current depth of a pipeline queue
func (m *PipelineMetrics) RecordQueueDepth(ctx context.Context, queue string, depth int64) {
	if m == nil {
		return
	}
	m.queueDepth.Record(ctx, depth, metric.WithAttributes(attribute.String("queue", queue)))
}
