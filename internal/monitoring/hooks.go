package monitoring

import (
	"context"
	"fmt"
	"time"
)

// ObservabilityHook is notified around every conversion the converter runs.
type ObservabilityHook interface {
	// Called before an input is read
	OnProcessStart(ctx context.Context, operation string, metadata map[string]any)

	// Called after the conversion finished, successfully or not
	OnProcessComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any)

	// Called for every individual failure, including per-artifact ones
	OnError(ctx context.Context, operation string, err error, metadata map[string]any)
}

// NoOpObservabilityHook is a no-op implementation of ObservabilityHook
type NoOpObservabilityHook struct{}

func (n *NoOpObservabilityHook) OnProcessStart(ctx context.Context, operation string, metadata map[string]any) {
}
func (n *NoOpObservabilityHook) OnProcessComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any) {
}
func (n *NoOpObservabilityHook) OnError(ctx context.Context, operation string, err error, metadata map[string]any) {
}

// LoggingObservabilityHook reports hook events through a StructuredLogger.
type LoggingObservabilityHook struct {
	logger *StructuredLogger
}

// NewLoggingObservabilityHook creates a new logging observability hook
func NewLoggingObservabilityHook(logger *StructuredLogger) *LoggingObservabilityHook {
	if logger == nil {
		logger = NewDiscardLogger()
	}
	return &LoggingObservabilityHook{logger: logger}
}

func (l *LoggingObservabilityHook) OnProcessStart(ctx context.Context, operation string, metadata map[string]any) {
	l.logger.WithRun(ctx).WithFields(metadata).Debug("%s started", operation)
}

func (l *LoggingObservabilityHook) OnProcessComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any) {
	input, _ := metadata["input"].(string)
	l.logger.LogConversion(ctx, input, duration, err, metadata)
}

func (l *LoggingObservabilityHook) OnError(ctx context.Context, operation string, err error, metadata map[string]any) {
	l.logger.WithRun(ctx).WithFields(metadata).WithFields(map[string]any{
		"error": err.Error(),
	}).Warn("%s error", operation)
}

// MetricsObservabilityHook turns hook events into counters and timings.
type MetricsObservabilityHook struct {
	collector MetricsCollector
}

// NewMetricsObservabilityHook creates a new metrics observability hook
func NewMetricsObservabilityHook(collector MetricsCollector) *MetricsObservabilityHook {
	if collector == nil {
		collector = &NoOpMetricsCollector{}
	}
	return &MetricsObservabilityHook{collector: collector}
}

func (m *MetricsObservabilityHook) OnProcessStart(ctx context.Context, operation string, metadata map[string]any) {
	m.collector.IncrementCounter(MetricConversionsStarted, formatTags(operation, metadata))
}

func (m *MetricsObservabilityHook) OnProcessComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any) {
	tags := formatTags(operation, metadata)
	if err != nil {
		tags["status"] = "error"
		m.collector.IncrementCounter(MetricConversionsFailed, tags)
	} else {
		tags["status"] = "success"
		m.collector.IncrementCounter(MetricConversionsSucceeded, tags)
	}
	m.collector.RecordTiming(MetricConversionDuration, duration, tags)
}

func (m *MetricsObservabilityHook) OnError(ctx context.Context, operation string, err error, metadata map[string]any) {
	tags := formatTags(operation, metadata)
	tags["error"] = fmt.Sprintf("%T", err)
	m.collector.IncrementCounter(MetricErrors, tags)
}

func formatTags(operation string, metadata map[string]any) map[string]string {
	tags := map[string]string{"operation": operation}
	if f, ok := metadata["format"].(string); ok {
		tags["format"] = f
	}
	return tags
}

// CompositeObservabilityHook combines multiple hooks
type CompositeObservabilityHook struct {
	hooks []ObservabilityHook
}

// NewCompositeObservabilityHook creates a new composite hook
func NewCompositeObservabilityHook(hooks ...ObservabilityHook) *CompositeObservabilityHook {
	return &CompositeObservabilityHook{hooks: hooks}
}

func (c *CompositeObservabilityHook) OnProcessStart(ctx context.Context, operation string, metadata map[string]any) {
	for _, hook := range c.hooks {
		hook.OnProcessStart(ctx, operation, metadata)
	}
}

func (c *CompositeObservabilityHook) OnProcessComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any) {
	for _, hook := range c.hooks {
		hook.OnProcessComplete(ctx, operation, duration, err, metadata)
	}
}

func (c *CompositeObservabilityHook) OnError(ctx context.Context, operation string, err error, metadata map[string]any) {
	for _, hook := range c.hooks {
		hook.OnError(ctx, operation, err, metadata)
	}
}
