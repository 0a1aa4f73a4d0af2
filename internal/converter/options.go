package converter

import (
	"fmt"

	"github.com/hengadev/wxf"
	"github.com/hengadev/wxf/internal/format"
	"github.com/hengadev/wxf/internal/monitoring"
)

// Option configures a Converter
type Option func(*Converter) error

// WithOutputs selects the artifacts written for every input. Duplicates
// are ignored; order is kept.
func WithOutputs(outputs ...format.Output) Option {
	return func(c *Converter) error {
		if len(outputs) == 0 {
			return fmt.Errorf("at least one output format is required")
		}

		seen := make(map[format.Output]bool, len(outputs))
		c.outputs = c.outputs[:0]
		for _, o := range outputs {
			if !o.IsValid() {
				return fmt.Errorf("invalid output format '%s'", o)
			}
			if !seen[o] {
				seen[o] = true
				c.outputs = append(c.outputs, o)
			}
		}
		return nil
	}
}

// WithInputFormat forces the syntax of every input instead of detecting it
// from the file extension.
func WithInputFormat(input format.Input) Option {
	return func(c *Converter) error {
		if !input.IsValid() {
			return fmt.Errorf("invalid input format '%s'", input)
		}
		c.input = input
		return nil
	}
}

// WithSource sets where inputs are read from
func WithSource(source Source) Option {
	return func(c *Converter) error {
		if source == nil {
			return fmt.Errorf("source cannot be nil")
		}
		c.source = source
		return nil
	}
}

// WithSink sets where artifacts are written
func WithSink(sink Sink) Option {
	return func(c *Converter) error {
		if sink == nil {
			return fmt.Errorf("sink cannot be nil")
		}
		c.sink = sink
		return nil
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *monitoring.StructuredLogger) Option {
	return func(c *Converter) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector
func WithMetrics(metrics monitoring.MetricsCollector) Option {
	return func(c *Converter) error {
		if metrics == nil {
			return fmt.Errorf("metrics collector cannot be nil")
		}
		c.metrics = metrics
		return nil
	}
}

// WithHook sets the observability hook
func WithHook(hook monitoring.ObservabilityHook) Option {
	return func(c *Converter) error {
		if hook == nil {
			return fmt.Errorf("observability hook cannot be nil")
		}
		c.hook = hook
		return nil
	}
}

// WithDefaultContext sets the context bare user symbols are qualified into.
func WithDefaultContext(context string) Option {
	return func(c *Converter) error {
		encoder, err := wxf.NewEncoder(wxf.WithDefaultContext(context))
		if err != nil {
			return err
		}
		c.encoder = encoder
		return nil
	}
}

// WithConcurrency bounds how many inputs ConvertAll converts at once.
func WithConcurrency(n int) Option {
	return func(c *Converter) error {
		if n < 1 {
			return fmt.Errorf("concurrency must be at least 1, got %d", n)
		}
		c.concurrency = n
		return nil
	}
}
