// Package converter turns documents into WXF artifacts: it reads an input,
// parses it with the matching front end, builds the expression tree and
// writes one artifact per requested output.
package converter

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hengadev/errsx"
	"golang.org/x/crypto/blake2b"

	"github.com/hengadev/wxf"
	"github.com/hengadev/wxf/internal/document"
	"github.com/hengadev/wxf/internal/format"
	"github.com/hengadev/wxf/internal/monitoring"
	"github.com/hengadev/wxf/internal/wxferr"
)

const (
	// DefaultConcurrency bounds ConvertAll when WithConcurrency is not set
	DefaultConcurrency = 4

	operationConvert = "convert"
	operationWrite   = "write"
)

// Artifact describes one written output
type Artifact struct {
	Format   format.Output
	Location string
	Size     int
	// Digest is the hex encoded BLAKE2b-256 of the artifact bytes
	Digest string
}

// Result describes the conversion of one input
type Result struct {
	RunID     string
	Input     string
	Format    format.Input
	Artifacts []Artifact
	Duration  time.Duration
}

// Error reports the failures of one input. Outputs maps an output kind to
// the error that prevented its artifact from being written.
type Error struct {
	Input   string
	Outputs errsx.Map
	causes  []error
}

func (e *Error) Error() string {
	return fmt.Sprintf("convert %s: %v", e.Input, e.Outputs.AsError())
}

func (e *Error) Unwrap() []error {
	return e.causes
}

// Converter converts inputs into WXF artifacts. It is safe for concurrent
// use.
type Converter struct {
	outputs     []format.Output
	input       format.Input
	source      Source
	sink        Sink
	logger      *monitoring.StructuredLogger
	metrics     monitoring.MetricsCollector
	hook        monitoring.ObservabilityHook
	encoder     *wxf.Encoder
	concurrency int
}

// New creates a Converter. Without options it reads local files, writes
// the binary artifact beside each input and does not log.
func New(opts ...Option) (*Converter, error) {
	encoder, err := wxf.NewEncoder()
	if err != nil {
		return nil, err
	}

	c := &Converter{
		outputs:     []format.Output{format.Binary},
		source:      FileSource{},
		sink:        &SiblingSink{},
		logger:      monitoring.NewDiscardLogger(),
		metrics:     &monitoring.NoOpMetricsCollector{},
		hook:        &monitoring.NoOpObservabilityHook{},
		encoder:     encoder,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("%w: %w", wxferr.ErrInvalidConfiguration, err)
		}
	}
	return c, nil
}

// Outputs returns the artifact kinds written for every input.
func (c *Converter) Outputs() []format.Output {
	return append([]format.Output(nil), c.outputs...)
}

// Convert converts a single input. A failure to read, parse or build the
// document fails the whole input; a failure to encode or write one output
// does not stop the others, and the returned Result lists the artifacts
// that were written.
func (c *Converter) Convert(ctx context.Context, input string) (*Result, error) {
	start := time.Now()
	result := &Result{RunID: uuid.NewString(), Input: input}
	ctx = monitoring.ContextWithRunID(ctx, result.RunID)

	metadata := map[string]any{"input": input}
	c.hook.OnProcessStart(ctx, operationConvert, metadata)

	err := c.convert(ctx, result, metadata)

	result.Duration = time.Since(start)
	if err != nil {
		c.hook.OnError(ctx, operationConvert, err, metadata)
	}
	c.hook.OnProcessComplete(ctx, operationConvert, result.Duration, err, metadata)
	c.logger.LogConversion(ctx, input, result.Duration, err, map[string]any{
		"format":    string(result.Format),
		"artifacts": len(result.Artifacts),
	})

	tags := map[string]string{"format": string(result.Format)}
	if err != nil {
		c.metrics.IncrementCounter(monitoring.MetricConversionsFailed, tags)
	} else {
		c.metrics.IncrementCounter(monitoring.MetricConversionsSucceeded, tags)
	}
	c.metrics.RecordTiming(monitoring.MetricConversionDuration, result.Duration, tags)

	return result, err
}

func (c *Converter) convert(ctx context.Context, result *Result, metadata map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	in, err := c.detect(result.Input)
	if err != nil {
		return err
	}
	result.Format = in
	metadata["format"] = string(in)

	doc, err := c.load(ctx, result.Input, in)
	if err != nil {
		return err
	}

	value, err := wxf.FromDocument(doc)
	if err != nil {
		return fmt.Errorf("build expression for %s: %w", result.Input, err)
	}

	var errs errsx.Map
	var causes []error
	for _, output := range c.outputs {
		artifact, err := c.write(ctx, result.Input, output, value)
		if err != nil {
			errs.Set(string(output), err)
			causes = append(causes, err)
			c.hook.OnError(ctx, operationWrite, err, map[string]any{
				"input": result.Input, "output": string(output),
			})
			continue
		}
		result.Artifacts = append(result.Artifacts, artifact)
	}

	if !errs.IsEmpty() {
		return &Error{Input: result.Input, Outputs: errs, causes: causes}
	}
	return nil
}

func (c *Converter) detect(input string) (format.Input, error) {
	if c.input != "" {
		return c.input, nil
	}
	in, err := format.DetectInput(input)
	if err != nil {
		return "", wxferr.NewConfigurationError("input format", err.Error())
	}
	return in, nil
}

func (c *Converter) load(ctx context.Context, input string, in format.Input) (any, error) {
	r, err := c.source.Open(ctx, input)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if in == format.SQLite {
		return loadSQLite(input, r)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, wxferr.NewIOError(wxferr.Read, input, err)
	}
	return document.Parse(in, data)
}

// loadSQLite spools the database to a temporary file, since the driver
// only opens databases by path.
func loadSQLite(input string, r io.Reader) (any, error) {
	tmp, err := os.CreateTemp("", "wxf-*.db")
	if err != nil {
		return nil, wxferr.NewIOError(wxferr.Write, os.TempDir(), err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, wxferr.NewIOError(wxferr.Read, input, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, wxferr.NewIOError(wxferr.Write, tmp.Name(), err)
	}
	return document.ReadSQLite(tmp.Name())
}

// Encode renders v as the given output kind.
func (c *Converter) Encode(output format.Output, v wxf.Value) ([]byte, error) {
	switch output {
	case format.Text:
		text, err := c.encoder.Text(v)
		if err != nil {
			return nil, err
		}
		return []byte(text), nil
	case format.Binary:
		return c.encoder.Binary(v)
	case format.Compressed:
		return c.encoder.Compressed(v)
	default:
		return nil, wxferr.NewConfigurationError("output", fmt.Sprintf("'%s' is not supported", output))
	}
}

func (c *Converter) write(ctx context.Context, input string, output format.Output, v wxf.Value) (Artifact, error) {
	tags := map[string]string{"output": string(output)}

	start := time.Now()
	data, err := c.Encode(output, v)
	c.metrics.RecordTiming(monitoring.MetricEncodeDuration, time.Since(start), tags)
	if err != nil {
		return Artifact{}, err
	}

	w, location, err := c.sink.Create(ctx, input, output)
	if err != nil {
		return Artifact{}, err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return Artifact{}, err
	}
	if err := w.Close(); err != nil {
		return Artifact{}, err
	}

	sum := blake2b.Sum256(data)
	artifact := Artifact{
		Format:   output,
		Location: location,
		Size:     len(data),
		Digest:   hex.EncodeToString(sum[:]),
	}

	c.metrics.IncrementCounter(monitoring.MetricArtifactsWritten, tags)
	c.metrics.RecordValue(monitoring.MetricArtifactBytes, float64(len(data)), tags)
	c.logger.LogArtifact(ctx, location, string(output), len(data))
	return artifact, nil
}

// ConvertAll converts inputs with at most the configured number running at
// once. Results are returned in input order; an input that failed before
// producing artifacts still has a Result. The returned error joins the
// per-input errors, keyed by input.
func (c *Converter) ConvertAll(ctx context.Context, inputs []string) ([]*Result, error) {
	results := make([]*Result, len(inputs))
	failures := make([]error, len(inputs))

	sem := make(chan struct{}, c.concurrency)
	var wg sync.WaitGroup

	for i, input := range inputs {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			results[i] = &Result{Input: input}
			failures[i] = ctx.Err()
			continue
		}

		wg.Add(1)
		c.metrics.SetGauge(monitoring.MetricInflight, float64(len(sem)), nil)
		go func(i int, input string) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i], failures[i] = c.Convert(ctx, input)
		}(i, input)
	}
	wg.Wait()
	c.metrics.SetGauge(monitoring.MetricInflight, 0, nil)

	var errs errsx.Map
	var causes []error
	for i, err := range failures {
		if err != nil {
			errs.Set(inputs[i], err)
			causes = append(causes, err)
		}
	}
	if errs.IsEmpty() {
		return results, nil
	}
	return results, &BatchError{Inputs: errs, causes: causes}
}

// BatchError reports the inputs of a ConvertAll call that failed.
type BatchError struct {
	Inputs errsx.Map
	causes []error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%d input(s) failed: %v", len(e.causes), e.Inputs.AsError())
}

func (e *BatchError) Unwrap() []error {
	return e.causes
}

// Failed returns the failed inputs in sorted order.
func (e *BatchError) Failed() []string {
	failed := make([]string, 0, len(e.Inputs))
	for input := range e.Inputs {
		failed = append(failed, input)
	}
	sort.Strings(failed)
	return failed
}

// IsOutputError reports whether err came from encoding or writing the
// outputs of an input that was otherwise read and parsed.
func IsOutputError(err error) bool {
	var convErr *Error
	return errors.As(err, &convErr)
}
