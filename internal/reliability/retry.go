// Package reliability retries operations against remote storage.
package reliability

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/hengadev/wxf/internal/wxferr"
)

// RetryConfig controls how often and how patiently an operation is
// repeated. Delays grow by Multiplier from InitialDelay up to MaxDelay,
// each shifted by up to ±Jitter of itself.
type RetryConfig struct {
	// MaxAttempts counts the first attempt
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	Jitter       float64
	// Retryable reports whether a failed attempt may be repeated
	Retryable func(error) bool
	// OnRetry is called before sleeping ahead of attempt number attempt
	OnRetry func(attempt int, delay time.Duration, err error)
}

// DefaultRetryConfig makes three attempts over roughly 300ms and retries
// transient I/O failures only.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2,
		Jitter:       0.1,
		Retryable:    IsTransient,
	}
}

// RetryExecutor repeats an operation with exponential backoff.
type RetryExecutor struct {
	config RetryConfig
}

// NewRetryExecutor returns an executor for config. Zero or out of range
// fields take the values of DefaultRetryConfig.
func NewRetryExecutor(config RetryConfig) *RetryExecutor {
	defaults := DefaultRetryConfig()
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = defaults.MaxAttempts
	}
	if config.InitialDelay <= 0 {
		config.InitialDelay = defaults.InitialDelay
	}
	if config.MaxDelay <= 0 {
		config.MaxDelay = defaults.MaxDelay
	}
	if config.Multiplier <= 0 {
		config.Multiplier = defaults.Multiplier
	}
	if config.Jitter < 0 || config.Jitter > 1 {
		config.Jitter = defaults.Jitter
	}
	if config.Retryable == nil {
		config.Retryable = defaults.Retryable
	}
	return &RetryExecutor{config: config}
}

// MaxAttempts returns the attempt limit, the first attempt included.
func (r *RetryExecutor) MaxAttempts() int {
	return r.config.MaxAttempts
}

// backoff returns the pause that follows the failed attempt with the given
// zero-based index.
func (r *RetryExecutor) backoff(attempt int) time.Duration {
	if attempt < 0 {
		return 0
	}
	c := r.config
	d := math.Min(float64(c.InitialDelay)*math.Pow(c.Multiplier, float64(attempt)), float64(c.MaxDelay))
	if c.Jitter > 0 {
		d += (rand.Float64()*2 - 1) * d * c.Jitter
	}
	return time.Duration(math.Max(d, 0))
}

// Execute runs operation until it succeeds, returns an error that is not
// retryable, runs out of attempts or ctx is done. The operation's last
// error is returned, or ctx.Err() when the wait was cut short.
func (r *RetryExecutor) Execute(ctx context.Context, operation func(context.Context) error) error {
	var err error
	for attempt := 0; attempt < r.config.MaxAttempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err = operation(ctx); err == nil {
			return nil
		}
		if attempt == r.config.MaxAttempts-1 || !r.config.Retryable(err) {
			return err
		}

		delay := r.backoff(attempt)
		if r.config.OnRetry != nil {
			r.config.OnRetry(attempt+1, delay, err)
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}

// IsTransient reports whether err is an I/O failure that may succeed when
// repeated. Missing objects, denied access and cancellation are permanent,
// as is anything that is not an I/O error.
func IsTransient(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, wxferr.ErrNotFound), errors.Is(err, wxferr.ErrPermissionDenied):
		return false
	case errors.Is(err, wxferr.ErrIO):
		return true
	}

	var temp interface{ Temporary() bool }
	if errors.As(err, &temp) {
		return temp.Temporary()
	}
	return false
}
