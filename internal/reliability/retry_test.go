package reliability

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"
	"time"

	"github.com/hengadev/wxf/internal/wxferr"
)

func fastConfig(maxAttempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:  maxAttempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	}
}

func transientError() error {
	return wxferr.NewIOError(wxferr.Read, "s3://bucket/key", errors.New("connection reset"))
}

func TestBackoff(t *testing.T) {
	executor := NewRetryExecutor(RetryConfig{
		InitialDelay: 10 * time.Millisecond,
		MaxDelay:     30 * time.Millisecond,
		Multiplier:   2,
	})
	// Unset jitter stays zero.
	expected := []time.Duration{
		10 * time.Millisecond,
		20 * time.Millisecond,
		30 * time.Millisecond, // capped
	}
	for attempt, want := range expected {
		if got := executor.backoff(attempt); got != want {
			t.Errorf("backoff(%d) = %v, want %v", attempt, got, want)
		}
	}
	if got := executor.backoff(-1); got != 0 {
		t.Errorf("backoff(-1) = %v, want 0", got)
	}
}

func TestBackoff_Jitter(t *testing.T) {
	executor := NewRetryExecutor(RetryConfig{InitialDelay: 100 * time.Millisecond, Jitter: 0.1})
	for i := 0; i < 50; i++ {
		d := executor.backoff(0)
		if d < 90*time.Millisecond || d > 110*time.Millisecond {
			t.Fatalf("backoff(0) = %v, outside 10%% jitter", d)
		}
	}
}

func TestNewRetryExecutor_Defaults(t *testing.T) {
	executor := NewRetryExecutor(RetryConfig{Jitter: 2})

	if executor.MaxAttempts() != DefaultRetryConfig().MaxAttempts {
		t.Errorf("MaxAttempts() = %d, want default", executor.MaxAttempts())
	}
	if executor.config.Jitter != DefaultRetryConfig().Jitter {
		t.Errorf("out of range jitter kept: %v", executor.config.Jitter)
	}
	if executor.config.Retryable(errors.New("syntax")) {
		t.Error("default config should not retry permanent errors")
	}
}

func TestRetryExecutor_Success(t *testing.T) {
	executor := NewRetryExecutor(fastConfig(3))

	calls := 0
	err := executor.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	if err != nil {
		t.Errorf("Execute() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryExecutor_EventualSuccess(t *testing.T) {
	config := fastConfig(3)
	var retries []int
	config.OnRetry = func(attempt int, delay time.Duration, err error) {
		retries = append(retries, attempt)
	}
	executor := NewRetryExecutor(config)

	calls := 0
	err := executor.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return transientError()
		}
		return nil
	})

	if err != nil {
		t.Errorf("Execute() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if fmt.Sprint(retries) != "[1 2]" {
		t.Errorf("retries = %v, want [1 2]", retries)
	}
}

func TestRetryExecutor_MaxAttemptsExceeded(t *testing.T) {
	executor := NewRetryExecutor(fastConfig(2))

	want := transientError()
	calls := 0
	err := executor.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return want
	})

	if err != want {
		t.Errorf("Execute() error = %v, want %v", err, want)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRetryExecutor_PermanentError(t *testing.T) {
	executor := NewRetryExecutor(fastConfig(5))

	notFound := wxferr.NewIOError(wxferr.Read, "s3://bucket/missing", fs.ErrNotExist)
	calls := 0
	err := executor.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return notFound
	})

	if !errors.Is(err, wxferr.ErrNotFound) {
		t.Errorf("Execute() error = %v, want not found", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryExecutor_CustomRetryable(t *testing.T) {
	config := fastConfig(4)
	config.Retryable = func(err error) bool { return true }
	executor := NewRetryExecutor(config)

	calls := 0
	executor.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return errors.New("always")
	})

	if calls != 4 {
		t.Errorf("calls = %d, want 4", calls)
	}
}

func TestRetryExecutor_ContextCancelled(t *testing.T) {
	config := fastConfig(5)
	config.InitialDelay = time.Hour
	config.MaxDelay = time.Hour
	executor := NewRetryExecutor(config)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := executor.Execute(ctx, func(ctx context.Context) error {
		calls++
		cancel()
		return transientError()
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"io", transientError(), true},
		{"not found", wxferr.NewIOError(wxferr.Read, "x", fs.ErrNotExist), false},
		{"permission", wxferr.NewIOError(wxferr.Read, "x", fs.ErrPermission), false},
		{"syntax", wxferr.NewSyntaxError("json", errors.New("eof")), false},
		{"cancelled", context.Canceled, false},
		{"deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), false},
		{"temporary", &temporaryError{temporary: true}, true},
		{"wrapped temporary", fmt.Errorf("dial: %w", &temporaryError{temporary: true}), true},
		{"not temporary", &temporaryError{}, false},
		{"plain", errors.New("permanent error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

type temporaryError struct {
	temporary bool
}

func (e *temporaryError) Error() string   { return "temporary error" }
func (e *temporaryError) Temporary() bool { return e.temporary }
