package converter

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/hengadev/wxf/internal/reliability"
	"github.com/hengadev/wxf/internal/wxferr"
	s3bucket "github.com/hengadev/wxf/providers/s3"
)

// Source opens conversion inputs by name.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// FileSource reads inputs from the local file system.
type FileSource struct{}

func (FileSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, wxferr.NewIOError(wxferr.Read, name, err)
	}
	return f, nil
}

// RoutingSource reads s3:// inputs from an object store and everything
// else from the local file system. Transient object store failures are
// retried with Retry when it is set.
type RoutingSource struct {
	Files FileSource
	S3    *s3bucket.Store
	Retry *reliability.RetryExecutor
}

// NewRoutingSource returns a source that can read s3:// inputs when store
// is non-nil, retrying transient failures with the default policy.
func NewRoutingSource(store *s3bucket.Store) *RoutingSource {
	return &RoutingSource{
		S3:    store,
		Retry: reliability.NewRetryExecutor(reliability.DefaultRetryConfig()),
	}
}

func (r *RoutingSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !s3bucket.IsURL(name) {
		return r.Files.Open(ctx, name)
	}

	if r.S3 == nil {
		return nil, wxferr.NewConfigurationError("s3", "is not configured but input "+name+" needs it")
	}
	loc, err := s3bucket.ParseURL(name)
	if err != nil {
		return nil, err
	}
	if r.Retry == nil {
		return r.S3.Open(ctx, loc)
	}

	var body io.ReadCloser
	err = r.Retry.Execute(ctx, func(ctx context.Context) error {
		var err error
		body, err = r.S3.Open(ctx, loc)
		return err
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// baseName returns the last element of a local path or s3:// key.
func baseName(name string) string {
	if s3bucket.IsURL(name) {
		return path.Base(name)
	}
	return filepath.Base(name)
}
