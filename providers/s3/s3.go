// Package s3bucket reads conversion inputs from and streams artifacts to
// Amazon S3 or any S3 compatible store.
package s3bucket

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hengadev/wxf/internal/wxferr"
)

const scheme = "s3://"

// Client is the subset of *s3.Client the store needs.
type Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Location is a parsed s3://bucket/key URL.
type Location struct {
	Bucket string
	Key    string
}

func (l Location) String() string {
	return scheme + l.Bucket + "/" + l.Key
}

// Join returns the location of name below l, treating l.Key as a prefix.
func (l Location) Join(name string) Location {
	return Location{Bucket: l.Bucket, Key: strings.TrimPrefix(path.Join(l.Key, name), "/")}
}

// IsURL reports whether s uses the s3:// scheme.
func IsURL(s string) bool {
	return strings.HasPrefix(s, scheme)
}

// ParseURL splits s3://bucket/key. The key may be empty when the URL names
// an output prefix.
func ParseURL(s string) (Location, error) {
	if !IsURL(s) {
		return Location{}, wxferr.NewConfigurationError("s3 url", fmt.Sprintf("'%s' must start with %s", s, scheme))
	}

	bucket, key, _ := strings.Cut(strings.TrimPrefix(s, scheme), "/")
	if bucket == "" {
		return Location{}, wxferr.NewConfigurationError("s3 url", fmt.Sprintf("'%s' has no bucket", s))
	}
	return Location{Bucket: bucket, Key: key}, nil
}

// Options configure the client built by New.
type Options struct {
	Region   string
	Endpoint string
}

// Store reads and writes objects through a Client.
type Store struct {
	client Client
}

// New builds a Store from the default AWS credential chain.
//
// A non-empty Endpoint switches to path-style addressing, which S3
// compatible servers such as MinIO expect.
func New(ctx context.Context, opts Options) (*Store, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewWithClient(client), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client Client) *Store {
	return &Store{client: client}
}

// Open returns the body of the object at loc. The caller closes it.
func (s *Store) Open(ctx context.Context, loc Location) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		var noBucket *types.NoSuchBucket
		if errors.As(err, &noKey) || errors.As(err, &noBucket) {
			return nil, fmt.Errorf("%w: %s: %w", wxferr.ErrNotFound, loc, err)
		}
		return nil, wxferr.NewIOError(wxferr.Read, loc.String(), err)
	}
	return out.Body, nil
}

// NewWriter streams everything written to it into the object at loc. The
// upload runs while the caller writes; Close waits for it to finish and
// returns its error.
func (s *Store) NewWriter(ctx context.Context, loc Location, contentType string) io.WriteCloser {
	reader, writer := io.Pipe()
	w := &s3Writer{
		writer: writer,
		done:   make(chan struct{}),
		loc:    loc,
	}

	go func() {
		defer close(w.done)
		defer func() {
			if r := recover(); r != nil {
				w.err = fmt.Errorf("panic during upload of %s: %v", loc, r)
				reader.CloseWithError(w.err)
			}
		}()

		input := &s3.PutObjectInput{
			Bucket: aws.String(loc.Bucket),
			Key:    aws.String(loc.Key),
			Body:   reader,
		}
		if contentType != "" {
			input.ContentType = aws.String(contentType)
		}

		if _, err := s.client.PutObject(ctx, input); err != nil {
			w.err = wxferr.NewIOError(wxferr.Write, loc.String(), err)
			// unblock a writer still feeding the pipe
			reader.CloseWithError(w.err)
			return
		}
		// drain anything the client did not consume so Close never blocks
		_, _ = io.Copy(io.Discard, reader)
	}()

	return w
}

type s3Writer struct {
	writer *io.PipeWriter
	done   chan struct{}
	err    error
	loc    Location
}

func (w *s3Writer) Write(p []byte) (int, error) {
	n, err := w.writer.Write(p)
	if err != nil {
		<-w.done
		if w.err != nil {
			return n, w.err
		}
	}
	return n, err
}

// Close signals EOF to the upload and waits for it.
func (w *s3Writer) Close() error {
	if err := w.writer.Close(); err != nil {
		return err
	}
	<-w.done
	return w.err
}
