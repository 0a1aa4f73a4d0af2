package converter

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/hengadev/wxf/internal/format"
	"github.com/hengadev/wxf/internal/wxferr"
	s3bucket "github.com/hengadev/wxf/providers/s3"
)

// Sink stores the artifacts of one input. Create returns a writer for the
// artifact and the location it will be stored at once the writer is
// closed.
type Sink interface {
	Create(ctx context.Context, input string, output format.Output) (io.WriteCloser, string, error)
}

// NewSink picks the sink for an output location: "" writes next to each
// input, an s3:// URL writes below that prefix and anything else is a
// local directory.
func NewSink(location string, store *s3bucket.Store) (Sink, error) {
	switch {
	case location == "":
		return &SiblingSink{S3: store}, nil
	case s3bucket.IsURL(location):
		if store == nil {
			return nil, wxferr.NewConfigurationError("s3", "is not configured but output "+location+" needs it")
		}
		prefix, err := s3bucket.ParseURL(location)
		if err != nil {
			return nil, err
		}
		return &S3Sink{Store: store, Prefix: prefix}, nil
	default:
		return &DirSink{Dir: location}, nil
	}
}

// SiblingSink writes <input><ext> beside the input, on disk or in the same
// bucket.
type SiblingSink struct {
	S3 *s3bucket.Store
}

func (s *SiblingSink) Create(ctx context.Context, input string, output format.Output) (io.WriteCloser, string, error) {
	target := input + output.Extension()
	if !s3bucket.IsURL(input) {
		return createFile(target)
	}

	if s.S3 == nil {
		return nil, "", wxferr.NewConfigurationError("s3", "is not configured but input "+input+" needs it")
	}
	loc, err := s3bucket.ParseURL(target)
	if err != nil {
		return nil, "", err
	}
	return s.S3.NewWriter(ctx, loc, output.ContentType()), loc.String(), nil
}

// DirSink writes every artifact into one local directory.
type DirSink struct {
	Dir string
}

func (s *DirSink) Create(ctx context.Context, input string, output format.Output) (io.WriteCloser, string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return nil, "", wxferr.NewIOError(wxferr.Write, s.Dir, err)
	}
	return createFile(filepath.Join(s.Dir, baseName(input)+output.Extension()))
}

// S3Sink writes every artifact below one bucket prefix.
type S3Sink struct {
	Store  *s3bucket.Store
	Prefix s3bucket.Location
}

func (s *S3Sink) Create(ctx context.Context, input string, output format.Output) (io.WriteCloser, string, error) {
	loc := s.Prefix.Join(baseName(input) + output.Extension())
	return s.Store.NewWriter(ctx, loc, output.ContentType()), loc.String(), nil
}

// fileWriter writes to a temporary file in the target directory and
// renames it into place on Close, so readers never observe a partial
// artifact. After a failed Write, Close discards the temporary file
// instead of renaming it.
type fileWriter struct {
	f      *os.File
	target string
	err    error
}

func createFile(target string) (io.WriteCloser, string, error) {
	f, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*")
	if err != nil {
		return nil, "", wxferr.NewIOError(wxferr.Write, target, err)
	}
	return &fileWriter{f: f, target: target}, target, nil
}

func (w *fileWriter) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.f.Write(p)
	if err != nil {
		w.err = wxferr.NewIOError(wxferr.Write, w.target, err)
		return n, w.err
	}
	return n, nil
}

func (w *fileWriter) Close() error {
	tmp := w.f.Name()
	if w.err != nil {
		w.f.Close()
		os.Remove(tmp)
		return w.err
	}
	if err := w.f.Close(); err != nil {
		os.Remove(tmp)
		return wxferr.NewIOError(wxferr.Write, w.target, err)
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return wxferr.NewIOError(wxferr.Write, w.target, err)
	}
	if err := os.Rename(tmp, w.target); err != nil {
		os.Remove(tmp)
		return wxferr.NewIOError(wxferr.Write, w.target, err)
	}
	return nil
}
