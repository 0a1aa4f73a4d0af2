package s3bucket

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hengadev/wxf/internal/wxferr"
)

// mockS3Client keeps uploaded objects in memory
type mockS3Client struct {
	mu            sync.Mutex
	objects       map[string][]byte
	contentTypes  map[string]string
	putObjectFunc func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	getObjectErr  error
}

func newMockS3Client() *mockS3Client {
	return &mockS3Client{
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

func (m *mockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.putObjectFunc != nil {
		return m.putObjectFunc(ctx, params, optFns...)
	}

	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}

	key := aws.ToString(params.Bucket) + "/" + aws.ToString(params.Key)
	m.mu.Lock()
	m.objects[key] = data
	m.contentTypes[key] = aws.ToString(params.ContentType)
	m.mu.Unlock()
	return &s3.PutObjectOutput{}, nil
}

func (m *mockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if m.getObjectErr != nil {
		return nil, m.getObjectErr
	}

	m.mu.Lock()
	data, ok := m.objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)]
	m.mu.Unlock()
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestParseURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Location
		wantErr  bool
	}{
		{"object", "s3://bucket/dir/file.json", Location{Bucket: "bucket", Key: "dir/file.json"}, false},
		{"prefix", "s3://bucket/out/", Location{Bucket: "bucket", Key: "out/"}, false},
		{"bucket only", "s3://bucket", Location{Bucket: "bucket"}, false},
		{"no bucket", "s3:///key", Location{}, true},
		{"wrong scheme", "gs://bucket/key", Location{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := ParseURL(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, wxferr.ErrInvalidConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, loc)
		})
	}
}

func TestLocation_Join(t *testing.T) {
	assert.Equal(t, "s3://b/out/a.wxf", Location{Bucket: "b", Key: "out/"}.Join("a.wxf").String())
	assert.Equal(t, "s3://b/a.wxf", Location{Bucket: "b"}.Join("a.wxf").String())
	assert.True(t, IsURL("s3://b/k"))
	assert.False(t, IsURL("/tmp/k"))
}

func TestS3Writer_RoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newMockS3Client()
	store := NewWithClient(client)
	loc := Location{Bucket: "bucket", Key: "out/data.wxf"}

	writer := store.NewWriter(ctx, loc, "application/vnd.wolfram.wxf")
	for _, chunk := range [][]byte{[]byte("8:"), []byte{67, 1}} {
		n, err := writer.Write(chunk)
		require.NoError(t, err)
		assert.Equal(t, len(chunk), n)
	}
	require.NoError(t, writer.Close())

	assert.Equal(t, []byte{56, 58, 67, 1}, client.objects["bucket/out/data.wxf"])
	assert.Equal(t, "application/vnd.wolfram.wxf", client.contentTypes["bucket/out/data.wxf"])

	body, err := store.Open(ctx, loc)
	require.NoError(t, err)
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, []byte{56, 58, 67, 1}, data)
}

func TestS3Writer_EmptyData(t *testing.T) {
	client := newMockS3Client()
	writer := NewWithClient(client).NewWriter(context.Background(), Location{Bucket: "b", Key: "empty"}, "")

	require.NoError(t, writer.Close())
	assert.Equal(t, []byte{}, client.objects["b/empty"])
}

func TestS3Writer_LargeData(t *testing.T) {
	client := newMockS3Client()
	writer := NewWithClient(client).NewWriter(context.Background(), Location{Bucket: "b", Key: "large"}, "")

	largeData := make([]byte, 1024*1024)
	for i := range largeData {
		largeData[i] = byte(i % 256)
	}

	n, err := writer.Write(largeData)
	require.NoError(t, err)
	assert.Equal(t, len(largeData), n)
	require.NoError(t, writer.Close())
	assert.Equal(t, largeData, client.objects["b/large"])
}

func TestS3Writer_UploadError(t *testing.T) {
	client := newMockS3Client()
	client.putObjectFunc = func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, errors.New("S3 upload failed")
	}
	writer := NewWithClient(client).NewWriter(context.Background(), Location{Bucket: "b", Key: "k"}, "")

	_, writeErr := writer.Write([]byte("test data"))
	closeErr := writer.Close()

	// The upload fails before reading, so either the write or the close reports it.
	err := errors.Join(writeErr, closeErr)
	require.Error(t, err)
	assert.ErrorIs(t, err, wxferr.ErrIO)
	assert.Contains(t, err.Error(), "S3 upload failed")
}

func TestS3Writer_UploadStopsEarly(t *testing.T) {
	client := newMockS3Client()
	client.putObjectFunc = func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		buf := make([]byte, 2)
		_, err := io.ReadFull(params.Body, buf)
		return &s3.PutObjectOutput{}, err
	}
	writer := NewWithClient(client).NewWriter(context.Background(), Location{Bucket: "b", Key: "k"}, "")

	_, err := writer.Write([]byte("more than two bytes"))
	require.NoError(t, err)
	assert.NoError(t, writer.Close())
}

func TestS3Writer_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := newMockS3Client()
	client.putObjectFunc = func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	writer := NewWithClient(client).NewWriter(ctx, Location{Bucket: "b", Key: "k"}, "")

	cancel()

	_, writeErr := writer.Write([]byte("test data"))
	closeErr := writer.Close()
	assert.ErrorIs(t, errors.Join(writeErr, closeErr), context.Canceled)
}

func TestStore_OpenErrors(t *testing.T) {
	ctx := context.Background()
	client := newMockS3Client()
	store := NewWithClient(client)

	_, err := store.Open(ctx, Location{Bucket: "b", Key: "missing"})
	assert.ErrorIs(t, err, wxferr.ErrNotFound)

	client.getObjectErr = errors.New("throttled")
	_, err = store.Open(ctx, Location{Bucket: "b", Key: "k"})
	assert.ErrorIs(t, err, wxferr.ErrIO)
	assert.NotErrorIs(t, err, wxferr.ErrNotFound)
}
