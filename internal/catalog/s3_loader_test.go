package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"nutellove/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLoader is a mock implementation of the Loader interface for testing.
type mockLoader struct {
	loadFunc func(ctx context.Context, path string) (*LoadResult, error)
}

func (m *mockLoader) Load(ctx context.Context, path string) (*LoadResult, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, path)
	}
	return nil, errors.New("not implemented")
}

// fakeObjects serves objects from memory in place of S3.
type fakeObjects struct {
	objects map[string][]byte
	calls   []string
}

func (f *fakeObjects) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(params.Bucket) + "/" + aws.ToString(params.Key)
	f.calls = append(f.calls, key)

	body, ok := f.objects[key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func resultWith(ids ...string) *LoadResult {
	r := &LoadResult{}
	for _, id := range ids {
		r.Products = append(r.Products, model.Product{ID: id})
	}
	return r
}

func TestS3Loader_Load(t *testing.T) {
	objects := &fakeObjects{objects: map[string][]byte{
		"bucket/catalog/products.gz": gzipLines(t, sampleLines(t)),
	}}
	loader := newS3Loader(objects, "bucket", zerolog.Nop())

	result, err := loader.Load(context.Background(), "catalog/products.gz")

	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/catalog/products.gz", result.Source)
	assert.Len(t, result.Products, 2)
	assert.Equal(t, 3, result.Rejected)
	assert.Equal(t, []string{"bucket/catalog/products.gz"}, objects.calls)
}

func TestS3Loader_Load_MissingObject(t *testing.T) {
	loader := newS3Loader(&fakeObjects{}, "bucket", zerolog.Nop())

	result, err := loader.Load(context.Background(), "catalog/missing.gz")

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "bucket=bucket, key=catalog/missing.gz")
}

func TestFallbackLoader_S3Success(t *testing.T) {
	ctx := context.Background()

	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*LoadResult, error) {
			assert.Equal(t, "catalog/products.gz", path, "S3 key should have prefix")
			return resultWith("S3"), nil
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*LoadResult, error) {
			t.Error("file loader should not be called when S3 succeeds")
			return nil, errors.New("should not be called")
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "catalog/", true, zerolog.Nop())

	result, err := fallback.Load(ctx, "products.gz")
	require.NoError(t, err)
	assert.Equal(t, "S3", result.Products[0].ID)
}

func TestFallbackLoader_S3FailsFallsBackToLocal(t *testing.T) {
	ctx := context.Background()

	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*LoadResult, error) {
			return nil, errors.New("S3 connection failed")
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*LoadResult, error) {
			assert.Equal(t, "products.gz", path, "local file path should not have prefix")
			return resultWith("LOCAL"), nil
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "catalog/", true, zerolog.Nop())

	result, err := fallback.Load(ctx, "products.gz")
	require.NoError(t, err)
	assert.Equal(t, "LOCAL", result.Products[0].ID)
}

func TestFallbackLoader_S3Disabled(t *testing.T) {
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*LoadResult, error) {
			t.Error("S3 loader should not be called when S3 is disabled")
			return nil, errors.New("should not be called")
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*LoadResult, error) {
			return resultWith("LOCAL"), nil
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "catalog/", false, zerolog.Nop())

	result, err := fallback.Load(context.Background(), "products.gz")
	require.NoError(t, err)
	assert.Len(t, result.Products, 1)
}

func TestFallbackLoader_S3LoaderNil(t *testing.T) {
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*LoadResult, error) {
			return resultWith("LOCAL"), nil
		},
	}

	fallback := NewFallbackLoader(nil, fileLoader, "catalog/", true, zerolog.Nop())

	result, err := fallback.Load(context.Background(), "products.gz")
	require.NoError(t, err)
	assert.Len(t, result.Products, 1)
}

func TestFallbackLoader_CancelledDoesNotFallBack(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*LoadResult, error) {
			return nil, ctx.Err()
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*LoadResult, error) {
			t.Error("file loader should not be called after cancellation")
			return nil, errors.New("should not be called")
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "catalog/", true, zerolog.Nop())

	_, err := fallback.Load(ctx, "products.gz")
	assert.ErrorIs(t, err, context.Canceled)
}
