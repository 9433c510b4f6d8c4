package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"nutellove/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCatalogRepository is a mock implementation of CatalogRepository.
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) UpsertProducts(ctx context.Context, products []model.Product) (int, error) {
	args := m.Called(ctx, products)
	return args.Int(0), args.Error(1)
}

func mapLoader(results map[string]*LoadResult) *mockLoader {
	var mu sync.Mutex
	return &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*LoadResult, error) {
			mu.Lock()
			defer mu.Unlock()
			r, ok := results[path]
			if !ok {
				return nil, errors.New("no such file")
			}
			return r, nil
		},
	}
}

func TestImporter_Import(t *testing.T) {
	ctx := context.Background()

	loader := mapLoader(map[string]*LoadResult{
		"a.gz": {Products: []model.Product{{ID: "1", Name: "first"}, {ID: "2"}, {ID: "3"}}, Rejected: 2},
		"b.gz": {Products: []model.Product{{ID: "1", Name: "second"}, {ID: "4"}, {ID: "5"}}, Rejected: 1},
	})
	repo := new(MockCatalogRepository)

	repo.On("UpsertProducts", ctx, []model.Product{{ID: "1", Name: "first"}, {ID: "2"}}).Return(2, nil)
	repo.On("UpsertProducts", ctx, []model.Product{{ID: "3"}, {ID: "4"}}).Return(2, nil)
	repo.On("UpsertProducts", ctx, []model.Product{{ID: "5"}}).Return(1, nil)

	importer := NewImporter(loader, repo, 2, zerolog.Nop())

	stats, err := importer.Import(ctx, []string{"a.gz", "b.gz"})

	require.NoError(t, err)
	assert.Equal(t, &ImportStats{
		Files:      2,
		Loaded:     6,
		Rejected:   3,
		Duplicates: 1,
		Written:    5,
		Batches:    3,
	}, stats)

	repo.AssertExpectations(t)
}

func TestImporter_Import_LoadError(t *testing.T) {
	ctx := context.Background()

	loader := mapLoader(map[string]*LoadResult{
		"a.gz": {Products: []model.Product{{ID: "1"}}},
	})
	repo := new(MockCatalogRepository)

	stats, err := NewImporter(loader, repo, 10, zerolog.Nop()).Import(ctx, []string{"a.gz", "missing.gz"})

	require.Error(t, err)
	assert.Nil(t, stats)
	assert.Contains(t, err.Error(), "missing.gz")
	repo.AssertNotCalled(t, "UpsertProducts")
}

func TestImporter_Import_WriteError(t *testing.T) {
	ctx := context.Background()

	loader := mapLoader(map[string]*LoadResult{
		"a.gz": {Products: []model.Product{{ID: "1"}, {ID: "2"}, {ID: "3"}}},
	})
	repo := new(MockCatalogRepository)
	repo.On("UpsertProducts", ctx, []model.Product{{ID: "1"}, {ID: "2"}}).Return(2, nil)
	repo.On("UpsertProducts", ctx, []model.Product{{ID: "3"}}).Return(0, errors.New("database error"))

	stats, err := NewImporter(loader, repo, 2, zerolog.Nop()).Import(ctx, []string{"a.gz"})

	require.Error(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 2, stats.Written)
	assert.Equal(t, 1, stats.Batches)
}

func TestImporter_Import_NoFiles(t *testing.T) {
	_, err := NewImporter(&mockLoader{}, new(MockCatalogRepository), 0, zerolog.Nop()).Import(context.Background(), nil)
	assert.Error(t, err)
}

func TestImporter_DefaultBatchSize(t *testing.T) {
	importer := NewImporter(&mockLoader{}, new(MockCatalogRepository), 0, zerolog.Nop())
	assert.Equal(t, DefaultBatchSize, importer.batchSize)
}

func TestMerge(t *testing.T) {
	merged := Merge([]*LoadResult{
		{Products: []model.Product{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}, {ID: "1", Name: "c"}}},
		{},
		{Products: []model.Product{{ID: "2", Name: "d"}, {ID: "3", Name: "e"}}},
	})

	require.Len(t, merged, 3)
	assert.Equal(t, "a", merged[0].Name)
	assert.Equal(t, "b", merged[1].Name)
	assert.Equal(t, "e", merged[2].Name)
}
