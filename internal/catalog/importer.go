package catalog

import (
	"context"
	"fmt"
	"sync"

	"nutellove/internal/model"
	"nutellove/internal/repository"

	"github.com/rs/zerolog"
)

// DefaultBatchSize is the number of products written per transaction.
const DefaultBatchSize = 500

// ImportStats summarises an import run.
type ImportStats struct {
	Files      int `json:"files"`
	Loaded     int `json:"loaded"`
	Rejected   int `json:"rejected"`
	Duplicates int `json:"duplicates"`
	Written    int `json:"written"`
	Batches    int `json:"batches"`
}

// Importer loads catalogue exports and writes them to the product store.
type Importer struct {
	loader    Loader
	repo      repository.CatalogRepository
	batchSize int
	logger    zerolog.Logger
}

// NewImporter creates a new importer. A non-positive batchSize selects
// DefaultBatchSize.
func NewImporter(loader Loader, repo repository.CatalogRepository, batchSize int, logger zerolog.Logger) *Importer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &Importer{
		loader:    loader,
		repo:      repo,
		batchSize: batchSize,
		logger:    logger.With().Str("component", "catalog-importer").Logger(),
	}
}

// Import loads every path concurrently, then writes the union of their
// products in batches. A barcode present in several files keeps the record
// of the first file listed.
func (i *Importer) Import(ctx context.Context, paths []string) (*ImportStats, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalogue files to import")
	}

	i.logger.Info().
		Int("file_count", len(paths)).
		Int("batch_size", i.batchSize).
		Msg("starting catalogue import")

	results, err := i.loadAll(ctx, paths)
	if err != nil {
		return nil, err
	}

	stats := &ImportStats{Files: len(paths)}
	for _, result := range results {
		stats.Loaded += len(result.Products)
		stats.Rejected += result.Rejected
	}

	products := Merge(results)
	stats.Duplicates = stats.Loaded - len(products)

	for start := 0; start < len(products); start += i.batchSize {
		end := min(start+i.batchSize, len(products))

		select {
		case <-ctx.Done():
			i.logger.Warn().Int("written", stats.Written).Msg("catalogue import cancelled")
			return stats, ctx.Err()
		default:
		}

		written, err := i.repo.UpsertProducts(ctx, products[start:end])
		if err != nil {
			i.logger.Error().
				Err(err).
				Int("batch_start", start).
				Int("batch_end", end).
				Msg("failed to write catalogue batch")
			return stats, fmt.Errorf("failed to write products %d-%d: %w", start, end, err)
		}

		stats.Written += written
		stats.Batches++

		i.logger.Debug().
			Int("batch", stats.Batches).
			Int("written", stats.Written).
			Int("total", len(products)).
			Msg("catalogue batch written")
	}

	i.logger.Info().
		Int("files", stats.Files).
		Int("loaded", stats.Loaded).
		Int("rejected", stats.Rejected).
		Int("duplicates", stats.Duplicates).
		Int("written", stats.Written).
		Msg("catalogue import finished")

	return stats, nil
}

// loadAll loads all paths concurrently and returns the results in path order.
func (i *Importer) loadAll(ctx context.Context, paths []string) ([]*LoadResult, error) {
	type loadResult struct {
		index  int
		result *LoadResult
		err    error
	}

	resultChan := make(chan loadResult, len(paths))
	var wg sync.WaitGroup

	for index, path := range paths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			result, err := i.loader.Load(ctx, path)
			resultChan <- loadResult{
				index:  index,
				result: result,
				err:    err,
			}
		}(index, path)
	}

	wg.Wait()
	close(resultChan)

	results := make([]*LoadResult, len(paths))
	for r := range resultChan {
		if r.err != nil {
			i.logger.Error().Err(r.err).Str("file", paths[r.index]).Msg("failed to load catalogue file")
			return nil, fmt.Errorf("failed to load catalogue file %s: %w", paths[r.index], r.err)
		}
		results[r.index] = r.result
	}

	return results, nil
}

// Merge concatenates results in order, keeping the first product seen for
// each barcode.
func Merge(results []*LoadResult) []model.Product {
	total := 0
	for _, r := range results {
		total += len(r.Products)
	}

	merged := make([]model.Product, 0, total)
	seen := make(map[string]struct{}, total)
	for _, r := range results {
		for _, p := range r.Products {
			if _, dup := seen[p.ID]; dup {
				continue
			}
			seen[p.ID] = struct{}{}
			merged = append(merged, p)
		}
	}

	return merged
}
