// Package catalog imports Open Food Facts exports into the product store.
package catalog

import (
	"context"

	"nutellove/internal/model"
)

// Loader defines the interface for loading catalogue exports.
type Loader interface {
	// Load reads a gzipped JSON-lines export and returns its valid products.
	Load(ctx context.Context, path string) (*LoadResult, error)
}

// LoadResult is the content of one export.
type LoadResult struct {
	// Source names where the export was read from.
	Source string

	// Products holds the records that passed validation, in file order.
	Products []model.Product

	// Rejected counts lines that could not be turned into a product.
	Rejected int
}
