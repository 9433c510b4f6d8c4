package catalog

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// maxLineSize bounds one JSONL record; full Open Food Facts lines can be large.
const maxLineSize = 16 * 1024 * 1024

// decodeExport reads a gzipped JSON-lines stream of Open Food Facts records.
// Malformed or invalid lines are counted as rejected and skipped.
func decodeExport(ctx context.Context, r io.Reader, source string, logger zerolog.Logger) (*LoadResult, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", source, err)
	}
	defer gzipReader.Close()

	result := &LoadResult{Source: source}

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	lineCount := 0
	for scanner.Scan() {
		lineCount++

		// Check context cancellation periodically
		if lineCount%10_000 == 0 {
			select {
			case <-ctx.Done():
				logger.Warn().Str("source", source).Int("lines", lineCount).Msg("catalogue loading cancelled")
				return nil, ctx.Err()
			default:
			}
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record Record
		if err := json.Unmarshal(line, &record); err != nil {
			result.Rejected++
			logger.Debug().Err(err).Str("source", source).Int("line", lineCount).Msg("malformed record")
			continue
		}

		product, err := record.ToProduct()
		if err != nil {
			result.Rejected++
			logger.Debug().Err(err).Str("source", source).Int("line", lineCount).Msg("record rejected")
			continue
		}

		result.Products = append(result.Products, product)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading catalogue export %s: %w", source, err)
	}

	return result, nil
}
