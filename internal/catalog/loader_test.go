package catalog

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gzipLines compresses lines into a JSONL payload.
func gzipLines(t *testing.T, lines []string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	for _, line := range lines {
		_, err := gzipWriter.Write([]byte(line + "\n"))
		require.NoError(t, err)
	}
	require.NoError(t, gzipWriter.Close())

	return buf.Bytes()
}

// recordLine encodes a record as one JSONL line.
func recordLine(t *testing.T, r Record) string {
	t.Helper()
	b, err := json.Marshal(r)
	require.NoError(t, err)
	return string(b)
}

// createTestCatalogFile writes a gzipped export to a temp directory.
func createTestCatalogFile(t *testing.T, filename string, lines []string) string {
	t.Helper()

	filePath := filepath.Join(t.TempDir(), filename)
	require.NoError(t, os.WriteFile(filePath, gzipLines(t, lines), 0o644))

	return filePath
}

func sampleLines(t *testing.T) []string {
	return []string{
		recordLine(t, Record{Code: "1", ProductName: "Gateau au chocolat trop sucré", NutritionGrades: "e", Categories: "Gâteaux"}),
		recordLine(t, Record{Code: "2", ProductName: "gateau cool au chocolat", NutritionGrades: "b", Categories: "Gâteaux", Brands: "Bonne Maman"}),
		"",
		"{not json",
		recordLine(t, Record{Code: "3", ProductName: "Boisson", NutritionGrades: "unknown", Categories: "Boissons"}),
		recordLine(t, Record{Code: "4", ProductName: "Sans catégorie", NutritionGrades: "a"}),
	}
}

func TestFileLoader_Load_Success(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())
	filePath := createTestCatalogFile(t, "products.jsonl.gz", sampleLines(t))

	result, err := loader.Load(context.Background(), filePath)

	require.NoError(t, err)
	assert.Equal(t, filePath, result.Source)
	require.Len(t, result.Products, 2)
	assert.Equal(t, "1", result.Products[0].ID)
	assert.Equal(t, "2", result.Products[1].ID)
	assert.Equal(t, []string{"Bonne Maman"}, result.Products[1].Brands)
	assert.Equal(t, 3, result.Rejected)
}

func TestFileLoader_Load_FileNotFound(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	result, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "missing.gz"))

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "failed to open catalogue file")
}

func TestFileLoader_Load_NotGzipped(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "plain.jsonl")
	require.NoError(t, os.WriteFile(filePath, []byte(`{"code":"1"}`+"\n"), 0o644))

	result, err := NewFileLoader(zerolog.Nop()).Load(context.Background(), filePath)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "gzip")
}

func TestFileLoader_Load_EmptyFile(t *testing.T) {
	filePath := createTestCatalogFile(t, "empty.gz", nil)

	result, err := NewFileLoader(zerolog.Nop()).Load(context.Background(), filePath)

	require.NoError(t, err)
	assert.Empty(t, result.Products)
	assert.Zero(t, result.Rejected)
}

func TestFileLoader_Load_ContextCancelled(t *testing.T) {
	lines := make([]string, 0, 20_000)
	line := recordLine(t, Record{Code: "1", ProductName: "Muesli", NutritionGrades: "a", Categories: "Céréales"})
	for i := 0; i < 20_000; i++ {
		lines = append(lines, line)
	}
	filePath := createTestCatalogFile(t, "large.gz", lines)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewFileLoader(zerolog.Nop()).Load(ctx, filePath)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}
