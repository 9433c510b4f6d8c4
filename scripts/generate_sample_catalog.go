//go:build ignore

package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type record struct {
	Code            string `json:"code"`
	ProductName     string `json:"product_name"`
	NutritionGrades string `json:"nutrition_grades"`
	Categories      string `json:"categories"`
	Brands          string `json:"brands,omitempty"`
	Stores          string `json:"stores,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	LastModifiedT   int64  `json:"last_modified_t"`
}

// generateSampleCatalog creates two small Open Food Facts exports.
// products1: cakes and spreads, plus one record with an invalid grade
// products2: soups and chips, plus a newer copy of a products1 barcode
// which the importer ignores because the first file wins.
func main() {
	dataDir := "data/catalog"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	const modified = 1700000000
	img := func(name string) string { return "https://images.openfoodfacts.org/sample/" + name + ".jpg" }

	files := map[string][]record{
		"products1.jsonl.gz": {
			{Code: "3000000000011", ProductName: "Gateau au chocolat trop sucré", NutritionGrades: "e", Categories: "Gâteaux", Brands: "Sucre & Co", Stores: "Carrefour", LastModifiedT: modified},
			{Code: "3000000000028", ProductName: "gateau cool au chocolat", NutritionGrades: "b", Categories: "Gâteaux", Brands: "Bonne Maman", Stores: "Carrefour,Auchan", ImageURL: img("gateau-cool"), LastModifiedT: modified},
			{Code: "3000000000035", ProductName: "Gateau nature", NutritionGrades: "a", Categories: "Gâteaux", Brands: "Bonne Maman", ImageURL: img("gateau-nature"), LastModifiedT: modified},
			{Code: "3000000000042", ProductName: "Pâte à tartiner noisette", NutritionGrades: "e", Categories: "Pâtes à tartiner", Brands: "Ferrero", Stores: "Leclerc", LastModifiedT: modified},
			{Code: "3000000000059", ProductName: "Purée de noisettes", NutritionGrades: "c", Categories: "Pâtes à tartiner", Brands: "Jardin Bio", LastModifiedT: modified},
			{Code: "3000000000066", ProductName: "Boisson mystère", NutritionGrades: "not-applicable", Categories: "Boissons", LastModifiedT: modified},
		},
		"products2.jsonl.gz": {
			{Code: "3000000000073", ProductName: "Soupe nulle", NutritionGrades: "d", Categories: "Soupes", Brands: "Liebig", LastModifiedT: modified},
			{Code: "3000000000080", ProductName: "Soupe de légumes", NutritionGrades: "a", Categories: "Soupes", Brands: "Knorr", ImageURL: img("soupe-legumes"), LastModifiedT: modified},
			{Code: "3000000000097", ProductName: "Frites au four", NutritionGrades: "a", Categories: "Chips et frites", ImageURL: img("frites"), LastModifiedT: modified},
			{Code: "3000000000103", ProductName: "Chips salées", NutritionGrades: "d", Categories: "Chips et frites", Brands: "Lay's", LastModifiedT: modified},
			{Code: "3000000000028", ProductName: "gateau cool au chocolat (v2)", NutritionGrades: "a", Categories: "Gâteaux", LastModifiedT: modified + 1},
		},
	}

	for filename, records := range files {
		filePath := filepath.Join(dataDir, filename)

		if err := createCatalogFile(filePath, records); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d records\n", filePath, len(records))
	}

	fmt.Println("\nSample catalogue files created successfully!")
	fmt.Println("Import them with:")
	fmt.Println("  go run ./cmd/importer --migrate data/catalog/products1.jsonl.gz data/catalog/products2.jsonl.gz")
}

func createCatalogFile(filePath string, records []record) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := json.NewEncoder(gzipWriter)
	for _, r := range records {
		if err := encoder.Encode(r); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	return nil
}
