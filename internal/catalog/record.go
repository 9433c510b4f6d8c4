package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"nutellove/internal/model"
)

const productURLPrefix = "https://world.openfoodfacts.org/product/"

// Record is the subset of an Open Food Facts JSONL line used by the importer.
type Record struct {
	Code            string `json:"code"`
	URL             string `json:"url"`
	ProductName     string `json:"product_name"`
	ProductNameFr   string `json:"product_name_fr"`
	GenericName     string `json:"generic_name"`
	NutritionGrades string `json:"nutrition_grades"`
	Categories      string `json:"categories"`
	Brands          string `json:"brands"`
	Stores          string `json:"stores"`
	ImageURL        string `json:"image_url"`
	LastModifiedT   int64  `json:"last_modified_t"`
}

// Errors for records that cannot become products.
var (
	ErrMissingCode     = errors.New("record has no code")
	ErrMissingName     = errors.New("record has no product name")
	ErrMissingCategory = errors.New("record has no category")
)

// Name returns the best available product name:
// product_name, then product_name_fr, then generic_name.
func (r *Record) Name() string {
	for _, name := range []string{r.ProductName, r.ProductNameFr, r.GenericName} {
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}
	return ""
}

// ToProduct validates the record and converts it into a product.
// The product's category is the first entry of the categories list.
func (r *Record) ToProduct() (model.Product, error) {
	code := strings.TrimSpace(r.Code)
	if code == "" {
		return model.Product{}, ErrMissingCode
	}

	name := r.Name()
	if name == "" {
		return model.Product{}, fmt.Errorf("%s: %w", code, ErrMissingName)
	}

	categories := splitList(r.Categories)
	if len(categories) == 0 {
		return model.Product{}, fmt.Errorf("%s: %w", code, ErrMissingCategory)
	}

	grade, err := model.ParseGrade(r.NutritionGrades)
	if err != nil {
		return model.Product{}, fmt.Errorf("%s: %w", code, err)
	}

	url := strings.TrimSpace(r.URL)
	if url == "" {
		url = productURLPrefix + code
	}

	p := model.Product{
		ID:         code,
		Name:       name,
		URL:        url,
		NutriGrade: grade,
		Category:   categories[0],
		Brands:     splitList(r.Brands),
		Stores:     splitList(r.Stores),
	}

	if img := strings.TrimSpace(r.ImageURL); img != "" {
		p.ImageURL = &img
	}

	if r.LastModifiedT > 0 {
		p.LastModified = time.Unix(r.LastModifiedT, 0).UTC()
	}

	return p, nil
}

// splitList splits a comma separated tag list, dropping blanks and repeats.
func splitList(s string) []string {
	items := []string{}
	seen := make(map[string]struct{})
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, dup := seen[part]; dup {
			continue
		}
		seen[part] = struct{}{}
		items = append(items, part)
	}
	return items
}
