package model

import (
	"fmt"
	"strings"
	"time"
)

// Grade is a Nutri-Score label, from "a" (best) to "e" (worst).
type Grade string

// Nutri-Score grades, best first.
const (
	GradeA Grade = "a"
	GradeB Grade = "b"
	GradeC Grade = "c"
	GradeD Grade = "d"
	GradeE Grade = "e"
)

// Grades lists every valid grade in ascending ordinal order.
var Grades = []Grade{GradeA, GradeB, GradeC, GradeD, GradeE}

// Ordinal returns the position of the grade on the scale, 0 being the best.
// The second return value is false for anything outside a..e.
func (g Grade) Ordinal() (int, bool) {
	for i, candidate := range Grades {
		if g == candidate {
			return i, true
		}
	}
	return 0, false
}

// Valid reports whether g is one of the known grades.
func (g Grade) Valid() bool {
	_, ok := g.Ordinal()
	return ok
}

// ParseGrade normalises s and returns the matching grade.
func ParseGrade(s string) (Grade, error) {
	g := Grade(strings.ToLower(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidGrade, s)
	}
	return g, nil
}

// Product represents a food product in the catalogue.
// ID is the Open Food Facts barcode.
type Product struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	URL          string    `json:"url" db:"url"`
	NutriGrade   Grade     `json:"nutriGrade" db:"nutri_grade"`
	CategoryID   int64     `json:"categoryId" db:"category_id"`
	Category     string    `json:"category,omitempty" db:"category"`
	ImageURL     *string   `json:"imageUrl,omitempty" db:"img"`
	Brands       []string  `json:"brands,omitempty"`
	Stores       []string  `json:"stores,omitempty"`
	LastModified time.Time `json:"lastModified" db:"last_modified"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	IsFavorite   bool      `json:"isFavorite"`
}

// Category groups products; substitutes are only searched within one.
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Brand is a product brand.
type Brand struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// SearchResult is the outcome of a product search.
type SearchResult struct {
	Query         string    `json:"query"`
	Title         string    `json:"title,omitempty"`
	Message       string    `json:"message,omitempty"`
	ChosenProduct *Product  `json:"chosenProduct"`
	Products      []Product `json:"products"`
}

// ProductListing is a titled page of products belonging to a category or brand.
type ProductListing struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Title    string    `json:"title"`
	Products []Product `json:"products"`
}
