package repository

import (
	"errors"
	"strings"

	"nutellove/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// productColumns selects a product joined with its category name.
const productColumns = `
	p.id, p.name, p.url, p.nutri_grade, p.category_id, c.name, p.img, p.last_modified, p.created_at
`

const productFrom = `
	FROM products p
	JOIN categories c ON c.id = p.category_id
`

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint failures.
const uniqueViolation = "23505"

// scanProduct reads one row selected with productColumns.
func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		p     model.Product
		grade string
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.URL,
		&grade,
		&p.CategoryID,
		&p.Category,
		&p.ImageURL,
		&p.LastModified,
		&p.CreatedAt,
	)
	if err != nil {
		return model.Product{}, err
	}
	p.NutriGrade = model.Grade(grade)
	return p, nil
}

// collectProducts drains rows selected with productColumns.
func collectProducts(rows pgx.Rows) ([]model.Product, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Product, error) {
		return scanProduct(row)
	})
}

// likePattern turns a search term into an ILIKE "contains" pattern,
// escaping the LIKE wildcards it may hold.
func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return "%" + escaped + "%"
}

// isUniqueViolation reports whether err is a unique constraint failure.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
