package repository

import (
	"context"
	"fmt"
	"strings"

	"filmorate/internal/data/entity"
	"filmorate/pkg/database"

	"go.uber.org/zap"
)

type SearchRepository interface {
	// SearchFilms matches the query as a case-insensitive substring
	// against the requested targets (union semantics) and returns bare
	// film rows ranked by total like count, ties broken by film id.
	SearchFilms(ctx context.Context, query string, targets []entity.SearchTarget) ([]*entity.Film, error)
}

type searchRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSearchRepository(db database.PgxIface, log *zap.Logger) SearchRepository {
	return &searchRepository{
		db:  db,
		log: log.With(zap.String("repository", "search")),
	}
}

func (r *searchRepository) SearchFilms(ctx context.Context, query string, targets []entity.SearchTarget) ([]*entity.Film, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT ` + filmColumns + `
		FROM film f
		LEFT JOIN film_director fd ON fd.film_id = f.id
		LEFT JOIN director d ON fd.director_id = d.id
		LEFT JOIN film_like l ON f.id = l.film_id
	`)

	pattern := "%" + query + "%"
	args := []any{}
	conditions := []string{}

	for _, target := range targets {
		args = append(args, pattern)
		switch target {
		case entity.SearchByTitle:
			conditions = append(conditions, fmt.Sprintf("f.name ILIKE $%d", len(args)))
		case entity.SearchByDirector:
			conditions = append(conditions, fmt.Sprintf("d.name ILIKE $%d", len(args)))
		}
	}

	queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " OR "))
	queryBuilder.WriteString(`
		GROUP BY f.id
		ORDER BY COUNT(DISTINCT l.user_id) DESC, f.id
	`)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to search films",
			zap.Error(err),
			zap.String("query", query),
		)
		return nil, fmt.Errorf("search films: %w", err)
	}
	defer rows.Close()

	return scanFilms(rows)
}
