package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"filmorate/internal/data/entity"
	"filmorate/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type GenreRepository interface {
	FindAll(ctx context.Context) ([]entity.Genre, error)
	FindByID(ctx context.Context, id int) (*entity.Genre, error)
	FindByFilmID(ctx context.Context, filmID int) ([]entity.Genre, error)

	// FindByFilmIDs resolves genres for every film in one round trip.
	// Films without genres are simply absent from the result map.
	FindByFilmIDs(ctx context.Context, filmIDs []int) (map[int][]entity.Genre, error)

	// ReplaceFilmGenres atomically swaps a film's genre set
	// (clear-then-insert inside one transaction).
	ReplaceFilmGenres(ctx context.Context, filmID int, genreIDs []int) error
}

type genreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGenreRepository(db database.PgxIface, log *zap.Logger) GenreRepository {
	return &genreRepository{
		db:  db,
		log: log.With(zap.String("repository", "genre")),
	}
}

func (r *genreRepository) FindAll(ctx context.Context) ([]entity.Genre, error) {
	query := `SELECT id, name FROM genre ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all genres", zap.Error(err))
		return nil, fmt.Errorf("find genres: %w", err)
	}
	defer rows.Close()

	return scanGenres(rows)
}

func (r *genreRepository) FindByID(ctx context.Context, id int) (*entity.Genre, error) {
	query := `SELECT id, name FROM genre WHERE id = $1`

	var genre entity.Genre
	err := r.db.QueryRow(ctx, query, id).Scan(&genre.ID, &genre.Name)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find genre by ID",
			zap.Error(err),
			zap.Int("genre_id", id),
		)
		return nil, fmt.Errorf("find genre by id: %w", err)
	}

	return &genre, nil
}

func (r *genreRepository) FindByFilmID(ctx context.Context, filmID int) ([]entity.Genre, error) {
	query := `
		SELECT g.id, g.name
		FROM genre g
		JOIN film_genre fg ON g.id = fg.genre_id
		WHERE fg.film_id = $1
		ORDER BY g.id
	`

	rows, err := r.db.Query(ctx, query, filmID)
	if err != nil {
		r.log.Error("Failed to find genres by film ID",
			zap.Error(err),
			zap.Int("film_id", filmID),
		)
		return nil, fmt.Errorf("find genres by film id: %w", err)
	}
	defer rows.Close()

	return scanGenres(rows)
}

func (r *genreRepository) FindByFilmIDs(ctx context.Context, filmIDs []int) (map[int][]entity.Genre, error) {
	if len(filmIDs) == 0 {
		return map[int][]entity.Genre{}, nil
	}

	// One row per (film, genre) pair, grouped client-side
	query := `
		SELECT fg.film_id, g.id, g.name
		FROM film_genre fg
		JOIN genre g ON g.id = fg.genre_id
		WHERE fg.film_id = ANY($1)
		ORDER BY fg.film_id, g.id
	`

	rows, err := r.db.Query(ctx, query, filmIDs)
	if err != nil {
		r.log.Error("Failed to find genres by film IDs",
			zap.Error(err),
			zap.Int("film_count", len(filmIDs)),
		)
		return nil, fmt.Errorf("find genres by film ids: %w", err)
	}
	defer rows.Close()

	result := make(map[int][]entity.Genre)
	for rows.Next() {
		var filmID int
		var genre entity.Genre
		if err := rows.Scan(&filmID, &genre.ID, &genre.Name); err != nil {
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		result[filmID] = append(result[filmID], genre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genre rows: %w", err)
	}

	return result, nil
}

func (r *genreRepository) ReplaceFilmGenres(ctx context.Context, filmID int, genreIDs []int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace film genres: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM film_genre WHERE film_id = $1`, filmID); err != nil {
		r.log.Error("Failed to clear film genres",
			zap.Error(err),
			zap.Int("film_id", filmID),
		)
		return fmt.Errorf("clear film genres: %w", err)
	}

	if len(genreIDs) > 0 {
		query, args := buildLinkInsert("film_genre", "genre_id", filmID, genreIDs)
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			r.log.Error("Failed to insert film genres",
				zap.Error(err),
				zap.Int("film_id", filmID),
				zap.Int("genre_count", len(genreIDs)),
			)
			return fmt.Errorf("insert film genres: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// buildLinkInsert produces a multi-row INSERT for a (film_id, related_id)
// bridge table, deduplicating related ids.
func buildLinkInsert(table, column string, filmID int, relatedIDs []int) (string, []any) {
	var values []string
	args := []any{filmID}

	seen := make(map[int]bool, len(relatedIDs))
	for _, id := range relatedIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		args = append(args, id)
		values = append(values, fmt.Sprintf("($1, $%d)", len(args)))
	}

	query := fmt.Sprintf("INSERT INTO %s (film_id, %s) VALUES %s",
		table, column, strings.Join(values, ", "))
	return query, args
}

func scanGenres(rows pgx.Rows) ([]entity.Genre, error) {
	genres := []entity.Genre{}
	for rows.Next() {
		var genre entity.Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, genre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genre rows: %w", err)
	}

	return genres, nil
}
