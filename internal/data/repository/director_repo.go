package repository

import (
	"context"
	"errors"
	"fmt"

	"filmorate/internal/data/entity"
	"filmorate/pkg/apperr"
	"filmorate/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type DirectorRepository interface {
	Create(ctx context.Context, director *entity.Director) error
	FindAll(ctx context.Context) ([]entity.Director, error)
	FindByID(ctx context.Context, id int) (*entity.Director, error)
	Update(ctx context.Context, director *entity.Director) error
	Delete(ctx context.Context, id int) error

	FindByFilmID(ctx context.Context, filmID int) ([]entity.Director, error)
	FindByFilmIDs(ctx context.Context, filmIDs []int) (map[int][]entity.Director, error)
	ReplaceFilmDirectors(ctx context.Context, filmID int, directorIDs []int) error
}

type directorRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewDirectorRepository(db database.PgxIface, log *zap.Logger) DirectorRepository {
	return &directorRepository{
		db:  db,
		log: log.With(zap.String("repository", "director")),
	}
}

func (r *directorRepository) Create(ctx context.Context, director *entity.Director) error {
	query := `INSERT INTO director (name) VALUES ($1) RETURNING id`

	err := r.db.QueryRow(ctx, query, director.Name).Scan(&director.ID)
	if err != nil {
		r.log.Error("Failed to create director",
			zap.Error(err),
			zap.String("name", director.Name),
		)
		return apperr.Unexpected("create director returned no id", err)
	}

	return nil
}

func (r *directorRepository) FindAll(ctx context.Context) ([]entity.Director, error) {
	query := `SELECT id, name FROM director ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all directors", zap.Error(err))
		return nil, fmt.Errorf("find directors: %w", err)
	}
	defer rows.Close()

	return scanDirectors(rows)
}

func (r *directorRepository) FindByID(ctx context.Context, id int) (*entity.Director, error) {
	query := `SELECT id, name FROM director WHERE id = $1`

	var director entity.Director
	err := r.db.QueryRow(ctx, query, id).Scan(&director.ID, &director.Name)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find director by ID",
			zap.Error(err),
			zap.Int("director_id", id),
		)
		return nil, fmt.Errorf("find director by id: %w", err)
	}

	return &director, nil
}

func (r *directorRepository) Update(ctx context.Context, director *entity.Director) error {
	query := `UPDATE director SET name = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, director.ID, director.Name)
	if err != nil {
		r.log.Error("Failed to update director",
			zap.Error(err),
			zap.Int("director_id", director.ID),
		)
		return fmt.Errorf("update director: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("director %d not found", director.ID)
	}

	return nil
}

func (r *directorRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM director WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete director",
			zap.Error(err),
			zap.Int("director_id", id),
		)
		return fmt.Errorf("delete director: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("director %d not found", id)
	}

	return nil
}

func (r *directorRepository) FindByFilmID(ctx context.Context, filmID int) ([]entity.Director, error) {
	query := `
		SELECT d.id, d.name
		FROM director d
		JOIN film_director fd ON d.id = fd.director_id
		WHERE fd.film_id = $1
		ORDER BY d.id
	`

	rows, err := r.db.Query(ctx, query, filmID)
	if err != nil {
		r.log.Error("Failed to find directors by film ID",
			zap.Error(err),
			zap.Int("film_id", filmID),
		)
		return nil, fmt.Errorf("find directors by film id: %w", err)
	}
	defer rows.Close()

	return scanDirectors(rows)
}

func (r *directorRepository) FindByFilmIDs(ctx context.Context, filmIDs []int) (map[int][]entity.Director, error) {
	if len(filmIDs) == 0 {
		return map[int][]entity.Director{}, nil
	}

	query := `
		SELECT fd.film_id, d.id, d.name
		FROM film_director fd
		JOIN director d ON d.id = fd.director_id
		WHERE fd.film_id = ANY($1)
		ORDER BY fd.film_id, d.id
	`

	rows, err := r.db.Query(ctx, query, filmIDs)
	if err != nil {
		r.log.Error("Failed to find directors by film IDs",
			zap.Error(err),
			zap.Int("film_count", len(filmIDs)),
		)
		return nil, fmt.Errorf("find directors by film ids: %w", err)
	}
	defer rows.Close()

	result := make(map[int][]entity.Director)
	for rows.Next() {
		var filmID int
		var director entity.Director
		if err := rows.Scan(&filmID, &director.ID, &director.Name); err != nil {
			return nil, fmt.Errorf("scan director row: %w", err)
		}
		result[filmID] = append(result[filmID], director)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate director rows: %w", err)
	}

	return result, nil
}

func (r *directorRepository) ReplaceFilmDirectors(ctx context.Context, filmID int, directorIDs []int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace film directors: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM film_director WHERE film_id = $1`, filmID); err != nil {
		r.log.Error("Failed to clear film directors",
			zap.Error(err),
			zap.Int("film_id", filmID),
		)
		return fmt.Errorf("clear film directors: %w", err)
	}

	if len(directorIDs) > 0 {
		query, args := buildLinkInsert("film_director", "director_id", filmID, directorIDs)
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			r.log.Error("Failed to insert film directors",
				zap.Error(err),
				zap.Int("film_id", filmID),
				zap.Int("director_count", len(directorIDs)),
			)
			return fmt.Errorf("insert film directors: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func scanDirectors(rows pgx.Rows) ([]entity.Director, error) {
	directors := []entity.Director{}
	for rows.Next() {
		var director entity.Director
		if err := rows.Scan(&director.ID, &director.Name); err != nil {
			return nil, fmt.Errorf("scan director row: %w", err)
		}
		directors = append(directors, director)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate director rows: %w", err)
	}

	return directors, nil
}
