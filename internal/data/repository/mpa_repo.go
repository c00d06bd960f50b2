package repository

import (
	"context"
	"errors"
	"fmt"

	"filmorate/internal/data/entity"
	"filmorate/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MpaRepository interface {
	FindAll(ctx context.Context) ([]entity.Mpa, error)
	FindByID(ctx context.Context, id int) (*entity.Mpa, error)
	FindByFilmID(ctx context.Context, filmID int) (*entity.Mpa, error)

	// FindByFilmIDs resolves ratings for every film in one round trip.
	// Films without an assigned rating are absent from the result map.
	FindByFilmIDs(ctx context.Context, filmIDs []int) (map[int]entity.Mpa, error)
}

type mpaRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMpaRepository(db database.PgxIface, log *zap.Logger) MpaRepository {
	return &mpaRepository{
		db:  db,
		log: log.With(zap.String("repository", "mpa")),
	}
}

func (r *mpaRepository) FindAll(ctx context.Context) ([]entity.Mpa, error) {
	query := `SELECT id, name FROM mpa ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all MPA ratings", zap.Error(err))
		return nil, fmt.Errorf("find mpa ratings: %w", err)
	}
	defer rows.Close()

	ratings := []entity.Mpa{}
	for rows.Next() {
		var mpa entity.Mpa
		if err := rows.Scan(&mpa.ID, &mpa.Name); err != nil {
			return nil, fmt.Errorf("scan mpa row: %w", err)
		}
		ratings = append(ratings, mpa)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mpa rows: %w", err)
	}

	return ratings, nil
}

func (r *mpaRepository) FindByID(ctx context.Context, id int) (*entity.Mpa, error) {
	query := `SELECT id, name FROM mpa WHERE id = $1`

	var mpa entity.Mpa
	err := r.db.QueryRow(ctx, query, id).Scan(&mpa.ID, &mpa.Name)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find MPA by ID",
			zap.Error(err),
			zap.Int("mpa_id", id),
		)
		return nil, fmt.Errorf("find mpa by id: %w", err)
	}

	return &mpa, nil
}

func (r *mpaRepository) FindByFilmID(ctx context.Context, filmID int) (*entity.Mpa, error) {
	query := `
		SELECT m.id, m.name
		FROM mpa m
		JOIN film f ON f.mpa_id = m.id
		WHERE f.id = $1
	`

	var mpa entity.Mpa
	err := r.db.QueryRow(ctx, query, filmID).Scan(&mpa.ID, &mpa.Name)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find MPA by film ID",
			zap.Error(err),
			zap.Int("film_id", filmID),
		)
		return nil, fmt.Errorf("find mpa by film id: %w", err)
	}

	return &mpa, nil
}

func (r *mpaRepository) FindByFilmIDs(ctx context.Context, filmIDs []int) (map[int]entity.Mpa, error) {
	if len(filmIDs) == 0 {
		return map[int]entity.Mpa{}, nil
	}

	query := `
		SELECT f.id, m.id, m.name
		FROM film f
		JOIN mpa m ON f.mpa_id = m.id
		WHERE f.id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, filmIDs)
	if err != nil {
		r.log.Error("Failed to find MPA by film IDs",
			zap.Error(err),
			zap.Int("film_count", len(filmIDs)),
		)
		return nil, fmt.Errorf("find mpa by film ids: %w", err)
	}
	defer rows.Close()

	result := make(map[int]entity.Mpa)
	for rows.Next() {
		var filmID int
		var mpa entity.Mpa
		if err := rows.Scan(&filmID, &mpa.ID, &mpa.Name); err != nil {
			return nil, fmt.Errorf("scan mpa row: %w", err)
		}
		result[filmID] = mpa
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mpa rows: %w", err)
	}

	return result, nil
}
