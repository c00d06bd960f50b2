package repository

import (
	"context"
	"fmt"

	"filmorate/internal/data/entity"
	"filmorate/pkg/database"

	"go.uber.org/zap"
)

type LikeRepository interface {
	Add(ctx context.Context, filmID, userID int) error
	Remove(ctx context.Context, filmID, userID int) error

	FindUserIDsByFilmID(ctx context.Context, filmID int) ([]int, error)

	// FindUserIDsByFilmIDs resolves like-sets for every film in one
	// round trip. Films without likes are absent from the result map.
	FindUserIDsByFilmIDs(ctx context.Context, filmIDs []int) (map[int][]int, error)

	FindFilmIDsByUserID(ctx context.Context, userID int) ([]int, error)
	FindAll(ctx context.Context) ([]entity.Like, error)
}

type likeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLikeRepository(db database.PgxIface, log *zap.Logger) LikeRepository {
	return &likeRepository{
		db:  db,
		log: log.With(zap.String("repository", "like")),
	}
}

func (r *likeRepository) Add(ctx context.Context, filmID, userID int) error {
	// A user can like a film at most once
	query := `
		INSERT INTO film_like (film_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, filmID, userID)
	if err != nil {
		r.log.Error("Failed to add like",
			zap.Error(err),
			zap.Int("film_id", filmID),
			zap.Int("user_id", userID),
		)
		return fmt.Errorf("add like: %w", err)
	}

	return nil
}

func (r *likeRepository) Remove(ctx context.Context, filmID, userID int) error {
	query := `DELETE FROM film_like WHERE film_id = $1 AND user_id = $2`

	_, err := r.db.Exec(ctx, query, filmID, userID)
	if err != nil {
		r.log.Error("Failed to remove like",
			zap.Error(err),
			zap.Int("film_id", filmID),
			zap.Int("user_id", userID),
		)
		return fmt.Errorf("remove like: %w", err)
	}

	return nil
}

func (r *likeRepository) FindUserIDsByFilmID(ctx context.Context, filmID int) ([]int, error) {
	query := `SELECT user_id FROM film_like WHERE film_id = $1 ORDER BY user_id`

	rows, err := r.db.Query(ctx, query, filmID)
	if err != nil {
		r.log.Error("Failed to find likes by film ID",
			zap.Error(err),
			zap.Int("film_id", filmID),
		)
		return nil, fmt.Errorf("find likes by film id: %w", err)
	}
	defer rows.Close()

	var userIDs []int
	for rows.Next() {
		var userID int
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("scan like row: %w", err)
		}
		userIDs = append(userIDs, userID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate like rows: %w", err)
	}

	return userIDs, nil
}

func (r *likeRepository) FindUserIDsByFilmIDs(ctx context.Context, filmIDs []int) (map[int][]int, error) {
	if len(filmIDs) == 0 {
		return map[int][]int{}, nil
	}

	query := `
		SELECT film_id, user_id
		FROM film_like
		WHERE film_id = ANY($1)
		ORDER BY film_id, user_id
	`

	rows, err := r.db.Query(ctx, query, filmIDs)
	if err != nil {
		r.log.Error("Failed to find likes by film IDs",
			zap.Error(err),
			zap.Int("film_count", len(filmIDs)),
		)
		return nil, fmt.Errorf("find likes by film ids: %w", err)
	}
	defer rows.Close()

	result := make(map[int][]int)
	for rows.Next() {
		var filmID, userID int
		if err := rows.Scan(&filmID, &userID); err != nil {
			return nil, fmt.Errorf("scan like row: %w", err)
		}
		result[filmID] = append(result[filmID], userID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate like rows: %w", err)
	}

	return result, nil
}

func (r *likeRepository) FindFilmIDsByUserID(ctx context.Context, userID int) ([]int, error) {
	query := `SELECT film_id FROM film_like WHERE user_id = $1 ORDER BY film_id`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find likes by user ID",
			zap.Error(err),
			zap.Int("user_id", userID),
		)
		return nil, fmt.Errorf("find likes by user id: %w", err)
	}
	defer rows.Close()

	var filmIDs []int
	for rows.Next() {
		var filmID int
		if err := rows.Scan(&filmID); err != nil {
			return nil, fmt.Errorf("scan like row: %w", err)
		}
		filmIDs = append(filmIDs, filmID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate like rows: %w", err)
	}

	return filmIDs, nil
}

func (r *likeRepository) FindAll(ctx context.Context) ([]entity.Like, error) {
	query := `SELECT film_id, user_id FROM film_like`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all likes", zap.Error(err))
		return nil, fmt.Errorf("find all likes: %w", err)
	}
	defer rows.Close()

	var likes []entity.Like
	for rows.Next() {
		var like entity.Like
		if err := rows.Scan(&like.FilmID, &like.UserID); err != nil {
			return nil, fmt.Errorf("scan like row: %w", err)
		}
		likes = append(likes, like)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate like rows: %w", err)
	}

	return likes, nil
}
