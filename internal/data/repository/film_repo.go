package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"filmorate/internal/data/entity"
	"filmorate/pkg/apperr"
	"filmorate/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type FilmRepository interface {
	// CRUD
	Create(ctx context.Context, film *entity.Film) error
	FindByID(ctx context.Context, id int) (*entity.Film, error)
	FindByIDs(ctx context.Context, ids []int) ([]*entity.Film, error)
	FindAll(ctx context.Context) ([]*entity.Film, error)
	Update(ctx context.Context, film *entity.Film) error
	Delete(ctx context.Context, id int) error

	// Ranked listings. Grouping, ordering and limiting happen in SQL so
	// the full film table is never materialized in the service.
	FindTopLiked(ctx context.Context, count int, genreID, year *int) ([]*entity.Film, error)
	FindByDirector(ctx context.Context, directorID int, order entity.SortOrder) ([]*entity.Film, error)
	FindCommonFilms(ctx context.Context, userID, friendID int) ([]*entity.Film, error)
}

type filmRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFilmRepository(db database.PgxIface, log *zap.Logger) FilmRepository {
	return &filmRepository{
		db:  db,
		log: log.With(zap.String("repository", "film")),
	}
}

// filmColumns are the bare scalar fields; mpa/genres/directors/likes
// are attached later by the aggregator.
const filmColumns = "f.id, f.name, f.description, f.release_date, f.duration"

func (r *filmRepository) Create(ctx context.Context, film *entity.Film) error {
	query := `
		INSERT INTO film (name, description, release_date, duration, mpa_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var mpaID *int
	if film.Mpa != nil {
		mpaID = &film.Mpa.ID
	}

	err := r.db.QueryRow(ctx, query,
		film.Name,
		film.Description,
		film.ReleaseDate,
		film.Duration,
		mpaID,
	).Scan(&film.ID)

	if err != nil {
		r.log.Error("Failed to create film",
			zap.Error(err),
			zap.String("name", film.Name),
		)
		return apperr.Unexpected("create film returned no id", err)
	}

	return nil
}

func (r *filmRepository) FindByID(ctx context.Context, id int) (*entity.Film, error) {
	query := `
		SELECT f.id, f.name, f.description, f.release_date, f.duration
		FROM film f
		WHERE f.id = $1
	`

	var film entity.Film
	err := r.db.QueryRow(ctx, query, id).Scan(
		&film.ID,
		&film.Name,
		&film.Description,
		&film.ReleaseDate,
		&film.Duration,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find film by ID",
			zap.Error(err),
			zap.Int("film_id", id),
		)
		return nil, fmt.Errorf("find film: %w", err)
	}

	return &film, nil
}

func (r *filmRepository) FindByIDs(ctx context.Context, ids []int) ([]*entity.Film, error) {
	if len(ids) == 0 {
		return []*entity.Film{}, nil
	}

	query := `
		SELECT f.id, f.name, f.description, f.release_date, f.duration
		FROM film f
		WHERE f.id = ANY($1)
		ORDER BY f.id
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find films by IDs",
			zap.Error(err),
			zap.Int("film_count", len(ids)),
		)
		return nil, fmt.Errorf("find films by ids: %w", err)
	}
	defer rows.Close()

	return scanFilms(rows)
}

func (r *filmRepository) FindAll(ctx context.Context) ([]*entity.Film, error) {
	query := `
		SELECT f.id, f.name, f.description, f.release_date, f.duration
		FROM film f
		ORDER BY f.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all films", zap.Error(err))
		return nil, fmt.Errorf("find films: %w", err)
	}
	defer rows.Close()

	return scanFilms(rows)
}

func (r *filmRepository) Update(ctx context.Context, film *entity.Film) error {
	query := `
		UPDATE film
		SET name = $2, description = $3, release_date = $4, duration = $5, mpa_id = $6
		WHERE id = $1
	`

	var mpaID *int
	if film.Mpa != nil {
		mpaID = &film.Mpa.ID
	}

	result, err := r.db.Exec(ctx, query,
		film.ID,
		film.Name,
		film.Description,
		film.ReleaseDate,
		film.Duration,
		mpaID,
	)

	if err != nil {
		r.log.Error("Failed to update film",
			zap.Error(err),
			zap.Int("film_id", film.ID),
		)
		return fmt.Errorf("update film: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("film %d not found", film.ID)
	}

	return nil
}

func (r *filmRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM film WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete film",
			zap.Error(err),
			zap.Int("film_id", id),
		)
		return fmt.Errorf("delete film: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("film %d not found", id)
	}

	r.log.Info("Film deleted", zap.Int("film_id", id))
	return nil
}

func (r *filmRepository) FindTopLiked(ctx context.Context, count int, genreID, year *int) ([]*entity.Film, error) {
	// Build query with optional genre/year filters (AND semantics)
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT ` + filmColumns + `
		FROM film f
		LEFT JOIN film_like l ON f.id = l.film_id
	`)

	args := []any{}
	conditions := []string{}

	if genreID != nil {
		queryBuilder.WriteString(" JOIN film_genre fg ON f.id = fg.film_id")
		args = append(args, *genreID)
		conditions = append(conditions, fmt.Sprintf("fg.genre_id = $%d", len(args)))
	}

	if year != nil {
		args = append(args, *year)
		conditions = append(conditions, fmt.Sprintf("EXTRACT(YEAR FROM f.release_date) = $%d", len(args)))
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	args = append(args, count)
	queryBuilder.WriteString(fmt.Sprintf(`
		GROUP BY f.id
		ORDER BY COUNT(DISTINCT l.user_id) DESC, f.id
		LIMIT $%d
	`, len(args)))

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find top liked films",
			zap.Error(err),
			zap.Int("count", count),
			zap.Intp("genre_id", genreID),
			zap.Intp("year", year),
		)
		return nil, fmt.Errorf("find top liked films: %w", err)
	}
	defer rows.Close()

	return scanFilms(rows)
}

func (r *filmRepository) FindByDirector(ctx context.Context, directorID int, order entity.SortOrder) ([]*entity.Film, error) {
	var query string

	switch order {
	case entity.SortByLikes:
		query = `
			SELECT ` + filmColumns + `
			FROM film f
			JOIN film_director fd ON f.id = fd.film_id
			LEFT JOIN film_like l ON f.id = l.film_id
			WHERE fd.director_id = $1
			GROUP BY f.id
			ORDER BY COUNT(DISTINCT l.user_id) DESC, f.id
		`
	case entity.SortByYear:
		query = `
			SELECT ` + filmColumns + `
			FROM film f
			JOIN film_director fd ON f.id = fd.film_id
			WHERE fd.director_id = $1
			ORDER BY f.release_date ASC, f.id
		`
	default:
		return nil, apperr.InvalidRequest("invalid sort order: %s", order)
	}

	rows, err := r.db.Query(ctx, query, directorID)
	if err != nil {
		r.log.Error("Failed to find films by director",
			zap.Error(err),
			zap.Int("director_id", directorID),
			zap.String("order", string(order)),
		)
		return nil, fmt.Errorf("find films by director: %w", err)
	}
	defer rows.Close()

	return scanFilms(rows)
}

func (r *filmRepository) FindCommonFilms(ctx context.Context, userID, friendID int) ([]*entity.Film, error) {
	// Ranked by total like count across all users, not just the pair
	query := `
		SELECT ` + filmColumns + `
		FROM film f
		JOIN film_like l_user ON f.id = l_user.film_id AND l_user.user_id = $1
		JOIN film_like l_friend ON f.id = l_friend.film_id AND l_friend.user_id = $2
		LEFT JOIN film_like l_all ON f.id = l_all.film_id
		GROUP BY f.id
		ORDER BY COUNT(DISTINCT l_all.user_id) DESC, f.id
	`

	rows, err := r.db.Query(ctx, query, userID, friendID)
	if err != nil {
		r.log.Error("Failed to find common films",
			zap.Error(err),
			zap.Int("user_id", userID),
			zap.Int("friend_id", friendID),
		)
		return nil, fmt.Errorf("find common films: %w", err)
	}
	defer rows.Close()

	return scanFilms(rows)
}

func scanFilms(rows pgx.Rows) ([]*entity.Film, error) {
	// Zero rows yield an empty list, never nil, so callers marshal []
	films := []*entity.Film{}
	for rows.Next() {
		var film entity.Film
		err := rows.Scan(
			&film.ID,
			&film.Name,
			&film.Description,
			&film.ReleaseDate,
			&film.Duration,
		)
		if err != nil {
			return nil, fmt.Errorf("scan film row: %w", err)
		}
		films = append(films, &film)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate film rows: %w", err)
	}

	return films, nil
}
