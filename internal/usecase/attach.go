package usecase

import (
	"context"
	"fmt"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"

	"go.uber.org/zap"
)

// Aggregator enriches bare film rows with their MPA rating, genres,
// directors and like-set. For a batch it issues exactly one lookup per
// attribute kind regardless of how many films are passed in.
//
// Every attribute field is fully replaced on each call, so repeated
// enrichment of the same film is idempotent.
type Aggregator struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAggregator(repo *repository.Repository, log *zap.Logger) *Aggregator {
	return &Aggregator{
		repo: repo,
		log:  log.With(zap.String("service", "aggregator")),
	}
}

// AttachAll enriches films in place and returns the same slice. Input
// order is preserved; films missing an attribute get the empty default
// (nil MPA, empty slices).
func (a *Aggregator) AttachAll(ctx context.Context, films []*entity.Film) ([]*entity.Film, error) {
	if len(films) == 0 {
		// Normalize so an absent result still marshals as []
		return []*entity.Film{}, nil
	}

	filmIDs := make([]int, len(films))
	for i, film := range films {
		filmIDs[i] = film.ID
	}

	mpaMap, err := a.repo.Mpa.FindByFilmIDs(ctx, filmIDs)
	if err != nil {
		return nil, fmt.Errorf("attach mpa: %w", err)
	}

	genreMap, err := a.repo.Genre.FindByFilmIDs(ctx, filmIDs)
	if err != nil {
		return nil, fmt.Errorf("attach genres: %w", err)
	}

	directorMap, err := a.repo.Director.FindByFilmIDs(ctx, filmIDs)
	if err != nil {
		return nil, fmt.Errorf("attach directors: %w", err)
	}

	likeMap, err := a.repo.Like.FindUserIDsByFilmIDs(ctx, filmIDs)
	if err != nil {
		return nil, fmt.Errorf("attach likes: %w", err)
	}

	for _, film := range films {
		film.Mpa = nil
		if mpa, ok := mpaMap[film.ID]; ok {
			m := mpa
			film.Mpa = &m
		}

		film.Genres = genreMap[film.ID]
		if film.Genres == nil {
			film.Genres = []entity.Genre{}
		}

		film.Directors = directorMap[film.ID]
		if film.Directors == nil {
			film.Directors = []entity.Director{}
		}

		film.Likes = likeMap[film.ID]
		if film.Likes == nil {
			film.Likes = []int{}
		}
	}

	a.log.Debug("Attributes attached", zap.Int("film_count", len(films)))
	return films, nil
}

// Attach enriches a single film using the single-entity lookups.
func (a *Aggregator) Attach(ctx context.Context, film *entity.Film) (*entity.Film, error) {
	mpa, err := a.repo.Mpa.FindByFilmID(ctx, film.ID)
	if err != nil {
		return nil, fmt.Errorf("attach mpa: %w", err)
	}

	genres, err := a.repo.Genre.FindByFilmID(ctx, film.ID)
	if err != nil {
		return nil, fmt.Errorf("attach genres: %w", err)
	}

	directors, err := a.repo.Director.FindByFilmID(ctx, film.ID)
	if err != nil {
		return nil, fmt.Errorf("attach directors: %w", err)
	}

	likes, err := a.repo.Like.FindUserIDsByFilmID(ctx, film.ID)
	if err != nil {
		return nil, fmt.Errorf("attach likes: %w", err)
	}

	film.Mpa = mpa
	film.Genres = genres
	if film.Genres == nil {
		film.Genres = []entity.Genre{}
	}
	film.Directors = directors
	if film.Directors == nil {
		film.Directors = []entity.Director{}
	}
	film.Likes = likes
	if film.Likes == nil {
		film.Likes = []int{}
	}

	return film, nil
}
