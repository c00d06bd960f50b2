package usecase

import (
	"context"
	"fmt"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"
	"filmorate/pkg/apperr"

	"go.uber.org/zap"
)

type GenreService interface {
	GetGenres(ctx context.Context) ([]entity.Genre, error)
	GetGenreByID(ctx context.Context, genreID int) (*entity.Genre, error)
}

type genreService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewGenreService(repo *repository.Repository, log *zap.Logger) GenreService {
	return &genreService{
		repo: repo,
		log:  log.With(zap.String("service", "genre")),
	}
}

func (s *genreService) GetGenres(ctx context.Context) ([]entity.Genre, error) {
	genres, err := s.repo.Genre.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get genres: %w", err)
	}
	return genres, nil
}

func (s *genreService) GetGenreByID(ctx context.Context, genreID int) (*entity.Genre, error) {
	genre, err := s.repo.Genre.FindByID(ctx, genreID)
	if err != nil {
		return nil, fmt.Errorf("get genre by id: %w", err)
	}
	if genre == nil {
		return nil, apperr.NotFound("genre %d not found", genreID)
	}
	return genre, nil
}
