package usecase

import (
	"context"
	"fmt"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"
	"filmorate/pkg/apperr"

	"go.uber.org/zap"
)

type MpaService interface {
	GetRatings(ctx context.Context) ([]entity.Mpa, error)
	GetRatingByID(ctx context.Context, mpaID int) (*entity.Mpa, error)
}

type mpaService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMpaService(repo *repository.Repository, log *zap.Logger) MpaService {
	return &mpaService{
		repo: repo,
		log:  log.With(zap.String("service", "mpa")),
	}
}

func (s *mpaService) GetRatings(ctx context.Context) ([]entity.Mpa, error) {
	ratings, err := s.repo.Mpa.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get mpa ratings: %w", err)
	}
	return ratings, nil
}

func (s *mpaService) GetRatingByID(ctx context.Context, mpaID int) (*entity.Mpa, error) {
	mpa, err := s.repo.Mpa.FindByID(ctx, mpaID)
	if err != nil {
		return nil, fmt.Errorf("get mpa by id: %w", err)
	}
	if mpa == nil {
		return nil, apperr.NotFound("mpa rating %d not found", mpaID)
	}
	return mpa, nil
}
