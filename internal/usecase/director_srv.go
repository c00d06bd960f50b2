package usecase

import (
	"context"
	"fmt"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"
	"filmorate/internal/dto/request"
	"filmorate/pkg/apperr"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

type DirectorService interface {
	GetDirectors(ctx context.Context) ([]entity.Director, error)
	GetDirectorByID(ctx context.Context, directorID int) (*entity.Director, error)
	CreateDirector(ctx context.Context, req *request.DirectorCreateRequest) (*entity.Director, error)
	UpdateDirector(ctx context.Context, req *request.DirectorUpdateRequest) (*entity.Director, error)
	DeleteDirector(ctx context.Context, directorID int) error
}

type directorService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewDirectorService(repo *repository.Repository, log *zap.Logger) DirectorService {
	return &directorService{
		repo: repo,
		log:  log.With(zap.String("service", "director")),
	}
}

func (s *directorService) GetDirectors(ctx context.Context) ([]entity.Director, error) {
	directors, err := s.repo.Director.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get directors: %w", err)
	}
	return directors, nil
}

func (s *directorService) GetDirectorByID(ctx context.Context, directorID int) (*entity.Director, error) {
	director, err := s.repo.Director.FindByID(ctx, directorID)
	if err != nil {
		return nil, fmt.Errorf("get director by id: %w", err)
	}
	if director == nil {
		return nil, apperr.NotFound("director %d not found", directorID)
	}
	return director, nil
}

func (s *directorService) CreateDirector(ctx context.Context, req *request.DirectorCreateRequest) (*entity.Director, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.InvalidRequest("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	director := &entity.Director{Name: req.Name}
	if err := s.repo.Director.Create(ctx, director); err != nil {
		return nil, fmt.Errorf("create director: %w", err)
	}

	s.log.Info("Director created",
		zap.Int("director_id", director.ID),
		zap.String("name", director.Name),
	)
	return director, nil
}

func (s *directorService) UpdateDirector(ctx context.Context, req *request.DirectorUpdateRequest) (*entity.Director, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.InvalidRequest("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	director := &entity.Director{ID: req.ID, Name: req.Name}
	if err := s.repo.Director.Update(ctx, director); err != nil {
		return nil, fmt.Errorf("update director: %w", err)
	}

	return director, nil
}

func (s *directorService) DeleteDirector(ctx context.Context, directorID int) error {
	return s.repo.Director.Delete(ctx, directorID)
}
