package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"
	"filmorate/internal/dto/request"
	"filmorate/pkg/apperr"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

// minReleaseDate is the date of the first public film screening;
// nothing can have been released before it.
var minReleaseDate = entity.NewDate(1895, time.December, 28)

type FilmService interface {
	GetFilms(ctx context.Context) ([]*entity.Film, error)
	GetFilmByID(ctx context.Context, filmID int) (*entity.Film, error)
	CreateFilm(ctx context.Context, req *request.FilmCreateRequest) (*entity.Film, error)
	UpdateFilm(ctx context.Context, req *request.FilmUpdateRequest) (*entity.Film, error)
	DeleteFilm(ctx context.Context, filmID int) error

	AddLike(ctx context.Context, filmID, userID int) error
	RemoveLike(ctx context.Context, filmID, userID int) error

	GetTopLiked(ctx context.Context, count int, genreID, year *int) ([]*entity.Film, error)
	GetByDirector(ctx context.Context, directorID int, sortBy string) ([]*entity.Film, error)
	GetCommonFilms(ctx context.Context, userID, friendID int) ([]*entity.Film, error)
}

type filmService struct {
	repo       *repository.Repository
	aggregator *Aggregator
	log        *zap.Logger
}

func NewFilmService(repo *repository.Repository, aggregator *Aggregator, log *zap.Logger) FilmService {
	return &filmService{
		repo:       repo,
		aggregator: aggregator,
		log:        log.With(zap.String("service", "film")),
	}
}

func (s *filmService) GetFilms(ctx context.Context) ([]*entity.Film, error) {
	films, err := s.repo.Film.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get films: %w", err)
	}

	return s.aggregator.AttachAll(ctx, films)
}

func (s *filmService) GetFilmByID(ctx context.Context, filmID int) (*entity.Film, error) {
	film, err := s.repo.Film.FindByID(ctx, filmID)
	if err != nil {
		return nil, fmt.Errorf("get film by id: %w", err)
	}
	if film == nil {
		return nil, apperr.NotFound("film %d not found", filmID)
	}

	return s.aggregator.Attach(ctx, film)
}

func (s *filmService) CreateFilm(ctx context.Context, req *request.FilmCreateRequest) (*entity.Film, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create film validation failed", zap.Any("errors", errs))
		return nil, apperr.InvalidRequest("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	film, err := s.buildFilm(ctx, req.Name, req.Description, req.ReleaseDate, req.Duration, req.Mpa, req.Genres, req.Directors)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Film.Create(ctx, film); err != nil {
		return nil, fmt.Errorf("create film: %w", err)
	}

	if err := s.linkAttributes(ctx, film.ID, req.Genres, req.Directors); err != nil {
		return nil, err
	}

	s.log.Info("Film created",
		zap.Int("film_id", film.ID),
		zap.String("name", film.Name),
	)

	return s.aggregator.Attach(ctx, film)
}

func (s *filmService) UpdateFilm(ctx context.Context, req *request.FilmUpdateRequest) (*entity.Film, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update film validation failed", zap.Any("errors", errs))
		return nil, apperr.InvalidRequest("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Film.FindByID(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("find film: %w", err)
	}
	if existing == nil {
		return nil, apperr.NotFound("film %d not found", req.ID)
	}

	film, err := s.buildFilm(ctx, req.Name, req.Description, req.ReleaseDate, req.Duration, req.Mpa, req.Genres, req.Directors)
	if err != nil {
		return nil, err
	}
	film.ID = req.ID

	if err := s.repo.Film.Update(ctx, film); err != nil {
		return nil, fmt.Errorf("update film: %w", err)
	}

	if err := s.linkAttributes(ctx, film.ID, req.Genres, req.Directors); err != nil {
		return nil, err
	}

	s.log.Info("Film updated",
		zap.Int("film_id", film.ID),
		zap.String("name", film.Name),
	)

	return s.aggregator.Attach(ctx, film)
}

func (s *filmService) DeleteFilm(ctx context.Context, filmID int) error {
	return s.repo.Film.Delete(ctx, filmID)
}

func (s *filmService) AddLike(ctx context.Context, filmID, userID int) error {
	if err := s.requireFilmExists(ctx, filmID); err != nil {
		return err
	}
	if err := requireUserExists(ctx, s.repo.User, userID); err != nil {
		return err
	}

	if err := s.repo.Like.Add(ctx, filmID, userID); err != nil {
		return fmt.Errorf("add like: %w", err)
	}

	s.log.Info("Like added",
		zap.Int("film_id", filmID),
		zap.Int("user_id", userID),
	)
	return nil
}

func (s *filmService) RemoveLike(ctx context.Context, filmID, userID int) error {
	if err := s.requireFilmExists(ctx, filmID); err != nil {
		return err
	}
	if err := requireUserExists(ctx, s.repo.User, userID); err != nil {
		return err
	}

	if err := s.repo.Like.Remove(ctx, filmID, userID); err != nil {
		return fmt.Errorf("remove like: %w", err)
	}

	s.log.Info("Like removed",
		zap.Int("film_id", filmID),
		zap.Int("user_id", userID),
	)
	return nil
}

func (s *filmService) GetTopLiked(ctx context.Context, count int, genreID, year *int) ([]*entity.Film, error) {
	if count < 1 {
		return nil, apperr.InvalidRequest("count must be positive, got %d", count)
	}

	if genreID != nil {
		genre, err := s.repo.Genre.FindByID(ctx, *genreID)
		if err != nil {
			return nil, fmt.Errorf("check genre: %w", err)
		}
		if genre == nil {
			return nil, apperr.NotFound("genre %d not found", *genreID)
		}
	}

	films, err := s.repo.Film.FindTopLiked(ctx, count, genreID, year)
	if err != nil {
		return nil, fmt.Errorf("get top liked films: %w", err)
	}

	return s.aggregator.AttachAll(ctx, films)
}

func (s *filmService) GetByDirector(ctx context.Context, directorID int, sortBy string) ([]*entity.Film, error) {
	var order entity.SortOrder
	switch strings.ToLower(sortBy) {
	case string(entity.SortByLikes):
		order = entity.SortByLikes
	case string(entity.SortByYear):
		order = entity.SortByYear
	default:
		// Distinct from director-not-found
		return nil, apperr.InvalidRequest("invalid sort order: %q", sortBy)
	}

	director, err := s.repo.Director.FindByID(ctx, directorID)
	if err != nil {
		return nil, fmt.Errorf("check director: %w", err)
	}
	if director == nil {
		return nil, apperr.NotFound("director %d not found", directorID)
	}

	films, err := s.repo.Film.FindByDirector(ctx, directorID, order)
	if err != nil {
		return nil, fmt.Errorf("get films by director: %w", err)
	}

	return s.aggregator.AttachAll(ctx, films)
}

func (s *filmService) GetCommonFilms(ctx context.Context, userID, friendID int) ([]*entity.Film, error) {
	if err := requireUserExists(ctx, s.repo.User, userID); err != nil {
		return nil, err
	}
	if err := requireUserExists(ctx, s.repo.User, friendID); err != nil {
		return nil, err
	}

	films, err := s.repo.Film.FindCommonFilms(ctx, userID, friendID)
	if err != nil {
		return nil, fmt.Errorf("get common films: %w", err)
	}

	return s.aggregator.AttachAll(ctx, films)
}

// buildFilm validates the request payload and resolves it to an entity
// without persisting anything.
func (s *filmService) buildFilm(ctx context.Context, name, description, releaseDate string, duration int, mpa *request.IDRef, genres, directors []request.IDRef) (*entity.Film, error) {
	released, err := entity.ParseDate(releaseDate)
	if err != nil {
		return nil, apperr.InvalidRequest("invalid release date: %s", releaseDate)
	}
	if released.Before(minReleaseDate.Time) {
		return nil, apperr.InvalidRequest("release date %s precedes %s", released, minReleaseDate)
	}

	film := &entity.Film{
		Name:        name,
		Description: description,
		ReleaseDate: released,
		Duration:    duration,
	}

	if mpa != nil {
		rating, err := s.repo.Mpa.FindByID(ctx, mpa.ID)
		if err != nil {
			return nil, fmt.Errorf("check mpa: %w", err)
		}
		if rating == nil {
			return nil, apperr.NotFound("mpa rating %d not found", mpa.ID)
		}
		film.Mpa = rating
	}

	for _, ref := range genres {
		genre, err := s.repo.Genre.FindByID(ctx, ref.ID)
		if err != nil {
			return nil, fmt.Errorf("check genre: %w", err)
		}
		if genre == nil {
			return nil, apperr.NotFound("genre %d not found", ref.ID)
		}
	}

	for _, ref := range directors {
		director, err := s.repo.Director.FindByID(ctx, ref.ID)
		if err != nil {
			return nil, fmt.Errorf("check director: %w", err)
		}
		if director == nil {
			return nil, apperr.NotFound("director %d not found", ref.ID)
		}
	}

	return film, nil
}

// linkAttributes replaces the film's genre and director sets.
func (s *filmService) linkAttributes(ctx context.Context, filmID int, genres, directors []request.IDRef) error {
	genreIDs := make([]int, len(genres))
	for i, ref := range genres {
		genreIDs[i] = ref.ID
	}
	if err := s.repo.Genre.ReplaceFilmGenres(ctx, filmID, genreIDs); err != nil {
		return fmt.Errorf("link genres: %w", err)
	}

	directorIDs := make([]int, len(directors))
	for i, ref := range directors {
		directorIDs[i] = ref.ID
	}
	if err := s.repo.Director.ReplaceFilmDirectors(ctx, filmID, directorIDs); err != nil {
		return fmt.Errorf("link directors: %w", err)
	}

	return nil
}

func (s *filmService) requireFilmExists(ctx context.Context, filmID int) error {
	film, err := s.repo.Film.FindByID(ctx, filmID)
	if err != nil {
		return fmt.Errorf("check film: %w", err)
	}
	if film == nil {
		return apperr.NotFound("film %d not found", filmID)
	}
	return nil
}

func requireUserExists(ctx context.Context, users repository.UserRepository, userID int) error {
	exists, err := users.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return apperr.NotFound("user %d not found", userID)
	}
	return nil
}
