package usecase

import (
	"filmorate/internal/data/repository"

	"go.uber.org/zap"
)

type Service struct {
	Film           FilmService
	User           UserService
	Genre          GenreService
	Director       DirectorService
	Mpa            MpaService
	Search         SearchService
	Recommendation RecommendationService
}

func NewService(repo *repository.Repository, log *zap.Logger) *Service {
	aggregator := NewAggregator(repo, log)

	return &Service{
		Film:           NewFilmService(repo, aggregator, log),
		User:           NewUserService(repo, log),
		Genre:          NewGenreService(repo, log),
		Director:       NewDirectorService(repo, log),
		Mpa:            NewMpaService(repo, log),
		Search:         NewSearchService(repo, aggregator, log),
		Recommendation: NewRecommendationService(repo, aggregator, log),
	}
}
