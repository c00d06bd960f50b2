package usecase

import (
	"context"
	"fmt"
	"strings"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"
	"filmorate/pkg/apperr"

	"go.uber.org/zap"
)

type SearchService interface {
	// SearchFilms runs a substring search over the targets named in the
	// "by" parameter (comma-separated "title" and/or "director").
	SearchFilms(ctx context.Context, query, by string) ([]*entity.Film, error)
}

type searchService struct {
	repo       *repository.Repository
	aggregator *Aggregator
	log        *zap.Logger
}

func NewSearchService(repo *repository.Repository, aggregator *Aggregator, log *zap.Logger) SearchService {
	return &searchService{
		repo:       repo,
		aggregator: aggregator,
		log:        log.With(zap.String("service", "search")),
	}
}

func (s *searchService) SearchFilms(ctx context.Context, query, by string) ([]*entity.Film, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperr.InvalidRequest("search query must not be blank")
	}

	targets, err := parseSearchTargets(by)
	if err != nil {
		return nil, err
	}

	films, err := s.repo.Search.SearchFilms(ctx, query, targets)
	if err != nil {
		return nil, fmt.Errorf("search films: %w", err)
	}

	s.log.Debug("Search executed",
		zap.String("query", query),
		zap.String("by", by),
		zap.Int("film_count", len(films)),
	)

	return s.aggregator.AttachAll(ctx, films)
}

func parseSearchTargets(by string) ([]entity.SearchTarget, error) {
	var targets []entity.SearchTarget
	seen := make(map[entity.SearchTarget]bool)

	for _, token := range strings.Split(by, ",") {
		token = strings.TrimSpace(strings.ToLower(token))
		if token == "" {
			continue
		}

		target := entity.SearchTarget(token)
		switch target {
		case entity.SearchByTitle, entity.SearchByDirector:
			if !seen[target] {
				seen[target] = true
				targets = append(targets, target)
			}
		default:
			return nil, apperr.InvalidRequest("unknown search target: %q", token)
		}
	}

	if len(targets) == 0 {
		return nil, apperr.InvalidRequest("at least one search target is required")
	}

	return targets, nil
}
