package usecase

import (
	"context"
	"fmt"
	"sort"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"

	"go.uber.org/zap"
)

// maxRecommendations caps the recommendation list length.
const maxRecommendations = 10

type RecommendationService interface {
	GetRecommendations(ctx context.Context, userID int) ([]*entity.Film, error)
}

type recommendationService struct {
	repo       *repository.Repository
	aggregator *Aggregator
	log        *zap.Logger
}

func NewRecommendationService(repo *repository.Repository, aggregator *Aggregator, log *zap.Logger) RecommendationService {
	return &recommendationService{
		repo:       repo,
		aggregator: aggregator,
		log:        log.With(zap.String("service", "recommendation")),
	}
}

// GetRecommendations suggests films liked by users with overlapping
// taste. A candidate film's score is the maximum like-overlap among the
// similar users who liked it, so one close match outweighs many weak
// ones. Candidates are ranked by score descending, film id ascending,
// and capped at maxRecommendations.
func (s *recommendationService) GetRecommendations(ctx context.Context, userID int) ([]*entity.Film, error) {
	if err := requireUserExists(ctx, s.repo.User, userID); err != nil {
		return nil, err
	}

	likedFilmIDs, err := s.repo.Like.FindFilmIDsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user likes: %w", err)
	}

	// Cold start: no taste signal means no recommendations, not an error
	if len(likedFilmIDs) == 0 {
		s.log.Debug("No likes recorded, skipping recommendations",
			zap.Int("user_id", userID),
		)
		return []*entity.Film{}, nil
	}

	likes, err := s.repo.Like.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load likes: %w", err)
	}

	candidateIDs := rankCandidates(userID, likedFilmIDs, likes)
	if len(candidateIDs) == 0 {
		return []*entity.Film{}, nil
	}

	films, err := s.repo.Film.FindByIDs(ctx, candidateIDs)
	if err != nil {
		return nil, fmt.Errorf("load recommended films: %w", err)
	}

	// Restore ranking order; FindByIDs returns rows ordered by id
	byID := make(map[int]*entity.Film, len(films))
	for _, film := range films {
		byID[film.ID] = film
	}
	ranked := make([]*entity.Film, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		if film, ok := byID[id]; ok {
			ranked = append(ranked, film)
		}
	}

	s.log.Info("Recommendations computed",
		zap.Int("user_id", userID),
		zap.Int("film_count", len(ranked)),
	)

	return s.aggregator.AttachAll(ctx, ranked)
}

// rankCandidates runs the collaborative filtering over the full like
// relation: overlap counts per other user, then max-overlap scores per
// unseen film.
func rankCandidates(userID int, likedFilmIDs []int, likes []entity.Like) []int {
	liked := make(map[int]bool, len(likedFilmIDs))
	for _, filmID := range likedFilmIDs {
		liked[filmID] = true
	}

	filmsByUser := make(map[int][]int)
	for _, like := range likes {
		if like.UserID == userID {
			continue
		}
		filmsByUser[like.UserID] = append(filmsByUser[like.UserID], like.FilmID)
	}

	// Overlap count per other user
	overlaps := make(map[int]int)
	for otherID, filmIDs := range filmsByUser {
		for _, filmID := range filmIDs {
			if liked[filmID] {
				overlaps[otherID]++
			}
		}
	}

	// Score per candidate film: max overlap among similar users liking it
	scores := make(map[int]int)
	for otherID, overlap := range overlaps {
		if overlap < 1 {
			continue
		}
		for _, filmID := range filmsByUser[otherID] {
			if liked[filmID] {
				continue
			}
			if overlap > scores[filmID] {
				scores[filmID] = overlap
			}
		}
	}

	candidates := make([]int, 0, len(scores))
	for filmID := range scores {
		candidates = append(candidates, filmID)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if scores[candidates[i]] != scores[candidates[j]] {
			return scores[candidates[i]] > scores[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})

	if len(candidates) > maxRecommendations {
		candidates = candidates[:maxRecommendations]
	}

	return candidates
}
