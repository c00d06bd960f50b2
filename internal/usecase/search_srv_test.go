package usecase

import (
	"context"
	"testing"

	"filmorate/internal/data/entity"
	"filmorate/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSearchFixture() (*fixture, SearchService) {
	f := newFixture()
	log := zap.NewNop()
	service := NewSearchService(f.repo, NewAggregator(f.repo, log), log)
	return f, service
}

func TestSearchFilmsBlankQuery(t *testing.T) {
	_, service := newSearchFixture()

	for _, query := range []string{"", "   ", "\t"} {
		_, err := service.SearchFilms(context.Background(), query, "title")
		assert.True(t, apperr.IsInvalidRequest(err), "query %q", query)
	}
}

func TestSearchFilmsNoTargets(t *testing.T) {
	_, service := newSearchFixture()

	_, err := service.SearchFilms(context.Background(), "crime", "")
	assert.True(t, apperr.IsInvalidRequest(err))

	_, err = service.SearchFilms(context.Background(), "crime", " , ,")
	assert.True(t, apperr.IsInvalidRequest(err))
}

func TestSearchFilmsUnknownTarget(t *testing.T) {
	_, service := newSearchFixture()

	_, err := service.SearchFilms(context.Background(), "crime", "title,actor")
	assert.True(t, apperr.IsInvalidRequest(err))
}

func TestSearchFilmsNormalizesTargets(t *testing.T) {
	f, service := newSearchFixture()

	_, err := service.SearchFilms(context.Background(), "crime", " Title ,DIRECTOR,title")
	require.NoError(t, err)

	assert.Equal(t, "crime", f.search.gotQuery)
	assert.Equal(t, []entity.SearchTarget{entity.SearchByTitle, entity.SearchByDirector}, f.search.gotTargets)
}

func TestSearchFilmsEnrichesResults(t *testing.T) {
	f, service := newSearchFixture()
	film := f.addFilm("Crime and Punishment")
	f.search.results = []*entity.Film{film}

	films, err := service.SearchFilms(context.Background(), "crime", "title")
	require.NoError(t, err)

	require.Len(t, films, 1)
	assert.NotNil(t, films[0].Genres)
	assert.NotNil(t, films[0].Likes)
}
