package adaptor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"filmorate/internal/data/entity"
	"filmorate/internal/usecase"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// stubFilmService records the GetTopLiked call; the embedded interface
// panics on anything else, which these tests never reach.
type stubFilmService struct {
	usecase.FilmService

	called   bool
	gotCount int
}

func (s *stubFilmService) GetTopLiked(_ context.Context, count int, _, _ *int) ([]*entity.Film, error) {
	s.called = true
	s.gotCount = count
	return []*entity.Film{}, nil
}

func TestGetPopularRejectsMalformedCount(t *testing.T) {
	service := &stubFilmService{}
	handler := NewFilmHandler(service, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/films/popular?count=abc", nil)
	rec := httptest.NewRecorder()

	handler.GetPopular(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, service.called)
}

func TestGetPopularCountDefaultsWhenOmitted(t *testing.T) {
	service := &stubFilmService{}
	handler := NewFilmHandler(service, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/films/popular", nil)
	rec := httptest.NewRecorder()

	handler.GetPopular(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, service.called)
	assert.Equal(t, 10, service.gotCount)
}

func TestGetPopularPassesZeroCountThrough(t *testing.T) {
	// count=0 reaches the service, which rejects it; the handler must
	// not silently swap in the default.
	service := &stubFilmService{}
	handler := NewFilmHandler(service, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/films/popular?count=0", nil)
	rec := httptest.NewRecorder()

	handler.GetPopular(rec, req)

	assert.True(t, service.called)
	assert.Equal(t, 0, service.gotCount)
}
