package adaptor

import (
	"net/http"

	"filmorate/internal/usecase"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

type GenreHandler struct {
	service usecase.GenreService
	log     *zap.Logger
}

func NewGenreHandler(service usecase.GenreService, log *zap.Logger) *GenreHandler {
	return &GenreHandler{
		service: service,
		log:     log.With(zap.String("handler", "genre")),
	}
}

// GetGenres handles GET /genres
func (h *GenreHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.service.GetGenres(r.Context())
	if err != nil {
		respondError(h.log, w, err, "get genres")
		return
	}

	utils.ResponseSuccess(w, "Genres retrieved successfully", genres)
}

// GetGenreByID handles GET /genres/{id}
func (h *GenreHandler) GetGenreByID(w http.ResponseWriter, r *http.Request) {
	genreID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	genre, err := h.service.GetGenreByID(r.Context(), genreID)
	if err != nil {
		respondError(h.log, w, err, "get genre by id")
		return
	}

	utils.ResponseSuccess(w, "Genre retrieved successfully", genre)
}
