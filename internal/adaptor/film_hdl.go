package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"filmorate/internal/dto/request"
	"filmorate/internal/usecase"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

const defaultPopularCount = 10

type FilmHandler struct {
	service usecase.FilmService
	log     *zap.Logger
}

func NewFilmHandler(service usecase.FilmService, log *zap.Logger) *FilmHandler {
	return &FilmHandler{
		service: service,
		log:     log.With(zap.String("handler", "film")),
	}
}

// GetFilms handles GET /films
func (h *FilmHandler) GetFilms(w http.ResponseWriter, r *http.Request) {
	films, err := h.service.GetFilms(r.Context())
	if err != nil {
		respondError(h.log, w, err, "get films")
		return
	}

	utils.ResponseSuccess(w, "Films retrieved successfully", films)
}

// GetFilmByID handles GET /films/{id}
func (h *FilmHandler) GetFilmByID(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	film, err := h.service.GetFilmByID(r.Context(), filmID)
	if err != nil {
		respondError(h.log, w, err, "get film by id")
		return
	}

	utils.ResponseSuccess(w, "Film retrieved successfully", film)
}

// CreateFilm handles POST /films
func (h *FilmHandler) CreateFilm(w http.ResponseWriter, r *http.Request) {
	var req request.FilmCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	film, err := h.service.CreateFilm(r.Context(), &req)
	if err != nil {
		respondError(h.log, w, err, "create film")
		return
	}

	utils.ResponseCreated(w, "Film created successfully", film)
}

// UpdateFilm handles PUT /films. The target id travels in the body.
func (h *FilmHandler) UpdateFilm(w http.ResponseWriter, r *http.Request) {
	var req request.FilmUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	film, err := h.service.UpdateFilm(r.Context(), &req)
	if err != nil {
		respondError(h.log, w, err, "update film")
		return
	}

	utils.ResponseSuccess(w, "Film updated successfully", film)
}

// DeleteFilm handles DELETE /films/{id}
func (h *FilmHandler) DeleteFilm(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteFilm(r.Context(), filmID); err != nil {
		respondError(h.log, w, err, "delete film")
		return
	}

	utils.ResponseSuccess(w, "Film deleted successfully", nil)
}

// AddLike handles PUT /films/{id}/like/{userId}
func (h *FilmHandler) AddLike(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	if err := h.service.AddLike(r.Context(), filmID, userID); err != nil {
		respondError(h.log, w, err, "add like")
		return
	}

	utils.ResponseSuccess(w, "Like added successfully", nil)
}

// RemoveLike handles DELETE /films/{id}/like/{userId}
func (h *FilmHandler) RemoveLike(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	if err := h.service.RemoveLike(r.Context(), filmID, userID); err != nil {
		respondError(h.log, w, err, "remove like")
		return
	}

	utils.ResponseSuccess(w, "Like removed successfully", nil)
}

// GetPopular handles GET /films/popular?count=&genreId=&year=
func (h *FilmHandler) GetPopular(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// A malformed count is a caller bug, not a request for the default
	count := defaultPopularCount
	if raw := query.Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.ResponseBadRequest(w, "invalid count: "+raw, nil)
			return
		}
		count = parsed
	}

	genreID := utils.ParseIntPtr(query.Get("genreId"))
	year := utils.ParseIntPtr(query.Get("year"))

	films, err := h.service.GetTopLiked(r.Context(), count, genreID, year)
	if err != nil {
		respondError(h.log, w, err, "get popular films")
		return
	}

	utils.ResponseSuccess(w, "Popular films retrieved successfully", films)
}

// GetByDirector handles GET /films/director/{directorId}?sortBy=likes|year
func (h *FilmHandler) GetByDirector(w http.ResponseWriter, r *http.Request) {
	directorID, ok := pathID(w, r, "directorId")
	if !ok {
		return
	}
	sortBy := r.URL.Query().Get("sortBy")

	films, err := h.service.GetByDirector(r.Context(), directorID, sortBy)
	if err != nil {
		respondError(h.log, w, err, "get films by director")
		return
	}

	utils.ResponseSuccess(w, "Director films retrieved successfully", films)
}

// GetCommon handles GET /films/common?userId=&friendId=
func (h *FilmHandler) GetCommon(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	userID := utils.ParseIntPtr(query.Get("userId"))
	friendID := utils.ParseIntPtr(query.Get("friendId"))
	if userID == nil || friendID == nil {
		utils.ResponseBadRequest(w, "userId and friendId are required", nil)
		return
	}

	films, err := h.service.GetCommonFilms(r.Context(), *userID, *friendID)
	if err != nil {
		respondError(h.log, w, err, "get common films")
		return
	}

	utils.ResponseSuccess(w, "Common films retrieved successfully", films)
}
