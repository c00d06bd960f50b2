package adaptor

import (
	"net/http"

	"filmorate/internal/usecase"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

type MpaHandler struct {
	service usecase.MpaService
	log     *zap.Logger
}

func NewMpaHandler(service usecase.MpaService, log *zap.Logger) *MpaHandler {
	return &MpaHandler{
		service: service,
		log:     log.With(zap.String("handler", "mpa")),
	}
}

// GetRatings handles GET /mpa
func (h *MpaHandler) GetRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.service.GetRatings(r.Context())
	if err != nil {
		respondError(h.log, w, err, "get mpa ratings")
		return
	}

	utils.ResponseSuccess(w, "Mpa ratings retrieved successfully", ratings)
}

// GetRatingByID handles GET /mpa/{id}
func (h *MpaHandler) GetRatingByID(w http.ResponseWriter, r *http.Request) {
	mpaID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	mpa, err := h.service.GetRatingByID(r.Context(), mpaID)
	if err != nil {
		respondError(h.log, w, err, "get mpa by id")
		return
	}

	utils.ResponseSuccess(w, "Mpa rating retrieved successfully", mpa)
}
