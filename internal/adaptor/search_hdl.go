package adaptor

import (
	"net/http"

	"filmorate/internal/usecase"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

type SearchHandler struct {
	service usecase.SearchService
	log     *zap.Logger
}

func NewSearchHandler(service usecase.SearchService, log *zap.Logger) *SearchHandler {
	return &SearchHandler{
		service: service,
		log:     log.With(zap.String("handler", "search")),
	}
}

// SearchFilms handles GET /films/search?query=&by=
func (h *SearchHandler) SearchFilms(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := params.Get("query")
	by := params.Get("by")

	films, err := h.service.SearchFilms(r.Context(), query, by)
	if err != nil {
		respondError(h.log, w, err, "search films")
		return
	}

	utils.ResponseSuccess(w, "Search results retrieved successfully", films)
}
