package adaptor

import (
	"net/http"
	"strconv"

	"filmorate/internal/usecase"
	"filmorate/pkg/apperr"
	"filmorate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Film     *FilmHandler
	User     *UserHandler
	Genre    *GenreHandler
	Director *DirectorHandler
	Mpa      *MpaHandler
	Search   *SearchHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Film:     NewFilmHandler(service.Film, log),
		User:     NewUserHandler(service.User, service.Recommendation, log),
		Genre:    NewGenreHandler(service.Genre, log),
		Director: NewDirectorHandler(service.Director, log),
		Mpa:      NewMpaHandler(service.Mpa, log),
		Search:   NewSearchHandler(service.Search, log),
	}
}

// pathID reads a numeric chi URL parameter. The second return is false
// when the value is missing or not a positive integer; the caller is
// expected to have responded already.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		utils.ResponseBadRequest(w, "invalid "+name+": "+raw, nil)
		return 0, false
	}
	return id, true
}

// respondError logs a service error and writes the mapped status code.
func respondError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound, apperr.KindInvalidRequest:
		log.Warn("Request rejected",
			zap.String("operation", operation),
			zap.Error(err),
		)
	default:
		log.Error("Operation failed",
			zap.String("operation", operation),
			zap.Error(err),
		)
	}
	utils.ResponseError(w, err)
}
