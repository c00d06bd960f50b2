package wire

import (
	"filmorate/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireGenre(r chi.Router, genreHandler *adaptor.GenreHandler) {
	r.Get("/genres", genreHandler.GetGenres)
	r.Get("/genres/{id}", genreHandler.GetGenreByID)
}
