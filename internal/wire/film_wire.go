package wire

import (
	"filmorate/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireFilm(r chi.Router, filmHandler *adaptor.FilmHandler, searchHandler *adaptor.SearchHandler) {
	r.Route("/films", func(r chi.Router) {
		r.Get("/", filmHandler.GetFilms)
		r.Post("/", filmHandler.CreateFilm)
		r.Put("/", filmHandler.UpdateFilm)

		// Fixed segments go before the {id} routes so chi matches them first.
		r.Get("/popular", filmHandler.GetPopular)
		r.Get("/common", filmHandler.GetCommon)
		r.Get("/search", searchHandler.SearchFilms)
		r.Get("/director/{directorId}", filmHandler.GetByDirector)

		r.Get("/{id}", filmHandler.GetFilmByID)
		r.Delete("/{id}", filmHandler.DeleteFilm)
		r.Put("/{id}/like/{userId}", filmHandler.AddLike)
		r.Delete("/{id}/like/{userId}", filmHandler.RemoveLike)
	})
}
