package wire

import (
	"filmorate/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMpa(r chi.Router, mpaHandler *adaptor.MpaHandler) {
	r.Get("/mpa", mpaHandler.GetRatings)
	r.Get("/mpa/{id}", mpaHandler.GetRatingByID)
}
