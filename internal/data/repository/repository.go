package repository

import (
	"filmorate/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Film     FilmRepository
	Genre    GenreRepository
	Director DirectorRepository
	Mpa      MpaRepository
	Like     LikeRepository
	User     UserRepository
	Search   SearchRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Film:     NewFilmRepository(db, log),
		Genre:    NewGenreRepository(db, log),
		Director: NewDirectorRepository(db, log),
		Mpa:      NewMpaRepository(db, log),
		Like:     NewLikeRepository(db, log),
		User:     NewUserRepository(db, log),
		Search:   NewSearchRepository(db, log),
	}
}
