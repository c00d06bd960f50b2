package request

// IDRef references an existing genre/director/MPA row by id.
type IDRef struct {
	ID int `json:"id" validate:"required,gt=0"`
}

type FilmCreateRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"max=200"`
	ReleaseDate string  `json:"releaseDate" validate:"required,datetime=2006-01-02"`
	Duration    int     `json:"duration" validate:"required,gt=0"`
	Mpa         *IDRef  `json:"mpa,omitempty"`
	Genres      []IDRef `json:"genres,omitempty" validate:"dive"`
	Directors   []IDRef `json:"directors,omitempty" validate:"dive"`
}

type FilmUpdateRequest struct {
	ID          int     `json:"id" validate:"required,gt=0"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"max=200"`
	ReleaseDate string  `json:"releaseDate" validate:"required,datetime=2006-01-02"`
	Duration    int     `json:"duration" validate:"required,gt=0"`
	Mpa         *IDRef  `json:"mpa,omitempty"`
	Genres      []IDRef `json:"genres,omitempty" validate:"dive"`
	Directors   []IDRef `json:"directors,omitempty" validate:"dive"`
}
