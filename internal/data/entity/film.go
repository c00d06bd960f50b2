package entity

// Mpa is a film age rating (G, PG, PG-13, R, NC-17).
type Mpa struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Director struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Film is the catalog record. Mpa, Genres, Directors and Likes are
// derived data: repositories return bare scalar rows and the aggregator
// fills these fields in afterwards. Likes holds user ids in ascending
// order.
type Film struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ReleaseDate Date       `json:"releaseDate"`
	Duration    int        `json:"duration"`
	Mpa         *Mpa       `json:"mpa,omitempty"`
	Genres      []Genre    `json:"genres"`
	Directors   []Director `json:"directors"`
	Likes       []int      `json:"likes"`
}

// Like is one (film, user) like pair.
type Like struct {
	FilmID int
	UserID int
}

// SortOrder selects the ordering of director filmographies.
type SortOrder string

const (
	SortByLikes SortOrder = "likes"
	SortByYear  SortOrder = "year"
)

// SearchTarget names a field the search query is matched against.
type SearchTarget string

const (
	SearchByTitle    SearchTarget = "title"
	SearchByDirector SearchTarget = "director"
)
