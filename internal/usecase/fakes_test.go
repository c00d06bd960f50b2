package usecase

import (
	"context"
	"sort"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"
	"filmorate/pkg/apperr"
)

// In-memory fakes over the repository interfaces. Batch methods count
// their calls so tests can assert on lookup round trips.

type fixture struct {
	repo      *repository.Repository
	films     *fakeFilmRepo
	genres    *fakeGenreRepo
	directors *fakeDirectorRepo
	mpa       *fakeMpaRepo
	likes     *fakeLikeRepo
	users     *fakeUserRepo
	search    *fakeSearchRepo
}

func newFixture() *fixture {
	f := &fixture{
		films:     &fakeFilmRepo{films: map[int]*entity.Film{}, nextID: 1},
		genres:    &fakeGenreRepo{genres: map[int]entity.Genre{}, filmGenres: map[int][]int{}},
		directors: &fakeDirectorRepo{directors: map[int]entity.Director{}, filmDirectors: map[int][]int{}, nextID: 1},
		mpa:       &fakeMpaRepo{ratings: map[int]entity.Mpa{}, filmMpa: map[int]int{}},
		likes:     &fakeLikeRepo{},
		users:     &fakeUserRepo{users: map[int]*entity.User{}, friends: map[int]map[int]bool{}, nextID: 1},
		search:    &fakeSearchRepo{},
	}
	f.repo = &repository.Repository{
		Film:     f.films,
		Genre:    f.genres,
		Director: f.directors,
		Mpa:      f.mpa,
		Like:     f.likes,
		User:     f.users,
		Search:   f.search,
	}
	return f
}

func (f *fixture) addFilm(name string) *entity.Film {
	film := &entity.Film{Name: name, Duration: 100, ReleaseDate: entity.NewDate(2000, 1, 1)}
	_ = f.films.Create(context.Background(), film)
	return film
}

func (f *fixture) addUser(login string) *entity.User {
	user := &entity.User{Email: login + "@example.com", Login: login, Name: login}
	_ = f.users.Create(context.Background(), user)
	return user
}

// ---- film ----

type fakeFilmRepo struct {
	films  map[int]*entity.Film
	nextID int

	top        []*entity.Film
	byDirector []*entity.Film
	common     []*entity.Film
}

func (f *fakeFilmRepo) Create(_ context.Context, film *entity.Film) error {
	film.ID = f.nextID
	f.nextID++
	f.films[film.ID] = film
	return nil
}

func (f *fakeFilmRepo) FindByID(_ context.Context, id int) (*entity.Film, error) {
	return f.films[id], nil
}

func (f *fakeFilmRepo) FindByIDs(_ context.Context, ids []int) ([]*entity.Film, error) {
	sorted := append([]int(nil), ids...)
	sort.Ints(sorted)

	var out []*entity.Film
	for _, id := range sorted {
		if film, ok := f.films[id]; ok {
			out = append(out, film)
		}
	}
	return out, nil
}

func (f *fakeFilmRepo) FindAll(_ context.Context) ([]*entity.Film, error) {
	ids := make([]int, 0, len(f.films))
	for id := range f.films {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]*entity.Film, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.films[id])
	}
	return out, nil
}

func (f *fakeFilmRepo) Update(_ context.Context, film *entity.Film) error {
	if _, ok := f.films[film.ID]; !ok {
		return apperr.NotFound("film %d not found", film.ID)
	}
	f.films[film.ID] = film
	return nil
}

func (f *fakeFilmRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.films[id]; !ok {
		return apperr.NotFound("film %d not found", id)
	}
	delete(f.films, id)
	return nil
}

func (f *fakeFilmRepo) FindTopLiked(_ context.Context, _ int, _, _ *int) ([]*entity.Film, error) {
	return f.top, nil
}

func (f *fakeFilmRepo) FindByDirector(_ context.Context, _ int, _ entity.SortOrder) ([]*entity.Film, error) {
	return f.byDirector, nil
}

func (f *fakeFilmRepo) FindCommonFilms(_ context.Context, _, _ int) ([]*entity.Film, error) {
	return f.common, nil
}

// ---- genre ----

type fakeGenreRepo struct {
	genres     map[int]entity.Genre
	filmGenres map[int][]int

	batchCalls int
}

func (f *fakeGenreRepo) FindAll(_ context.Context) ([]entity.Genre, error) {
	ids := make([]int, 0, len(f.genres))
	for id := range f.genres {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]entity.Genre, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.genres[id])
	}
	return out, nil
}

func (f *fakeGenreRepo) FindByID(_ context.Context, id int) (*entity.Genre, error) {
	if genre, ok := f.genres[id]; ok {
		return &genre, nil
	}
	return nil, nil
}

func (f *fakeGenreRepo) FindByFilmID(ctx context.Context, filmID int) ([]entity.Genre, error) {
	byFilm, err := f.FindByFilmIDs(ctx, []int{filmID})
	f.batchCalls--
	if err != nil {
		return nil, err
	}
	return byFilm[filmID], nil
}

func (f *fakeGenreRepo) FindByFilmIDs(_ context.Context, filmIDs []int) (map[int][]entity.Genre, error) {
	f.batchCalls++

	out := make(map[int][]entity.Genre)
	for _, filmID := range filmIDs {
		for _, genreID := range f.filmGenres[filmID] {
			out[filmID] = append(out[filmID], f.genres[genreID])
		}
	}
	return out, nil
}

func (f *fakeGenreRepo) ReplaceFilmGenres(_ context.Context, filmID int, genreIDs []int) error {
	f.filmGenres[filmID] = append([]int(nil), genreIDs...)
	return nil
}

// ---- director ----

type fakeDirectorRepo struct {
	directors     map[int]entity.Director
	filmDirectors map[int][]int
	nextID        int

	batchCalls int
}

func (f *fakeDirectorRepo) Create(_ context.Context, director *entity.Director) error {
	director.ID = f.nextID
	f.nextID++
	f.directors[director.ID] = *director
	return nil
}

func (f *fakeDirectorRepo) FindAll(_ context.Context) ([]entity.Director, error) {
	ids := make([]int, 0, len(f.directors))
	for id := range f.directors {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]entity.Director, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.directors[id])
	}
	return out, nil
}

func (f *fakeDirectorRepo) FindByID(_ context.Context, id int) (*entity.Director, error) {
	if director, ok := f.directors[id]; ok {
		return &director, nil
	}
	return nil, nil
}

func (f *fakeDirectorRepo) Update(_ context.Context, director *entity.Director) error {
	if _, ok := f.directors[director.ID]; !ok {
		return apperr.NotFound("director %d not found", director.ID)
	}
	f.directors[director.ID] = *director
	return nil
}

func (f *fakeDirectorRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.directors[id]; !ok {
		return apperr.NotFound("director %d not found", id)
	}
	delete(f.directors, id)
	return nil
}

func (f *fakeDirectorRepo) FindByFilmID(ctx context.Context, filmID int) ([]entity.Director, error) {
	byFilm, err := f.FindByFilmIDs(ctx, []int{filmID})
	f.batchCalls--
	if err != nil {
		return nil, err
	}
	return byFilm[filmID], nil
}

func (f *fakeDirectorRepo) FindByFilmIDs(_ context.Context, filmIDs []int) (map[int][]entity.Director, error) {
	f.batchCalls++

	out := make(map[int][]entity.Director)
	for _, filmID := range filmIDs {
		for _, directorID := range f.filmDirectors[filmID] {
			out[filmID] = append(out[filmID], f.directors[directorID])
		}
	}
	return out, nil
}

func (f *fakeDirectorRepo) ReplaceFilmDirectors(_ context.Context, filmID int, directorIDs []int) error {
	f.filmDirectors[filmID] = append([]int(nil), directorIDs...)
	return nil
}

// ---- mpa ----

type fakeMpaRepo struct {
	ratings map[int]entity.Mpa
	filmMpa map[int]int

	batchCalls int
}

func (f *fakeMpaRepo) FindAll(_ context.Context) ([]entity.Mpa, error) {
	ids := make([]int, 0, len(f.ratings))
	for id := range f.ratings {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]entity.Mpa, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.ratings[id])
	}
	return out, nil
}

func (f *fakeMpaRepo) FindByID(_ context.Context, id int) (*entity.Mpa, error) {
	if mpa, ok := f.ratings[id]; ok {
		return &mpa, nil
	}
	return nil, nil
}

func (f *fakeMpaRepo) FindByFilmID(ctx context.Context, filmID int) (*entity.Mpa, error) {
	byFilm, err := f.FindByFilmIDs(ctx, []int{filmID})
	f.batchCalls--
	if err != nil {
		return nil, err
	}
	if mpa, ok := byFilm[filmID]; ok {
		return &mpa, nil
	}
	return nil, nil
}

func (f *fakeMpaRepo) FindByFilmIDs(_ context.Context, filmIDs []int) (map[int]entity.Mpa, error) {
	f.batchCalls++

	out := make(map[int]entity.Mpa)
	for _, filmID := range filmIDs {
		if mpaID, ok := f.filmMpa[filmID]; ok {
			out[filmID] = f.ratings[mpaID]
		}
	}
	return out, nil
}

// ---- like ----

type fakeLikeRepo struct {
	pairs []entity.Like

	batchCalls int
}

func (f *fakeLikeRepo) Add(_ context.Context, filmID, userID int) error {
	for _, like := range f.pairs {
		if like.FilmID == filmID && like.UserID == userID {
			return nil
		}
	}
	f.pairs = append(f.pairs, entity.Like{FilmID: filmID, UserID: userID})
	return nil
}

func (f *fakeLikeRepo) Remove(_ context.Context, filmID, userID int) error {
	kept := f.pairs[:0]
	for _, like := range f.pairs {
		if like.FilmID != filmID || like.UserID != userID {
			kept = append(kept, like)
		}
	}
	f.pairs = kept
	return nil
}

func (f *fakeLikeRepo) FindUserIDsByFilmID(ctx context.Context, filmID int) ([]int, error) {
	byFilm, err := f.FindUserIDsByFilmIDs(ctx, []int{filmID})
	f.batchCalls--
	if err != nil {
		return nil, err
	}
	return byFilm[filmID], nil
}

func (f *fakeLikeRepo) FindUserIDsByFilmIDs(_ context.Context, filmIDs []int) (map[int][]int, error) {
	f.batchCalls++

	wanted := make(map[int]bool, len(filmIDs))
	for _, filmID := range filmIDs {
		wanted[filmID] = true
	}

	out := make(map[int][]int)
	for _, like := range f.pairs {
		if wanted[like.FilmID] {
			out[like.FilmID] = append(out[like.FilmID], like.UserID)
		}
	}
	for filmID := range out {
		sort.Ints(out[filmID])
	}
	return out, nil
}

func (f *fakeLikeRepo) FindFilmIDsByUserID(_ context.Context, userID int) ([]int, error) {
	var out []int
	for _, like := range f.pairs {
		if like.UserID == userID {
			out = append(out, like.FilmID)
		}
	}
	sort.Ints(out)
	return out, nil
}

func (f *fakeLikeRepo) FindAll(_ context.Context) ([]entity.Like, error) {
	return append([]entity.Like(nil), f.pairs...), nil
}

// ---- user ----

type fakeUserRepo struct {
	users   map[int]*entity.User
	friends map[int]map[int]bool
	nextID  int
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]*entity.User, error) {
	ids := make([]int, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.users[id])
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return apperr.NotFound("user %d not found", user.ID)
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.users[id]; !ok {
		return apperr.NotFound("user %d not found", id)
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) Exists(_ context.Context, id int) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeUserRepo) AddFriend(_ context.Context, userID, friendID int) error {
	if f.friends[userID] == nil {
		f.friends[userID] = map[int]bool{}
	}
	f.friends[userID][friendID] = true
	return nil
}

func (f *fakeUserRepo) RemoveFriend(_ context.Context, userID, friendID int) error {
	delete(f.friends[userID], friendID)
	return nil
}

func (f *fakeUserRepo) FindFriends(_ context.Context, userID int) ([]*entity.User, error) {
	ids := make([]int, 0, len(f.friends[userID]))
	for id := range f.friends[userID] {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.users[id])
	}
	return out, nil
}

func (f *fakeUserRepo) FindCommonFriends(_ context.Context, userID, otherID int) ([]*entity.User, error) {
	var ids []int
	for id := range f.friends[userID] {
		if f.friends[otherID][id] {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	out := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.users[id])
	}
	return out, nil
}

// ---- search ----

type fakeSearchRepo struct {
	results []*entity.Film

	gotQuery   string
	gotTargets []entity.SearchTarget
}

func (f *fakeSearchRepo) SearchFilms(_ context.Context, query string, targets []entity.SearchTarget) ([]*entity.Film, error) {
	f.gotQuery = query
	f.gotTargets = targets
	return f.results, nil
}
