package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"filmorate/internal/data/entity"
	"filmorate/pkg/apperr"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newFilmRepoMock(t *testing.T) (pgxmock.PgxPoolIface, FilmRepository) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewFilmRepository(mock, zap.NewNop())
}

func filmRows(ids ...int) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id", "name", "description", "release_date", "duration"})
	for _, id := range ids {
		rows.AddRow(id, fmt.Sprintf("Film %d", id), "",
			time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC), 100)
	}
	return rows
}

func filmIDs(films []*entity.Film) []int {
	ids := make([]int, len(films))
	for i, film := range films {
		ids[i] = film.ID
	}
	return ids
}

func TestFindTopLikedRanksByLikesThenID(t *testing.T) {
	mock, repo := newFilmRepoMock(t)

	mock.ExpectQuery(`(?s)FROM film f\s+LEFT JOIN film_like l ON f\.id = l\.film_id.*GROUP BY f\.id\s+ORDER BY COUNT\(DISTINCT l\.user_id\) DESC, f\.id\s+LIMIT \$1`).
		WithArgs(4).
		WillReturnRows(filmRows(3, 1, 4, 2))

	films, err := repo.FindTopLiked(context.Background(), 4, nil, nil)
	require.NoError(t, err)

	// The row order chosen by the SQL ranking must survive scanning
	assert.Equal(t, []int{3, 1, 4, 2}, filmIDs(films))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindTopLikedCombinesGenreAndYearFilters(t *testing.T) {
	mock, repo := newFilmRepoMock(t)

	mock.ExpectQuery(`(?s)JOIN film_genre fg ON f\.id = fg\.film_id\s+WHERE fg\.genre_id = \$1 AND EXTRACT\(YEAR FROM f\.release_date\) = \$2.*LIMIT \$3`).
		WithArgs(2, 2001, 10).
		WillReturnRows(filmRows(6))

	genreID, year := 2, 2001
	films, err := repo.FindTopLiked(context.Background(), 10, &genreID, &year)
	require.NoError(t, err)

	assert.Equal(t, []int{6}, filmIDs(films))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindTopLikedEmptyResultIsList(t *testing.T) {
	mock, repo := newFilmRepoMock(t)

	mock.ExpectQuery(`(?s)GROUP BY f\.id\s+ORDER BY COUNT\(DISTINCT l\.user_id\) DESC, f\.id`).
		WithArgs(10).
		WillReturnRows(filmRows())

	films, err := repo.FindTopLiked(context.Background(), 10, nil, nil)
	require.NoError(t, err)

	require.NotNil(t, films)
	data, err := json.Marshal(films)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestFindByDirectorBothOrdersSameFilmSet(t *testing.T) {
	mock, repo := newFilmRepoMock(t)

	// Likes ordering keeps zero-like films via the LEFT JOIN; film 9 has
	// no likes and sorts last there but first by release year.
	mock.ExpectQuery(`(?s)JOIN film_director fd ON f\.id = fd\.film_id\s+LEFT JOIN film_like l ON f\.id = l\.film_id\s+WHERE fd\.director_id = \$1\s+GROUP BY f\.id\s+ORDER BY COUNT\(DISTINCT l\.user_id\) DESC, f\.id`).
		WithArgs(7).
		WillReturnRows(filmRows(5, 9))

	byLikes, err := repo.FindByDirector(context.Background(), 7, entity.SortByLikes)
	require.NoError(t, err)

	mock.ExpectQuery(`(?s)JOIN film_director fd ON f\.id = fd\.film_id\s+WHERE fd\.director_id = \$1\s+ORDER BY f\.release_date ASC, f\.id`).
		WithArgs(7).
		WillReturnRows(filmRows(9, 5))

	byYear, err := repo.FindByDirector(context.Background(), 7, entity.SortByYear)
	require.NoError(t, err)

	assert.ElementsMatch(t, filmIDs(byLikes), filmIDs(byYear))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByDirectorUnknownOrder(t *testing.T) {
	mock, repo := newFilmRepoMock(t)

	_, err := repo.FindByDirector(context.Background(), 7, entity.SortOrder("name"))
	assert.True(t, apperr.IsInvalidRequest(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindCommonFilmsEmptyIntersectionIsList(t *testing.T) {
	mock, repo := newFilmRepoMock(t)

	mock.ExpectQuery(`(?s)JOIN film_like l_user ON f\.id = l_user\.film_id AND l_user\.user_id = \$1\s+JOIN film_like l_friend ON f\.id = l_friend\.film_id AND l_friend\.user_id = \$2.*ORDER BY COUNT\(DISTINCT l_all\.user_id\) DESC, f\.id`).
		WithArgs(1, 2).
		WillReturnRows(filmRows())

	films, err := repo.FindCommonFilms(context.Background(), 1, 2)
	require.NoError(t, err)

	require.NotNil(t, films)
	data, err := json.Marshal(films)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindCommonFilmsRankedGlobally(t *testing.T) {
	mock, repo := newFilmRepoMock(t)

	mock.ExpectQuery(`(?s)LEFT JOIN film_like l_all ON f\.id = l_all\.film_id\s+GROUP BY f\.id\s+ORDER BY COUNT\(DISTINCT l_all\.user_id\) DESC, f\.id`).
		WithArgs(1, 2).
		WillReturnRows(filmRows(8, 3))

	films, err := repo.FindCommonFilms(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.Equal(t, []int{8, 3}, filmIDs(films))
	assert.NoError(t, mock.ExpectationsWereMet())
}
