package favorites_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"dinefinder/internal/apperr"
	"dinefinder/internal/dbtest"
	"dinefinder/internal/domain/favorites"
	"dinefinder/internal/domain/restaurants"
	"dinefinder/internal/params"
)

func setup(t *testing.T) (*sql.DB, *favorites.Registry) {
	t.Helper()
	sqlDB := dbtest.Open(t)
	catalog := restaurants.NewCatalog(restaurants.NewSQLiteRepository(sqlDB))
	return sqlDB, favorites.NewRegistry(favorites.NewSQLiteRepository(sqlDB), catalog)
}

func countRows(t *testing.T, sqlDB *sql.DB, userID, restaurantID int64) int {
	t.Helper()
	var n int
	require.NoError(t, sqlDB.QueryRow(
		`SELECT COUNT(*) FROM favorites WHERE user_id = ? AND restaurant_id = ?`, userID, restaurantID,
	).Scan(&n))
	return n
}

func TestAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	sqlDB, reg := setup(t)
	u := dbtest.User(t, sqlDB, "Ana")
	rid := dbtest.Restaurant(t, sqlDB, 0, "Noodle Bar", "Austin")

	for i := 0; i < 2; i++ {
		state, err := reg.Add(ctx, u, rid)
		require.NoError(t, err)
		assert.True(t, state.Favorited)
		assert.Equal(t, rid, state.RestaurantID)
	}
	assert.Equal(t, 1, countRows(t, sqlDB, u, rid))

	ok, err := reg.IsFavorite(ctx, u, rid)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	sqlDB, reg := setup(t)
	u := dbtest.User(t, sqlDB, "Ana")
	rid := dbtest.Restaurant(t, sqlDB, 0, "Noodle Bar", "Austin")

	_, err := reg.Add(ctx, u, rid)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		state, err := reg.Remove(ctx, u, rid)
		require.NoError(t, err)
		assert.False(t, state.Favorited)
	}
	assert.Equal(t, 0, countRows(t, sqlDB, u, rid))

	_, err = reg.Remove(ctx, u, 999)
	assert.NoError(t, err, "removing an unknown restaurant is a no-op")
}

func TestConcurrentAddsLeaveOneRow(t *testing.T) {
	ctx := context.Background()
	sqlDB, reg := setup(t)
	u := dbtest.User(t, sqlDB, "Ana")
	rid := dbtest.Restaurant(t, sqlDB, 0, "Noodle Bar", "Austin")

	var g errgroup.Group
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			_, err := reg.Add(ctx, u, rid)
			return err
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, 1, countRows(t, sqlDB, u, rid))
}

func TestAddMissingRestaurant(t *testing.T) {
	sqlDB, reg := setup(t)
	u := dbtest.User(t, sqlDB, "Ana")

	_, err := reg.Add(context.Background(), u, 999)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListNewestFavoriteFirst(t *testing.T) {
	ctx := context.Background()
	sqlDB, reg := setup(t)
	u, other := dbtest.User(t, sqlDB, "Ana"), dbtest.User(t, sqlDB, "Ben")
	first := dbtest.Restaurant(t, sqlDB, 0, "First", "Austin")
	second := dbtest.Restaurant(t, sqlDB, 0, "Second", "Austin")
	third := dbtest.Restaurant(t, sqlDB, 0, "Third", "Austin")

	for _, rid := range []int64{first, second, third} {
		_, err := reg.Add(ctx, u, rid)
		require.NoError(t, err)
	}
	_, err := reg.Add(ctx, other, first)
	require.NoError(t, err)

	page, err := reg.List(ctx, u, params.New(1, 2))
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.Size)
	require.Len(t, page.Items, 2)
	assert.Equal(t, third, page.Items[0].ID)
	assert.Equal(t, "Third", page.Items[0].Name)
	assert.Equal(t, second, page.Items[1].ID)
	assert.False(t, page.Items[0].FavoritedAt.IsZero())

	ids, err := reg.IDs(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, []int64{third, second, first}, ids)

	ids, err = reg.IDs(ctx, dbtest.User(t, sqlDB, "Cleo"))
	require.NoError(t, err)
	assert.Empty(t, ids)
}
