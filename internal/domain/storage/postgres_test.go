//go:build integration

package storage_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinefinder/internal/apperr"
	"dinefinder/internal/db"
	"dinefinder/internal/domain/claims"
	"dinefinder/internal/domain/favorites"
	"dinefinder/internal/domain/owners"
	"dinefinder/internal/domain/restaurants"
	"dinefinder/internal/domain/reviews"
	"dinefinder/internal/domain/storage"
	"dinefinder/internal/domain/users"
	"dinefinder/internal/params"
)

// Run with: DB_ADDR=postgres://... go test -tags integration ./internal/domain/storage/
func openPostgres(t *testing.T) *storage.Container {
	t.Helper()
	addr := os.Getenv("DB_ADDR")
	if addr == "" {
		t.Skip("DB_ADDR not set")
	}

	pool, err := db.New(addr, 4, "1m")
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return storage.NewPostgres(pool)
}

func email(prefix string) string {
	return prefix + "-" + uuid.NewString() + "@example.com"
}

func TestPostgresEngagementFlow(t *testing.T) {
	ctx := context.Background()
	c := openPostgres(t)

	alice := &users.User{Name: "Alice", Email: email("alice")}
	require.NoError(t, c.Users.Create(ctx, alice))
	bob := &users.User{Name: "Bob", Email: email("bob")}
	require.NoError(t, c.Users.Create(ctx, bob))
	first := &owners.Owner{Name: "Xavier", Email: email("xavier")}
	require.NoError(t, c.Owners.Create(ctx, first))
	second := &owners.Owner{Name: "Yara", Email: email("yara")}
	require.NoError(t, c.Owners.Create(ctx, second))

	_, err := c.Users.GetByID(ctx, -1)
	assert.ErrorIs(t, err, users.ErrNotFound)

	catalog := restaurants.NewCatalog(c.Restaurants)
	rest, err := catalog.Create(ctx, alice.ID, restaurants.CreateInput{Name: "Taqueria", City: "Austin"})
	require.NoError(t, err)
	empty, err := catalog.Create(ctx, alice.ID, restaurants.CreateInput{Name: "Empty Cafe", City: "Austin"})
	require.NoError(t, err)

	svc := reviews.NewService(c.Reviews, catalog)
	_, err = svc.Create(ctx, reviews.CreateInput{RestaurantID: rest.ID, UserID: alice.ID, Rating: 5})
	require.NoError(t, err)
	_, err = svc.Create(ctx, reviews.CreateInput{RestaurantID: rest.ID, UserID: bob.ID, Rating: 4})
	require.NoError(t, err)

	_, err = svc.Create(ctx, reviews.CreateInput{RestaurantID: rest.ID, UserID: bob.ID, Rating: 1})
	assert.True(t, apperr.Is(err, apperr.KindConflict), "second review: %v", err)

	aggs, err := svc.AggregateMany(ctx, []int64{rest.ID, empty.ID})
	require.NoError(t, err)
	require.NotNil(t, aggs[rest.ID].AverageRating)
	assert.Equal(t, 4.5, *aggs[rest.ID].AverageRating)
	assert.Equal(t, 2, aggs[rest.ID].ReviewCount)
	assert.Nil(t, aggs[empty.ID].AverageRating)
	assert.Zero(t, aggs[empty.ID].ReviewCount)

	page, err := svc.ListForRestaurant(ctx, rest.ID, params.New(1, 1))
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 2, page.Total)
	assert.True(t, page.HasNext)

	registry := favorites.NewRegistry(c.Favorites, catalog)
	for i := 0; i < 2; i++ {
		state, err := registry.Add(ctx, alice.ID, rest.ID)
		require.NoError(t, err)
		assert.True(t, state.Favorited)
	}
	ids, err := registry.IDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{rest.ID}, ids)

	arbiter := claims.NewArbiter(c, c.Restaurants, c.Reviews)
	_, err = arbiter.Claim(ctx, rest.ID, first.ID)
	require.NoError(t, err)
	_, err = arbiter.Claim(ctx, rest.ID, second.ID)
	assert.True(t, apperr.Is(err, apperr.KindConflict), "second claim: %v", err)

	dash, err := arbiter.Dashboard(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, dash.ClaimedCount)
	assert.Equal(t, 2, dash.TotalReviews)
	assert.Equal(t, 1, dash.RatingDistribution[5])
	assert.Equal(t, 1, dash.RatingDistribution[4])
}
