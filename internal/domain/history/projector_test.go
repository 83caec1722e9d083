package history_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinefinder/internal/dbtest"
	"dinefinder/internal/domain/history"
	"dinefinder/internal/domain/restaurants"
	"dinefinder/internal/domain/reviews"
)

func TestForUserReadsAfterWrite(t *testing.T) {
	ctx := context.Background()
	sqlDB := dbtest.Open(t)
	restStore := restaurants.NewSQLiteRepository(sqlDB)
	catalog := restaurants.NewCatalog(restStore)
	reviewSvc := reviews.NewService(reviews.NewSQLiteRepository(sqlDB), restStore)
	projector := history.NewProjector(reviewSvc, catalog)

	u := dbtest.User(t, sqlDB, "Ana")

	h, err := projector.ForUser(ctx, u)
	require.NoError(t, err)
	assert.Empty(t, h.ReviewsAuthored)
	assert.Empty(t, h.RestaurantsAdded)
	assert.NotNil(t, h.ReviewsAuthored)

	added, err := catalog.Create(ctx, u, restaurants.CreateInput{Name: "Ana's Pick", City: "Austin"})
	require.NoError(t, err)
	other := dbtest.Restaurant(t, sqlDB, 0, "Elsewhere", "Austin")

	rv, err := reviewSvc.Create(ctx, reviews.CreateInput{RestaurantID: other, UserID: u, Rating: 4})
	require.NoError(t, err)
	_, err = reviewSvc.Create(ctx, reviews.CreateInput{RestaurantID: added.ID, UserID: dbtest.User(t, sqlDB, "Ben"), Rating: 2})
	require.NoError(t, err)

	h, err = projector.ForUser(ctx, u)
	require.NoError(t, err)
	require.Len(t, h.ReviewsAuthored, 1)
	assert.Equal(t, rv.ID, h.ReviewsAuthored[0].ID)
	assert.Equal(t, "Elsewhere", h.ReviewsAuthored[0].RestaurantName)
	require.Len(t, h.RestaurantsAdded, 1)
	assert.Equal(t, added.ID, h.RestaurantsAdded[0].ID)
	assert.Equal(t, 2.0, *h.RestaurantsAdded[0].AverageRating)

	require.NoError(t, reviewSvc.Delete(ctx, rv.ID, u))
	h, err = projector.ForUser(ctx, u)
	require.NoError(t, err)
	assert.Empty(t, h.ReviewsAuthored)
}

type failingReviews struct{}

func (failingReviews) ListByAuthor(context.Context, int64) ([]reviews.AuthoredReview, error) {
	return nil, errors.New("db down")
}

type noRestaurants struct{}

func (noRestaurants) ListByCreator(context.Context, int64) ([]restaurants.Summary, error) {
	return nil, nil
}

func TestForUserPropagatesErrors(t *testing.T) {
	_, err := history.NewProjector(failingReviews{}, noRestaurants{}).ForUser(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reviews authored")
}
