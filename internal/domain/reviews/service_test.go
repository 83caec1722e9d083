package reviews_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"dinefinder/internal/apperr"
	"dinefinder/internal/dbtest"
	"dinefinder/internal/domain/restaurants"
	"dinefinder/internal/domain/reviews"
	"dinefinder/internal/params"
)

type fixture struct {
	svc   *reviews.Service
	store reviews.Store
}

func newFixture(t *testing.T) (*fixture, func(name string) int64, func(id int64) int64) {
	t.Helper()
	sqlDB := dbtest.Open(t)
	store := reviews.NewSQLiteRepository(sqlDB)
	f := &fixture{
		svc:   reviews.NewService(store, restaurants.NewSQLiteRepository(sqlDB)),
		store: store,
	}
	user := func(name string) int64 { return dbtest.User(t, sqlDB, name) }
	restaurant := func(id int64) int64 { return dbtest.Restaurant(t, sqlDB, id, "Trattoria", "Austin") }
	return f, user, restaurant
}

func ptr[T any](v T) *T { return &v }

func requireAggregate(t *testing.T, svc *reviews.Service, restaurantID int64, avg float64, count int) {
	t.Helper()
	agg, err := svc.Aggregate(context.Background(), restaurantID)
	require.NoError(t, err)
	require.NotNil(t, agg.AverageRating)
	assert.InDelta(t, avg, *agg.AverageRating, 0.001)
	assert.Equal(t, count, agg.ReviewCount)
}

func TestAggregateFollowsWrites(t *testing.T) {
	ctx := context.Background()
	f, user, restaurant := newFixture(t)
	rid := restaurant(101)
	a, b := user("Ana"), user("Ben")

	reviewA, err := f.svc.Create(ctx, reviews.CreateInput{RestaurantID: rid, UserID: a, Rating: 5})
	require.NoError(t, err)
	requireAggregate(t, f.svc, rid, 5.0, 1)

	_, err = f.svc.Create(ctx, reviews.CreateInput{RestaurantID: rid, UserID: b, Rating: 3})
	require.NoError(t, err)
	requireAggregate(t, f.svc, rid, 4.0, 2)

	require.NoError(t, f.svc.Delete(ctx, reviewA.ID, a))
	requireAggregate(t, f.svc, rid, 3.0, 1)
}

func TestAggregateWithoutReviewsHasNoAverage(t *testing.T) {
	f, _, restaurant := newFixture(t)
	rid := restaurant(0)

	agg, err := f.svc.Aggregate(context.Background(), rid)
	require.NoError(t, err)
	assert.Nil(t, agg.AverageRating)
	assert.Zero(t, agg.ReviewCount)
}

func TestAggregateRoundsToTwoDecimals(t *testing.T) {
	ctx := context.Background()
	f, user, restaurant := newFixture(t)
	rid := restaurant(0)

	for _, rating := range []int{5, 4, 4} {
		_, err := f.svc.Create(ctx, reviews.CreateInput{RestaurantID: rid, UserID: user("u"), Rating: rating})
		require.NoError(t, err)
	}

	agg, err := f.svc.Aggregate(ctx, rid)
	require.NoError(t, err)
	require.NotNil(t, agg.AverageRating)
	assert.Equal(t, 4.33, *agg.AverageRating)
	assert.Equal(t, 3, agg.ReviewCount)
}

func TestCreateDuplicateIsConflict(t *testing.T) {
	ctx := context.Background()
	f, user, restaurant := newFixture(t)
	rid, u := restaurant(0), user("Ana")

	first, err := f.svc.Create(ctx, reviews.CreateInput{RestaurantID: rid, UserID: u, Rating: 4, Comment: ptr("solid")})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, reviews.CreateInput{RestaurantID: rid, UserID: u, Rating: 1})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, apperr.CodeReviewExists, apperr.CodeOf(err))

	page, err := f.svc.ListForRestaurant(ctx, rid, params.New(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, first.ID, page.Items[0].ID)
	assert.Equal(t, 4, page.Items[0].Rating)
	assert.Equal(t, "solid", *page.Items[0].Comment)
}

func TestConcurrentDuplicateCreateHasOneWinner(t *testing.T) {
	ctx := context.Background()
	f, user, restaurant := newFixture(t)
	rid, u := restaurant(0), user("Ana")

	const attempts = 8
	errs := make([]error, attempts)
	var g errgroup.Group
	for i := 0; i < attempts; i++ {
		g.Go(func() error {
			_, errs[i] = f.svc.Create(ctx, reviews.CreateInput{RestaurantID: rid, UserID: u, Rating: 5})
			return nil
		})
	}
	require.NoError(t, g.Wait())

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case apperr.Is(err, apperr.KindConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, conflicts)
	requireAggregate(t, f.svc, rid, 5.0, 1)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	f, user, restaurant := newFixture(t)
	rid, u := restaurant(0), user("Ana")

	for _, rating := range []int{0, 6, -1} {
		_, err := f.svc.Create(ctx, reviews.CreateInput{RestaurantID: rid, UserID: u, Rating: rating})
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Equal(t, apperr.CodeInvalidRating, apperr.CodeOf(err))
	}

	agg, err := f.svc.Aggregate(ctx, rid)
	require.NoError(t, err)
	assert.Zero(t, agg.ReviewCount)
}

func TestCreateMissingRestaurant(t *testing.T) {
	f, user, _ := newFixture(t)

	_, err := f.svc.Create(context.Background(), reviews.CreateInput{RestaurantID: 999, UserID: user("Ana"), Rating: 3})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, apperr.CodeRestaurantNotFound, apperr.CodeOf(err))
}

func TestUpdateOnlySuppliedFields(t *testing.T) {
	ctx := context.Background()
	f, user, restaurant := newFixture(t)
	rid, u := restaurant(0), user("Ana")

	created, err := f.svc.Create(ctx, reviews.CreateInput{RestaurantID: rid, UserID: u, Rating: 2, Comment: ptr("cold food")})
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, reviews.UpdateInput{ReviewID: created.ID, UserID: u, Rating: ptr(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)
	require.NotNil(t, updated.Comment)
	assert.Equal(t, "cold food", *updated.Comment)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	updated, err = f.svc.Update(ctx, reviews.UpdateInput{ReviewID: created.ID, UserID: u, Comment: ptr("better now")})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, "better now", *updated.Comment)

	requireAggregate(t, f.svc, rid, 4.0, 1)
}

func TestUpdateValidation(t *testing.T) {
	ctx := context.Background()
	f, user, restaurant := newFixture(t)
	rid, u := restaurant(0), user("Ana")
	created, err := f.svc.Create(ctx, reviews.CreateInput{RestaurantID: rid, UserID: u, Rating: 3})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, reviews.UpdateInput{ReviewID: created.ID, UserID: u})
	assert.Equal(t, apperr.CodeEmptyUpdate, apperr.CodeOf(err))

	_, err = f.svc.Update(ctx, reviews.UpdateInput{ReviewID: created.ID, UserID: u, Rating: ptr(9)})
	assert.Equal(t, apperr.CodeInvalidRating, apperr.CodeOf(err))

	requireAggregate(t, f.svc, rid, 3.0, 1)
}

func TestOnlyAuthorMayUpdateOrDelete(t *testing.T) {
	ctx := context.Background()
	f, user, restaurant := newFixture(t)
	rid := restaurant(0)
	author, intruder := user("Ana"), user("Eve")

	created, err := f.svc.Create(ctx, reviews.CreateInput{RestaurantID: rid, UserID: author, Rating: 5, Comment: ptr("great")})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, reviews.UpdateInput{ReviewID: created.ID, UserID: intruder, Rating: ptr(1)})
	require.Error(t, err)
	assert.Equal(t, apperr.KindPermissionDenied, apperr.KindOf(err))
	assert.Equal(t, apperr.CodeNotReviewAuthor, apperr.CodeOf(err))

	err = f.svc.Delete(ctx, created.ID, intruder)
	require.Error(t, err)
	assert.Equal(t, apperr.KindPermissionDenied, apperr.KindOf(err))

	page, err := f.svc.ListForRestaurant(ctx, rid, params.New(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 5, page.Items[0].Rating)
	assert.Equal(t, "great", *page.Items[0].Comment)
}

func TestMissingReviewIsNotFound(t *testing.T) {
	ctx := context.Background()
	f, user, _ := newFixture(t)
	u := user("Ana")

	_, err := f.svc.Update(ctx, reviews.UpdateInput{ReviewID: 404, UserID: u, Rating: ptr(2)})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, apperr.CodeReviewNotFound, apperr.CodeOf(err))

	err = f.svc.Delete(ctx, 404, u)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListForRestaurantNewestFirstWithNames(t *testing.T) {
	ctx := context.Background()
	f, user, restaurant := newFixture(t)
	rid := restaurant(0)

	var ids []int64
	for _, name := range []string{"Ana", "Ben", "Cleo"} {
		rv, err := f.svc.Create(ctx, reviews.CreateInput{RestaurantID: rid, UserID: user(name), Rating: 4})
		require.NoError(t, err)
		ids = append(ids, rv.ID)
	}

	page, err := f.svc.ListForRestaurant(ctx, rid, params.New(1, 2))
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.True(t, page.HasNext)
	require.Len(t, page.Items, 2)
	assert.Equal(t, ids[2], page.Items[0].ID)
	assert.Equal(t, "Cleo", page.Items[0].UserName)
	assert.Equal(t, ids[1], page.Items[1].ID)

	page, err = f.svc.ListForRestaurant(ctx, rid, params.New(2, 2))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Ana", page.Items[0].UserName)

	_, err = f.svc.ListForRestaurant(ctx, 999, params.New(1, 2))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAggregateManyAndDistribution(t *testing.T) {
	ctx := context.Background()
	f, user, restaurant := newFixture(t)
	r1, r2, r3 := restaurant(0), restaurant(0), restaurant(0)

	for _, in := range []reviews.CreateInput{
		{RestaurantID: r1, UserID: user("a"), Rating: 5},
		{RestaurantID: r1, UserID: user("b"), Rating: 4},
		{RestaurantID: r2, UserID: user("c"), Rating: 1},
	} {
		_, err := f.svc.Create(ctx, in)
		require.NoError(t, err)
	}

	aggs, err := f.svc.AggregateMany(ctx, []int64{r1, r2, r3})
	require.NoError(t, err)
	assert.Equal(t, 4.5, *aggs[r1].AverageRating)
	assert.Equal(t, 2, aggs[r1].ReviewCount)
	assert.Equal(t, 1.0, *aggs[r2].AverageRating)
	assert.Nil(t, aggs[r3].AverageRating)
	assert.Zero(t, aggs[r3].ReviewCount)

	dist, err := f.store.RatingDistribution(ctx, []int64{r1, r2, r3})
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 1, 2: 0, 3: 0, 4: 1, 5: 1}, dist)
}

func TestListByAuthorCarriesRestaurantName(t *testing.T) {
	ctx := context.Background()
	f, user, restaurant := newFixture(t)
	u := user("Ana")
	rid := restaurant(0)

	_, err := f.svc.Create(ctx, reviews.CreateInput{RestaurantID: rid, UserID: u, Rating: 3})
	require.NoError(t, err)

	items, err := f.svc.ListByAuthor(ctx, u)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Trattoria", items[0].RestaurantName)
	assert.Equal(t, "Ana", items[0].UserName)

	empty, err := f.svc.ListByAuthor(ctx, user("Ben"))
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestNewAggregate(t *testing.T) {
	assert.Nil(t, reviews.NewAggregate(0, nil).AverageRating)
	assert.Nil(t, reviews.NewAggregate(0, ptr(0.0)).AverageRating)

	agg := reviews.NewAggregate(3, ptr(3.666666))
	assert.Equal(t, 3.67, *agg.AverageRating)
}
