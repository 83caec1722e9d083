// Package history projects a user's activity from the review and restaurant
// tables at read time. It stores nothing.
package history

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"dinefinder/internal/domain/restaurants"
	"dinefinder/internal/domain/reviews"
)

type ReviewSource interface {
	ListByAuthor(ctx context.Context, userID int64) ([]reviews.AuthoredReview, error)
}

type RestaurantSource interface {
	ListByCreator(ctx context.Context, userID int64) ([]restaurants.Summary, error)
}

type History struct {
	ReviewsAuthored  []reviews.AuthoredReview `json:"reviews_authored"`
	RestaurantsAdded []restaurants.Summary    `json:"restaurants_added"`
}

type Projector struct {
	reviews     ReviewSource
	restaurants RestaurantSource
}

func NewProjector(reviews ReviewSource, restaurants RestaurantSource) *Projector {
	return &Projector{reviews: reviews, restaurants: restaurants}
}

// ForUser returns the reviews userID wrote and the restaurants they added,
// newest first.
func (p *Projector) ForUser(ctx context.Context, userID int64) (*History, error) {
	var h History

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := p.reviews.ListByAuthor(gctx, userID)
		if err != nil {
			return fmt.Errorf("reviews authored: %w", err)
		}
		h.ReviewsAuthored = items
		return nil
	})
	g.Go(func() error {
		items, err := p.restaurants.ListByCreator(gctx, userID)
		if err != nil {
			return fmt.Errorf("restaurants added: %w", err)
		}
		h.RestaurantsAdded = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if h.ReviewsAuthored == nil {
		h.ReviewsAuthored = []reviews.AuthoredReview{}
	}
	if h.RestaurantsAdded == nil {
		h.RestaurantsAdded = []restaurants.Summary{}
	}
	return &h, nil
}
