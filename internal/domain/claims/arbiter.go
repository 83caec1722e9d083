// Package claims arbitrates exclusive owner claims over restaurant listings
// and gates owner-only operations on the claim.
package claims

import (
	"context"
	"errors"
	"fmt"
	"math"

	"dinefinder/internal/apperr"
	"dinefinder/internal/domain/restaurants"
	"dinefinder/internal/domain/reviews"
	"dinefinder/internal/domain/storage"
	"dinefinder/internal/params"
)

// TxRunner runs a unit of work in one database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *storage.Tx) error) error
}

type ClaimResult struct {
	RestaurantID     int64  `json:"restaurant_id"`
	ClaimedByOwnerID int64  `json:"claimed_by_owner_id"`
	Message          string `json:"message"`
}

type Dashboard struct {
	ClaimedCount       int                   `json:"claimed_count"`
	TotalReviews       int                   `json:"total_reviews"`
	AverageRating      *float64              `json:"average_rating"`
	RatingDistribution map[int]int           `json:"rating_distribution"`
	ClaimedRestaurants []restaurants.Summary `json:"claimed_restaurants"`
}

type Arbiter struct {
	tx          TxRunner
	restaurants restaurants.Store
	reviews     reviews.Store
}

func NewArbiter(tx TxRunner, restaurants restaurants.Store, reviews reviews.Store) *Arbiter {
	return &Arbiter{tx: tx, restaurants: restaurants, reviews: reviews}
}

// Claim assigns restaurantID to ownerID if nobody holds it yet. The
// assignment is a single conditional UPDATE, so of any number of concurrent
// claims exactly one wins and the rest get Conflict. A claim is never
// overwritten, including by its own holder.
func (a *Arbiter) Claim(ctx context.Context, restaurantID, ownerID int64) (*ClaimResult, error) {
	var result *ClaimResult
	err := a.tx.WithTx(ctx, func(tx *storage.Tx) error {
		rest, err := tx.Restaurants.ClaimIfUnclaimed(ctx, restaurantID, ownerID)
		if err == nil {
			result = &ClaimResult{
				RestaurantID:     rest.ID,
				ClaimedByOwnerID: *rest.ClaimedByOwnerID,
				Message:          "restaurant claimed successfully",
			}
			return nil
		}
		if !errors.Is(err, restaurants.ErrNoMatch) {
			return err
		}

		if _, err := tx.Restaurants.GetByID(ctx, restaurantID); err != nil {
			if errors.Is(err, restaurants.ErrNotFound) {
				return apperr.NotFound(apperr.CodeRestaurantNotFound, "restaurant %d not found", restaurantID)
			}
			return err
		}
		return apperr.Conflict(apperr.CodeAlreadyClaimed, "restaurant %d has already been claimed", restaurantID)
	})
	if err != nil {
		if apperr.KindOf(err) != apperr.KindUnknown {
			return nil, err
		}
		return nil, fmt.Errorf("claim restaurant %d: %w", restaurantID, err)
	}
	return result, nil
}

// Authorize succeeds only when ownerID holds the claim on restaurantID.
func (a *Arbiter) Authorize(ctx context.Context, restaurantID, ownerID int64) error {
	rest, err := a.restaurants.GetByID(ctx, restaurantID)
	if errors.Is(err, restaurants.ErrNotFound) {
		return apperr.NotFound(apperr.CodeRestaurantNotFound, "restaurant %d not found", restaurantID)
	}
	if err != nil {
		return fmt.Errorf("load restaurant %d: %w", restaurantID, err)
	}
	if rest.ClaimedByOwnerID == nil || *rest.ClaimedByOwnerID != ownerID {
		return apperr.PermissionDenied(apperr.CodeNotRestaurantOwner, "you have not claimed restaurant %d", restaurantID)
	}
	return nil
}

// UpdateRestaurant applies patch to a restaurant ownerID has claimed.
func (a *Arbiter) UpdateRestaurant(ctx context.Context, restaurantID, ownerID int64, patch restaurants.Patch) (*restaurants.Summary, error) {
	if patch.IsEmpty() {
		return nil, apperr.Validation(apperr.CodeEmptyUpdate, "at least one field is required")
	}
	if err := apperr.ValidateStruct(patch); err != nil {
		return nil, err
	}

	rest, err := a.restaurants.UpdateIfOwned(ctx, restaurantID, ownerID, patch)
	if errors.Is(err, restaurants.ErrNoMatch) {
		if err := a.Authorize(ctx, restaurantID, ownerID); err != nil {
			return nil, err
		}
		// Claims never move, so the row was deleted in between.
		return nil, apperr.NotFound(apperr.CodeRestaurantNotFound, "restaurant %d not found", restaurantID)
	}
	if err != nil {
		return nil, fmt.Errorf("update restaurant %d: %w", restaurantID, err)
	}

	agg, err := a.reviews.Aggregate(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("aggregate reviews: %w", err)
	}
	return &restaurants.Summary{Restaurant: *rest, Aggregate: agg}, nil
}

// CreateClaimed adds a listing that is claimed by ownerID from the start.
func (a *Arbiter) CreateClaimed(ctx context.Context, ownerID int64, in restaurants.CreateInput) (*restaurants.Summary, error) {
	if err := apperr.ValidateStruct(in); err != nil {
		return nil, err
	}
	rest := restaurants.FromInput(in)
	rest.ClaimedByOwnerID = &ownerID
	if err := a.restaurants.Create(ctx, rest); err != nil {
		return nil, fmt.Errorf("create claimed restaurant: %w", err)
	}
	return &restaurants.Summary{Restaurant: *rest}, nil
}

// RestaurantReviews lists the reviews of a restaurant ownerID has claimed.
func (a *Arbiter) RestaurantReviews(ctx context.Context, restaurantID, ownerID int64, p params.Pagination) (*params.Page[reviews.Review], error) {
	if err := a.Authorize(ctx, restaurantID, ownerID); err != nil {
		return nil, err
	}
	items, total, err := a.reviews.ListForRestaurant(ctx, restaurantID, p)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return params.NewPage(items, p, total), nil
}

// Dashboard summarizes every restaurant ownerID has claimed.
func (a *Arbiter) Dashboard(ctx context.Context, ownerID int64) (*Dashboard, error) {
	claimed, err := a.restaurants.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list claimed restaurants: %w", err)
	}
	if claimed == nil {
		claimed = []restaurants.Summary{}
	}

	ids := make([]int64, len(claimed))
	for i, r := range claimed {
		ids[i] = r.ID
	}
	dist, err := a.reviews.RatingDistribution(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("rating distribution: %w", err)
	}

	var total, sum int
	for rating, n := range dist {
		total += n
		sum += rating * n
	}

	d := &Dashboard{
		ClaimedCount:       len(claimed),
		TotalReviews:       total,
		RatingDistribution: dist,
		ClaimedRestaurants: claimed,
	}
	if total > 0 {
		avg := math.Round(float64(sum)/float64(total)*100) / 100
		d.AverageRating = &avg
	}
	return d, nil
}
