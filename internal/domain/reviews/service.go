package reviews

import (
	"context"
	"errors"
	"fmt"

	"dinefinder/internal/apperr"
	"dinefinder/internal/params"
)

// RestaurantChecker answers whether a restaurant exists.
type RestaurantChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Service owns review authorship rules and the live rating aggregate.
type Service struct {
	store       Store
	restaurants RestaurantChecker
}

func NewService(store Store, restaurants RestaurantChecker) *Service {
	return &Service{store: store, restaurants: restaurants}
}

func validateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return apperr.Validation(apperr.CodeInvalidRating,
			"rating must be between %d and %d, got %d", MinRating, MaxRating, rating)
	}
	return nil
}

func (s *Service) requireRestaurant(ctx context.Context, restaurantID int64) error {
	ok, err := s.restaurants.Exists(ctx, restaurantID)
	if err != nil {
		return fmt.Errorf("check restaurant %d: %w", restaurantID, err)
	}
	if !ok {
		return apperr.NotFound(apperr.CodeRestaurantNotFound, "restaurant %d not found", restaurantID)
	}
	return nil
}

// Create stores a new review. Uniqueness per (user, restaurant) is left to
// the store's constraint so concurrent submissions cannot both succeed.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Review, error) {
	if err := validateRating(in.Rating); err != nil {
		return nil, err
	}
	if err := s.requireRestaurant(ctx, in.RestaurantID); err != nil {
		return nil, err
	}

	review := &Review{
		RestaurantID: in.RestaurantID,
		UserID:       in.UserID,
		Rating:       in.Rating,
		Comment:      in.Comment,
	}
	err := s.store.Create(ctx, review)
	switch {
	case errors.Is(err, ErrDuplicate):
		return nil, apperr.Conflict(apperr.CodeReviewExists,
			"you have already reviewed restaurant %d", in.RestaurantID).Wrap(err)
	case errors.Is(err, ErrRestaurantMissing):
		return nil, apperr.NotFound(apperr.CodeRestaurantNotFound,
			"restaurant %d not found", in.RestaurantID).Wrap(err)
	case err != nil:
		return nil, fmt.Errorf("create review: %w", err)
	}
	return review, nil
}

// Update edits the supplied fields of a review written by in.UserID.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*Review, error) {
	if in.Rating == nil && in.Comment == nil {
		return nil, apperr.Validation(apperr.CodeEmptyUpdate, "at least one of rating or comment is required")
	}
	if in.Rating != nil {
		if err := validateRating(*in.Rating); err != nil {
			return nil, err
		}
	}

	review, err := s.store.UpdateIfAuthor(ctx, in)
	if errors.Is(err, ErrNotFound) {
		return nil, s.classifyMiss(ctx, in.ReviewID, "edit")
	}
	if err != nil {
		return nil, fmt.Errorf("update review %d: %w", in.ReviewID, err)
	}
	return review, nil
}

// Delete removes a review written by userID.
func (s *Service) Delete(ctx context.Context, reviewID, userID int64) error {
	deleted, err := s.store.DeleteIfAuthor(ctx, reviewID, userID)
	if err != nil {
		return fmt.Errorf("delete review %d: %w", reviewID, err)
	}
	if !deleted {
		return s.classifyMiss(ctx, reviewID, "delete")
	}
	return nil
}

// classifyMiss explains why a conditional write on reviewID touched no row.
func (s *Service) classifyMiss(ctx context.Context, reviewID int64, verb string) error {
	_, err := s.store.AuthorOf(ctx, reviewID)
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound(apperr.CodeReviewNotFound, "review %d not found", reviewID)
	}
	if err != nil {
		return fmt.Errorf("load review %d: %w", reviewID, err)
	}
	return apperr.PermissionDenied(apperr.CodeNotReviewAuthor, "you can only %s your own reviews", verb)
}

// ListForRestaurant returns reviews newest first with the reviewer's name.
func (s *Service) ListForRestaurant(ctx context.Context, restaurantID int64, p params.Pagination) (*params.Page[Review], error) {
	if err := s.requireRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	items, total, err := s.store.ListForRestaurant(ctx, restaurantID, p)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return params.NewPage(items, p, total), nil
}

// ListByAuthor returns every review userID wrote, newest first.
func (s *Service) ListByAuthor(ctx context.Context, userID int64) ([]AuthoredReview, error) {
	items, err := s.store.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reviews by author: %w", err)
	}
	if items == nil {
		items = []AuthoredReview{}
	}
	return items, nil
}

// Aggregate computes the rating summary from the current review rows.
func (s *Service) Aggregate(ctx context.Context, restaurantID int64) (Aggregate, error) {
	agg, err := s.store.Aggregate(ctx, restaurantID)
	if err != nil {
		return Aggregate{}, fmt.Errorf("aggregate reviews: %w", err)
	}
	return agg, nil
}

// AggregateMany is Aggregate for several restaurants. Restaurants without
// reviews map to a zero-count aggregate.
func (s *Service) AggregateMany(ctx context.Context, restaurantIDs []int64) (map[int64]Aggregate, error) {
	aggs, err := s.store.AggregateMany(ctx, restaurantIDs)
	if err != nil {
		return nil, fmt.Errorf("aggregate reviews: %w", err)
	}
	for _, id := range restaurantIDs {
		if _, ok := aggs[id]; !ok {
			aggs[id] = Aggregate{}
		}
	}
	return aggs, nil
}
