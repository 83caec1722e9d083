package reviews

import (
	"errors"
	"math"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Store sentinels; the Service turns them into apperr values.
var (
	ErrNotFound          = errors.New("review not found")
	ErrDuplicate         = errors.New("review already exists for this user and restaurant")
	ErrRestaurantMissing = errors.New("restaurant does not exist")
)

type Review struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurant_id"`
	UserID       int64     `json:"user_id"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Joined fields
	UserName string `json:"user_name,omitempty"`
}

// AuthoredReview is a review as it appears in its author's history.
type AuthoredReview struct {
	Review
	RestaurantName string `json:"restaurant_name"`
}

// Aggregate is the live rating summary of a restaurant. AverageRating is nil
// when ReviewCount is zero so "no reviews" never reads as "rated 0".
type Aggregate struct {
	AverageRating *float64 `json:"average_rating"`
	ReviewCount   int      `json:"review_count"`
}

// NewAggregate builds an Aggregate from a COUNT and a nullable AVG, rounding
// the average to two decimals.
func NewAggregate(count int, avg *float64) Aggregate {
	if count == 0 || avg == nil {
		return Aggregate{ReviewCount: count}
	}
	rounded := math.Round(*avg*100) / 100
	return Aggregate{AverageRating: &rounded, ReviewCount: count}
}

type CreateInput struct {
	RestaurantID int64
	UserID       int64
	Rating       int
	Comment      *string
}

type UpdateInput struct {
	ReviewID int64
	UserID   int64
	Rating   *int
	Comment  *string
}
