package restaurants

import (
	"errors"
	"time"

	"dinefinder/internal/domain/reviews"
)

var (
	ErrNotFound = errors.New("restaurant not found")
	// ErrNoMatch means a conditional write matched no row; the caller decides
	// whether the row is missing or the condition failed.
	ErrNoMatch = errors.New("no restaurant matched the write condition")
)

const (
	SortRating = "rating"
	SortNewest = "newest"
	SortName   = "name"
)

type Restaurant struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	CuisineType      *string   `json:"cuisine_type"`
	Description      *string   `json:"description"`
	Address          *string   `json:"address"`
	City             string    `json:"city"`
	PricingTier      *string   `json:"pricing_tier"`
	CreatedByUserID  *int64    `json:"created_by_user_id"`
	ClaimedByOwnerID *int64    `json:"claimed_by_owner_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// IsClaimed reports whether any owner holds the listing.
func (r *Restaurant) IsClaimed() bool {
	return r.ClaimedByOwnerID != nil
}

// Summary is a restaurant card with its live rating aggregate.
type Summary struct {
	Restaurant
	reviews.Aggregate
}

type CreateInput struct {
	Name        string  `json:"name" validate:"required,max=200"`
	CuisineType *string `json:"cuisine_type" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Address     *string `json:"address" validate:"omitempty,max=255"`
	City        string  `json:"city" validate:"required,max=100"`
	PricingTier *string `json:"pricing_tier" validate:"omitempty,oneof=$ $$ $$$ $$$$"`
}

// Patch holds the fields an owner may change; nil means unchanged.
type Patch struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	CuisineType *string `json:"cuisine_type" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Address     *string `json:"address" validate:"omitempty,max=255"`
	City        *string `json:"city" validate:"omitempty,min=1,max=100"`
	PricingTier *string `json:"pricing_tier" validate:"omitempty,oneof=$ $$ $$$ $$$$"`
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.CuisineType == nil && p.Description == nil &&
		p.Address == nil && p.City == nil && p.PricingTier == nil
}

type ListFilter struct {
	Sort        string
	City        string
	CuisineType string
}
