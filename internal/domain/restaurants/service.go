package restaurants

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dinefinder/internal/apperr"
	"dinefinder/internal/params"
)

// Catalog is the restaurant listing collaborator.
type Catalog struct {
	store Store
}

func NewCatalog(store Store) *Catalog {
	return &Catalog{store: store}
}

// FromInput builds an unsaved Restaurant from in.
func FromInput(in CreateInput) *Restaurant {
	return &Restaurant{
		Name:        strings.TrimSpace(in.Name),
		CuisineType: in.CuisineType,
		Description: in.Description,
		Address:     in.Address,
		City:        strings.TrimSpace(in.City),
		PricingTier: in.PricingTier,
	}
}

// Create adds a user-submitted listing. It starts unclaimed.
func (c *Catalog) Create(ctx context.Context, userID int64, in CreateInput) (*Restaurant, error) {
	if err := apperr.ValidateStruct(in); err != nil {
		return nil, err
	}
	rest := FromInput(in)
	rest.CreatedByUserID = &userID
	if err := c.store.Create(ctx, rest); err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}
	return rest, nil
}

func (c *Catalog) Get(ctx context.Context, id int64) (*Restaurant, error) {
	rest, err := c.store.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound(apperr.CodeRestaurantNotFound, "restaurant %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get restaurant %d: %w", id, err)
	}
	return rest, nil
}

func (c *Catalog) Exists(ctx context.Context, id int64) (bool, error) {
	return c.store.Exists(ctx, id)
}

// List returns restaurant cards. Ratings are derived from reviews at query
// time.
func (c *Catalog) List(ctx context.Context, f ListFilter, p params.Pagination) (*params.Page[Summary], error) {
	switch f.Sort {
	case "":
		f.Sort = SortRating
	case SortRating, SortNewest, SortName:
	default:
		return nil, apperr.Validation(apperr.CodeInvalidInput,
			"sort must be one of %s, %s, %s", SortRating, SortNewest, SortName)
	}

	items, total, err := c.store.List(ctx, f, p)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return params.NewPage(items, p, total), nil
}

// Cards returns the summaries of ids in the order given, skipping ids that
// no longer exist.
func (c *Catalog) Cards(ctx context.Context, ids []int64) ([]Summary, error) {
	byID, err := c.store.Summaries(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load restaurant cards: %w", err)
	}
	out := make([]Summary, 0, len(ids))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (c *Catalog) ListByCreator(ctx context.Context, userID int64) ([]Summary, error) {
	items, err := c.store.ListByCreator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list restaurants by creator: %w", err)
	}
	if items == nil {
		items = []Summary{}
	}
	return items, nil
}
