package favorites

import (
	"context"
	"errors"
	"fmt"

	"dinefinder/internal/apperr"
	"dinefinder/internal/domain/restaurants"
	"dinefinder/internal/params"
)

// Cards loads restaurant existence and card data.
type Cards interface {
	Exists(ctx context.Context, id int64) (bool, error)
	Cards(ctx context.Context, ids []int64) ([]restaurants.Summary, error)
}

// Registry is the server-side favorites membership. Add and Remove are
// idempotent toggles, so repeating either is never an error.
type Registry struct {
	store Store
	cards Cards
}

func NewRegistry(store Store, cards Cards) *Registry {
	return &Registry{store: store, cards: cards}
}

func (r *Registry) Add(ctx context.Context, userID, restaurantID int64) (State, error) {
	ok, err := r.cards.Exists(ctx, restaurantID)
	if err != nil {
		return State{}, fmt.Errorf("check restaurant %d: %w", restaurantID, err)
	}
	if !ok {
		return State{}, apperr.NotFound(apperr.CodeRestaurantNotFound, "restaurant %d not found", restaurantID)
	}

	if _, err := r.store.Add(ctx, userID, restaurantID); err != nil {
		if errors.Is(err, ErrRestaurantMissing) {
			return State{}, apperr.NotFound(apperr.CodeRestaurantNotFound,
				"restaurant %d not found", restaurantID).Wrap(err)
		}
		return State{}, fmt.Errorf("add favorite: %w", err)
	}
	return State{RestaurantID: restaurantID, Favorited: true}, nil
}

// Remove succeeds whether or not the favorite existed.
func (r *Registry) Remove(ctx context.Context, userID, restaurantID int64) (State, error) {
	if _, err := r.store.Remove(ctx, userID, restaurantID); err != nil {
		return State{}, fmt.Errorf("remove favorite: %w", err)
	}
	return State{RestaurantID: restaurantID, Favorited: false}, nil
}

func (r *Registry) IsFavorite(ctx context.Context, userID, restaurantID int64) (bool, error) {
	return r.store.Exists(ctx, userID, restaurantID)
}

// List returns favorited restaurant cards, most recently favorited first.
func (r *Registry) List(ctx context.Context, userID int64, p params.Pagination) (*params.Page[FavoriteRestaurant], error) {
	favs, total, err := r.store.List(ctx, userID, p)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	ids := make([]int64, len(favs))
	for i, f := range favs {
		ids[i] = f.RestaurantID
	}
	cards, err := r.cards.Cards(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]restaurants.Summary, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}

	items := make([]FavoriteRestaurant, 0, len(favs))
	for _, f := range favs {
		card, ok := byID[f.RestaurantID]
		if !ok {
			continue
		}
		items = append(items, FavoriteRestaurant{Summary: card, FavoritedAt: f.CreatedAt})
	}
	return params.NewPage(items, p, total), nil
}

// IDs returns every favorited restaurant id, used to seed client caches.
func (r *Registry) IDs(ctx context.Context, userID int64) ([]int64, error) {
	ids, err := r.store.IDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorite ids: %w", err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}
