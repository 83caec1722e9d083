package favorites

import (
	"errors"
	"time"

	"dinefinder/internal/domain/restaurants"
)

var ErrRestaurantMissing = errors.New("restaurant does not exist")

type Favorite struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	RestaurantID int64     `json:"restaurant_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// FavoriteRestaurant is a favorited restaurant card.
type FavoriteRestaurant struct {
	restaurants.Summary
	FavoritedAt time.Time `json:"favorited_at"`
}

// State is the membership of one restaurant in a user's favorites.
type State struct {
	RestaurantID int64 `json:"restaurant_id"`
	Favorited    bool  `json:"favorited"`
}
