package owners

import (
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("owner not found")
	ErrDuplicateEmail = errors.New("an owner with that email already exists")
)

// Owner is a business account that may claim restaurant listings.
type Owner struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	RestaurantLocation *string   `json:"restaurant_location,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}
