package owners

import (
	"context"

	"dinefinder/internal/infra/dbx"
)

type Store interface {
	Create(ctx context.Context, owner *Owner) error
	GetByID(ctx context.Context, id int64) (*Owner, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) Store {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, owner *Owner) error {
	query := `
        INSERT INTO owners (name, email, restaurant_location)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, owner.Name, owner.Email, owner.RestaurantLocation).
		Scan(&owner.ID, &owner.CreatedAt)
	if dbx.IsUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Owner, error) {
	query := `
        SELECT id, name, email, restaurant_location, created_at
        FROM owners
        WHERE id = $1
    `
	var o Owner
	err := r.db.QueryRow(ctx, query, id).
		Scan(&o.ID, &o.Name, &o.Email, &o.RestaurantLocation, &o.CreatedAt)
	if err != nil {
		if dbx.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}
