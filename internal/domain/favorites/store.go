package favorites

import (
	"context"

	"dinefinder/internal/infra/dbx"
	"dinefinder/internal/params"
)

type Store interface {
	// Add is idempotent; created is false when the pair already existed.
	Add(ctx context.Context, userID, restaurantID int64) (created bool, err error)
	Remove(ctx context.Context, userID, restaurantID int64) (removed bool, err error)
	Exists(ctx context.Context, userID, restaurantID int64) (bool, error)
	List(ctx context.Context, userID int64, p params.Pagination) ([]Favorite, int, error)
	IDs(ctx context.Context, userID int64) ([]int64, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) Store {
	return &Repository{db: db}
}

func (r *Repository) Add(ctx context.Context, userID, restaurantID int64) (bool, error) {
	query := `
        INSERT INTO favorites (user_id, restaurant_id)
        VALUES ($1, $2)
        ON CONFLICT (user_id, restaurant_id) DO NOTHING
    `
	tag, err := r.db.Exec(ctx, query, userID, restaurantID)
	if dbx.IsForeignKeyViolation(err) {
		return false, ErrRestaurantMissing
	}
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) Remove(ctx context.Context, userID, restaurantID int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND restaurant_id = $2`, userID, restaurantID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) Exists(ctx context.Context, userID, restaurantID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
        SELECT EXISTS (
          SELECT 1 FROM favorites
          WHERE user_id = $1 AND restaurant_id = $2
        )
    `, userID, restaurantID).Scan(&exists)
	return exists, err
}

func (r *Repository) List(ctx context.Context, userID int64, p params.Pagination) ([]Favorite, int, error) {
	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM favorites WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
        SELECT id, user_id, restaurant_id, created_at
        FROM favorites
        WHERE user_id = $1
        ORDER BY created_at DESC, id DESC
        LIMIT $2 OFFSET $3
    `, userID, p.Size, p.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Favorite
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.RestaurantID, &f.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, f)
	}
	return out, total, rows.Err()
}

func (r *Repository) IDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
        SELECT restaurant_id
        FROM favorites
        WHERE user_id = $1
        ORDER BY created_at DESC, id DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
