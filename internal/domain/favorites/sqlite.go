package favorites

import (
	"context"
	"time"

	"dinefinder/internal/infra/dbx"
	"dinefinder/internal/params"
)

type SQLiteRepository struct {
	db  dbx.SQLQuerier
	now func() time.Time
}

func NewSQLiteRepository(db dbx.SQLQuerier) Store {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Add(ctx context.Context, userID, restaurantID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
        INSERT INTO favorites (user_id, restaurant_id, created_at)
        VALUES (?, ?, ?)
        ON CONFLICT (user_id, restaurant_id) DO NOTHING
    `, userID, restaurantID, dbx.Millis(r.now()))
	if dbx.IsForeignKeyViolation(err) {
		return false, ErrRestaurantMissing
	}
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *SQLiteRepository) Remove(ctx context.Context, userID, restaurantID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND restaurant_id = ?`, userID, restaurantID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *SQLiteRepository) Exists(ctx context.Context, userID, restaurantID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
        SELECT EXISTS (
          SELECT 1 FROM favorites
          WHERE user_id = ? AND restaurant_id = ?
        )
    `, userID, restaurantID).Scan(&exists)
	return exists, err
}

func (r *SQLiteRepository) List(ctx context.Context, userID int64, p params.Pagination) ([]Favorite, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favorites WHERE user_id = ?`, userID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
        SELECT id, user_id, restaurant_id, created_at
        FROM favorites
        WHERE user_id = ?
        ORDER BY created_at DESC, id DESC
        LIMIT ? OFFSET ?
    `, userID, p.Size, p.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Favorite
	for rows.Next() {
		var (
			f       Favorite
			created int64
		)
		if err := rows.Scan(&f.ID, &f.UserID, &f.RestaurantID, &created); err != nil {
			return nil, 0, err
		}
		f.CreatedAt = dbx.FromMillis(created)
		out = append(out, f)
	}
	return out, total, rows.Err()
}

func (r *SQLiteRepository) IDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT restaurant_id
        FROM favorites
        WHERE user_id = ?
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
