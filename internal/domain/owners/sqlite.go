package owners

import (
	"context"
	"time"

	"dinefinder/internal/infra/dbx"
)

type SQLiteRepository struct {
	db  dbx.SQLQuerier
	now func() time.Time
}

func NewSQLiteRepository(db dbx.SQLQuerier) Store {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Create(ctx context.Context, owner *Owner) error {
	created := dbx.Millis(r.now())
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO owners (name, email, restaurant_location, created_at) VALUES (?, ?, ?, ?) RETURNING id`,
		owner.Name, owner.Email, owner.RestaurantLocation, created,
	).Scan(&owner.ID)
	if dbx.IsUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return err
	}
	owner.CreatedAt = dbx.FromMillis(created)
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*Owner, error) {
	var (
		o       Owner
		created int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, restaurant_location, created_at FROM owners WHERE id = ?`, id,
	).Scan(&o.ID, &o.Name, &o.Email, &o.RestaurantLocation, &created)
	if err != nil {
		if dbx.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	o.CreatedAt = dbx.FromMillis(created)
	return &o, nil
}
