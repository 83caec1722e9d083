package users

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

func (r *SQLiteRepository) Create(ctx context.Context, user *User) error {
	now := r.now()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (name, email, created_at) VALUES (?, ?, ?) RETURNING id`,
		user.Name, user.Email, dbx.Millis(now),
	).Scan(&user.ID)
	if dbx.IsUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return err
	}
	user.CreatedAt = dbx.FromMillis(dbx.Millis(now))
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	var (
		u       User
		created int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, created_at FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &created)
	if err != nil {
		if dbx.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.CreatedAt = dbx.FromMillis(created)
	return &u, nil
}
