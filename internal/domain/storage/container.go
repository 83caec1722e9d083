package storage

import (
	"context"
	"database/sql"
	"fmt"

	"dinefinder/internal/domain/favorites"
	"dinefinder/internal/domain/owners"
	"dinefinder/internal/domain/restaurants"
	"dinefinder/internal/domain/reviews"
	"dinefinder/internal/domain/users"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Container struct {
	Users       users.Store
	Owners      owners.Store
	Restaurants restaurants.Store
	Reviews     reviews.Store
	Favorites   favorites.Store

	withTx func(ctx context.Context, fn func(tx *Tx) error) error
}

// Tx is a temporary, tx-scoped set of repos for atomic units of work.
type Tx struct {
	Restaurants restaurants.Store
	Reviews     reviews.Store
}

func NewPostgres(pool *pgxpool.Pool) *Container {
	return &Container{
		Users:       users.NewRepository(pool),
		Owners:      owners.NewRepository(pool),
		Restaurants: restaurants.NewRepository(pool),
		Reviews:     reviews.NewRepository(pool),
		Favorites:   favorites.NewRepository(pool),
		withTx: func(ctx context.Context, fn func(tx *Tx) error) error {
			if pool == nil {
				return fmt.Errorf("storage container pool is nil")
			}
			tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
			if err != nil {
				return err
			}
			defer func() {
				_ = tx.Rollback(ctx) // safe even if already committed
			}()

			if err := fn(&Tx{
				Restaurants: restaurants.NewRepository(tx),
				Reviews:     reviews.NewRepository(tx),
			}); err != nil {
				return err
			}
			return tx.Commit(ctx)
		},
	}
}

// NewSQLite builds the container on a single-connection SQLite handle.
// Inside WithTx only the Tx repos may be used; the pool repos would wait for
// the connection the transaction holds.
func NewSQLite(db *sql.DB) *Container {
	return &Container{
		Users:       users.NewSQLiteRepository(db),
		Owners:      owners.NewSQLiteRepository(db),
		Restaurants: restaurants.NewSQLiteRepository(db),
		Reviews:     reviews.NewSQLiteRepository(db),
		Favorites:   favorites.NewSQLiteRepository(db),
		withTx: func(ctx context.Context, fn func(tx *Tx) error) error {
			if db == nil {
				return fmt.Errorf("storage container db is nil")
			}
			tx, err := db.BeginTx(ctx, nil)
			if err != nil {
				return err
			}
			defer func() {
				_ = tx.Rollback()
			}()

			if err := fn(&Tx{
				Restaurants: restaurants.NewSQLiteRepository(tx),
				Reviews:     reviews.NewSQLiteRepository(tx),
			}); err != nil {
				return err
			}
			return tx.Commit()
		},
	}
}

// WithTx runs fn atomically. fn's error rolls the transaction back.
func (c *Container) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	return c.withTx(ctx, fn)
}
