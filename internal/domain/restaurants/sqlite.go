package restaurants

import (
	"context"
	"strings"
	"time"

	"dinefinder/internal/domain/reviews"
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

const sqliteColumns = `id, name, cuisine_type, description, address, city, pricing_tier,
       created_by_user_id, claimed_by_owner_id, created_at, updated_at`

const sqliteSummarySelect = `
        SELECT ` + restaurantColumns + `,
               COALESCE(s.review_count, 0), s.average_rating
        FROM restaurants r
        LEFT JOIN (
            SELECT restaurant_id, COUNT(id) AS review_count, AVG(rating) AS average_rating
            FROM reviews
            GROUP BY restaurant_id
        ) s ON s.restaurant_id = r.id`

func scanSQLiteRestaurant(row scanner, r *Restaurant, extra ...any) error {
	var created, updated int64
	dest := append([]any{
		&r.ID, &r.Name, &r.CuisineType, &r.Description, &r.Address, &r.City, &r.PricingTier,
		&r.CreatedByUserID, &r.ClaimedByOwnerID, &created, &updated,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	r.CreatedAt = dbx.FromMillis(created)
	r.UpdatedAt = dbx.FromMillis(updated)
	return nil
}

func scanSQLiteSummary(row scanner) (Summary, error) {
	var (
		s     Summary
		count int
		avg   *float64
	)
	if err := scanSQLiteRestaurant(row, &s.Restaurant, &count, &avg); err != nil {
		return Summary{}, err
	}
	s.Aggregate = reviews.NewAggregate(count, avg)
	return s, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, rest *Restaurant) error {
	now := dbx.Millis(r.now())
	err := r.db.QueryRowContext(ctx, `
        INSERT INTO restaurants (name, cuisine_type, description, address, city, pricing_tier,
                                 created_by_user_id, claimed_by_owner_id, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id
    `,
		rest.Name, rest.CuisineType, rest.Description, rest.Address, rest.City, rest.PricingTier,
		rest.CreatedByUserID, rest.ClaimedByOwnerID, now, now,
	).Scan(&rest.ID)
	if err != nil {
		return err
	}
	rest.CreatedAt = dbx.FromMillis(now)
	rest.UpdatedAt = rest.CreatedAt
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*Restaurant, error) {
	var rest Restaurant
	err := scanSQLiteRestaurant(r.db.QueryRowContext(ctx,
		`SELECT `+sqliteColumns+` FROM restaurants WHERE id = ?`, id), &rest)
	if err != nil {
		if dbx.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rest, nil
}

func (r *SQLiteRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM restaurants WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}

func sqlitePlaceholder(int) string { return "?" }

func (r *SQLiteRepository) List(ctx context.Context, f ListFilter, p params.Pagination) ([]Summary, int, error) {
	where, args := filterClause(f, sqlitePlaceholder)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM restaurants r`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := sqliteSummarySelect + where + orderClause(f.Sort) + " LIMIT ? OFFSET ?"
	args = append(args, p.Size, p.Offset)

	out, err := r.querySummaries(ctx, query, args...)
	return out, total, err
}

func (r *SQLiteRepository) Summaries(ctx context.Context, ids []int64) (map[int64]Summary, error) {
	out := make(map[int64]Summary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	holders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")

	list, err := r.querySummaries(ctx, sqliteSummarySelect+` WHERE r.id IN (`+holders+`)`, args...)
	if err != nil {
		return nil, err
	}
	for _, s := range list {
		out[s.ID] = s
	}
	return out, nil
}

func (r *SQLiteRepository) ListByCreator(ctx context.Context, userID int64) ([]Summary, error) {
	return r.querySummaries(ctx,
		sqliteSummarySelect+` WHERE r.created_by_user_id = ? ORDER BY r.created_at DESC, r.id DESC`, userID)
}

func (r *SQLiteRepository) ListByOwner(ctx context.Context, ownerID int64) ([]Summary, error) {
	return r.querySummaries(ctx,
		sqliteSummarySelect+` WHERE r.claimed_by_owner_id = ? ORDER BY r.name ASC, r.id ASC`, ownerID)
}

func (r *SQLiteRepository) querySummaries(ctx context.Context, query string, args ...any) ([]Summary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		s, err := scanSQLiteSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) ClaimIfUnclaimed(ctx context.Context, id, ownerID int64) (*Restaurant, error) {
	var rest Restaurant
	err := scanSQLiteRestaurant(r.db.QueryRowContext(ctx, `
        UPDATE restaurants
        SET claimed_by_owner_id = ?, updated_at = ?
        WHERE id = ? AND claimed_by_owner_id IS NULL
        RETURNING `+sqliteColumns,
		ownerID, dbx.Millis(r.now()), id,
	), &rest)
	if err != nil {
		if dbx.IsNoRows(err) {
			return nil, ErrNoMatch
		}
		return nil, err
	}
	return &rest, nil
}

func (r *SQLiteRepository) UpdateIfOwned(ctx context.Context, id, ownerID int64, patch Patch) (*Restaurant, error) {
	var rest Restaurant
	err := scanSQLiteRestaurant(r.db.QueryRowContext(ctx, `
        UPDATE restaurants
        SET name = COALESCE(?, name),
            cuisine_type = COALESCE(?, cuisine_type),
            description = COALESCE(?, description),
            address = COALESCE(?, address),
            city = COALESCE(?, city),
            pricing_tier = COALESCE(?, pricing_tier),
            updated_at = ?
        WHERE id = ? AND claimed_by_owner_id = ?
        RETURNING `+sqliteColumns,
		patch.Name, patch.CuisineType, patch.Description, patch.Address, patch.City, patch.PricingTier,
		dbx.Millis(r.now()), id, ownerID,
	), &rest)
	if err != nil {
		if dbx.IsNoRows(err) {
			return nil, ErrNoMatch
		}
		return nil, err
	}
	return &rest, nil
}
