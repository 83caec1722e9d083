package reviews

import (
	"context"
	"database/sql"
	"strings"
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

const sqliteReviewColumns = `rv.id, rv.restaurant_id, rv.user_id, rv.rating, rv.comment, rv.created_at, rv.updated_at`

func scanSQLiteReview(row interface{ Scan(...any) error }, rv *Review, extra ...any) error {
	var created, updated int64
	dest := append([]any{
		&rv.ID, &rv.RestaurantID, &rv.UserID, &rv.Rating, &rv.Comment, &created, &updated,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	rv.CreatedAt = dbx.FromMillis(created)
	rv.UpdatedAt = dbx.FromMillis(updated)
	return nil
}

func (r *SQLiteRepository) Create(ctx context.Context, review *Review) error {
	now := dbx.Millis(r.now())
	err := r.db.QueryRowContext(ctx, `
        INSERT INTO reviews (restaurant_id, user_id, rating, comment, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)
        RETURNING id
    `, review.RestaurantID, review.UserID, review.Rating, review.Comment, now, now).Scan(&review.ID)
	switch {
	case dbx.IsUniqueViolation(err):
		return ErrDuplicate
	case dbx.IsForeignKeyViolation(err):
		return ErrRestaurantMissing
	case err != nil:
		return err
	}
	review.CreatedAt = dbx.FromMillis(now)
	review.UpdatedAt = review.CreatedAt
	return nil
}

func (r *SQLiteRepository) UpdateIfAuthor(ctx context.Context, in UpdateInput) (*Review, error) {
	var rv Review
	err := scanSQLiteReview(r.db.QueryRowContext(ctx, `
        UPDATE reviews
        SET rating = COALESCE(?, rating),
            comment = COALESCE(?, comment),
            updated_at = ?
        WHERE id = ? AND user_id = ?
        RETURNING id, restaurant_id, user_id, rating, comment, created_at, updated_at`,
		in.Rating, in.Comment, dbx.Millis(r.now()), in.ReviewID, in.UserID,
	), &rv)
	if err != nil {
		if dbx.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rv, nil
}

func (r *SQLiteRepository) DeleteIfAuthor(ctx context.Context, reviewID, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ? AND user_id = ?`, reviewID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *SQLiteRepository) AuthorOf(ctx context.Context, reviewID int64) (int64, error) {
	var userID int64
	err := r.db.QueryRowContext(ctx, `SELECT user_id FROM reviews WHERE id = ?`, reviewID).Scan(&userID)
	if dbx.IsNoRows(err) {
		return 0, ErrNotFound
	}
	return userID, err
}

func (r *SQLiteRepository) ListForRestaurant(ctx context.Context, restaurantID int64, p params.Pagination) ([]Review, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE restaurant_id = ?`, restaurantID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
        SELECT `+sqliteReviewColumns+`, u.name
        FROM reviews rv
        JOIN users u ON u.id = rv.user_id
        WHERE rv.restaurant_id = ?
        ORDER BY rv.created_at DESC, rv.id DESC
        LIMIT ? OFFSET ?
    `, restaurantID, p.Size, p.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		var rv Review
		if err := scanSQLiteReview(rows, &rv, &rv.UserName); err != nil {
			return nil, 0, err
		}
		out = append(out, rv)
	}
	return out, total, rows.Err()
}

func (r *SQLiteRepository) ListByAuthor(ctx context.Context, userID int64) ([]AuthoredReview, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT `+sqliteReviewColumns+`, u.name, rs.name
        FROM reviews rv
        JOIN users u ON u.id = rv.user_id
        JOIN restaurants rs ON rs.id = rv.restaurant_id
        WHERE rv.user_id = ?
        ORDER BY rv.created_at DESC, rv.id DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AuthoredReview
	for rows.Next() {
		var ar AuthoredReview
		if err := scanSQLiteReview(rows, &ar.Review, &ar.UserName, &ar.RestaurantName); err != nil {
			return nil, err
		}
		out = append(out, ar)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) Aggregate(ctx context.Context, restaurantID int64) (Aggregate, error) {
	var (
		count int
		avg   sql.NullFloat64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(id), AVG(rating) FROM reviews WHERE restaurant_id = ?`, restaurantID,
	).Scan(&count, &avg)
	if err != nil {
		return Aggregate{}, err
	}
	return NewAggregate(count, nullFloat(avg)), nil
}

func (r *SQLiteRepository) AggregateMany(ctx context.Context, restaurantIDs []int64) (map[int64]Aggregate, error) {
	out := make(map[int64]Aggregate, len(restaurantIDs))
	if len(restaurantIDs) == 0 {
		return out, nil
	}

	holders, args := inList(restaurantIDs)
	rows, err := r.db.QueryContext(ctx, `
        SELECT restaurant_id, COUNT(id), AVG(rating)
        FROM reviews
        WHERE restaurant_id IN (`+holders+`)
        GROUP BY restaurant_id
    `, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    int64
			count int
			avg   sql.NullFloat64
		)
		if err := rows.Scan(&id, &count, &avg); err != nil {
			return nil, err
		}
		out[id] = NewAggregate(count, nullFloat(avg))
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) RatingDistribution(ctx context.Context, restaurantIDs []int64) (map[int]int, error) {
	dist := emptyDistribution()
	if len(restaurantIDs) == 0 {
		return dist, nil
	}

	holders, args := inList(restaurantIDs)
	rows, err := r.db.QueryContext(ctx, `
        SELECT rating, COUNT(id)
        FROM reviews
        WHERE restaurant_id IN (`+holders+`)
        GROUP BY rating
    `, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, err
		}
		dist[rating] = count
	}
	return dist, rows.Err()
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func inList(ids []int64) (string, []any) {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return strings.TrimSuffix(strings.Repeat("?,", len(ids)), ","), args
}
