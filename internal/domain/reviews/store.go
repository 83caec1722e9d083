package reviews

import (
	"context"

	"dinefinder/internal/infra/dbx"
	"dinefinder/internal/params"
)

type Store interface {
	// Create inserts review and fills its id and timestamps. The unique
	// (user_id, restaurant_id) constraint surfaces as ErrDuplicate.
	Create(ctx context.Context, review *Review) error
	// UpdateIfAuthor writes the supplied fields only when userID wrote the
	// review. It returns ErrNotFound when no row matched.
	UpdateIfAuthor(ctx context.Context, in UpdateInput) (*Review, error)
	DeleteIfAuthor(ctx context.Context, reviewID, userID int64) (bool, error)
	AuthorOf(ctx context.Context, reviewID int64) (int64, error)
	ListForRestaurant(ctx context.Context, restaurantID int64, p params.Pagination) ([]Review, int, error)
	ListByAuthor(ctx context.Context, userID int64) ([]AuthoredReview, error)
	Aggregate(ctx context.Context, restaurantID int64) (Aggregate, error)
	AggregateMany(ctx context.Context, restaurantIDs []int64) (map[int64]Aggregate, error)
	RatingDistribution(ctx context.Context, restaurantIDs []int64) (map[int]int, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) Store {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, review *Review) error {
	query := `
        INSERT INTO reviews (restaurant_id, user_id, rating, comment)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at
    `
	err := r.db.QueryRow(ctx, query,
		review.RestaurantID,
		review.UserID,
		review.Rating,
		review.Comment,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
	switch {
	case dbx.IsUniqueViolation(err):
		return ErrDuplicate
	case dbx.IsForeignKeyViolation(err):
		return ErrRestaurantMissing
	}
	return err
}

func (r *Repository) UpdateIfAuthor(ctx context.Context, in UpdateInput) (*Review, error) {
	query := `
        UPDATE reviews
        SET rating = COALESCE($3, rating),
            comment = COALESCE($4, comment),
            updated_at = NOW()
        WHERE id = $1 AND user_id = $2
        RETURNING id, restaurant_id, user_id, rating, comment, created_at, updated_at
    `
	var rv Review
	err := r.db.QueryRow(ctx, query, in.ReviewID, in.UserID, in.Rating, in.Comment).Scan(
		&rv.ID, &rv.RestaurantID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt,
	)
	if err != nil {
		if dbx.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rv, nil
}

func (r *Repository) DeleteIfAuthor(ctx context.Context, reviewID, userID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1 AND user_id = $2`, reviewID, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) AuthorOf(ctx context.Context, reviewID int64) (int64, error) {
	var userID int64
	err := r.db.QueryRow(ctx, `SELECT user_id FROM reviews WHERE id = $1`, reviewID).Scan(&userID)
	if dbx.IsNoRows(err) {
		return 0, ErrNotFound
	}
	return userID, err
}

func (r *Repository) ListForRestaurant(ctx context.Context, restaurantID int64, p params.Pagination) ([]Review, int, error) {
	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM reviews WHERE restaurant_id = $1`, restaurantID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
        SELECT rv.id, rv.restaurant_id, rv.user_id, rv.rating, rv.comment,
               rv.created_at, rv.updated_at, u.name
        FROM reviews rv
        JOIN users u ON u.id = rv.user_id
        WHERE rv.restaurant_id = $1
        ORDER BY rv.created_at DESC, rv.id DESC
        LIMIT $2 OFFSET $3
    `
	rows, err := r.db.Query(ctx, query, restaurantID, p.Size, p.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		var rv Review
		if err := rows.Scan(
			&rv.ID, &rv.RestaurantID, &rv.UserID, &rv.Rating, &rv.Comment,
			&rv.CreatedAt, &rv.UpdatedAt, &rv.UserName,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, rv)
	}
	return out, total, rows.Err()
}

func (r *Repository) ListByAuthor(ctx context.Context, userID int64) ([]AuthoredReview, error) {
	query := `
        SELECT rv.id, rv.restaurant_id, rv.user_id, rv.rating, rv.comment,
               rv.created_at, rv.updated_at, u.name, rs.name
        FROM reviews rv
        JOIN users u ON u.id = rv.user_id
        JOIN restaurants rs ON rs.id = rv.restaurant_id
        WHERE rv.user_id = $1
        ORDER BY rv.created_at DESC, rv.id DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AuthoredReview
	for rows.Next() {
		var ar AuthoredReview
		if err := rows.Scan(
			&ar.ID, &ar.RestaurantID, &ar.UserID, &ar.Rating, &ar.Comment,
			&ar.CreatedAt, &ar.UpdatedAt, &ar.UserName, &ar.RestaurantName,
		); err != nil {
			return nil, err
		}
		out = append(out, ar)
	}
	return out, rows.Err()
}

func (r *Repository) Aggregate(ctx context.Context, restaurantID int64) (Aggregate, error) {
	query := `
        SELECT COUNT(id), AVG(rating)::float8
        FROM reviews
        WHERE restaurant_id = $1
    `
	var (
		count int
		avg   *float64
	)
	if err := r.db.QueryRow(ctx, query, restaurantID).Scan(&count, &avg); err != nil {
		return Aggregate{}, err
	}
	return NewAggregate(count, avg), nil
}

func (r *Repository) AggregateMany(ctx context.Context, restaurantIDs []int64) (map[int64]Aggregate, error) {
	out := make(map[int64]Aggregate, len(restaurantIDs))
	if len(restaurantIDs) == 0 {
		return out, nil
	}

	query := `
        SELECT restaurant_id, COUNT(id), AVG(rating)::float8
        FROM reviews
        WHERE restaurant_id = ANY($1)
        GROUP BY restaurant_id
    `
	rows, err := r.db.Query(ctx, query, restaurantIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    int64
			count int
			avg   *float64
		)
		if err := rows.Scan(&id, &count, &avg); err != nil {
			return nil, err
		}
		out[id] = NewAggregate(count, avg)
	}
	return out, rows.Err()
}

func (r *Repository) RatingDistribution(ctx context.Context, restaurantIDs []int64) (map[int]int, error) {
	dist := emptyDistribution()
	if len(restaurantIDs) == 0 {
		return dist, nil
	}

	rows, err := r.db.Query(ctx, `
        SELECT rating, COUNT(id)
        FROM reviews
        WHERE restaurant_id = ANY($1)
        GROUP BY rating
    `, restaurantIDs)
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

func emptyDistribution() map[int]int {
	dist := make(map[int]int, MaxRating)
	for i := MinRating; i <= MaxRating; i++ {
		dist[i] = 0
	}
	return dist
}
