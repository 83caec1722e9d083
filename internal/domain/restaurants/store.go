package restaurants

import (
	"context"
	"fmt"
	"strings"

	"dinefinder/internal/domain/reviews"
	"dinefinder/internal/infra/dbx"
	"dinefinder/internal/params"
)

type Store interface {
	Create(ctx context.Context, r *Restaurant) error
	GetByID(ctx context.Context, id int64) (*Restaurant, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, f ListFilter, p params.Pagination) ([]Summary, int, error)
	Summaries(ctx context.Context, ids []int64) (map[int64]Summary, error)
	ListByCreator(ctx context.Context, userID int64) ([]Summary, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Summary, error)
	// ClaimIfUnclaimed sets claimed_by_owner_id only while it is NULL, in one
	// statement. ErrNoMatch means the row is missing or already claimed.
	ClaimIfUnclaimed(ctx context.Context, id, ownerID int64) (*Restaurant, error)
	// UpdateIfOwned applies patch only when ownerID holds the claim.
	UpdateIfOwned(ctx context.Context, id, ownerID int64, patch Patch) (*Restaurant, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) Store {
	return &Repository{db: db}
}

const restaurantColumns = `r.id, r.name, r.cuisine_type, r.description, r.address, r.city, r.pricing_tier,
       r.created_by_user_id, r.claimed_by_owner_id, r.created_at, r.updated_at`

const summarySelect = `
        SELECT ` + restaurantColumns + `,
               COALESCE(s.review_count, 0), s.average_rating
        FROM restaurants r
        LEFT JOIN (
            SELECT restaurant_id, COUNT(id) AS review_count, AVG(rating)::float8 AS average_rating
            FROM reviews
            GROUP BY restaurant_id
        ) s ON s.restaurant_id = r.id`

type scanner interface {
	Scan(dest ...any) error
}

func scanRestaurant(row scanner, r *Restaurant, extra ...any) error {
	dest := append([]any{
		&r.ID, &r.Name, &r.CuisineType, &r.Description, &r.Address, &r.City, &r.PricingTier,
		&r.CreatedByUserID, &r.ClaimedByOwnerID, &r.CreatedAt, &r.UpdatedAt,
	}, extra...)
	return row.Scan(dest...)
}

func scanSummary(row scanner) (Summary, error) {
	var (
		s     Summary
		count int
		avg   *float64
	)
	if err := scanRestaurant(row, &s.Restaurant, &count, &avg); err != nil {
		return Summary{}, err
	}
	s.Aggregate = reviews.NewAggregate(count, avg)
	return s, nil
}

func (r *Repository) Create(ctx context.Context, rest *Restaurant) error {
	query := `
        INSERT INTO restaurants (name, cuisine_type, description, address, city, pricing_tier,
                                 created_by_user_id, claimed_by_owner_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at
    `
	return r.db.QueryRow(ctx, query,
		rest.Name, rest.CuisineType, rest.Description, rest.Address, rest.City, rest.PricingTier,
		rest.CreatedByUserID, rest.ClaimedByOwnerID,
	).Scan(&rest.ID, &rest.CreatedAt, &rest.UpdatedAt)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Restaurant, error) {
	var rest Restaurant
	err := scanRestaurant(r.db.QueryRow(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants r WHERE r.id = $1`, id), &rest)
	if err != nil {
		if dbx.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rest, nil
}

func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM restaurants WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// filterClause renders f as a WHERE clause. placeholder returns the marker
// for the n-th argument.
func filterClause(f ListFilter, placeholder func(n int) string) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if city := strings.TrimSpace(f.City); city != "" {
		args = append(args, city)
		conds = append(conds, "LOWER(r.city) = LOWER("+placeholder(len(args))+")")
	}
	if cuisine := strings.TrimSpace(f.CuisineType); cuisine != "" {
		args = append(args, cuisine)
		conds = append(conds, "LOWER(r.cuisine_type) = LOWER("+placeholder(len(args))+")")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func orderClause(sort string) string {
	switch sort {
	case SortNewest:
		return " ORDER BY r.created_at DESC, r.id DESC"
	case SortName:
		return " ORDER BY r.name ASC, r.id ASC"
	default:
		return " ORDER BY s.average_rating DESC NULLS LAST, COALESCE(s.review_count, 0) DESC, r.id DESC"
	}
}

func pgPlaceholder(n int) string { return fmt.Sprintf("$%d", n) }

func (r *Repository) List(ctx context.Context, f ListFilter, p params.Pagination) ([]Summary, int, error) {
	where, args := filterClause(f, pgPlaceholder)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM restaurants r`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := summarySelect + where + orderClause(f.Sort) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, p.Size, p.Offset)

	out, err := r.querySummaries(ctx, query, args...)
	return out, total, err
}

func (r *Repository) Summaries(ctx context.Context, ids []int64) (map[int64]Summary, error) {
	out := make(map[int64]Summary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	list, err := r.querySummaries(ctx, summarySelect+` WHERE r.id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	for _, s := range list {
		out[s.ID] = s
	}
	return out, nil
}

func (r *Repository) ListByCreator(ctx context.Context, userID int64) ([]Summary, error) {
	return r.querySummaries(ctx,
		summarySelect+` WHERE r.created_by_user_id = $1 ORDER BY r.created_at DESC, r.id DESC`, userID)
}

func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]Summary, error) {
	return r.querySummaries(ctx,
		summarySelect+` WHERE r.claimed_by_owner_id = $1 ORDER BY r.name ASC, r.id ASC`, ownerID)
}

func (r *Repository) querySummaries(ctx context.Context, query string, args ...any) ([]Summary, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) ClaimIfUnclaimed(ctx context.Context, id, ownerID int64) (*Restaurant, error) {
	query := `
        UPDATE restaurants r
        SET claimed_by_owner_id = $2, updated_at = NOW()
        WHERE r.id = $1 AND r.claimed_by_owner_id IS NULL
        RETURNING ` + restaurantColumns

	var rest Restaurant
	if err := scanRestaurant(r.db.QueryRow(ctx, query, id, ownerID), &rest); err != nil {
		if dbx.IsNoRows(err) {
			return nil, ErrNoMatch
		}
		return nil, err
	}
	return &rest, nil
}

func (r *Repository) UpdateIfOwned(ctx context.Context, id, ownerID int64, patch Patch) (*Restaurant, error) {
	query := `
        UPDATE restaurants r
        SET name = COALESCE($3, r.name),
            cuisine_type = COALESCE($4, r.cuisine_type),
            description = COALESCE($5, r.description),
            address = COALESCE($6, r.address),
            city = COALESCE($7, r.city),
            pricing_tier = COALESCE($8, r.pricing_tier),
            updated_at = NOW()
        WHERE r.id = $1 AND r.claimed_by_owner_id = $2
        RETURNING ` + restaurantColumns

	var rest Restaurant
	err := scanRestaurant(r.db.QueryRow(ctx, query, id, ownerID,
		patch.Name, patch.CuisineType, patch.Description, patch.Address, patch.City, patch.PricingTier,
	), &rest)
	if err != nil {
		if dbx.IsNoRows(err) {
			return nil, ErrNoMatch
		}
		return nil, err
	}
	return &rest, nil
}
