package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shopfront-api/internal/core/domain"
)

const reviewsSchema = `CREATE TABLE IF NOT EXISTS reviews (
	id           BIGSERIAL PRIMARY KEY,
	product_id   TEXT NOT NULL,
	user_name    TEXT,
	body         TEXT,
	product_name TEXT,
	star_rating  JSONB NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL
)`

const reviewsIndex = `CREATE INDEX IF NOT EXISTS idx_reviews_product_id ON reviews (product_id, id)`

// ReviewRepo implements ports.ReviewRepository on PostgreSQL.
type ReviewRepo struct {
	pool Pool
}

// NewReviewRepo creates a new ReviewRepo.
func NewReviewRepo(pool Pool) *ReviewRepo {
	return &ReviewRepo{pool: pool}
}

// Migrate creates the reviews table if it does not exist.
func (r *ReviewRepo) Migrate(ctx context.Context) error {
	for _, stmt := range []string{reviewsSchema, reviewsIndex} {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate reviews: %w", err)
		}
	}
	return nil
}

// Append inserts a review row for productID.
func (r *ReviewRepo) Append(ctx context.Context, productID string, record domain.ReviewRecord) (domain.ReviewRecord, error) {
	rating, err := json.Marshal(record.StarRating)
	if err != nil {
		return domain.ReviewRecord{}, fmt.Errorf("encoding star rating: %w", err)
	}
	createdAt, err := domain.ParseReviewDate(record.Date)
	if err != nil {
		return domain.ReviewRecord{}, fmt.Errorf("parsing review date: %w", err)
	}

	query := `INSERT INTO reviews (product_id, user_name, body, product_name, star_rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.pool.Exec(ctx, query,
		productID, record.UserName, record.Text, record.ProductName, rating, createdAt,
	)
	if err != nil {
		return domain.ReviewRecord{}, fmt.Errorf("insert review: %w", err)
	}
	return record, nil
}

// Fetch returns productID's reviews oldest first.
func (r *ReviewRepo) Fetch(ctx context.Context, productID string) ([]domain.ReviewRecord, error) {
	query := `SELECT user_name, body, product_name, star_rating, created_at
		FROM reviews WHERE product_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	records := []domain.ReviewRecord{}
	for rows.Next() {
		var (
			rec    domain.ReviewRecord
			rating []byte
			t      time.Time
		)
		if err := rows.Scan(&rec.UserName, &rec.Text, &rec.ProductName, &rating, &t); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		if err := json.Unmarshal(rating, &rec.StarRating); err != nil {
			return nil, fmt.Errorf("decoding star rating: %w", err)
		}
		rec.Date = domain.FormatReviewDate(t)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reviews: %w", err)
	}
	return records, nil
}
