package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"

	"shopfront-api/internal/core/domain"
)

// ReviewRepository persists reviews keyed by product id.
// Fetch of an unknown product returns an empty slice, not an error.
type ReviewRepository interface {
	Fetch(ctx context.Context, productID string) ([]domain.ReviewRecord, error)
	Append(ctx context.Context, productID string, record domain.ReviewRecord) (domain.ReviewRecord, error)
}
