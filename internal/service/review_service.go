package service

import (
	"context"
	"errors"
	"time"

	"shopfront-api/internal/core/domain"
	"shopfront-api/internal/core/ports"
	"shopfront-api/pkg/apperror"

	"github.com/rs/zerolog"
)

// ReviewServiceImpl implements ports.ReviewService.
type ReviewServiceImpl struct {
	repo ports.ReviewRepository
	now  func() time.Time
	log  zerolog.Logger
}

// NewReviewService creates a new ReviewServiceImpl.
func NewReviewService(repo ports.ReviewRepository, log zerolog.Logger) *ReviewServiceImpl {
	return &ReviewServiceImpl{
		repo: repo,
		now:  time.Now,
		log:  log,
	}
}

// Fetch returns the reviews of productID, or an empty slice when it has none.
func (s *ReviewServiceImpl) Fetch(ctx context.Context, productID string) ([]domain.ReviewRecord, error) {
	records, err := s.repo.Fetch(ctx, productID)
	if err != nil {
		s.log.Error().Err(err).Str("product_id", productID).Msg("fetching reviews failed")
		return nil, asAppError(err, apperror.ErrStoreUnavailable)
	}
	if records == nil {
		records = []domain.ReviewRecord{}
	}
	return records, nil
}

// Append validates the input, stamps the creation date and stores the record.
// Nothing is written when validation fails.
func (s *ReviewServiceImpl) Append(ctx context.Context, productID string, input ports.ReviewInput) (*domain.ReviewRecord, error) {
	if !domain.IsPresent(input.StarRating) {
		return nil, apperror.ErrStarRatingRequired()
	}

	record := domain.ReviewRecord{
		UserName:    input.UserName,
		Text:        input.Text,
		ProductName: input.ProductName,
		StarRating:  input.StarRating,
		Date:        domain.FormatReviewDate(s.now()),
	}

	stored, err := s.repo.Append(ctx, productID, record)
	if err != nil {
		s.log.Error().Err(err).Str("product_id", productID).Msg("persisting review failed")
		return nil, asAppError(err, apperror.ErrPersistence)
	}

	s.log.Debug().Str("product_id", productID).Msg("review stored")
	return &stored, nil
}

// asAppError keeps an existing *AppError and wraps anything else with wrap.
func asAppError(err error, wrap func(error) *apperror.AppError) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return wrap(err)
}
