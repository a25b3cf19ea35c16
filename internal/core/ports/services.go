package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"

	"shopfront-api/internal/core/domain"
)

// SignatureService signs outgoing PayFast field sets.
type SignatureService interface {
	Sign(fields domain.Fields, usePassphrase bool) string
}

// PaymentGateway submits a signed field set to the hosted payment provider.
type PaymentGateway interface {
	Submit(ctx context.Context, fields domain.Fields) (domain.PaymentID, error)
}

// Broadcaster fans an event out to every connected real-time subscriber.
type Broadcaster interface {
	Broadcast(event string)
	Count() int
}

// --- Service Ports (Business Logic) ---

// ReviewService validates and stores product reviews.
type ReviewService interface {
	Fetch(ctx context.Context, productID string) ([]domain.ReviewRecord, error)
	Append(ctx context.Context, productID string, input ReviewInput) (*domain.ReviewRecord, error)
}

// ReviewInput is a review as submitted by a client.
type ReviewInput struct {
	UserName    *string
	Text        *string
	ProductName *string
	StarRating  any
}

// PaymentService initiates hosted payments.
type PaymentService interface {
	Initiate(ctx context.Context, req InitiatePaymentRequest) (domain.PaymentID, error)
}

// InitiatePaymentRequest holds the client's payment input, already coerced
// to strings.
type InitiatePaymentRequest struct {
	ProductName string
	Amount      string
	Email       string
}
