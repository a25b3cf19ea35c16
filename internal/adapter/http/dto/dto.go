package dto

import (
	"shopfront-api/internal/core/domain"
	"shopfront-api/internal/core/ports"
)

// ReviewRequest is the request body for POST /reviews/:id. Older clients
// send the product name as "ProductName"; both spellings are accepted.
type ReviewRequest struct {
	Text              *string `json:"text"`
	ProductName       *string `json:"productName"`
	LegacyProductName *string `json:"ProductName"`
	UserName          *string `json:"userName"`
	StarRating        any     `json:"starRating" binding:"present"`
}

// ToInput converts the body to the service input, preferring productName.
func (r ReviewRequest) ToInput() ports.ReviewInput {
	name := r.ProductName
	if name == nil {
		name = r.LegacyProductName
	}
	return ports.ReviewInput{
		UserName:    r.UserName,
		Text:        r.Text,
		ProductName: name,
		StarRating:  r.StarRating,
	}
}

// InitiatePaymentRequest is the request body for POST /initiate-payment.
// Values may arrive as strings or numbers.
type InitiatePaymentRequest struct {
	ProductName  any `json:"productName" binding:"present"`
	PaymentTotal any `json:"paymentTotal" binding:"present"`
	Email        any `json:"email" binding:"present"`
}

// InitiatePaymentResponse is the response body for a successful initiation.
type InitiatePaymentResponse struct {
	PaymentID domain.PaymentID `json:"paymentId"`
}
