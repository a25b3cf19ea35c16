package domain

import (
	"time"
)

// ReviewDateLayout is ISO-8601 in UTC with millisecond precision,
// e.g. 2024-05-01T09:30:00.000Z.
const ReviewDateLayout = "2006-01-02T15:04:05.000Z"

// ReviewRecord is one customer review of a product. Records are never
// updated or deleted once stored.
type ReviewRecord struct {
	UserName    *string `json:"userName,omitempty"`
	Text        *string `json:"text,omitempty"`
	ProductName *string `json:"ProductName,omitempty"`
	// StarRating is kept exactly as the client sent it (number or string).
	StarRating any    `json:"starRating"`
	Date       string `json:"date"`
}

// ReviewSnapshot is the whole review store: product id -> reviews in
// insertion order.
type ReviewSnapshot map[string][]ReviewRecord

// Reviews returns the sequence stored for productID, never nil.
func (s ReviewSnapshot) Reviews(productID string) []ReviewRecord {
	if records, ok := s[productID]; ok && records != nil {
		return records
	}
	return []ReviewRecord{}
}

// FormatReviewDate renders t in ReviewDateLayout.
func FormatReviewDate(t time.Time) string {
	return t.UTC().Format(ReviewDateLayout)
}

// ParseReviewDate parses a date written by FormatReviewDate. Any RFC 3339
// timestamp is accepted as well.
func ParseReviewDate(s string) (time.Time, error) {
	if t, err := time.Parse(ReviewDateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
