package domain

import (
	"bytes"
	"encoding/json"

	"shopfront-api/pkg/urlenc"
)

// PayFast field names, in the order the gateway signs them.
const (
	FieldMerchantID   = "merchant_id"
	FieldMerchantKey  = "merchant_key"
	FieldEmailAddress = "email_address"
	FieldAmount       = "amount"
	FieldItemName     = "item_name"
	FieldSignature    = "signature"
)

// EventPaymentSuccess is pushed to real-time subscribers after a payment
// has been initiated.
const EventPaymentSuccess = "paymentSuccess"

// Field is a single key/value of a payment request.
type Field struct {
	Key   string
	Value string
}

// Fields is an ordered field set. Order is significant for signing.
type Fields []Field

// With returns a copy of f with key=value appended.
func (f Fields) With(key, value string) Fields {
	out := make(Fields, len(f), len(f)+1)
	copy(out, f)
	return append(out, Field{Key: key, Value: value})
}

// Encode serializes the fields as an ordered form body. Empty values are
// kept.
func (f Fields) Encode() string {
	pairs := make([]urlenc.Pair, len(f))
	for i, field := range f {
		pairs[i] = urlenc.Pair{Key: field.Key, Value: field.Value}
	}
	return urlenc.Form(pairs)
}

// PaymentID is the gateway's response body, passed through untouched.
type PaymentID json.RawMessage

// NewPaymentID keeps a JSON body as-is and wraps anything else as a JSON
// string.
func NewPaymentID(body []byte) PaymentID {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && json.Valid(trimmed) {
		return PaymentID(append([]byte(nil), trimmed...))
	}
	quoted, _ := json.Marshal(string(body))
	return PaymentID(quoted)
}

// MarshalJSON implements json.Marshaler.
func (p PaymentID) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return p, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *PaymentID) UnmarshalJSON(data []byte) error {
	*p = append((*p)[:0], data...)
	return nil
}
