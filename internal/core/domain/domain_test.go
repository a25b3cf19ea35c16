package domain

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPresent(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, false},
		{"empty string", "", false},
		{"zero", float64(0), false},
		{"false", false, false},
		{"json zero", json.Number("0"), false},
		{"number", float64(4), true},
		{"string", "5", true},
		{"json number", json.Number("3.5"), true},
		{"true", true, true},
		{"object", map[string]any{"stars": 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPresent(tt.value))
		})
	}
}

func TestStringValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, ""},
		{"string", " 10.00 ", " 10.00 "},
		{"integral float", float64(10), "10"},
		{"fractional float", 199.99, "199.99"},
		{"negative zero", math.Copysign(0, -1), "0"},
		{"small plain", 1e-6, "0.000001"},
		{"large plain", 1e20, "100000000000000000000"},
		{"large exponent", 1e21, "1e+21"},
		{"large exponent fraction", 1.23e22, "1.23e+22"},
		{"small exponent", 1e-7, "1e-7"},
		{"small exponent fraction", -1.5e-7, "-1.5e-7"},
		{"tiny exponent", 5e-324, "5e-324"},
		{"json number", json.Number("25.50"), "25.50"},
		{"bool", true, "true"},
		{"int", 42, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StringValue(tt.value))
		})
	}
}

func TestReviewSnapshot_Reviews(t *testing.T) {
	snap := ReviewSnapshot{"p1": {{StarRating: float64(5)}}, "nil": nil}

	assert.Len(t, snap.Reviews("p1"), 1)
	assert.NotNil(t, snap.Reviews("missing"))
	assert.Empty(t, snap.Reviews("missing"))
	assert.NotNil(t, snap.Reviews("nil"))
}

func TestReviewDate_RoundTrip(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 30, 0, 123456789, time.FixedZone("X", 3600))

	s := FormatReviewDate(at)
	assert.Equal(t, "2024-05-01T08:30:00.123Z", s)

	parsed, err := ParseReviewDate(s)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(at.Truncate(time.Millisecond)))

	_, err = ParseReviewDate("2024-05-01T08:30:00+02:00")
	assert.NoError(t, err)
	_, err = ParseReviewDate("yesterday")
	assert.Error(t, err)
}

func TestReviewRecord_JSONShape(t *testing.T) {
	name := "Ann"
	rec := ReviewRecord{UserName: &name, StarRating: float64(4), Date: "2024-05-01T08:30:00.000Z"}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"userName":"Ann","starRating":4,"date":"2024-05-01T08:30:00.000Z"}`, string(data))
}

func TestFields_OrderedOperations(t *testing.T) {
	f := Fields{{Key: FieldMerchantID, Value: "1"}, {Key: FieldAmount, Value: "10.00"}}

	signed := f.With(FieldSignature, "abc")
	assert.Len(t, f, 2, "With must not mutate the receiver")
	assert.Equal(t, Field{Key: FieldSignature, Value: "abc"}, signed[2])

	assert.Equal(t, "merchant_id=1&amount=10.00&signature=abc", signed.Encode())
}

func TestNewPaymentID(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"json object", `{"uuid":"abc-123"}`, `{"uuid":"abc-123"}`},
		{"json with whitespace", "  {\"uuid\":\"x\"}\n", `{"uuid":"x"}`},
		{"plain text", "abc-123", `"abc-123"`},
		{"empty", "", `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := NewPaymentID([]byte(tt.body))
			data, err := json.Marshal(map[string]PaymentID{"paymentId": id})
			require.NoError(t, err)
			assert.JSONEq(t, `{"paymentId":`+tt.want+`}`, string(data))
		})
	}
}
