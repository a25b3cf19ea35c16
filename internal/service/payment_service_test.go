package service

import (
	"context"
	"errors"
	"testing"

	"shopfront-api/internal/core/domain"
	"shopfront-api/internal/core/ports"
	"shopfront-api/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type paymentTestDeps struct {
	svc         *PaymentServiceImpl
	gateway     *mocks.MockPaymentGateway
	broadcaster *mocks.MockBroadcaster
}

func setupPaymentService(t *testing.T, passphrase string) *paymentTestDeps {
	ctrl := gomock.NewController(t)
	d := &paymentTestDeps{
		gateway:     mocks.NewMockPaymentGateway(ctrl),
		broadcaster: mocks.NewMockBroadcaster(ctrl),
	}
	d.svc = NewPaymentService(
		NewMD5SignatureService(passphrase),
		d.gateway,
		d.broadcaster,
		MerchantCredentials{MerchantID: "10000100", MerchantKey: "46f0cd694581a", UsePassphrase: passphrase != ""},
		zerolog.Nop(),
	)
	return d
}

func validPaymentRequest() ports.InitiatePaymentRequest {
	return ports.InitiatePaymentRequest{
		ProductName: "Blue Mug",
		Amount:      "100.00",
		Email:       "buyer@example.com",
	}
}

func TestPaymentService_Initiate_Success(t *testing.T) {
	d := setupPaymentService(t, "jt7NOE43FZPn")
	ctx := context.Background()

	expectedFields := payfastFields().With(domain.FieldSignature, "e9d7624d98bcb36c16b6b327182ac4f2")
	paymentID := domain.NewPaymentID([]byte(`{"uuid":"pf-123"}`))

	gomock.InOrder(
		d.gateway.EXPECT().Submit(ctx, expectedFields).Return(paymentID, nil),
		d.broadcaster.EXPECT().Broadcast(domain.EventPaymentSuccess),
	)
	d.broadcaster.EXPECT().Count().Return(2)

	got, err := d.svc.Initiate(ctx, validPaymentRequest())
	require.NoError(t, err)
	assert.JSONEq(t, `{"uuid":"pf-123"}`, string(got))
}

func TestPaymentService_Initiate_WithoutPassphrase(t *testing.T) {
	d := setupPaymentService(t, "")
	ctx := context.Background()

	expectedFields := payfastFields().With(domain.FieldSignature, "622d34dec18790e481b782c3fd77bfaa")
	d.gateway.EXPECT().Submit(ctx, expectedFields).Return(domain.NewPaymentID([]byte("abc")), nil)
	d.broadcaster.EXPECT().Broadcast(domain.EventPaymentSuccess)
	d.broadcaster.EXPECT().Count().Return(0)

	got, err := d.svc.Initiate(ctx, validPaymentRequest())
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, string(got))
}

func TestPaymentService_Initiate_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *ports.InitiatePaymentRequest)
	}{
		{"product name", func(r *ports.InitiatePaymentRequest) { r.ProductName = "" }},
		{"amount", func(r *ports.InitiatePaymentRequest) { r.Amount = "" }},
		{"email", func(r *ports.InitiatePaymentRequest) { r.Email = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No gateway or broadcaster expectations: nothing may be sent.
			d := setupPaymentService(t, "p")
			req := validPaymentRequest()
			tt.mutate(&req)

			got, err := d.svc.Initiate(context.Background(), req)
			assert.Nil(t, got)
			assertAppError(t, err, "VAL_001")
		})
	}
}

func TestPaymentService_Initiate_GatewayError(t *testing.T) {
	d := setupPaymentService(t, "p")
	ctx := context.Background()

	d.gateway.EXPECT().Submit(ctx, gomock.Any()).Return(nil, errors.New("payfast: unexpected status 400"))
	// Broadcast must not be called on failure.

	got, err := d.svc.Initiate(ctx, validPaymentRequest())
	assert.Nil(t, got)
	assertAppError(t, err, "PAY_001")
	assert.Contains(t, err.Error(), "unexpected status 400")
}
