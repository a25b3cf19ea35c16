package service

import (
	"context"

	"shopfront-api/internal/core/domain"
	"shopfront-api/internal/core/ports"
	"shopfront-api/pkg/apperror"

	"github.com/rs/zerolog"
)

// MerchantCredentials identify the shop to PayFast.
type MerchantCredentials struct {
	MerchantID    string
	MerchantKey   string
	UsePassphrase bool
}

// PaymentServiceImpl implements ports.PaymentService.
type PaymentServiceImpl struct {
	sigSvc      ports.SignatureService
	gateway     ports.PaymentGateway
	broadcaster ports.Broadcaster
	merchant    MerchantCredentials
	log         zerolog.Logger
}

// NewPaymentService creates a new PaymentServiceImpl.
func NewPaymentService(
	sigSvc ports.SignatureService,
	gateway ports.PaymentGateway,
	broadcaster ports.Broadcaster,
	merchant MerchantCredentials,
	log zerolog.Logger,
) *PaymentServiceImpl {
	return &PaymentServiceImpl{
		sigSvc:      sigSvc,
		gateway:     gateway,
		broadcaster: broadcaster,
		merchant:    merchant,
		log:         log,
	}
}

// Initiate signs the payment request, submits it once and, on success,
// notifies real-time subscribers before handing back the gateway's answer.
func (s *PaymentServiceImpl) Initiate(ctx context.Context, req ports.InitiatePaymentRequest) (domain.PaymentID, error) {
	if req.ProductName == "" || req.Amount == "" || req.Email == "" {
		return nil, apperror.ErrPaymentFieldsRequired()
	}

	fields := s.buildFields(req)
	fields = fields.With(domain.FieldSignature, s.sigSvc.Sign(fields, s.merchant.UsePassphrase))

	paymentID, err := s.gateway.Submit(ctx, fields)
	if err != nil {
		s.log.Error().Err(err).Str("item_name", req.ProductName).Msg("payment initiation failed")
		return nil, asAppError(err, apperror.ErrGateway)
	}

	s.broadcaster.Broadcast(domain.EventPaymentSuccess)

	s.log.Info().
		Str("item_name", req.ProductName).
		Str("amount", req.Amount).
		Int("subscribers", s.broadcaster.Count()).
		Msg("payment initiated")

	return paymentID, nil
}

func (s *PaymentServiceImpl) buildFields(req ports.InitiatePaymentRequest) domain.Fields {
	return domain.Fields{
		{Key: domain.FieldMerchantID, Value: s.merchant.MerchantID},
		{Key: domain.FieldMerchantKey, Value: s.merchant.MerchantKey},
		{Key: domain.FieldEmailAddress, Value: req.Email},
		{Key: domain.FieldAmount, Value: req.Amount},
		{Key: domain.FieldItemName, Value: req.ProductName},
	}
}
