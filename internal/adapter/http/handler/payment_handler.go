package handler

import (
	"shopfront-api/internal/adapter/http/dto"
	"shopfront-api/internal/core/domain"
	"shopfront-api/internal/core/ports"
	"shopfront-api/pkg/apperror"
	"shopfront-api/pkg/response"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment initiation.
type PaymentHandler struct {
	paymentSvc ports.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentSvc ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

// Initiate handles POST /initiate-payment.
func (h *PaymentHandler) Initiate(c *gin.Context) {
	var req dto.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, apperror.ErrPaymentFieldsRequired()))
		return
	}

	paymentID, err := h.paymentSvc.Initiate(c.Request.Context(), ports.InitiatePaymentRequest{
		ProductName: domain.StringValue(req.ProductName),
		Amount:      domain.StringValue(req.PaymentTotal),
		Email:       domain.StringValue(req.Email),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.InitiatePaymentResponse{PaymentID: paymentID})
}
