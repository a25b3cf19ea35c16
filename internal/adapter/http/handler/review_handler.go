package handler

import (
	"shopfront-api/internal/adapter/http/dto"
	"shopfront-api/internal/core/ports"
	"shopfront-api/pkg/apperror"
	"shopfront-api/pkg/response"

	"github.com/gin-gonic/gin"
)

// ReviewHandler handles product review endpoints.
type ReviewHandler struct {
	reviewSvc ports.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewSvc ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewSvc: reviewSvc}
}

// List handles GET /reviews/:id.
func (h *ReviewHandler) List(c *gin.Context) {
	records, err := h.reviewSvc.Fetch(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, records)
}

// Create handles POST /reviews/:id.
func (h *ReviewHandler) Create(c *gin.Context) {
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, apperror.ErrStarRatingRequired()))
		return
	}

	record, err := h.reviewSvc.Append(c.Request.Context(), c.Param("id"), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}
