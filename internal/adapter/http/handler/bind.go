package handler

import (
	"errors"
	"io"
	"net/http"

	"shopfront-api/internal/adapter/http/dto"
	"shopfront-api/pkg/apperror"
)

// bindError maps a ShouldBindJSON failure to the response clients expect.
// An empty body counts as a body with every field missing.
func bindError(err error, missing *apperror.AppError) *apperror.AppError {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return apperror.ErrPayloadTooLarge()
	case errors.Is(err, io.EOF), len(dto.MissingFields(err)) > 0:
		return missing
	default:
		return apperror.ErrInvalidBody(err)
	}
}
