package server

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/t0sssik/gsd-ci-cd/internal/domain"
	apperrors "github.com/t0sssik/gsd-ci-cd/internal/errors"
)

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int, error) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, apperrors.Validation("invalid id").WithField("id", raw)
	}
	return id, nil
}

// domainError translates domain errors into structured HTTP errors.
// Anything unrecognized falls through as an internal error.
func domainError(err error) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return apperrors.NotFound("user not found")
	case errors.Is(err, domain.ErrImageNotFound):
		return apperrors.NotFound("image not found")
	case errors.Is(err, domain.ErrModelNotFound):
		return apperrors.NotFound("model not found")
	case errors.Is(err, domain.ErrAssessmentNotFound):
		return apperrors.NotFound("assessment not found")
	case errors.Is(err, domain.ErrQualityNotFound):
		return apperrors.NotFound("quality metrics not found")
	case errors.Is(err, domain.ErrEmailTaken):
		return apperrors.Validation("email already registered")
	case errors.Is(err, domain.ErrUsernameTaken):
		return apperrors.Validation("username already taken")
	default:
		return err
	}
}

// messageResponse is the body returned by delete and reset operations.
type messageResponse struct {
	Message string `json:"message"`
}
