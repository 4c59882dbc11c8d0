package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/t0sssik/gsd-ci-cd/internal/app"
	apperrors "github.com/t0sssik/gsd-ci-cd/internal/errors"
)

type createAssessmentRequest struct {
	ImageID int `json:"image_id"`
	ModelID int `json:"model_id"`
}

type updateAssessmentRequest struct {
	GSDValue        *float64 `json:"gsd_value"`
	ConfidenceScore *float64 `json:"confidence_score"`
}

func (s *Server) handleListAssessments(c echo.Context) error {
	assessments, err := s.app.ListAssessments(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, assessments)
}

func (s *Server) handleGetAssessment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	assessment, err := s.app.GetAssessment(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, assessment)
}

func (s *Server) handleCreateAssessment(c echo.Context) error {
	var req createAssessmentRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}

	if req.ImageID < 1 {
		return apperrors.Validation("image_id is required")
	}
	if req.ModelID < 1 {
		return apperrors.Validation("model_id is required")
	}

	assessment, err := s.app.CreateAssessment(c.Request().Context(), req.ImageID, req.ModelID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, assessment)
}

func (s *Server) handleUpdateAssessment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateAssessmentRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}

	assessment, err := s.app.UpdateAssessment(c.Request().Context(), id, app.AssessmentUpdate{
		GSDValue:        req.GSDValue,
		ConfidenceScore: req.ConfidenceScore,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, assessment)
}

func (s *Server) handleDeleteAssessment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	assessment, err := s.app.DeleteAssessment(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Assessment for image %d deleted successfully", assessment.ImageID),
	})
}

func (s *Server) handleGetAssessmentQuality(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	quality, err := s.app.GetAssessmentQuality(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, quality)
}
