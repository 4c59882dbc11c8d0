package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/t0sssik/gsd-ci-cd/internal/app"
	"github.com/t0sssik/gsd-ci-cd/internal/domain"
	apperrors "github.com/t0sssik/gsd-ci-cd/internal/errors"
)

type createModelRequest struct {
	ModelName    string   `json:"model_name"`
	Version      string   `json:"version"`
	Architecture *string  `json:"architecture"`
	Accuracy     *float64 `json:"accuracy"`
	IsActive     *bool    `json:"is_active"`
}

type updateModelRequest struct {
	ModelName *string `json:"model_name"`
	IsActive  *bool   `json:"is_active"`
}

func (s *Server) handleListModels(c echo.Context) error {
	models, err := s.app.ListModels(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, models)
}

func (s *Server) handleGetModel(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	model, err := s.app.GetModel(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, model)
}

func (s *Server) handleCreateModel(c echo.Context) error {
	var req createModelRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}

	if req.ModelName == "" {
		return apperrors.Validation("model_name is required")
	}
	if req.Version == "" {
		return apperrors.Validation("version is required")
	}

	reg := app.ModelRegistration{
		ModelName:    req.ModelName,
		Version:      req.Version,
		Architecture: domain.DefaultArchitecture,
		Accuracy:     domain.DefaultModelAccuracy,
		IsActive:     true,
	}
	if req.Architecture != nil {
		reg.Architecture = *req.Architecture
	}
	if req.Accuracy != nil {
		reg.Accuracy = *req.Accuracy
	}
	if req.IsActive != nil {
		reg.IsActive = *req.IsActive
	}

	model, err := s.app.CreateModel(c.Request().Context(), reg)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, model)
}

func (s *Server) handleUpdateModel(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateModelRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}

	model, err := s.app.UpdateModel(c.Request().Context(), id, app.ModelUpdate{
		ModelName: req.ModelName,
		IsActive:  req.IsActive,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, model)
}

func (s *Server) handleDeleteModel(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	model, err := s.app.DeleteModel(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Model '%s' deleted successfully", model.ModelName),
	})
}
