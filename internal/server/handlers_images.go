package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/t0sssik/gsd-ci-cd/internal/app"
	"github.com/t0sssik/gsd-ci-cd/internal/domain"
	apperrors "github.com/t0sssik/gsd-ci-cd/internal/errors"
)

type createImageRequest struct {
	UserID   int     `json:"user_id"`
	Filename string  `json:"filename"`
	FileSize int64   `json:"file_size"`
	Width    *int    `json:"width"`
	Height   *int    `json:"height"`
	Format   *string `json:"format"`
}

type updateImageRequest struct {
	Filename *string             `json:"filename"`
	Status   *domain.ImageStatus `json:"status"`
}

func (s *Server) handleListImages(c echo.Context) error {
	images, err := s.app.ListImages(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, images)
}

func (s *Server) handleGetImage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	image, err := s.app.GetImage(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, image)
}

func (s *Server) handleCreateImage(c echo.Context) error {
	var req createImageRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}

	if req.Filename == "" {
		return apperrors.Validation("filename is required")
	}
	if req.FileSize <= 0 {
		return apperrors.Validation("file_size must be positive")
	}

	upload := app.ImageUpload{
		UserID:   req.UserID,
		Filename: req.Filename,
		FileSize: req.FileSize,
		Width:    domain.DefaultImageWidth,
		Height:   domain.DefaultImageHeight,
		Format:   domain.DefaultImageFormat,
	}
	if req.Width != nil {
		upload.Width = *req.Width
	}
	if req.Height != nil {
		upload.Height = *req.Height
	}
	if req.Format != nil {
		upload.Format = *req.Format
	}

	image, err := s.app.CreateImage(c.Request().Context(), upload)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, image)
}

func (s *Server) handleUpdateImage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateImageRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}

	if req.Status != nil && !req.Status.Valid() {
		return apperrors.Validation("invalid status").WithField("status", string(*req.Status))
	}

	image, err := s.app.UpdateImage(c.Request().Context(), id, app.ImageUpdate{
		Filename: req.Filename,
		Status:   req.Status,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, image)
}

func (s *Server) handleDeleteImage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	image, err := s.app.DeleteImage(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Image '%s' deleted successfully", image.Filename),
	})
}

func (s *Server) handleListImageAssessments(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	assessments, err := s.app.ListImageAssessments(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, assessments)
}
