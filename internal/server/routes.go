package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health", s.handleLiveness)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// API index
	s.echo.GET("/", s.handleIndex)

	api := s.echo.Group("/api/v1")

	// Users
	api.GET("/users", s.handleListUsers)
	api.GET("/users/:id", s.handleGetUser)
	api.POST("/users", s.handleCreateUser)
	api.PUT("/users/:id", s.handleUpdateUser)
	api.DELETE("/users/:id", s.handleDeleteUser)

	// Images
	api.GET("/images", s.handleListImages)
	api.GET("/images/:id", s.handleGetImage)
	api.POST("/images", s.handleCreateImage)
	api.PUT("/images/:id", s.handleUpdateImage)
	api.DELETE("/images/:id", s.handleDeleteImage)
	api.GET("/images/:id/assessments", s.handleListImageAssessments)

	// Models
	api.GET("/models", s.handleListModels)
	api.GET("/models/:id", s.handleGetModel)
	api.POST("/models", s.handleCreateModel)
	api.PUT("/models/:id", s.handleUpdateModel)
	api.DELETE("/models/:id", s.handleDeleteModel)

	// Assessments
	api.GET("/assessments", s.handleListAssessments)
	api.GET("/assessments/:id", s.handleGetAssessment)
	api.POST("/assessments", s.handleCreateAssessment)
	api.PUT("/assessments/:id", s.handleUpdateAssessment)
	api.DELETE("/assessments/:id", s.handleDeleteAssessment)
	api.GET("/assessments/:id/quality", s.handleGetAssessmentQuality)

	// Test support
	api.POST("/reset", s.handleReset)
}
