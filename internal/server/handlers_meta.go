package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleIndex(c echo.Context) error {
	endpoints := map[string][]string{
		"users": {
			"GET /api/v1/users", "GET /api/v1/users/{id}", "POST /api/v1/users",
			"PUT /api/v1/users/{id}", "DELETE /api/v1/users/{id}",
		},
		"images": {
			"GET /api/v1/images", "GET /api/v1/images/{id}", "POST /api/v1/images",
			"PUT /api/v1/images/{id}", "DELETE /api/v1/images/{id}",
			"GET /api/v1/images/{id}/assessments",
		},
		"models": {
			"GET /api/v1/models", "GET /api/v1/models/{id}", "POST /api/v1/models",
			"PUT /api/v1/models/{id}", "DELETE /api/v1/models/{id}",
		},
		"assessments": {
			"GET /api/v1/assessments", "GET /api/v1/assessments/{id}", "POST /api/v1/assessments",
			"PUT /api/v1/assessments/{id}", "DELETE /api/v1/assessments/{id}",
			"GET /api/v1/assessments/{id}/quality",
		},
	}

	total := 0
	for _, group := range endpoints {
		total += len(group)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message":               "GSD Assessment API",
		"version":               "1.0.0",
		"total_endpoints":       total,
		"documentation":         "https://github.com/t0sssik/gsd-ci-cd#readme",
		"endpoints_by_category": endpoints,
	})
}

func (s *Server) handleReset(c echo.Context) error {
	if err := s.app.Reset(c.Request().Context()); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "All data reset successfully"})
}
