// Package server implements the HTTP API using the Echo framework.
//
// Routes: /api/v1 CRUD for users, images, models and assessments, plus
// observability endpoints (health, metrics, version) and the dataset reset.
// Handlers split by resource: handlers_users.go, handlers_images.go,
// handlers_models.go, handlers_assessments.go.
package server
