package domain

import "context"

// Store bundles the per-resource repositories behind a single backend.
// The in-memory implementation is used for single-instance mode.
// The Redis implementation enables shared state across instances.
type Store interface {
	Users() UserRepository
	Images() ImageRepository
	Models() ModelRepository
	Assessments() AssessmentRepository
	Quality() QualityRepository

	// Ping verifies the backend is reachable. Used by readiness checks.
	Ping(ctx context.Context) error

	// Reset drops every record in every repository.
	Reset(ctx context.Context) error
}
