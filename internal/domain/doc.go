// Package domain defines the core domain types and interfaces.
//
// This package contains concept-oriented files (user.go, image.go, model.go,
// assessment.go, quality.go) with shared types and the repository contracts.
// No implementation code - just contracts. Prevents circular imports by keeping
// interfaces on the consumer side.
package domain
