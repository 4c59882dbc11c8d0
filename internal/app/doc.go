// Package app provides the application service layer.
//
// Orchestrates use cases: account uniqueness, cascading deletes, assessment
// scoring, dataset reset. Sits between HTTP handlers and the storage backend.
// Depends on domain interfaces, not concrete implementations.
package app
