// Package memory provides the in-memory storage backend.
//
// All records live in mutex-guarded maps owned by a single Store. Ids are
// per-resource monotonic counters, so ids are never reused after a delete.
// This is the default backend; it matches the ephemeral, resettable dataset
// the reset endpoint expects.
package memory
