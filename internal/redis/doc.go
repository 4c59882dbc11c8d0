// Package redis provides the Redis-backed storage backend.
//
// Each resource lives in a hash keyed by record id with JSON-encoded values;
// id assignment uses an INCR counter per resource. Selected when REDIS_URL is
// configured, letting multiple instances share one dataset.
//
// Every client carries two hooks: MetricsHook records per-command metrics and
// CircuitBreakerHook sheds load during an outage, serving recent record reads
// from a local cache while the breaker is open.
package redis
