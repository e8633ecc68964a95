// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - Backend fetch counts, failures and latencies per operation
//   - Fetches discarded after being superseded
//   - Catalog size and favourites count
package metrics
