// Package watchlist keeps the set of favourite token symbols.
//
// The set is stored as a JSON array of symbols under a single key of a KV
// backend. SQLite is the default backend; Postgres and Redis serve shared
// deployments and MemoryKV serves tests. Backend failures are logged and
// never surface to callers of Watchlist: an unreadable store yields an empty
// set and a failed save keeps the in-memory change.
package watchlist
