// Package database provides the PostgreSQL connection pool used by the
// Postgres watchlist backend.
package database
