// Package model defines shared data types used across the alpha-agent client.
//
// Conventions:
//   - Symbols are the catalog key and are compared case-sensitively as returned by the backend
//   - Optional market figures are *float64; nil means the backend did not report the field
//   - Timestamps are time.Time in UTC
package model
