// Package api provides the AlphaAgent backend REST client.
//
// Endpoints (relative to the configured base URL, default http://localhost:8080/api):
//   - GET  /tokens?limit&offset&<filters>  paginated, optionally filtered token list
//   - GET  /tokens/{id}                    full token detail
//   - GET  /market/stats                   global market snapshot
//   - POST /analyze                        AI analysis of a reduced token payload
//
// Every list and analysis response carries a status field; anything other
// than "success" is reported as a *StatusError.
package api
