// Package poller implements periodic catalog refresh.
//
// The Poller:
//   - Refreshes the catalog every 5 minutes, matching the backend cache lifetime
//   - Bounds each refresh with a timeout
//   - Accepts on-demand refresh triggers between ticks
package poller
