// Package catalog implements the shared token catalog store.
//
// A Store is constructed once and handed to every consumer. It owns the
// catalog, filter state, pagination cursor, fetch status and market stats,
// and is their single writer:
//   - Refresh replaces the catalog from page 0 and refreshes market stats
//   - LoadMore appends the next page, skipping symbols already held
//   - UpdateFilters merges a filter patch and refreshes
//   - ResetFilters restores default filters and the cursor
//
// Every Refresh starts a new generation and cancels the request in flight;
// responses from an older generation are discarded, so overlapping calls
// never interleave their data.
package catalog
