// Package api provides the REST clients for the two upstream providers.
//
// Providers:
//   - fantasy: catalog snapshot, per-entity summaries, fixtures, league standings, picks
//   - analytics: league-wide team and player stats per season, per-player matches and shots
//
// Both share Client, which implements the rate-limit contract. A 429 suspends
// only the calling goroutine for the server's Retry-After (5s when absent),
// grows the wait on consecutive 429s, and gives up after a bounded number of
// re-issues with an error matching ErrRateLimited and ErrEntityUnavailable.
// Any other non-2xx response is an *APIError matching ErrEntityUnavailable.
package api
