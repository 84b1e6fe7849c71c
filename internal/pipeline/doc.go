// Package pipeline wires one run: provider clients, aggregation engine,
// artifact cache, entity matcher, metrics and the run ledger.
//
// A Runtime is built once per process invocation and passed to every step.
// Each step reads its artifact from the cache and only touches the network
// when the artifact is absent or a refresh is forced:
//   - Catalog: roster snapshot and season span (always fetched)
//   - Master: fpl/<span>/players/master
//   - Teams: fpl/<span>/teams/master
//   - Matches: understat/<span>/players/matches
//   - Detail: understat/<span>/players/detail
//   - League: fpl/<span>/leagues/<league>_gw<gw>
package pipeline
