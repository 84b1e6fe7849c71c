// Package database connects to the optional PostgreSQL export target.
//
// The export target holds two tables:
//   - master_records: one row per (season, entity), histories as JSONB
//   - player_matches: the analytics-to-fantasy correspondence table
//
// Rows are replaced on every export; the local cache stays the source of truth.
package database
