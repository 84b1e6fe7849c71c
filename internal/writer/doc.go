// Package writer exports built datasets to PostgreSQL.
//
// Writers:
//   - Master writer: one row per entity, histories and rolling stats as JSONB
//   - Match writer: the analytics-to-fantasy correspondence table
//
// Both upsert with ON CONFLICT DO UPDATE so re-exporting a season replaces its rows.
package writer
