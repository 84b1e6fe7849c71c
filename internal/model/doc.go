// Package model defines shared data types used across the fantasy data pipeline.
//
// Types fall into three groups:
//   - Catalog: the per-run snapshot of entities, teams and gameweeks (immutable for a run)
//   - Master: per-entity folded histories and derived rolling aggregates
//   - Match: the correspondence table between the two providers' entity ids
//
// Conventions:
//   - IDs: int, as issued by the provider that owns the entity
//   - Times: time.Time in UTC
//   - Raw per-period fields: tagged Value scalars, never bare interface{}
package model
