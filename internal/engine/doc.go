// Package engine builds the per-run datasets from provider payloads.
//
// The engine:
//   - Fans out one summary request per catalog entity, bounded by a semaphore
//   - Waits for every request before folding (full-barrier join)
//   - Re-associates results with entity ids, never by completion order
//   - Folds each series into a master record with rolling aggregates
//   - Excludes entities whose fetch or fold fails, logging id and cause
//
// Partial success is the normal terminal state. Only a cancelled run context
// turns into an error, so a truncated dataset is never cached.
package engine
