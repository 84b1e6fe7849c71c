// Package metrics provides Prometheus metrics for pipeline runs.
//
// Key metrics:
//   - Provider requests by status and their latency
//   - Rate-limit retries per provider
//   - Entity exclusions by cause
//   - Match outcomes and cache outcomes
//   - Last run duration and dataset sizes
//
// Runs are batch jobs, so metrics are written to a node-exporter textfile at
// the end of a run rather than served.
package metrics
