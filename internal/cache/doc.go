// Package cache persists build artifacts as JSON files on disk.
//
// Layout:
//
//	<root>/<provider>/<season span>/<category>/<name>.json
//
// The season span is part of every key, so artifacts built for "2023" are
// never read or overwritten by a run whose span is "2023-2024".
//
// Policy:
//   - GetOrBuild reuses an existing artifact verbatim unless force is set
//   - Writes go to a temp file in the same directory and are renamed into place
//   - Any read or write failure wraps ErrCacheIO and is fatal to the caller
package cache
