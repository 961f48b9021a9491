// Package querycache deduplicates and caches keyed reads against the
// fleet API. Entries are addressed by a deterministic key (resource path
// plus stable-sorted filter parameters), served without network while
// younger than the staleness window, refetched on demand once stale, and
// invalidated as a family whenever a mutation touches their base resource
// path.
//
// Two stores back the cache: an in-process map (default) and Redis, for
// sharing fetched pages between operator shells on one workstation.
package querycache
