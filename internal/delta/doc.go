// Package delta creates, applies and compacts patches between two versions
// of a player snapshot.
//
// A patch is a list of RFC 6902 style operations addressed by RFC 6901 JSON
// pointers over the JSON encoding of [models.Snapshot]. Volatile fields
// (timestamps, version, integrity hash, repair metadata, diagnostic logs)
// are never diffed; Apply recomputes them instead.
//
// [History] keeps a bounded window of recent deltas per user so that a tier
// holding an older full snapshot can be brought forward by replaying them.
package delta
