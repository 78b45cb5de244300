// Package limits enforces server-side daily usage quotas per client and
// tool. Quotas are an opt-in deployment feature: with no configured
// limits the tracker admits every request.
//
// Counters are keyed by (client, tool, day) where day is the UTC date,
// so a new day starts a fresh budget even before the scheduled reset
// prunes stale rows. Two stores are provided: an in-memory map for
// single-instance ephemeral deployments and a SQLite store for
// persistence across restarts.
package limits
