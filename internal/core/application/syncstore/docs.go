// Package syncstore implements the synchronization core of the engine: the
// sole owner of the client-side cached order set.
//
// The store reconciles three inputs into one canonical view:
//   - request/response calls against the remote order gateway
//   - optimistic local mutations, rolled back on gateway failure
//   - push events, treated as invalidation signals that force a fetch
//
// Key guarantees:
//   - a failed fetch never destroys the last good cache
//   - a stale in-flight fetch response never overwrites newer data
//     (sequence-numbered fetches, latest issued wins)
//   - at most one optimistic mutation is in flight per order id
//   - a failed mutation restores the exact pre-mutation snapshot
//   - while the push channel is connected the TTL is bypassed; while
//     disconnected a fetch is forced after five minutes
//
// All other components receive deep-copied snapshots; only the store mutates
// the set.
package syncstore
