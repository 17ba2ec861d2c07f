// Package blockstore implements vstor's checksummed block store on Pebble.
//
// # Overview
//
// Blocks are framed varint length | payload | crc32c and addressed by an
// increasing per-store sequence number:
//   - blk/{store}/m           (store metadata: lastSeq)
//   - blk/{store}/e/{seq_be8} (blocks)
//
// Every operation is instrumented through the diag facility: puts trace
// under the modify category, verified reads under buf-verify, frees under
// free, scrubs under alloc-verify/histogram-verify, and trims under trim.
// A checksum mismatch on read is an invariant violation and goes through
// diag.PanicRecover: it aborts the process unless the recover policy is
// enabled, in which case the read returns ErrChecksum. Frees that hit a
// storage I/O error consult the free-leak policy to decide between leaking
// the block and surfacing the error.
package blockstore
