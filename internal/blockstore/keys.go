package blockstore

import "encoding/binary"

// Keyspace helpers for Pebble keys.
//
// Layout (byte-wise, lexicographically sortable):
// - blk/{store}/m
// - blk/{store}/e/{seq_be8}

var (
	blkPrefix  = []byte("blk/")
	metaSuffix = []byte("/m")
	entrySeg   = []byte("/e/")
)

func appendBE8(dst []byte, v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return append(dst, b[:]...)
}

// KeyMeta builds the store metadata key.
func KeyMeta(store string) []byte {
	k := make([]byte, 0, len(store)+8)
	k = append(k, blkPrefix...)
	k = append(k, store...)
	k = append(k, metaSuffix...)
	return k
}

// KeyBlock builds the block key with a big-endian sequence for proper ordering.
func KeyBlock(store string, seq uint64) []byte {
	k := make([]byte, 0, len(store)+16)
	k = append(k, blkPrefix...)
	k = append(k, store...)
	k = append(k, entrySeg...)
	k = appendBE8(k, seq)
	return k
}
