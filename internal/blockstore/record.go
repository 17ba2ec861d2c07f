package blockstore

import (
	"encoding/binary"
	"hash/crc32"
)

// Block encoding: varint payloadLen | payload | crc32c(payload)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// EncodeBlock frames payload with its length and a trailing checksum.
func EncodeBlock(payload []byte) []byte {
	out := make([]byte, 0, 10+len(payload)+4)
	var tmp [10]byte
	n := binary.PutUvarint(tmp[:], uint64(len(payload)))
	out = append(out, tmp[:n]...)
	out = append(out, payload...)

	crc := crc32.Update(0, castagnoli, payload)
	var crcb [4]byte
	binary.BigEndian.PutUint32(crcb[:], crc)
	out = append(out, crcb[:]...)
	return out
}

// DecodeBlock unframes b and verifies the checksum. The returned payload is
// a copy. ok is false on any framing or checksum failure.
func DecodeBlock(b []byte) (payload []byte, ok bool) {
	if len(b) < 1+4 {
		return nil, false
	}
	plen, n := binary.Uvarint(b)
	if n <= 0 {
		return nil, false
	}
	if int(n)+int(plen)+4 != len(b) {
		return nil, false
	}
	payload = b[n : n+int(plen)]
	expect := binary.BigEndian.Uint32(b[len(b)-4:])
	if crc32.Update(0, castagnoli, payload) != expect {
		return nil, false
	}
	return append([]byte(nil), payload...), true
}
