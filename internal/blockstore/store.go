package blockstore

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/cockroachdb/pebble"

	"github.com/catalogicsoftware/vstor-zfs/internal/diag"
	pebblestore "github.com/catalogicsoftware/vstor-zfs/internal/storage/pebble"
)

var (
	// ErrNotFound reports a block that is not present.
	ErrNotFound = errors.New("block not found")
	// ErrChecksum reports a block whose stored checksum does not match.
	// Returned only when the recover policy is enabled; otherwise the
	// mismatch aborts through the diag facility.
	ErrChecksum = errors.New("block checksum mismatch")
)

var storeNameRe = regexp.MustCompile(`^[a-z0-9-_]{1,64}$`)

// Store is an append-addressed, checksummed block store. Blocks are assigned
// increasing sequence numbers; reads verify the stored checksum.
type Store struct {
	db   *pebblestore.DB
	diag *diag.Facility
	name string

	mu      sync.Mutex
	lastSeq uint64
}

// Open initializes a Store and loads the last sequence from metadata (if any).
func Open(db *pebblestore.DB, d *diag.Facility, name string) (*Store, error) {
	if !storeNameRe.MatchString(name) {
		d.Trace(diag.TraceNameVerify, "rejecting store name %q", name)
		return nil, fmt.Errorf("blockstore: invalid store name %q", name)
	}
	d.Trace(diag.TraceNameVerify, "store name %q ok", name)

	s := &Store{db: db, diag: d, name: name}
	meta, err := db.Get(KeyMeta(name))
	if err == nil && len(meta) >= 8 {
		s.lastSeq = binary.BigEndian.Uint64(meta[:8])
		d.Trace(diag.TraceNodeVerify, "store %q meta ok lastSeq=%d", name, s.lastSeq)
	}
	return s, nil
}

// setError traces error-return sites and passes err through.
func (s *Store) setError(err error) error {
	s.diag.Trace(diag.TraceSetError, "store %q: %v", s.name, err)
	return err
}

// Put appends one block and returns its assigned sequence number.
func (s *Store) Put(ctx context.Context, payload []byte) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.db.NewBatch()
	defer b.Close()

	seq := s.lastSeq + 1
	if err := b.Set(KeyBlock(s.name, seq), EncodeBlock(payload), nil); err != nil {
		return 0, s.setError(err)
	}
	var meta [8]byte
	binary.BigEndian.PutUint64(meta[:], seq)
	if err := b.Set(KeyMeta(s.name), meta[:], nil); err != nil {
		return 0, s.setError(err)
	}
	if err := s.db.CommitBatch(ctx, b); err != nil {
		return 0, s.setError(err)
	}
	s.lastSeq = seq
	s.diag.Trace(diag.TraceModify, "put block %d len=%d in %q", seq, len(payload), s.name)
	return seq, nil
}

// Get reads one block and verifies its checksum. A mismatch is an invariant
// violation: it is routed through the facility's panic/recover policy, and
// with recover enabled the call returns ErrChecksum so the caller can treat
// the block as errored rather than trust corrupt data.
func (s *Store) Get(ctx context.Context, seq uint64) ([]byte, error) {
	val, err := s.db.Get(KeyBlock(s.name, seq))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, s.setError(ErrNotFound)
		}
		return nil, s.setError(err)
	}
	payload, ok := DecodeBlock(val)
	if !ok {
		s.diag.PanicRecover("checksum mismatch on block %d in %q", seq, s.name)
		return nil, s.setError(ErrChecksum)
	}
	s.diag.Trace(diag.TraceBufVerify, "verified block %d len=%d in %q", seq, len(payload), s.name)
	return payload, nil
}

// Free deletes one block. When the delete hits a storage I/O error the
// free-leak policy decides the outcome: leak the block (log and report
// success, avoiding riskier cleanup) or surface the error as a bug.
func (s *Store) Free(ctx context.Context, seq uint64) error {
	key := KeyBlock(s.name, seq)
	if err := s.db.Delete(key); err != nil {
		if s.diag.FreeLeakOnIOError() {
			s.diag.LogMessage("leaking block %d in %q after I/O error: %v", seq, s.name, err)
			return nil
		}
		return s.setError(err)
	}
	s.diag.Trace(diag.TraceFree, "freed block %d in %q", seq, s.name)
	return nil
}

// Relocate moves a block to a fresh sequence number at the tail and vacates
// the old address, all in one batch. Callers use it when the old address must
// be given up (compaction, a failing region) without losing the block.
func (s *Store) Relocate(ctx context.Context, seq uint64) (uint64, error) {
	payload, err := s.Get(ctx, seq)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.db.NewBatch()
	defer b.Close()

	newSeq := s.lastSeq + 1
	if err := b.Set(KeyBlock(s.name, newSeq), EncodeBlock(payload), nil); err != nil {
		return 0, s.setError(err)
	}
	var meta [8]byte
	binary.BigEndian.PutUint64(meta[:], newSeq)
	if err := b.Set(KeyMeta(s.name), meta[:], nil); err != nil {
		return 0, s.setError(err)
	}
	if err := b.Delete(KeyBlock(s.name, seq), nil); err != nil {
		return 0, s.setError(err)
	}
	if err := s.db.CommitBatch(ctx, b); err != nil {
		return 0, s.setError(err)
	}
	s.lastSeq = newSeq
	s.diag.Trace(diag.TraceIndirectRemap, "remapped block %d to %d in %q", seq, newSeq, s.name)
	return newSeq, nil
}

// ScrubResult summarizes one Scrub pass.
type ScrubResult struct {
	Scanned int
	Bad     int
}

// Scrub walks every block verifying checksums. Bad blocks are recorded in
// the debug message log and counted; the walk continues so one corrupt block
// does not hide others.
func (s *Store) Scrub(ctx context.Context) (ScrubResult, error) {
	low := KeyBlock(s.name, 0)
	hi := KeyBlock(s.name, ^uint64(0))
	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: low, UpperBound: append(hi, 0x00)})
	if err != nil {
		return ScrubResult{}, s.setError(err)
	}
	defer iter.Close()

	var res ScrubResult
	for ok := iter.First(); ok; ok = iter.Next() {
		res.Scanned++
		seq := binary.BigEndian.Uint64(iter.Key()[len(low)-8:])
		if _, okDec := DecodeBlock(iter.Value()); !okDec {
			res.Bad++
			s.diag.LogMessage("scrub: bad checksum on block %d in %q", seq, s.name)
			continue
		}
		s.diag.Trace(diag.TraceAllocVerify, "scrub ok block %d in %q", seq, s.name)
	}
	s.diag.Trace(diag.TraceHistogram, "scrub %q scanned=%d bad=%d", s.name, res.Scanned, res.Bad)
	return res, nil
}

// Trim deletes blocks with sequence < belowSeq. Deletes are committed in
// batches of up to batchLimit keys. Returns the number of deleted blocks.
func (s *Store) Trim(ctx context.Context, belowSeq uint64, batchLimit int) (int, error) {
	if batchLimit <= 0 {
		batchLimit = 1024
	}

	low := KeyBlock(s.name, 0)
	hi := KeyBlock(s.name, belowSeq)
	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: low, UpperBound: hi})
	if err != nil {
		return 0, s.setError(err)
	}
	defer iter.Close()

	deleted := 0
	for ok := iter.First(); ok; {
		b := s.db.NewBatch()
		n := 0
		for ok && n < batchLimit {
			if err := b.Delete(iter.Key(), nil); err != nil {
				b.Close()
				return deleted, s.setError(err)
			}
			n++
			deleted++
			ok = iter.Next()
		}
		if err := s.db.CommitBatch(ctx, b); err != nil {
			b.Close()
			return deleted, s.setError(err)
		}
		b.Close()
	}
	s.diag.Trace(diag.TraceTrim, "trimmed %d blocks below %d in %q", deleted, belowSeq, s.name)
	return deleted, nil
}

// LastSeq returns the most recently assigned sequence number.
func (s *Store) LastSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeq
}
