package diag

import (
	"time"

	"github.com/eapache/queue"
)

// Entry is one retained diagnostic message. Immutable once appended.
type Entry struct {
	Seq  uint64
	File string
	Func string
	Line int
	Msg  string
	Time time.Time
}

// InitMsgLog transitions the message log to the active state with an empty
// ring. Calling it while already active is a no-op; calling it after
// FiniMsgLog starts a fresh, empty log.
func (f *Facility) InitMsgLog() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == logActive {
		return
	}
	f.ring = queue.New()
	f.seq = 0
	f.state = logActive
}

// FiniMsgLog releases all retained entries and stops accepting writes.
// Calling it while not active is a no-op.
func (f *Facility) FiniMsgLog() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != logActive {
		return
	}
	f.ring = nil
	f.state = logFinalized
}

// ClearMsgLog empties the ring without changing the lifecycle state.
func (f *Facility) ClearMsgLog() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != logActive {
		return
	}
	f.ring = queue.New()
}

// appendEntry inserts a formatted message at the tail, evicting the oldest
// entry when the ring is at capacity. It silently drops the message when the
// log is not active or the enable flag is off. Never returns an error: the
// append path must not be able to fail visibly to the caller.
func (f *Facility) appendEntry(file, fn string, line int, msg string) {
	if !f.msgLogEnable.Load() {
		return
	}
	now := time.Now()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != logActive {
		return
	}
	f.seq++
	f.ring.Add(Entry{Seq: f.seq, File: file, Func: fn, Line: line, Msg: msg, Time: now})
	if f.ring.Length() > f.capacity {
		f.ring.Remove()
	}
}

// SnapshotMsgLog returns a copy of the retained entries, oldest first.
// It never mutates the log. An inactive log yields nil.
func (f *Facility) SnapshotMsgLog() []Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != logActive || f.ring.Length() == 0 {
		return nil
	}
	out := make([]Entry, 0, f.ring.Length())
	for i := 0; i < f.ring.Length(); i++ {
		out = append(out, f.ring.Get(i).(Entry))
	}
	return out
}

// MsgLogCapacity returns the fixed capacity chosen at construction.
func (f *Facility) MsgLogCapacity() int { return f.capacity }
