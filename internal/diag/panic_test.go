package diag

import (
	"strings"
	"testing"

	logpkg "github.com/catalogicsoftware/vstor-zfs/pkg/log"
)

func newPanicFacility(t *testing.T) (*Facility, *[]string) {
	t.Helper()
	var aborts []string
	sink := logpkg.NewLogger(logpkg.WithOutput(logpkg.NullOutput{}))
	f := New(Options{
		Sink:  sink,
		Abort: func(msg string) { aborts = append(aborts, msg) },
	})
	f.InitMsgLog()
	return f, &aborts
}

func TestPanicRecoverContinuesWhenRecoverSet(t *testing.T) {
	f, aborts := newPanicFacility(t)
	f.SetRecover(true)
	f.PanicRecover("bad refcount %d on block %q", 3, "blk-9")
	if len(*aborts) != 0 {
		t.Fatalf("recover=true must not abort, got %v", *aborts)
	}
	snap := f.SnapshotMsgLog()
	if len(snap) != 1 {
		t.Fatalf("violation must be logged, got %d entries", len(snap))
	}
	if want := `bad refcount 3 on block "blk-9"`; snap[0].Msg != want {
		t.Fatalf("message: want %q got %q", want, snap[0].Msg)
	}
}

func TestPanicRecoverAbortsByDefault(t *testing.T) {
	f, aborts := newPanicFacility(t)
	f.PanicRecover("checksum mismatch at seq %d", 41)
	if len(*aborts) != 1 {
		t.Fatalf("recover=false must abort exactly once, got %v", *aborts)
	}
	if !strings.Contains((*aborts)[0], "checksum mismatch at seq 41") {
		t.Fatalf("abort message lost: %q", (*aborts)[0])
	}
	// the message was logged before the abort decision
	snap := f.SnapshotMsgLog()
	if len(snap) != 1 || !strings.Contains(snap[0].Msg, "checksum mismatch") {
		t.Fatalf("violation must be logged before abort, got %v", snap)
	}
}

func TestPanicRecoverLogsThroughSharedPath(t *testing.T) {
	f, _ := newPanicFacility(t)
	f.SetRecover(true)
	f.PanicRecover("shape check")
	snap := f.SnapshotMsgLog()
	if len(snap) != 1 {
		t.Fatalf("want one entry, got %d", len(snap))
	}
	if snap[0].File != "panic_test.go" || snap[0].Func != "TestPanicRecoverLogsThroughSharedPath" {
		t.Fatalf("call-site metadata wrong: %+v", snap[0])
	}
}
