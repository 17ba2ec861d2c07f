//go:build !vstor_debug

package diag

import "testing"

func TestTraceCompiledOut(t *testing.T) {
	if TraceCompiled {
		t.Fatalf("TraceCompiled must be false without the vstor_debug tag")
	}
	f := newTestFacility(t, 16)
	f.SetFlags(TracePrintf | TraceBufVerify)
	f.Trace(TracePrintf, "never emitted %d", 1)
	if got := f.SnapshotMsgLog(); len(got) != 0 {
		t.Fatalf("disabled build must not emit traces, got %v", got)
	}
}

func TestLogMessageUnaffectedByCompileSwitch(t *testing.T) {
	f := newTestFacility(t, 16)
	f.LogMessage("always on")
	snap := f.SnapshotMsgLog()
	if len(snap) != 1 || snap[0].Msg != "always on" {
		t.Fatalf("LogMessage must work without the debug tag, got %v", snap)
	}
}
