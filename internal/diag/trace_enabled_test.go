//go:build vstor_debug

package diag

import (
	"bytes"
	"strings"
	"testing"

	logpkg "github.com/catalogicsoftware/vstor-zfs/pkg/log"
)

func newTraceFacility(t *testing.T) (*Facility, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	// default level on purpose: trace visibility must not depend on the
	// operator also lowering the sink threshold
	sink := logpkg.NewLogger(
		logpkg.WithFormatter(&logpkg.TextFormatter{DisableTimestamp: true, DisableCaller: true}),
		logpkg.WithOutput(logpkg.NewWriterOutput(&buf)),
	)
	f := New(Options{Sink: sink, MsgLogCapacity: 32})
	f.InitMsgLog()
	return f, &buf
}

func TestTraceVisibleAtDefaultSinkLevel(t *testing.T) {
	var buf bytes.Buffer
	sink := logpkg.NewLogger(
		logpkg.WithFormatter(&logpkg.TextFormatter{}),
		logpkg.WithOutput(logpkg.NewWriterOutput(&buf)),
	)
	f := New(Options{Sink: sink, MsgLogCapacity: 8})
	f.InitMsgLog()
	f.SetFlags(TracePrintf)
	f.Trace(TracePrintf, "visible without level tuning")
	if !strings.Contains(buf.String(), "visible without level tuning") {
		t.Fatalf("enabled trace must reach an info-level sink, sink saw: %q", buf.String())
	}
}

func TestTraceGatedByCategoryBit(t *testing.T) {
	if !TraceCompiled {
		t.Fatalf("TraceCompiled must be true under the vstor_debug tag")
	}
	f, _ := newTraceFacility(t)
	f.SetFlags(TraceFree)
	f.Trace(TraceBufVerify, "wrong category")
	if got := f.SnapshotMsgLog(); len(got) != 0 {
		t.Fatalf("unset category must not emit, got %v", got)
	}
	f.Trace(TraceFree, "freeing block %d", 7)
	snap := f.SnapshotMsgLog()
	if len(snap) != 1 || snap[0].Msg != "freeing block 7" {
		t.Fatalf("set category must emit, got %v", snap)
	}
}

func TestTraceWritesDirectOutput(t *testing.T) {
	f, buf := newTraceFacility(t)
	f.SetFlags(TracePrintf)
	f.Trace(TracePrintf, "direct line")
	if !strings.Contains(buf.String(), "direct line") {
		t.Fatalf("trace must reach the sink synchronously: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "file=trace_enabled_test.go") {
		t.Fatalf("direct output must carry call-site metadata: %q", buf.String())
	}
}

func TestLogMessageIsBufferOnly(t *testing.T) {
	f, buf := newTraceFacility(t)
	f.LogMessage("quiet")
	if strings.Contains(buf.String(), "quiet") {
		t.Fatalf("LogMessage must not write to the sink: %q", buf.String())
	}
	if snap := f.SnapshotMsgLog(); len(snap) != 1 {
		t.Fatalf("LogMessage must append, got %v", snap)
	}
}

func TestTraceAppendsEvenWhenStillDisabledLog(t *testing.T) {
	f, buf := newTraceFacility(t)
	f.SetFlags(TracePrintf)
	f.SetMsgLogEnable(false)
	f.Trace(TracePrintf, "sink only")
	if got := f.SnapshotMsgLog(); len(got) != 0 {
		t.Fatalf("disabled log must drop the buffered copy, got %v", got)
	}
	if !strings.Contains(buf.String(), "sink only") {
		t.Fatalf("direct output must still reach the sink: %q", buf.String())
	}
}
