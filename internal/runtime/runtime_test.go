package runtime

import (
	"context"
	"testing"

	cfgpkg "github.com/catalogicsoftware/vstor-zfs/internal/config"
	"github.com/catalogicsoftware/vstor-zfs/internal/diag"
	pebblestore "github.com/catalogicsoftware/vstor-zfs/internal/storage/pebble"
	logpkg "github.com/catalogicsoftware/vstor-zfs/pkg/log"
)

func testSink() logpkg.Logger {
	return logpkg.NewLogger(logpkg.WithOutput(logpkg.NullOutput{}))
}

func TestOpenCloseHealth(t *testing.T) {
	dir := t.TempDir()
	rt, err := Open(Options{
		DataDir: dir,
		Fsync:   pebblestore.FsyncModeAlways,
		Config:  cfgpkg.Default(),
		Sink:    testSink(),
	})
	if err != nil {
		t.Fatalf("open runtime: %v", err)
	}
	if err := rt.CheckHealth(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
	if err := rt.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestOpenAppliesDiagConfig(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.DebugFlagNames = []string{"modify", "free"}
	cfg.Recover = true
	cfg.MsgLogCapacity = 16

	rt, err := Open(Options{
		DataDir: t.TempDir(),
		Fsync:   pebblestore.FsyncModeNever,
		Config:  cfg,
		Sink:    testSink(),
	})
	if err != nil {
		t.Fatalf("open runtime: %v", err)
	}
	defer rt.Close()

	f := rt.Diag()
	if !f.FlagSet(diag.TraceModify) || !f.FlagSet(diag.TraceFree) {
		t.Fatalf("configured categories not set: %#x", f.Flags())
	}
	if f.FlagSet(diag.TraceTrim) {
		t.Fatalf("unconfigured category set")
	}
	if !f.RecoverEnabled() {
		t.Fatalf("recover policy not applied")
	}
	if f.MsgLogCapacity() != 16 {
		t.Fatalf("capacity %d want 16", f.MsgLogCapacity())
	}

	// the message log must be live after Open
	f.LogMessage("probe")
	if len(f.SnapshotMsgLog()) == 0 {
		t.Fatalf("message log not initialized by Open")
	}
}

func TestOpenRejectsBadFlagName(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.DebugFlagNames = []string{"no-such-category"}
	if _, err := Open(Options{DataDir: t.TempDir(), Config: cfg, Sink: testSink()}); err == nil {
		t.Fatalf("unknown category must fail Open")
	}
}

func TestOpenStoreAndPut(t *testing.T) {
	rt, err := Open(Options{
		DataDir: t.TempDir(),
		Fsync:   pebblestore.FsyncModeAlways,
		Config:  cfgpkg.Default(),
		Sink:    testSink(),
	})
	if err != nil {
		t.Fatalf("open runtime: %v", err)
	}
	defer rt.Close()

	st, err := rt.OpenStore("default")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	seq, err := st.Put(context.Background(), []byte("hello"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := st.Get(context.Background(), seq)
	if err != nil || string(got) != "hello" {
		t.Fatalf("get: %q %v", got, err)
	}
}

func TestCloseFinalizesMsgLog(t *testing.T) {
	rt, err := Open(Options{
		DataDir: t.TempDir(),
		Config:  cfgpkg.Default(),
		Sink:    testSink(),
	})
	if err != nil {
		t.Fatalf("open runtime: %v", err)
	}
	f := rt.Diag()
	if err := rt.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	f.LogMessage("after close")
	if n := len(f.SnapshotMsgLog()); n != 0 {
		t.Fatalf("message log accepted entries after Close: %d", n)
	}
}
