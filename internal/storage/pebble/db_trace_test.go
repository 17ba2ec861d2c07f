//go:build vstor_debug

package pebblestore

import (
	"testing"

	"github.com/catalogicsoftware/vstor-zfs/internal/diag"
)

func TestTraceLocatesOperation(t *testing.T) {
	db, f := newTestDB(t)
	f.SetFlags(diag.TracePrintf)

	if err := db.Set([]byte("k"), []byte("v")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := db.Get([]byte("k")); err != nil {
		t.Fatalf("get: %v", err)
	}

	var commitOK, getOK bool
	for _, e := range f.SnapshotMsgLog() {
		if e.File != "db.go" {
			continue
		}
		switch e.Func {
		case "CommitBatch":
			commitOK = true
		case "Get":
			getOK = true
		}
	}
	if !commitOK || !getOK {
		t.Fatalf("trace entries must locate the storage operation, got %v", f.SnapshotMsgLog())
	}
}
