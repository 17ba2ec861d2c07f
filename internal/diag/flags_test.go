package diag

import "testing"

func TestCategoryBitsAreStable(t *testing.T) {
	want := map[string]uint64{
		"printf":           1 << 0,
		"buf-verify":       1 << 1,
		"node-verify":      1 << 2,
		"name-verify":      1 << 3,
		"modify":           1 << 4,
		"free":             1 << 6,
		"histogram-verify": 1 << 7,
		"alloc-verify":     1 << 8,
		"set-error":        1 << 9,
		"indirect-remap":   1 << 10,
		"trim":             1 << 11,
	}
	for name, bit := range want {
		got, ok := CategoryByName(name)
		if !ok {
			t.Fatalf("category %q missing", name)
		}
		if got != bit {
			t.Fatalf("category %q: bit moved from %#x to %#x", name, bit, got)
		}
	}
	// bit 5 is retired and must stay unassigned
	for name := range want {
		if bit, _ := CategoryByName(name); bit == 1<<5 {
			t.Fatalf("category %q reuses retired bit 5", name)
		}
	}
	if len(CategoryNames()) != len(want) {
		t.Fatalf("unexpected category count %d", len(CategoryNames()))
	}
}

func TestFlagBitsIndependent(t *testing.T) {
	f := newTestFacility(t, 4)
	f.SetFlags(TraceBufVerify | TraceTrim)
	if !f.FlagSet(TraceBufVerify) || !f.FlagSet(TraceTrim) {
		t.Fatalf("set bits not observed")
	}
	if f.FlagSet(TraceFree) || f.FlagSet(TracePrintf) {
		t.Fatalf("unset bits observed as set")
	}
	// unknown bits are stored but inert
	f.SetFlags(1 << 40)
	if f.Flags() != 1<<40 {
		t.Fatalf("unknown bits must be stored verbatim")
	}
}

func TestPolicyTogglesIndependent(t *testing.T) {
	f := newTestFacility(t, 4)
	if f.RecoverEnabled() {
		t.Fatalf("recover must default off")
	}
	if !f.MsgLogEnabled() {
		t.Fatalf("message log must default enabled")
	}
	f.SetRecover(true)
	f.SetFreeLeakOnIOError(true)
	if !f.RecoverEnabled() || !f.FreeLeakOnIOError() {
		t.Fatalf("policy writes not observed")
	}
	f.SetRecover(false)
	if f.RecoverEnabled() {
		t.Fatalf("recover write-back not observed")
	}
	if !f.FreeLeakOnIOError() {
		t.Fatalf("policy axes must be independent")
	}
}
