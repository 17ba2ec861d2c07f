package diag

// Trace categories. Each constant is one bit in the facility's category
// bitmask; any subset may be enabled at once. Bit positions are stable
// identifiers: a retired category's bit must not be reused.
const (
	// TracePrintf enables general-purpose trace output.
	TracePrintf uint64 = 1 << 0
	// TraceBufVerify enables buffer verification tracing.
	TraceBufVerify uint64 = 1 << 1
	// TraceNodeVerify enables node verification tracing.
	TraceNodeVerify uint64 = 1 << 2
	// TraceNameVerify enables name verification tracing.
	TraceNameVerify uint64 = 1 << 3
	// TraceModify enables modification tracing.
	TraceModify uint64 = 1 << 4

	// bit 5 retired; do not reuse

	// TraceFree enables free-path tracing.
	TraceFree uint64 = 1 << 6
	// TraceHistogram enables histogram verification tracing.
	TraceHistogram uint64 = 1 << 7
	// TraceAllocVerify enables allocator verification tracing.
	TraceAllocVerify uint64 = 1 << 8
	// TraceSetError enables tracing of error-return sites.
	TraceSetError uint64 = 1 << 9
	// TraceIndirectRemap enables indirect remap tracing.
	TraceIndirectRemap uint64 = 1 << 10
	// TraceTrim enables trim tracing.
	TraceTrim uint64 = 1 << 11
)

var categoryNames = map[string]uint64{
	"printf":           TracePrintf,
	"buf-verify":       TraceBufVerify,
	"node-verify":      TraceNodeVerify,
	"name-verify":      TraceNameVerify,
	"modify":           TraceModify,
	"free":             TraceFree,
	"histogram-verify": TraceHistogram,
	"alloc-verify":     TraceAllocVerify,
	"set-error":        TraceSetError,
	"indirect-remap":   TraceIndirectRemap,
	"trim":             TraceTrim,
}

// CategoryByName returns the bit for a category name.
func CategoryByName(name string) (uint64, bool) {
	bit, ok := categoryNames[name]
	return bit, ok
}

// CategoryNames returns the known category names. The slice is a copy.
func CategoryNames() []string {
	out := make([]string, 0, len(categoryNames))
	for name := range categoryNames {
		out = append(out, name)
	}
	return out
}

// SetFlags replaces the category bitmask. Unknown bits are stored but inert.
func (f *Facility) SetFlags(mask uint64) { f.flags.Store(mask) }

// Flags returns the current category bitmask.
func (f *Facility) Flags() uint64 { return f.flags.Load() }

// FlagSet reports whether any bit of mask is set.
func (f *Facility) FlagSet(mask uint64) bool { return f.flags.Load()&mask != 0 }

// SetRecover sets the recover-on-invariant-violation policy.
func (f *Facility) SetRecover(on bool) { f.recoverOn.Store(on) }

// RecoverEnabled reports whether invariant violations are survivable.
func (f *Facility) RecoverEnabled() bool { return f.recoverOn.Load() }

// SetFreeLeakOnIOError sets the leak-tolerance policy for frees that hit
// I/O errors. The facility stores and exposes this flag; engine free paths
// consult it.
func (f *Facility) SetFreeLeakOnIOError(on bool) { f.freeLeakOnIOErr.Store(on) }

// FreeLeakOnIOError reports whether a free that hits an I/O error should
// leak the resource rather than risk further damage cleaning up.
func (f *Facility) FreeLeakOnIOError() bool { return f.freeLeakOnIOErr.Load() }

// SetMsgLogEnable gates whether the message log accepts writes.
func (f *Facility) SetMsgLogEnable(on bool) { f.msgLogEnable.Store(on) }

// MsgLogEnabled reports whether the message log accepts writes.
func (f *Facility) MsgLogEnabled() bool { return f.msgLogEnable.Load() }
