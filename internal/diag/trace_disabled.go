//go:build !vstor_debug

package diag

// TraceCompiled reports whether conditional tracing is compiled in.
const TraceCompiled = false

// Trace is a no-op in builds without the vstor_debug tag.
func (f *Facility) Trace(uint64, string, ...any) {}
