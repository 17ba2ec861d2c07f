//go:build vstor_debug

package diag

import "fmt"

// TraceCompiled reports whether conditional tracing is compiled in.
const TraceCompiled = true

// Trace emits a trace message when any bit of category is set in the flag
// mask. The message is retained in the message log and written synchronously
// to the sink. Builds without the vstor_debug tag compile this to a no-op.
func (f *Facility) Trace(category uint64, format string, args ...any) {
	if f.flags.Load()&category == 0 {
		return
	}
	file, fn, line := callsite(2)
	f.emit(true, file, fn, line, fmt.Sprintf(format, args...))
}
