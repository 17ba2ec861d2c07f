package diag

import "fmt"

// PanicRecover is the single chokepoint for internal invariant violations
// that are not immediately fatal by construction. The formatted message is
// recorded in the message log; then, unless the recover policy is enabled,
// the process is aborted. With recover enabled the call returns normally and
// the caller is expected to continue in a degraded but defined state,
// treating the violated assumption as an error rather than corruption.
func (f *Facility) PanicRecover(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	file, fn, line := callsite(2)
	f.emit(false, file, fn, line, msg)
	if !f.recoverOn.Load() {
		f.abort(msg)
	}
}
