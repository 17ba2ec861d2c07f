package diag

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	logpkg "github.com/catalogicsoftware/vstor-zfs/pkg/log"
)

// callsite captures file, function, and line for the caller skip frames up.
// The file is reduced to its base name and the function to its bare name so
// entries stay compact regardless of build paths.
func callsite(skip int) (file, fn string, line int) {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "?", "?", 0
	}
	file = filepath.Base(file)
	fn = "?"
	if f := runtime.FuncForPC(pc); f != nil {
		fn = f.Name()
		if i := strings.LastIndexByte(fn, '.'); i >= 0 {
			fn = fn[i+1:]
		}
	}
	return file, fn, line
}

// emit is the single formatting and metadata path shared by Trace,
// LogMessage, and PanicRecover, guaranteeing identical entry shape
// regardless of entry point. It always attempts a message log append; when
// direct is set it also writes the line synchronously to the sink. Direct
// lines go out at info level: the category bit is the gate, not the sink's
// level threshold.
func (f *Facility) emit(direct bool, file, fn string, line int, msg string) {
	f.appendEntry(file, fn, line, msg)
	if direct {
		f.sink.Info(msg,
			logpkg.Str("file", file),
			logpkg.Str("func", fn),
			logpkg.Int("line", line),
		)
	}
}

// LogMessage records a formatted message in the message log. It is always
// compiled in and gated only by the message log enable flag; the message is
// retained in the ring but not written to the sink.
func (f *Facility) LogMessage(format string, args ...any) {
	if !f.msgLogEnable.Load() {
		return
	}
	file, fn, line := callsite(2)
	f.emit(false, file, fn, line, fmt.Sprintf(format, args...))
}
