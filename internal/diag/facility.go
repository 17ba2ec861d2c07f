package diag

import (
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"

	logpkg "github.com/catalogicsoftware/vstor-zfs/pkg/log"
)

// DefaultMsgLogCapacity is the fixed number of entries the message log
// retains unless overridden at construction. When full, the oldest entry is
// evicted per append.
const DefaultMsgLogCapacity = 4096

// Message log lifecycle states.
const (
	logUninitialized = iota
	logActive
	logFinalized
)

// Options configures a Facility.
type Options struct {
	// Sink receives direct-output trace lines and fatal abort messages.
	// When nil, a console logger is constructed.
	Sink logpkg.Logger
	// MsgLogCapacity overrides DefaultMsgLogCapacity when > 0.
	MsgLogCapacity int
	// Abort overrides the fatal abort action. The default logs the message
	// through Sink's fatal path, which exits the process. Tests override
	// this to observe the abort decision.
	Abort func(msg string)
}

// Facility is the process-wide diagnostic instrumentation handle. One is
// constructed at startup and passed by reference to every engine component.
type Facility struct {
	flags           atomic.Uint64
	recoverOn       atomic.Bool
	freeLeakOnIOErr atomic.Bool
	msgLogEnable    atomic.Bool

	sink  logpkg.Logger
	abort func(msg string)

	// mu guards the ring bookkeeping only; message formatting happens
	// outside the lock.
	mu       sync.Mutex
	ring     *queue.Queue
	capacity int
	state    int
	seq      uint64
}

// New constructs a Facility. The message log starts uninitialized; call
// InitMsgLog before appending. The message log enable flag defaults to on.
func New(opts Options) *Facility {
	sink := opts.Sink
	if sink == nil {
		sink = logpkg.NewLogger(
			logpkg.WithFormatter(&logpkg.TextFormatter{}),
			logpkg.WithOutput(logpkg.NewConsoleOutput()),
		)
	}
	capacity := opts.MsgLogCapacity
	if capacity <= 0 {
		capacity = DefaultMsgLogCapacity
	}
	f := &Facility{
		sink:     sink,
		capacity: capacity,
		state:    logUninitialized,
	}
	f.abort = opts.Abort
	if f.abort == nil {
		f.abort = func(msg string) { sink.Fatal(msg) }
	}
	f.msgLogEnable.Store(true)
	return f
}

// Sink returns the facility's direct-output logger.
func (f *Facility) Sink() logpkg.Logger { return f.sink }
