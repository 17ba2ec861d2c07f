// Package diag implements vstor's internal diagnostic instrumentation:
// conditional tracing, a bounded in-memory rolling log of debug messages,
// and the recover-vs-abort policy for detected invariant violations.
//
// # Overview
//
// A single Facility is constructed at process startup and handed to every
// engine component. Engine code calls Trace (compiled out unless the
// vstor_debug build tag is set), LogMessage, and PanicRecover; none of these
// ever return an error or block beyond a short critical section, because a
// diagnostic subsystem must not be able to destabilize its host.
//
// The message log holds the most recent entries in a fixed-capacity FIFO
// ring (DefaultMsgLogCapacity unless overridden at construction). Appends
// while the log is uninitialized, finalized, or disabled are silently
// dropped. InitMsgLog and FiniMsgLog are idempotent.
//
// Category flags and the policy toggles are relaxed atomics: they are tuning
// knobs, not correctness state, and a caller may observe a stale value for
// one emission after a write. Host-side introspection over the retained
// entries lives in the inspect subpackage.
package diag
