// Package inspect provides host-tool introspection over the diag message
// log: substring lookup, dump-to-writer, and CEL-filtered search. It is for
// external diagnostic tooling operating against a live facility, not for the
// engine's own runtime logic; every operation works on a snapshot and never
// mutates the log.
package inspect
