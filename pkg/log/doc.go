// Package log provides vstor's structured logging facade and utilities.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// simple Field type for structured context. Internally it is backed by Go's
// standard library slog via a custom handler that preserves our existing
// formatter/outputs pipeline. This allows adoption of the slog ecosystem
// while keeping consistent output and behavior across the codebase.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.With(log.Component("blockstore"), log.Str("store", "default"))
//	l.Info("store opened", log.Int("blocks", 42))
//
// # Configuration
//
// Use ApplyConfig to build a logger from a declarative Config, supporting
// JSON or text formatting, field redaction, and sampling.
//
// # Interop
//
// To integrate with libraries expecting *log.Logger, use ToStdLogger or
// RedirectStdLog; Pebble's internal logging is routed this way. Most code
// should remain against this facade.
package log
