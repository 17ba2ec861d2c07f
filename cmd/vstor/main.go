package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/catalogicsoftware/vstor-zfs/internal/config"
	"github.com/catalogicsoftware/vstor-zfs/internal/diag/inspect"
	rt "github.com/catalogicsoftware/vstor-zfs/internal/runtime"
	pebblestore "github.com/catalogicsoftware/vstor-zfs/internal/storage/pebble"
	logpkg "github.com/catalogicsoftware/vstor-zfs/pkg/log"
)

func main() {
	// initialize logger for CLI
	// Respect VSTOR_LOG_LEVEL for CLI output
	level := os.Getenv("VSTOR_LOG_LEVEL")
	parsed, err := logpkg.ParseLevel(level)
	if err != nil || level == "" {
		parsed = logpkg.InfoLevel
	}
	logger := logpkg.NewLogger(
		logpkg.WithLevel(parsed),
		logpkg.WithFormatter(&logpkg.TextFormatter{}),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)

	// Redirect standard library logs (used by Pebble) to our logger
	logpkg.RedirectStdLog(logger)

	rootCmd := &cobra.Command{
		Use:   "vstor",
		Short: "vstor block store CLI",
		Long:  "vstor is a checksummed block store with built-in diagnostic tracing. This CLI manages stores and inspects the debug message log.",
	}
	rootCmd.PersistentFlags().String("config", os.Getenv("VSTOR_CONFIG"), "Path to JSON config file")
	rootCmd.PersistentFlags().String("data", "", "Data directory (overrides config and VSTOR_DATA_DIR)")
	rootCmd.PersistentFlags().String("debug-flags", "", "Trace categories: bitmask (e.g. 0x11) or names (e.g. printf,modify)")
	rootCmd.PersistentFlags().Bool("recover", false, "Log and continue on invariant violations instead of aborting")
	rootCmd.PersistentFlags().String("fsync", "always", "Fsync mode: always|interval|never")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug|info|warn|error")
	rootCmd.PersistentFlags().String("store", "default", "Block store name")

	// put
	putCmd := &cobra.Command{
		Use:   "put [payload]",
		Short: "Append a block and print its sequence number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, r *rt.Runtime, store string) error {
				s, err := r.OpenStore(store)
				if err != nil {
					return err
				}
				seq, err := s.Put(ctx, []byte(args[0]))
				if err != nil {
					return err
				}
				fmt.Println(seq)
				return nil
			})
		},
	}
	rootCmd.AddCommand(putCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get [seq]",
		Short: "Read a block by sequence number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid seq %q", args[0])
			}
			return withStore(cmd, func(ctx context.Context, r *rt.Runtime, store string) error {
				s, err := r.OpenStore(store)
				if err != nil {
					return err
				}
				payload, err := s.Get(ctx, seq)
				if err != nil {
					return err
				}
				os.Stdout.Write(payload)
				fmt.Println()
				return nil
			})
		},
	}
	rootCmd.AddCommand(getCmd)

	// free
	freeCmd := &cobra.Command{
		Use:   "free [seq]",
		Short: "Free a block by sequence number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid seq %q", args[0])
			}
			return withStore(cmd, func(ctx context.Context, r *rt.Runtime, store string) error {
				s, err := r.OpenStore(store)
				if err != nil {
					return err
				}
				return s.Free(ctx, seq)
			})
		},
	}
	rootCmd.AddCommand(freeCmd)

	// scrub
	scrubCmd := &cobra.Command{
		Use:   "scrub",
		Short: "Verify checksums of every block in the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, r *rt.Runtime, store string) error {
				s, err := r.OpenStore(store)
				if err != nil {
					return err
				}
				res, err := s.Scrub(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("scanned=%d bad=%d\n", res.Scanned, res.Bad)
				if res.Bad > 0 {
					return fmt.Errorf("%d bad block(s)", res.Bad)
				}
				return nil
			})
		},
	}
	rootCmd.AddCommand(scrubCmd)

	// trim
	trimCmd := &cobra.Command{
		Use:   "trim [below-seq]",
		Short: "Delete blocks with sequence numbers below the watermark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			below, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid watermark %q", args[0])
			}
			batch, _ := cmd.Flags().GetInt("batch")
			return withStore(cmd, func(ctx context.Context, r *rt.Runtime, store string) error {
				s, err := r.OpenStore(store)
				if err != nil {
					return err
				}
				deleted, err := s.Trim(ctx, below, batch)
				if err != nil {
					return err
				}
				fmt.Printf("deleted=%d\n", deleted)
				return nil
			})
		},
	}
	trimCmd.Flags().Int("batch", 128, "Max deletions per commit batch")
	rootCmd.AddCommand(trimCmd)

	// dbglog
	// The message log lives in process memory, so inspection only sees
	// activity from this invocation. --scrub feeds the log before reading it.
	dbglogCmd := &cobra.Command{Use: "dbglog", Short: "Debug message log inspection"}
	dbglogCmd.PersistentFlags().Bool("scrub", false, "Scrub the store first so the log has activity")

	scrubFirst := func(cmd *cobra.Command, ctx context.Context, r *rt.Runtime) error {
		if run, _ := cmd.Flags().GetBool("scrub"); !run {
			return nil
		}
		store, _ := cmd.Flags().GetString("store")
		s, err := r.OpenStore(store)
		if err != nil {
			return err
		}
		_, err = s.Scrub(ctx)
		return err
	}

	dbglogPrintCmd := &cobra.Command{
		Use:   "print",
		Short: "Print retained debug messages, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, _ := cmd.Flags().GetString("tag")
			return withRuntime(cmd, func(ctx context.Context, r *rt.Runtime) error {
				if err := scrubFirst(cmd, ctx, r); err != nil {
					return err
				}
				return inspect.Print(r.Diag(), tag, os.Stdout)
			})
		},
	}
	dbglogPrintCmd.Flags().String("tag", "vstor", "Line prefix tag")
	dbglogCmd.AddCommand(dbglogPrintCmd)

	dbglogFindCmd := &cobra.Command{
		Use:   "find [substring]",
		Short: "Check whether any retained message contains a substring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, r *rt.Runtime) error {
				if err := scrubFirst(cmd, ctx, r); err != nil {
					return err
				}
				if !inspect.FindString(r.Diag(), args[0]) {
					return fmt.Errorf("%q not found", args[0])
				}
				fmt.Println("found")
				return nil
			})
		},
	}
	dbglogCmd.AddCommand(dbglogFindCmd)

	dbglogSearchCmd := &cobra.Command{
		Use:   "search [expr]",
		Short: "Filter retained messages with a CEL expression",
		Long:  "Filter retained messages with a CEL expression over seq, file, fn, line, msg, ts_ms, now_ms. Example: msg.contains(\"checksum\") && line > 10",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, r *rt.Runtime) error {
				if err := scrubFirst(cmd, ctx, r); err != nil {
					return err
				}
				entries, err := inspect.Search(r.Diag(), args[0])
				if err != nil {
					return err
				}
				for _, e := range entries {
					fmt.Printf("%d %s:%d %s: %s\n", e.Seq, e.File, e.Line, e.Func, e.Msg)
				}
				return nil
			})
		},
	}
	dbglogCmd.AddCommand(dbglogSearchCmd)
	rootCmd.AddCommand(dbglogCmd)

	// health
	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Open the store and run a basic health check",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, r *rt.Runtime) error {
				if err := r.CheckHealth(ctx); err != nil {
					return err
				}
				fmt.Println("ok")
				return nil
			})
		},
	}
	rootCmd.AddCommand(healthCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves effective config: file, then env, then flags.
func loadConfig(cmd *cobra.Command) (cfgpkg.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := cfgpkg.Load(path)
	if err != nil {
		return cfgpkg.Config{}, err
	}
	if err := cfgpkg.FromEnv(&cfg); err != nil {
		return cfgpkg.Config{}, err
	}
	if v, _ := cmd.Flags().GetString("data"); v != "" {
		cfg.DataDir = v
	}
	if v, _ := cmd.Flags().GetString("debug-flags"); v != "" {
		mask, err := cfgpkg.ParseFlagSpec(v)
		if err != nil {
			return cfgpkg.Config{}, err
		}
		cfg.DebugFlags = mask
		cfg.DebugFlagNames = nil
	}
	if cmd.Flags().Changed("recover") {
		v, _ := cmd.Flags().GetBool("recover")
		cfg.Recover = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	return cfg, nil
}

func withRuntime(cmd *cobra.Command, fn func(context.Context, *rt.Runtime) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	mode := pebblestore.FsyncModeAlways
	switch v, _ := cmd.Flags().GetString("fsync"); v {
	case "never":
		mode = pebblestore.FsyncModeNever
	case "interval":
		mode = pebblestore.FsyncModeInterval
	case "always", "":
		mode = pebblestore.FsyncModeAlways
	default:
		return fmt.Errorf("invalid --fsync; use always|interval|never")
	}
	r, err := rt.Open(rt.Options{DataDir: cfg.DataDir, Fsync: mode, Config: cfg})
	if err != nil {
		return err
	}
	defer r.Close()
	return fn(cmd.Context(), r)
}

func withStore(cmd *cobra.Command, fn func(context.Context, *rt.Runtime, string) error) error {
	store, _ := cmd.Flags().GetString("store")
	return withRuntime(cmd, func(ctx context.Context, r *rt.Runtime) error {
		return fn(ctx, r, store)
	})
}
