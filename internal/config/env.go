package config

import (
	"os"
	"strconv"
)

// FromEnv overlays VSTOR_* environment variables onto cfg. Unparseable
// values are ignored; a malformed debug flag spec is reported so typos in
// category names do not silently disable tracing.
func FromEnv(cfg *Config) error {
	if v := os.Getenv("VSTOR_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("VSTOR_DEBUG_FLAGS"); v != "" {
		mask, err := ParseFlagSpec(v)
		if err != nil {
			return err
		}
		cfg.DebugFlags = mask
		cfg.DebugFlagNames = nil
	}
	if v := os.Getenv("VSTOR_RECOVER"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Recover = b
		}
	}
	if v := os.Getenv("VSTOR_FREE_LEAK_ON_IO_ERROR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.FreeLeakOnIOError = b
		}
	}
	if v := os.Getenv("VSTOR_DBGMSG_ENABLE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.MsgLogEnable = b
		}
	}
	if v := os.Getenv("VSTOR_DBGMSG_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MsgLogCapacity = n
		}
	}
	if v := os.Getenv("VSTOR_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}
