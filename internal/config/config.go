package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/catalogicsoftware/vstor-zfs/internal/diag"
	logpkg "github.com/catalogicsoftware/vstor-zfs/pkg/log"
)

// Config is the top-level configuration loaded from file/env. It owns the
// values for the diagnostic flags; the diag facility only reads them.
type Config struct {
	// DataDir is the store's backing directory.
	DataDir string `json:"dataDir"`
	// DebugFlags is the raw category bitmask. DebugFlagNames, when set,
	// is OR'd on top of it by FlagMask.
	DebugFlags     uint64   `json:"debugFlags"`
	DebugFlagNames []string `json:"debugFlagNames"`
	// Recover selects log-and-continue over abort on invariant violations.
	Recover bool `json:"recover"`
	// FreeLeakOnIOError tolerates leaking blocks whose free hit an I/O error.
	FreeLeakOnIOError bool `json:"freeLeakOnIoError"`
	// MsgLogEnable gates the debug message log. Defaults to true.
	MsgLogEnable bool `json:"msgLogEnable"`
	// MsgLogCapacity bounds the debug message log; 0 selects the built-in
	// default.
	MsgLogCapacity int `json:"msgLogCapacity"`
	// Log configures the console/log sink.
	Log logpkg.Config `json:"log"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		DataDir:      DefaultDataDir(),
		MsgLogEnable: true,
		Log:          logpkg.Config{Level: "info", Format: "text"},
	}
}

// Load reads configuration from a JSON file. If path is empty, returns
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseFlagSpec parses a debug flag specification: either a numeric bitmask
// (decimal or 0x-hex) or a comma-separated list of category names.
func ParseFlagSpec(spec string) (uint64, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, nil
	}
	if n, err := strconv.ParseUint(spec, 0, 64); err == nil {
		return n, nil
	}
	var mask uint64
	for _, name := range strings.Split(spec, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		bit, ok := diag.CategoryByName(name)
		if !ok {
			return 0, fmt.Errorf("config: unknown debug category %q", name)
		}
		mask |= bit
	}
	return mask, nil
}

// FlagMask resolves DebugFlags and DebugFlagNames into one bitmask.
func (c Config) FlagMask() (uint64, error) {
	mask := c.DebugFlags
	for _, name := range c.DebugFlagNames {
		bit, ok := diag.CategoryByName(name)
		if !ok {
			return 0, fmt.Errorf("config: unknown debug category %q", name)
		}
		mask |= bit
	}
	return mask, nil
}

// Apply pushes the configured values into the facility's flag registry.
func Apply(c Config, f *diag.Facility) error {
	mask, err := c.FlagMask()
	if err != nil {
		return err
	}
	f.SetFlags(mask)
	f.SetRecover(c.Recover)
	f.SetFreeLeakOnIOError(c.FreeLeakOnIOError)
	f.SetMsgLogEnable(c.MsgLogEnable)
	return nil
}
