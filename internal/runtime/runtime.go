package runtime

import (
	"context"
	"errors"

	"github.com/catalogicsoftware/vstor-zfs/internal/blockstore"
	cfgpkg "github.com/catalogicsoftware/vstor-zfs/internal/config"
	"github.com/catalogicsoftware/vstor-zfs/internal/diag"
	pebblestore "github.com/catalogicsoftware/vstor-zfs/internal/storage/pebble"
	logpkg "github.com/catalogicsoftware/vstor-zfs/pkg/log"
)

// Options for building the Runtime.
type Options struct {
	DataDir string
	Fsync   pebblestore.FsyncMode
	Config  cfgpkg.Config
	// Sink overrides the console/log sink built from Config.Log.
	Sink logpkg.Logger
}

// Runtime wires the diag facility, storage, and config for a single-node
// instance. The facility it owns is the process-wide one handed to every
// engine component.
type Runtime struct {
	db     *pebblestore.DB
	diag   *diag.Facility
	config cfgpkg.Config
}

// Open builds the diag facility from config, initializes its message log,
// opens the underlying storage, and returns a Runtime.
func Open(opts Options) (*Runtime, error) {
	sink := opts.Sink
	if sink == nil {
		built, err := logpkg.ApplyConfig(opts.Config.Log, nil)
		if err != nil {
			return nil, err
		}
		sink = built
	}

	d := diag.New(diag.Options{
		Sink:           sink,
		MsgLogCapacity: opts.Config.MsgLogCapacity,
	})
	if err := cfgpkg.Apply(opts.Config, d); err != nil {
		return nil, err
	}
	d.InitMsgLog()

	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = opts.Config.DataDir
	}
	db, err := pebblestore.Open(pebblestore.Options{DataDir: dataDir, Fsync: opts.Fsync, Diag: d})
	if err != nil {
		d.FiniMsgLog()
		return nil, err
	}
	return &Runtime{db: db, diag: d, config: opts.Config}, nil
}

// Close finalizes the message log and closes underlying resources.
func (r *Runtime) Close() error {
	if r.diag != nil {
		r.diag.FiniMsgLog()
	}
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// CheckHealth performs a simple health check.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.db == nil {
		return errors.New("db not open")
	}
	it, err := r.db.NewIter(nil)
	if err != nil {
		return err
	}
	it.Close()
	return nil
}

// OpenStore opens a named block store backed by this runtime's storage and
// instrumented by its diag facility.
func (r *Runtime) OpenStore(name string) (*blockstore.Store, error) {
	return blockstore.Open(r.db, r.diag, name)
}

// Diag returns the process-wide diagnostic facility.
func (r *Runtime) Diag() *diag.Facility { return r.diag }

// DB exposes the underlying DB for advanced operations (internal use only).
func (r *Runtime) DB() *pebblestore.DB { return r.db }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }
