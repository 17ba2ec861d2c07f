// Package runtime wires the diag facility, storage, and config into a
// single-node vstor instance. It exposes Open/Close, basic health checks,
// and helpers to open internal components used by the CLI.
//
// Example:
//
//	cfg := config.Default()
//	rt, _ := runtime.Open(runtime.Options{DataDir: "./data", Fsync: pebblestore.FsyncModeAlways, Config: cfg})
//	defer rt.Close()
//	// Health
//	_ = rt.CheckHealth(context.Background())
//	// Open a store and append a block
//	st, _ := rt.OpenStore("default")
//	_, _ = st.Put(context.Background(), []byte("hello"))
package runtime
