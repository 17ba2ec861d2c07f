// Package config provides loading and environment overlay for vstor runtime
// configuration, including the diagnostic flag surface that the diag
// facility reads but never sets itself.
//
// Example:
//
//	cfg := config.Default()
//	// Optionally load from file and overlay env vars
//	if fileCfg, err := config.Load("/etc/vstor.json"); err == nil {
//	    cfg = fileCfg
//	}
//	_ = config.FromEnv(&cfg)
//	rt, _ := runtime.Open(runtime.Options{Config: cfg})
//	defer rt.Close()
package config
