// Package log provides the logging abstraction used across apishell.
//
// The Logger interface is intentionally small so that the request
// dispatcher and the auth provider do not depend on a concrete logging
// library. A zerolog adapter is provided for production use, a no-op
// logger for callers that do not want output, and a Recorder that keeps
// entries in memory for tests.
//
// # Usage
//
//	logger := log.NewZerologAdapter()
//	client := api.New(cfg, tokens, api.WithLogger(logger))
//
// In tests:
//
//	rec := log.NewRecorder()
//	client := api.New(cfg, tokens, api.WithLogger(rec))
//	// ...
//	if n := rec.Count(log.LevelError); n != 1 { ... }
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package log
