// Package trace is the runtime logging subsystem of tileman.
//
// Diagnostics about the documents are data (package diag); trace records
// what the tool itself did: which stages ran, which subfolders were read and
// how long each took.
//
// # Usage
//
//	tileman parse --trace=- --trace-level=detail ./tiles
//
// # Tracers
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate text or NDJSON output
//   - RingTracer: last N events, dumped when a load fails
//   - Fanout: copies events to several tracers
//
// # Levels and scopes
//
// LevelPhase shows ScopeDriver and ScopePass spans (load, read-root,
// subfolders, assemble). LevelDetail adds one ScopeSubfolder span per
// directory. LevelDebug adds ScopeLine events for every errored line.
// Error events pass every level but off.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.BeginCtx(ctx, trace.ScopePass, "assemble")
//	defer span.End("")
package trace
