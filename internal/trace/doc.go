// Package trace records what a check run is doing: spans for the run, each
// file and each pass, plus the scope moves of the definition and reference
// passes. It is the checker's log.
//
//	cymbol check --trace=- --trace-level=phase prog.cym
//	cymbol check --trace=run.ndjson --trace-level=scope dir/
//
// Levels: phase shows load, tokenize, parse, sema.def and sema.ref; file adds
// one span per checked file; scope adds an enter/leave event carrying the
// ScopeID and stack depth for every scope either pass visits.
//
// Sinks are StreamTracer (written as it happens), RingTracer (the last N
// events, dumped when a command panics), MultiTracer and Nop. A context
// carries the tracer and the current parent span:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.CatPass, "parse", trace.ParentOf(ctx))
//	defer span.End("")
package trace
