// Package profile provides optional runtime profiling for sitenav.
//
// Profiling is backed by [github.com/pkg/profile] and only compiled in with
// the "pprof" build tag:
//
//	go build -tags pprof -o sitenav .
//
// Without the tag, [Modes] is empty and [Profiler.Start] always returns a
// no-op [Stopper].
//
// A profiler is configured with options and started once:
//
//	p := profile.New(profile.WithMode("cpu"), profile.WithPath("/tmp/prof"))
//	defer p.Start().Stop()
//
// Profile files are written to the configured directory with names matching
// the profiling mode (e.g., cpu.pprof, mem.pprof) and can be inspected with
// go tool pprof:
//
//	go tool pprof -http=: /tmp/prof/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
