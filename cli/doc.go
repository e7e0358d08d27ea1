// Package cli contains the command line interface for sitenav.
//
// # Usage
//
//	sitenav [flags] <root> <output>
//	sitenav tree <root>
//	sitenav find <root> <pattern>
//	sitenav fmt [json|yaml] <root>
//
// The first form runs the build command, which writes the menu structure of
// the site below root to output and renders the group files of every
// template found.
//
// # Configuration Files
//
// Flag defaults are read from config.json, config.yaml or config.yml in the
// user configuration directory (e.g., ~/.config/sitenav). YAML mappings are
// flattened with hyphens, so the following are equivalent:
//
//	log:
//	  level: debug
//
//	log-level: debug
//
// Command-line flags override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (none, RFC3339, Kitchen, etc.)
//   - --log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o sitenav .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/sitenav/pprof)
package cli
