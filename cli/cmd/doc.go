// Package cmd implements the sitenav subcommands.
//
// Every command takes the site root directory as its first argument and
// walks it with [nav.Builder]. Only build writes files; tree, find and fmt
// print to the kong output writer.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the base
	// path of the configuration files.
	ConfigIdentifier = "config"
)
