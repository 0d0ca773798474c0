package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	jsclean "github.com/alnah/go-jsclean"
)

// cleanFlags holds all command-line flags.
type cleanFlags struct {
	config  string
	output  string
	workers int
	quiet   bool
	verbose bool
	version bool

	maxEmptyLines int
	eol           string
	keep          []string
	sourceMap     bool
	include       string
	language      string

	set *flag.FlagSet
}

// changed reports whether a flag was set explicitly, so flag values can
// override config-file values without clobbering them with defaults.
func (f *cleanFlags) changed(name string) bool {
	return f.set.Changed(name)
}

// parseFlags parses command-line flags and returns positional args.
func parseFlags(args []string, stderr io.Writer) (*cleanFlags, []string, error) {
	fs := flag.NewFlagSet("jsclean", flag.ContinueOnError)
	f := &cleanFlags{set: fs}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.output, "output", "o", "", "output directory (default: stdout, single file only)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-file timing")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.IntVarP(&f.maxEmptyLines, "max-empty-lines", "m", 0, "max consecutive blank lines (-1 keeps all breaks)")
	fs.StringVar(&f.eol, "eol", jsclean.EOLUnix, "line-ending style: unix, mac, win")
	fs.StringSliceVarP(&f.keep, "keep", "k", nil, "comments to keep: preset name, /regex/, all, none")
	fs.BoolVar(&f.sourceMap, "sourcemap", true, "write a .map file next to each changed output")
	fs.StringVar(&f.include, "include", defaultInclude, "glob for files picked up from directories")
	fs.StringVar(&f.language, "lang", "javascript", "grammar: javascript, typescript, jsx, ...")

	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// printUsage writes the command usage to w.
func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, `jsclean removes comments and squeezes blank lines in JavaScript-family files.

Usage:
  jsclean [flags] <file|directory>...

With --output, cleaned files (and .map files when source maps are on)
are written under the output directory, mirroring the input layout.
Without it, a single input file is cleaned to stdout.

Comment filters (--keep) decide which comments survive. Presets:
  license, some, jsdoc, jslint, jshint, eslint, jscs, istanbul,
  ts3s, srcmaps, plus /regex/ literals and all / none.
  Default: some, eslint, ts3s, srcmaps.

Flags:
%s`, fs.FlagUsages())
}
