package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	flag "github.com/spf13/pflag"

	jsclean "github.com/alnah/go-jsclean"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrOutputRequired = errors.New("multiple inputs require --output")
	ErrReadSource     = errors.New("failed to read source file")
	ErrWriteOutput    = errors.New("failed to write output file")
	ErrBadInclude     = errors.New("invalid include pattern")
)

// fileToClean pairs an input path with its destination.
type fileToClean struct {
	inputPath  string
	outputPath string
}

// run executes the command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	flags, inputs, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		// pflag already reported the parse error and usage.
		return 1
	}

	if flags.version {
		fmt.Fprintln(stdout, Version)
		return 0
	}

	cfg, err := resolveSettings(flags)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if len(inputs) == 0 {
		fmt.Fprintln(stderr, ErrNoInput)
		return 1
	}

	files, err := discoverFiles(inputs, cfg.output, cfg.include)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if len(files) == 0 {
		fmt.Fprintln(stderr, "no files matched")
		return 1
	}

	cleaner := newCleaner(cfg)
	ctx := context.Background()

	// Without an output directory the cleaned text goes to stdout, which
	// only makes sense for exactly one input.
	if cfg.output == "" {
		if len(files) > 1 {
			fmt.Fprintln(stderr, ErrOutputRequired)
			return 1
		}
		return cleanToStdout(ctx, cleaner, files[0].inputPath, stdout, stderr)
	}

	results := cleanBatch(ctx, cleaner, files, cfg)
	if failed := printResults(results, flags.quiet, flags.verbose, stdout, stderr); failed > 0 {
		return 1
	}
	return 0
}

// newCleaner builds the engine from resolved settings. Settings were
// validated in resolveSettings, so the filter parse cannot fail here.
func newCleaner(cfg *settings) *jsclean.Cleaner {
	filter, _ := jsclean.ParseCommentFilter(cfg.keep)
	return jsclean.New(
		jsclean.WithComments(filter),
		jsclean.WithMaxEmptyLines(cfg.maxEmptyLines),
		jsclean.WithEOL(cfg.eol),
		jsclean.WithSourceMap(cfg.sourceMap && cfg.output != ""),
		jsclean.WithLanguage(cfg.language),
	)
}

// discoverFiles expands the inputs into concrete files. Directories are
// walked and filtered by the include glob; explicitly listed files are
// always taken. Output paths mirror the input layout under outDir.
func discoverFiles(inputs []string, outDir, include string) ([]fileToClean, error) {
	if !doublestar.ValidatePattern(include) {
		return nil, fmt.Errorf("%w: %q", ErrBadInclude, include)
	}

	var files []fileToClean
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			files = append(files, fileToClean{
				inputPath:  input,
				outputPath: filepath.Join(outDir, filepath.Base(input)),
			})
			continue
		}

		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			rel, err := filepath.Rel(input, path)
			if err != nil {
				return err
			}
			match, err := doublestar.Match(include, filepath.ToSlash(rel))
			if err != nil {
				return err
			}
			if match {
				files = append(files, fileToClean{
					inputPath:  path,
					outputPath: filepath.Join(outDir, rel),
				})
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", input, err)
		}
	}
	return files, nil
}

// cleanToStdout cleans one file and writes the text to stdout.
// Unchanged inputs are echoed verbatim.
func cleanToStdout(ctx context.Context, cleaner *jsclean.Cleaner, path string, stdout, stderr io.Writer) int {
	content, err := os.ReadFile(path) // #nosec G304 -- user-supplied input path
	if err != nil {
		fmt.Fprintf(stderr, "%v: %v\n", ErrReadSource, err)
		return 1
	}

	result, err := cleaner.Clean(ctx, jsclean.Input{Source: string(content), Filename: path})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	text := string(content)
	if result.Changed {
		text = result.Text
	}
	fmt.Fprint(stdout, text)
	return 0
}

// cleanResult holds the outcome of cleaning a single file.
type cleanResult struct {
	inputPath  string
	outputPath string
	changed    bool
	err        error
	duration   time.Duration
}

// cleanBatch processes files concurrently. One Cleaner is shared by all
// workers; it holds no per-call state.
func cleanBatch(ctx context.Context, cleaner *jsclean.Cleaner, files []fileToClean, cfg *settings) []cleanResult {
	concurrency := resolveWorkers(cfg.workers)
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]cleanResult, len(files))
	jobs := make(chan int, len(files))
	var wg sync.WaitGroup

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = cleanResult{inputPath: files[idx].inputPath, err: ctx.Err()}
					continue
				}
				results[idx] = cleanFile(ctx, cleaner, files[idx], cfg)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// cleanFile processes a single file and returns the result. Unchanged
// inputs are copied through so the output directory is complete.
func cleanFile(ctx context.Context, cleaner *jsclean.Cleaner, f fileToClean, cfg *settings) cleanResult {
	start := time.Now()
	result := cleanResult{inputPath: f.inputPath, outputPath: f.outputPath}
	defer func() { result.duration = time.Since(start) }()

	content, err := os.ReadFile(f.inputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.err = fmt.Errorf("%w: %v", ErrReadSource, err)
		return result
	}

	cleaned, err := cleaner.Clean(ctx, jsclean.Input{Source: string(content), Filename: f.inputPath})
	if err != nil {
		result.err = err
		return result
	}

	if err := os.MkdirAll(filepath.Dir(f.outputPath), dirPermissions); err != nil {
		result.err = fmt.Errorf("creating output directory: %w", err)
		return result
	}

	text := string(content)
	if cleaned.Changed {
		text = cleaned.Text
		result.changed = true
	}
	if err := os.WriteFile(f.outputPath, []byte(text), filePermissions); err != nil {
		result.err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
		return result
	}

	if cleaned.Changed && cleaned.Map != nil {
		data, err := cleaned.Map.SourceMap(filepath.Base(f.inputPath))
		if err != nil {
			result.err = fmt.Errorf("rendering source map: %w", err)
			return result
		}
		if err := os.WriteFile(f.outputPath+".map", data, filePermissions); err != nil {
			result.err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
			return result
		}
	}

	return result
}

// resolveWorkers determines batch concurrency.
// Priority: explicit setting > GOMAXPROCS (adjusted by automaxprocs for
// containers), minimum 1, maximum 8.
func resolveWorkers(configured int) int {
	if configured > 0 {
		return configured
	}

	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}

// printResults reports per-file outcomes and returns the failure count.
func printResults(results []cleanResult, quiet, verbose bool, stdout, stderr io.Writer) int {
	failed := 0
	changed := 0

	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(stderr, "FAILED %s: %v\n", r.inputPath, r.err)
			continue
		}
		if r.changed {
			changed++
		}

		if quiet {
			continue
		}
		switch {
		case verbose && r.changed:
			fmt.Fprintf(stdout, "%s -> %s (%v)\n", r.inputPath, r.outputPath, r.duration.Round(time.Millisecond))
		case verbose:
			fmt.Fprintf(stdout, "%s unchanged (%v)\n", r.inputPath, r.duration.Round(time.Millisecond))
		case r.changed:
			fmt.Fprintf(stdout, "Cleaned %s\n", r.outputPath)
		default:
			fmt.Fprintf(stdout, "Unchanged %s\n", r.inputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(stdout, "\n%d cleaned, %d unchanged, %d failed\n", changed, len(results)-failed-changed, failed)
	}

	return failed
}
