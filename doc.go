// Package jsclean removes unwanted comments and squeezes blank lines in
// JavaScript-family sources without touching anything else.
//
// # Quick Start
//
// Create a cleaner and feed it source text:
//
//	cleaner := jsclean.New()
//
//	result, err := cleaner.Clean(ctx, jsclean.Input{
//	    Source:   src,
//	    Filename: "app.js",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Changed {
//	    // already clean, keep the original
//	}
//	os.WriteFile("app.js", []byte(result.Text), 0644)
//
// The result contains the cleaned text and, unless disabled, a
// PositionMap translating output positions back to the original source.
//
// # Cleaning Pipeline
//
// Each call runs these stages:
//
//  1. Lexical scan via chroma (comment and token occurrences with exact
//     byte offsets)
//  2. Comment blanking (filtered-out comments become spaces, line
//     terminators kept, length preserved)
//  3. Blank-line compaction through a position-preserving edit buffer
//     (runs capped, line endings normalized, edges trimmed)
//  4. Render text and position map, or report "unchanged"
//
// # Configuration
//
// Use functional options to customize the cleaner:
//
//	cleaner := jsclean.New(
//	    jsclean.WithMaxEmptyLines(1),
//	    jsclean.WithEOL(jsclean.EOLWindows),
//	    jsclean.WithSourceMap(false),
//	)
//
// Comment filters decide which comments survive. The default keeps
// comments carrying @license, @preserve or @cc_on, linter directives,
// triple-slash references and source map pragmas. Presets and literal
// patterns can be combined:
//
//	filter, err := jsclean.KeepPresets("eslint", "srcmaps", "ts3s")
//	cleaner := jsclean.New(jsclean.WithComments(filter))
//
// Option names are deliberately unambiguous: there is exactly one
// spelling for each knob (WithSourceMap, WithEOL) and no legacy aliases.
//
// # Concurrency
//
// A Cleaner holds no mutable state between calls; one instance may be
// shared by any number of goroutines, each cleaning its own file.
package jsclean
