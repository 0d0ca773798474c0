package jsclean

import (
	"regexp"
	"strings"
)

// Precompiled whitespace patterns.
var (
	// Maximal whitespace runs, covering the ECMAScript WhiteSpace and
	// LineTerminator sets (\s plus vertical tab, Unicode space
	// separators, LS, PS and the BOM used as zero-width no-break space).
	whitespaceRun = regexp.MustCompile(`[\s\x{0b}\p{Zs}\x{2028}\x{2029}\x{feff}]+`)

	// Individual line terminators; CRLF counts as one.
	lineTerminator = regexp.MustCompile(`\r\n|[\n\r\x{2028}\x{2029}]`)
)

// compactionConfig is the normalized configuration of the compaction
// pass: the blank-line cap and the terminator sequence to emit.
type compactionConfig struct {
	maxEmptyLines int
	eol           string
}

// span is a half-open byte range that compaction must not rewrite:
// a lexical token or a kept comment.
type span struct {
	start, end int
}

// region is the gap before a boundary span (or after the last one).
type region struct {
	start, end int
	leading    bool // no boundary precedes the region
	trailing   bool // no boundary follows the region (end of file)
}

// compactLines rewrites the whitespace between consecutive boundaries
// through the buffer: runs of line terminators are capped and
// normalized, leading blank lines and trailing whitespace are trimmed.
// Spacing inside a line is never altered.
func compactLines(buf *textBuffer, text string, cfg compactionConfig, bounds []span) error {
	prev := 0
	for i, b := range bounds {
		reg := region{start: prev, end: b.start, leading: i == 0}
		if err := compactRegion(buf, text, cfg, reg); err != nil {
			return err
		}
		prev = b.end
	}

	trailing := region{start: prev, end: len(text), leading: len(bounds) == 0, trailing: true}
	return compactRegion(buf, text, cfg, trailing)
}

// compactRegion applies the per-region policy:
//
//   - the run opening the file (optional whitespace, then a terminator)
//     is cut to maxEmptyLines terminators, or dropped when the cap is
//     zero or negative;
//   - every other run containing a terminator is rewritten to capped,
//     normalized terminators with surrounding horizontal whitespace
//     stripped — one terminator always survives between two boundaries;
//   - horizontal whitespace dangling at end of file is removed.
//
// Runs without a line terminator are left untouched. Rewrites identical
// to the original text record no edit, so an already-clean region does
// not mark the buffer dirty.
func compactRegion(buf *textBuffer, text string, cfg compactionConfig, reg region) error {
	seg := text[reg.start:reg.end]

	for _, loc := range whitespaceRun.FindAllStringIndex(seg, -1) {
		start, end := reg.start+loc[0], reg.start+loc[1]
		terms := len(lineTerminator.FindAllStringIndex(seg[loc[0]:loc[1]], -1))

		if terms == 0 {
			// Pure horizontal whitespace: only stripped when dangling
			// at the very end of the file.
			if reg.trailing && end == reg.end {
				if err := buf.overwrite(start, end, ""); err != nil {
					return err
				}
			}
			continue
		}

		var count int
		switch {
		case reg.leading && start == 0:
			limit := cfg.maxEmptyLines
			if limit < 0 {
				limit = 0
			}
			count = min(terms, limit)
		case cfg.maxEmptyLines == 0:
			count = 1
		case cfg.maxEmptyLines < 0:
			count = terms
		default:
			count = min(terms, cfg.maxEmptyLines+1)
		}

		if err := buf.overwrite(start, end, strings.Repeat(cfg.eol, count)); err != nil {
			return err
		}
	}
	return nil
}
