package jsclean

import (
	"context"
	"fmt"

	"github.com/alnah/go-jsclean/internal/jslex"
)

// tokenizer is the lexical-analysis capability the cleaner consumes:
// one scan yields the comment and token occurrence streams, or a
// syntax error and no occurrences at all.
type tokenizer interface {
	Scan(source string) ([]jslex.Comment, []jslex.Token, error)
}

// Cleaner runs the comment-blanking and line-compaction pipeline.
// It holds no per-call state; a single instance may serve many
// goroutines concurrently.
type Cleaner struct {
	cfg       cleanerConfig
	tokenizer tokenizer
}

// New creates a Cleaner with default configuration: the DefaultPresets
// comment filter, all blank lines removed, unix line endings, source
// maps enabled, JavaScript grammar. Use options to customize behavior.
func New(opts ...Option) *Cleaner {
	c := &Cleaner{
		cfg: cleanerConfig{
			filter:        DefaultFilter(),
			maxEmptyLines: 0,
			eol:           "\n",
			sourceMap:     true,
			language:      defaultLanguage,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	// Create the lexer if not injected (e.g., by tests)
	if c.tokenizer == nil {
		c.tokenizer = jslex.New(c.cfg.language)
	}

	return c
}

// Clean runs the full pipeline on one input. When nothing needed to
// change, the result reports Changed == false and the caller should
// keep its original text. A syntax error in the input aborts the run
// with no partial result.
func (c *Cleaner) Clean(ctx context.Context, input Input) (*Result, error) {
	if input.Source == "" {
		return &Result{}, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	comments, tokens, err := c.tokenizer.Scan(input.Source)
	if err != nil {
		if input.Filename != "" {
			return nil, fmt.Errorf("scanning %s: %w", input.Filename, err)
		}
		return nil, err
	}

	// Blank filtered-out comments in place; offsets are unchanged.
	blanked, kept, commentsChanged := blankComments(input.Source, comments, c.cfg.filter)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Compact blank lines through the buffer, bounded by tokens and
	// surviving comments so nothing kept is ever rewritten.
	buf := newTextBuffer(blanked)
	cfg := compactionConfig{maxEmptyLines: c.cfg.maxEmptyLines, eol: c.cfg.eol}
	if err := compactLines(buf, blanked, cfg, mergeBounds(tokens, kept)); err != nil {
		return nil, fmt.Errorf("compacting lines: %w", err)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if !commentsChanged && !buf.dirty() {
		return &Result{}, nil
	}

	result := &Result{Text: buf.render(), Changed: true}
	if c.cfg.sourceMap {
		result.Map = buf.renderMap()
	}
	return result, nil
}

// mergeBounds interleaves token and kept-comment ranges into one
// ascending slice of compaction boundaries. The end-of-file marker
// carries no text and is dropped.
func mergeBounds(tokens []jslex.Token, kept []jslex.Comment) []span {
	bounds := make([]span, 0, len(tokens)+len(kept))
	ti, ci := 0, 0
	for ti < len(tokens) || ci < len(kept) {
		switch {
		case ti < len(tokens) && tokens[ti].EOF:
			ti++
		case ci == len(kept) || (ti < len(tokens) && tokens[ti].Start < kept[ci].Start):
			bounds = append(bounds, span{start: tokens[ti].Start, end: tokens[ti].End})
			ti++
		default:
			bounds = append(bounds, span{start: kept[ci].Start, end: kept[ci].End})
			ci++
		}
	}
	return bounds
}

// SupportedLanguage reports whether a lexer is registered for name.
// Validate user-facing configuration with it before calling
// WithLanguage, which panics on unknown names.
func SupportedLanguage(name string) bool {
	return jslex.Supported(name)
}
