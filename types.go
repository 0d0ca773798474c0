package jsclean

import "fmt"

// Line-ending style constants.
const (
	EOLUnix    = "unix" // \n
	EOLMac     = "mac"  // \r
	EOLWindows = "win"  // \r\n
)

// KeepAllLines disables the blank-line cap: every line break is kept
// (and normalized), only surrounding horizontal whitespace is stripped.
const KeepAllLines = -1

// EOLSequence returns the line terminator for a style name.
// Valid names are "unix", "mac" and "win".
func EOLSequence(style string) (string, error) {
	switch style {
	case EOLUnix:
		return "\n", nil
	case EOLMac:
		return "\r", nil
	case EOLWindows:
		return "\r\n", nil
	default:
		return "", fmt.Errorf("%w: %q (must be unix, mac, or win)", ErrInvalidEOL, style)
	}
}

// ValidateMaxEmptyLines checks a blank-line cap: -1 keeps all breaks,
// 0 removes every blank line, N > 0 caps consecutive blank lines to N.
func ValidateMaxEmptyLines(n int) error {
	if n < KeepAllLines {
		return fmt.Errorf("%w: %d (must be >= -1)", ErrInvalidMaxEmptyLines, n)
	}
	return nil
}

// Input contains cleaning parameters for a single source.
type Input struct {
	Source   string // program text (an empty source is a no-op)
	Filename string // used in error messages and the source map (optional)
}

// Result holds the outcome of a cleaning run.
//
// When Changed is false the input was already clean: Text is empty, Map
// is nil, and the caller should keep its original text.
type Result struct {
	Text    string       // cleaned text (only when Changed)
	Map     *PositionMap // output→source mapping, nil when disabled or unchanged
	Changed bool
}

// Option configures a Cleaner.
type Option func(*Cleaner)

// cleanerConfig holds internal configuration for Cleaner.
type cleanerConfig struct {
	filter        CommentFilter
	maxEmptyLines int
	eol           string // terminator sequence, not the style name
	sourceMap     bool
	language      string
}

// defaultLanguage is the chroma lexer used when none is selected.
const defaultLanguage = "javascript"

// WithComments sets the comment filter deciding which comments survive.
// Build filters with KeepAll, KeepNone, KeepPresets or KeepMatching.
func WithComments(f CommentFilter) Option {
	return func(c *Cleaner) {
		c.cfg.filter = f
	}
}

// WithMaxEmptyLines caps runs of consecutive blank lines to n.
// Use 0 to remove all blank lines, or KeepAllLines to keep every break.
// Panics if n < -1 (programmer error, similar to time.NewTicker).
func WithMaxEmptyLines(n int) Option {
	if err := ValidateMaxEmptyLines(n); err != nil {
		panic("jsclean: " + err.Error())
	}
	return func(c *Cleaner) {
		c.cfg.maxEmptyLines = n
	}
}

// WithEOL sets the normalized line-ending style: EOLUnix, EOLMac or
// EOLWindows. Panics on an unknown style (programmer error); validate
// user input with EOLSequence first.
func WithEOL(style string) Option {
	seq, err := EOLSequence(style)
	if err != nil {
		panic("jsclean: " + err.Error())
	}
	return func(c *Cleaner) {
		c.cfg.eol = seq
	}
}

// WithSourceMap enables or disables position-map generation.
// Maps are the most expensive step; disable them when only the text is
// needed.
func WithSourceMap(enabled bool) Option {
	return func(c *Cleaner) {
		c.cfg.sourceMap = enabled
	}
}

// WithLanguage selects the grammar used for lexing, by chroma lexer
// name (e.g. "javascript", "typescript", "jsx"). Panics on an unknown
// name.
func WithLanguage(name string) Option {
	if !SupportedLanguage(name) {
		panic("jsclean: unknown language " + name)
	}
	return func(c *Cleaner) {
		c.cfg.language = name
	}
}
