package jsclean

import (
	"fmt"
	"regexp"
	"strings"
)

// Comment filters match against a classification marker: the comment's
// delimiter kind ('*' for block comments, '/' for line comments)
// concatenated with its inner text. A comment survives blanking iff at
// least one active pattern matches its marker.
//
// Preset patterns, compiled once at startup.
var presetPatterns = map[string]*regexp.Regexp{
	// Comments carrying an explicit legal or engine directive.
	"license": regexp.MustCompile(`@license\b`),
	"some":    regexp.MustCompile(`@(?:license|preserve|cc_on)\b`),

	// JSDoc blocks: "/**" followed by prose, then an annotation tag.
	"jsdoc": regexp.MustCompile(`^\*\*[^@]*@[A-Za-z]`),

	// Linter and coverage directives, anchored at the marker start.
	"jslint":   regexp.MustCompile(`^[*/]\s*jslint\b`),
	"jshint":   regexp.MustCompile(`^[*/]\s*jshint\b`),
	"eslint":   regexp.MustCompile(`^[*/]\s*eslint\b`),
	"jscs":     regexp.MustCompile(`^[*/]\s*jscs:`),
	"istanbul": regexp.MustCompile(`^[*/]\s*istanbul\s`),

	// Triple-slash directives: "/// <reference ...>".
	"ts3s": regexp.MustCompile(`^//\s*<reference\b`),

	// Source map pragmas: "//# sourceMappingURL=" and the legacy "//@"
	// forms, including "sourceURL=". Exactly one whitespace after the
	// sigil, as emitted by compilers.
	"srcmaps": regexp.MustCompile(`^/[#@]\ssource(?:Mapping)?URL=`),
}

// DefaultPresets are applied when no filter is configured: legal and
// engine directives, linter directives, triple-slash references, and
// source map pragmas all survive by default.
var DefaultPresets = []string{"some", "eslint", "ts3s", "srcmaps"}

// CommentFilter decides which comments survive blanking.
// The zero value keeps nothing; use the constructors.
type CommentFilter struct {
	keepAll  bool
	dropAll  bool
	patterns []*regexp.Regexp
}

// KeepAll returns a filter preserving every comment. The blanking pass
// is skipped entirely under this filter.
func KeepAll() CommentFilter {
	return CommentFilter{keepAll: true}
}

// KeepNone returns a filter blanking every comment.
func KeepNone() CommentFilter {
	return CommentFilter{dropAll: true}
}

// KeepMatching returns a filter preserving comments whose marker matches
// at least one of the given patterns, tested in order.
func KeepMatching(patterns ...*regexp.Regexp) CommentFilter {
	return CommentFilter{patterns: patterns}
}

// KeepPresets returns a filter combining named presets.
// Unknown names fail fast with ErrUnknownPreset, before any text is
// touched.
func KeepPresets(names ...string) (CommentFilter, error) {
	patterns := make([]*regexp.Regexp, 0, len(names))
	for _, name := range names {
		re, ok := presetPatterns[name]
		if !ok {
			return CommentFilter{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
		}
		patterns = append(patterns, re)
	}
	return CommentFilter{patterns: patterns}, nil
}

// DefaultFilter returns the filter used when none is configured,
// combining DefaultPresets.
func DefaultFilter() CommentFilter {
	f, err := KeepPresets(DefaultPresets...)
	if err != nil {
		panic("jsclean: " + err.Error()) // preset table is static
	}
	return f
}

// ParseCommentFilter builds a filter from configuration strings.
// Each spec is "all", "none", a preset name, or a /.../ regexp literal.
// An empty list yields the default filter.
func ParseCommentFilter(specs []string) (CommentFilter, error) {
	if len(specs) == 0 {
		return DefaultFilter(), nil
	}

	var patterns []*regexp.Regexp
	for _, spec := range specs {
		switch {
		case spec == "all" || spec == "true":
			return KeepAll(), nil
		case spec == "none" || spec == "false":
			return KeepNone(), nil
		case len(spec) > 1 && strings.HasPrefix(spec, "/") && strings.HasSuffix(spec, "/"):
			re, err := regexp.Compile(spec[1 : len(spec)-1])
			if err != nil {
				return CommentFilter{}, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
			}
			patterns = append(patterns, re)
		default:
			re, ok := presetPatterns[spec]
			if !ok {
				return CommentFilter{}, fmt.Errorf("%w: %q", ErrUnknownPreset, spec)
			}
			patterns = append(patterns, re)
		}
	}
	return CommentFilter{patterns: patterns}, nil
}

// keep reports whether a comment survives under the filter.
func (f CommentFilter) keep(block bool, text string) bool {
	if f.keepAll {
		return true
	}
	if f.dropAll {
		return false
	}

	marker := "/"
	if block {
		marker = "*"
	}
	marker += text

	for _, re := range f.patterns {
		if re.MatchString(marker) {
			return true
		}
	}
	return false
}

// keepsEverything reports whether blanking can be skipped outright.
func (f CommentFilter) keepsEverything() bool {
	return f.keepAll
}
