// Package jslex adapts the chroma lexers to the occurrence streams the
// cleaning passes consume: every comment with its delimiter kind, inner
// text and byte range, and every other lexical token's byte range, in
// ascending order with no overlaps. This isolates the external lexer
// behind one type so callers never see how the grammar is walked.
package jslex

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// ErrSyntax is reported when the source cannot be lexed under the
// configured grammar. No occurrences are returned alongside it.
var ErrSyntax = errors.New("invalid syntax")

// Comment is a single lexical comment occurrence. Text is the inner
// text without delimiters; [Start,End) covers the delimiters too.
type Comment struct {
	Block      bool // true for /* */, false for line comments
	Text       string
	Start, End int
}

// Token is a non-comment lexical occurrence. The stream always ends
// with a zero-width end-of-file marker.
type Token struct {
	Start, End int
	EOF        bool
}

// Lexer scans ECMAScript-family source text. Instances are stateless
// and safe for concurrent use.
type Lexer struct {
	lexer chroma.Lexer
}

// Supported reports whether a chroma lexer is registered for name.
func Supported(name string) bool {
	return lexers.Get(name) != nil
}

// New returns a Lexer for the named grammar ("javascript",
// "typescript", "jsx", ...). Panics on an unknown name; gate user
// input with Supported.
func New(language string) *Lexer {
	lexer := lexers.Get(language)
	if lexer == nil {
		panic("jslex: unknown language " + language)
	}
	return &Lexer{lexer: chroma.Coalesce(lexer)}
}

// Scan lexes source and materializes both occurrence streams in one
// pass. Comments and tokens are ascending and non-overlapping; tokens
// cover every non-whitespace, non-comment span and end with an EOF
// marker. A lexing failure returns ErrSyntax and nil streams.
func (l *Lexer) Scan(source string) ([]Comment, []Token, error) {
	// EnsureLF must stay off: chroma would rewrite CRLF and every byte
	// offset after the first \r\n would drift from the input.
	it, err := l.lexer.Tokenise(&chroma.TokeniseOptions{State: "root", EnsureLF: false}, source)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	var comments []Comment
	var tokens []Token
	offset := 0

	for tok := it(); tok != chroma.EOF; tok = it() {
		value := tok.Value
		// chroma pads input that does not end in "\n" with a synthetic
		// newline, which can merge into the final token. Clamp values
		// to the real source so offsets never point past the input.
		if rest := len(source) - offset; len(value) > rest {
			value = value[:rest]
		}
		size := len(value)
		switch {
		case size == 0:
		case tok.Type == chroma.Error:
			line, col := locate(source, offset)
			return nil, nil, fmt.Errorf("%w: unexpected %q at line %d, column %d", ErrSyntax, value, line, col)
		case tok.Type.InCategory(chroma.Comment):
			comments = append(comments, parseComment(value, offset))
		case tok.Type.InSubCategory(chroma.LiteralString):
			// String, template and regex literals are taken whole:
			// their whitespace is content, not a gap.
			tokens = append(tokens, Token{Start: offset, End: offset + size})
		default:
			tokens = appendSpan(tokens, value, offset)
		}
		offset += size
	}

	if offset != len(source) {
		return nil, nil, fmt.Errorf("%w: lexer covered %d of %d bytes", ErrSyntax, offset, len(source))
	}

	tokens = append(tokens, Token{Start: len(source), End: len(source), EOF: true})
	return comments, tokens, nil
}

// parseComment classifies a comment occurrence by its delimiters.
// Values without JS delimiters (hashbangs, the <!-- HTML hack) are
// treated as line-style with the raw value as text.
func parseComment(value string, offset int) Comment {
	c := Comment{Start: offset, End: offset + len(value), Text: value}
	switch {
	case strings.HasPrefix(value, "//"):
		c.Text = value[2:]
	case strings.HasPrefix(value, "/*"):
		c.Block = true
		c.Text = strings.TrimSuffix(value[2:], "*/")
	}
	return c
}

// appendSpan records the non-whitespace core of a lexer token.
// Whitespace is trimmed from the edges only: interior whitespace (as in
// string and template literals) belongs to the token, never to a gap
// the compaction pass may rewrite.
func appendSpan(tokens []Token, value string, offset int) []Token {
	start := 0
	for start < len(value) {
		r, size := utf8.DecodeRuneInString(value[start:])
		if !isSpace(r) {
			break
		}
		start += size
	}
	if start == len(value) {
		return tokens // pure whitespace, part of a gap
	}

	end := len(value)
	for end > start {
		r, size := utf8.DecodeLastRuneInString(value[:end])
		if !isSpace(r) {
			break
		}
		end -= size
	}

	return append(tokens, Token{Start: offset + start, End: offset + end})
}

// isSpace matches the ECMAScript WhiteSpace and LineTerminator sets.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff'
}

// locate converts a byte offset to 1-based line and column for error
// messages.
func locate(source string, offset int) (line, col int) {
	line = 1
	lineStart := 0
	for i := 0; i < offset && i < len(source); i++ {
		if source[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return line, offset - lineStart + 1
}
