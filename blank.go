package jsclean

import (
	"unicode/utf8"

	"github.com/alnah/go-jsclean/internal/jslex"
)

// blankComments overwrites filtered-out comments with spaces, keeping
// line terminators verbatim so every byte offset and line count in the
// rest of the file is undisturbed. It returns the blanked text, the
// comments that survived, and whether any byte changed.
//
// Invariant: len(blanked) == len(src), always.
func blankComments(src string, comments []jslex.Comment, filter CommentFilter) (string, []jslex.Comment, bool) {
	if filter.keepsEverything() {
		return src, comments, false
	}

	var buf []byte
	var kept []jslex.Comment
	for _, c := range comments {
		if filter.keep(c.Block, c.Text) {
			kept = append(kept, c)
			continue
		}
		if buf == nil {
			buf = []byte(src)
		}
		blankRange(buf, c.Start, c.End)
	}

	if buf == nil {
		return src, kept, false
	}
	blanked := string(buf)
	return blanked, kept, blanked != src
}

// blankRange replaces every rune in buf[start:end) that is not a line
// terminator with spaces, one per byte, so multi-byte runes keep their
// width and offsets stay stable.
func blankRange(buf []byte, start, end int) {
	for i := start; i < end; {
		r, size := utf8.DecodeRune(buf[i:end])
		if !isLineTerminator(r) {
			for j := 0; j < size; j++ {
				buf[i+j] = ' '
			}
		}
		i += size
	}
}

// isLineTerminator reports whether r is an ECMAScript LineTerminator:
// LF, CR, LS or PS. CRLF survives blanking as its two parts.
func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}
