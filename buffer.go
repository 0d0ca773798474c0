package jsclean

import (
	"fmt"
	"strings"
)

// edit records that [start,end) of the original text becomes repl.
type edit struct {
	start, end int
	repl       string
}

// textBuffer is an editable view over the original text. Edits are
// recorded against original offsets, must not overlap, and are applied
// in one pass at render time; any region not covered by an edit passes
// through unchanged. Because edits never shift each other, reported
// positions cannot desynchronize from the text.
type textBuffer struct {
	src   string
	edits []edit // non-overlapping, ordered by start
}

func newTextBuffer(src string) *textBuffer {
	return &textBuffer{src: src}
}

// overwrite records that [start,end) becomes repl. Ranges must arrive
// in ascending order and must not overlap a previous edit; a violation
// is a bug in the calling pass, reported rather than silently applied.
// A replacement identical to the original text records nothing, so
// dirty stays an exact "something actually changed" signal.
func (b *textBuffer) overwrite(start, end int, repl string) error {
	if start < 0 || end < start || end > len(b.src) {
		return fmt.Errorf("%w: [%d,%d) of %d bytes", ErrEditOutOfBounds, start, end, len(b.src))
	}
	if n := len(b.edits); n > 0 && start < b.edits[n-1].end {
		prev := b.edits[n-1]
		return fmt.Errorf("%w: [%d,%d) follows [%d,%d)", ErrOverlappingEdits, start, end, prev.start, prev.end)
	}
	if b.src[start:end] == repl {
		return nil
	}
	b.edits = append(b.edits, edit{start: start, end: end, repl: repl})
	return nil
}

// dirty reports whether any edit actually changed the text.
func (b *textBuffer) dirty() bool {
	return len(b.edits) > 0
}

// render produces the final text with all edits applied.
func (b *textBuffer) render() string {
	if len(b.edits) == 0 {
		return b.src
	}

	var sb strings.Builder
	sb.Grow(len(b.src))
	cursor := 0
	for _, e := range b.edits {
		sb.WriteString(b.src[cursor:e.start])
		sb.WriteString(e.repl)
		cursor = e.end
	}
	sb.WriteString(b.src[cursor:])
	return sb.String()
}

// renderMap builds the position map for the rendered text. Mapping
// generation walks the whole text, so it is only done on request.
func (b *textBuffer) renderMap() *PositionMap {
	spans := make([]mapSpan, 0, 2*len(b.edits)+1)
	srcCursor, outCursor := 0, 0

	appendSpan := func(srcStart, length int, linear bool) {
		if length == 0 {
			return
		}
		spans = append(spans, mapSpan{
			outStart: outCursor,
			srcStart: srcStart,
			length:   length,
			linear:   linear,
		})
		outCursor += length
	}

	for _, e := range b.edits {
		appendSpan(srcCursor, e.start-srcCursor, true)
		appendSpan(e.start, len(e.repl), false)
		srcCursor = e.end
	}
	appendSpan(srcCursor, len(b.src)-srcCursor, true)

	return &PositionMap{
		spans:         spans,
		srcLineStarts: lineStarts(b.src),
		outLineStarts: lineStarts(b.render()),
		outLen:        outCursor,
	}
}

// lineStarts returns the byte offset of every line start, handling LF,
// CRLF, lone CR, LS and PS terminators. Offset 0 is always a line start.
func lineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); {
		switch text[i] {
		case '\n':
			i++
			starts = append(starts, i)
		case '\r':
			i++
			if i < len(text) && text[i] == '\n' {
				i++
			}
			starts = append(starts, i)
		case 0xe2:
			// LS (e2 80 a8) and PS (e2 80 a9)
			if i+2 < len(text) && text[i+1] == 0x80 && (text[i+2] == 0xa8 || text[i+2] == 0xa9) {
				i += 3
				starts = append(starts, i)
			} else {
				i++
			}
		default:
			i++
		}
	}
	return starts
}
