package jsclean

import (
	"encoding/json"
	"sort"
	"strings"
)

// mapSpan relates a chunk of output text to its origin. Linear spans
// pass original bytes through one-to-one; non-linear spans are
// replacement text whose every byte maps to the start of the range it
// replaced.
type mapSpan struct {
	outStart int
	srcStart int
	length   int
	linear   bool
}

// PositionMap translates positions in cleaned output back to the
// original source at per-character granularity. Instances are built by
// the cleaner and are safe for concurrent reads.
type PositionMap struct {
	spans         []mapSpan
	srcLineStarts []int
	outLineStarts []int
	outLen        int
}

// Position is a location in the original source. Line is 1-based;
// Column is a 0-based byte offset within the line.
type Position struct {
	Line   int
	Column int
}

// Source translates a byte offset in the cleaned text to its original
// position. It reports false when offset is outside the output.
func (m *PositionMap) Source(offset int) (Position, bool) {
	if offset < 0 || offset >= m.outLen {
		return Position{}, false
	}

	i := sort.Search(len(m.spans), func(i int) bool {
		return m.spans[i].outStart > offset
	}) - 1
	sp := m.spans[i]

	srcOff := sp.srcStart
	if sp.linear {
		srcOff += offset - sp.outStart
	}
	return m.position(srcOff), true
}

// position converts an original byte offset to line/column.
func (m *PositionMap) position(srcOff int) Position {
	line := sort.Search(len(m.srcLineStarts), func(i int) bool {
		return m.srcLineStarts[i] > srcOff
	}) - 1
	return Position{Line: line + 1, Column: srcOff - m.srcLineStarts[line]}
}

// sourceMapV3 is the serialized Source Map revision 3 layout.
type sourceMapV3 struct {
	Version  int      `json:"version"`
	Sources  []string `json:"sources"`
	Names    []string `json:"names"`
	Mappings string   `json:"mappings"`
}

// SourceMap serializes the mapping as Source Map v3 JSON with one
// base64-VLQ segment per chunk per output line. source names the
// original file in the map's sources list.
func (m *PositionMap) SourceMap(source string) ([]byte, error) {
	var sb strings.Builder
	prevSrcLine, prevSrcCol := 0, 0

	for li := 0; li < len(m.outLineStarts); li++ {
		if li > 0 {
			sb.WriteByte(';')
		}

		lineStart := m.outLineStarts[li]
		lineEnd := m.outLen
		if li+1 < len(m.outLineStarts) {
			lineEnd = m.outLineStarts[li+1]
		}

		prevGenCol := 0
		first := true
		for _, sp := range m.spans {
			if sp.outStart >= lineEnd {
				break
			}
			if sp.outStart+sp.length <= lineStart {
				continue
			}

			segOut := sp.outStart
			if segOut < lineStart {
				segOut = lineStart
			}
			srcOff := sp.srcStart
			if sp.linear {
				srcOff += segOut - sp.outStart
			}
			pos := m.position(srcOff)
			srcLine, srcCol := pos.Line-1, pos.Column
			genCol := segOut - lineStart

			if !first {
				sb.WriteByte(',')
			}
			first = false
			appendVLQ(&sb, genCol-prevGenCol)
			appendVLQ(&sb, 0) // single source
			appendVLQ(&sb, srcLine-prevSrcLine)
			appendVLQ(&sb, srcCol-prevSrcCol)

			prevGenCol = genCol
			prevSrcLine, prevSrcCol = srcLine, srcCol
		}
	}

	return json.Marshal(sourceMapV3{
		Version:  3,
		Sources:  []string{source},
		Names:    []string{},
		Mappings: sb.String(),
	})
}

const vlqBase64 = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// appendVLQ writes v as a base64 variable-length quantity: sign bit in
// the lowest position, five value bits per digit, continuation in the
// sixth bit.
func appendVLQ(sb *strings.Builder, v int) {
	u := v << 1
	if v < 0 {
		u = (-v << 1) | 1
	}
	for {
		digit := u & 31
		u >>= 5
		if u != 0 {
			digit |= 32
		}
		sb.WriteByte(vlqBase64[digit])
		if u == 0 {
			return
		}
	}
}
