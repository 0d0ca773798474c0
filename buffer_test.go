package jsclean

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestTextBufferRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   string
		edits []edit
		want  string
	}{
		{
			name: "no edits pass the source through",
			src:  "hello world",
			want: "hello world",
		},
		{
			name:  "single replacement",
			src:   "hello world",
			edits: []edit{{start: 5, end: 6, repl: "---"}},
			want:  "hello---world",
		},
		{
			name: "deletion at both ends",
			src:  "  middle  ",
			edits: []edit{
				{start: 0, end: 2, repl: ""},
				{start: 8, end: 10, repl: ""},
			},
			want: "middle",
		},
		{
			name: "adjacent edits",
			src:  "abcd",
			edits: []edit{
				{start: 1, end: 2, repl: "X"},
				{start: 2, end: 3, repl: "Y"},
			},
			want: "aXYd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := newTextBuffer(tt.src)
			for _, e := range tt.edits {
				if err := buf.overwrite(e.start, e.end, e.repl); err != nil {
					t.Fatalf("overwrite(%d, %d, %q) error = %v", e.start, e.end, e.repl, err)
				}
			}
			if got := buf.render(); got != tt.want {
				t.Errorf("render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTextBufferOverwriteErrors(t *testing.T) {
	t.Parallel()

	t.Run("negative start", func(t *testing.T) {
		t.Parallel()

		buf := newTextBuffer("abc")
		if err := buf.overwrite(-1, 2, ""); !errors.Is(err, ErrEditOutOfBounds) {
			t.Errorf("error = %v, want ErrEditOutOfBounds", err)
		}
	})

	t.Run("end past source", func(t *testing.T) {
		t.Parallel()

		buf := newTextBuffer("abc")
		if err := buf.overwrite(0, 4, ""); !errors.Is(err, ErrEditOutOfBounds) {
			t.Errorf("error = %v, want ErrEditOutOfBounds", err)
		}
	})

	t.Run("overlapping ranges", func(t *testing.T) {
		t.Parallel()

		buf := newTextBuffer("abcdef")
		if err := buf.overwrite(0, 3, "X"); err != nil {
			t.Fatalf("first overwrite error = %v", err)
		}
		if err := buf.overwrite(2, 5, "Y"); !errors.Is(err, ErrOverlappingEdits) {
			t.Errorf("error = %v, want ErrOverlappingEdits", err)
		}
	})
}

func TestTextBufferDirty(t *testing.T) {
	t.Parallel()

	buf := newTextBuffer("abc\n")
	if buf.dirty() {
		t.Error("fresh buffer dirty() = true, want false")
	}

	// Identical replacement must not mark the buffer dirty.
	if err := buf.overwrite(3, 4, "\n"); err != nil {
		t.Fatalf("overwrite error = %v", err)
	}
	if buf.dirty() {
		t.Error("identical replacement marked buffer dirty")
	}
	if got := buf.render(); got != "abc\n" {
		t.Errorf("render() = %q, want %q", got, "abc\n")
	}

	if err := buf.overwrite(0, 1, "x"); err != nil {
		t.Fatalf("overwrite error = %v", err)
	}
	if !buf.dirty() {
		t.Error("real edit left buffer clean")
	}
}

func TestLineStarts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []int
	}{
		{name: "empty", text: "", want: []int{0}},
		{name: "no terminator", text: "abc", want: []int{0}},
		{name: "LF", text: "a\nb\n", want: []int{0, 2, 4}},
		{name: "CRLF counts once", text: "a\r\nb", want: []int{0, 3}},
		{name: "lone CR", text: "a\rb\rc", want: []int{0, 2, 4}},
		{name: "mixed", text: "a\r\nb\rc\nd", want: []int{0, 3, 5, 7}},
		{name: "line separator", text: "a\u2028b", want: []int{0, 4}},
		{name: "paragraph separator", text: "a\u2029b", want: []int{0, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := lineStarts(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("lineStarts(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestRenderMapSource(t *testing.T) {
	t.Parallel()

	// "ab\ncd" with the terminator doubled: linear text around a
	// replacement whose bytes all map back to the replaced range start.
	buf := newTextBuffer("ab\ncd")
	if err := buf.overwrite(2, 3, "\n\n"); err != nil {
		t.Fatalf("overwrite error = %v", err)
	}

	m := buf.renderMap()
	if got := buf.render(); got != "ab\n\ncd" {
		t.Fatalf("render() = %q, want %q", got, "ab\n\ncd")
	}

	tests := []struct {
		name   string
		offset int
		want   Position
		ok     bool
	}{
		{name: "before the edit", offset: 0, want: Position{Line: 1, Column: 0}, ok: true},
		{name: "last linear byte", offset: 1, want: Position{Line: 1, Column: 1}, ok: true},
		{name: "first replacement byte", offset: 2, want: Position{Line: 1, Column: 2}, ok: true},
		{name: "second replacement byte maps to range start", offset: 3, want: Position{Line: 1, Column: 2}, ok: true},
		{name: "after the edit", offset: 4, want: Position{Line: 2, Column: 0}, ok: true},
		{name: "last byte", offset: 5, want: Position{Line: 2, Column: 1}, ok: true},
		{name: "past the output", offset: 6, ok: false},
		{name: "negative", offset: -1, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := m.Source(tt.offset)
			if ok != tt.ok {
				t.Fatalf("Source(%d) ok = %v, want %v", tt.offset, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Source(%d) = %+v, want %+v", tt.offset, got, tt.want)
			}
		})
	}
}

func TestRenderMapNoEdits(t *testing.T) {
	t.Parallel()

	buf := newTextBuffer("x\ny\n")
	m := buf.renderMap()

	pos, ok := m.Source(2)
	if !ok {
		t.Fatal("Source(2) ok = false, want true")
	}
	if want := (Position{Line: 2, Column: 0}); pos != want {
		t.Errorf("Source(2) = %+v, want %+v", pos, want)
	}
}

func TestSourceMap(t *testing.T) {
	t.Parallel()

	// Squeeze "a\n\n\nb\n" to "a\nb\n": one replaced terminator run.
	buf := newTextBuffer("a\n\n\nb\n")
	if err := buf.overwrite(1, 4, "\n"); err != nil {
		t.Fatalf("overwrite error = %v", err)
	}
	if got := buf.render(); got != "a\nb\n" {
		t.Fatalf("render() = %q, want %q", got, "a\nb\n")
	}

	data, err := buf.renderMap().SourceMap("in.js")
	if err != nil {
		t.Fatalf("SourceMap() error = %v", err)
	}

	want := `{"version":3,"sources":["in.js"],"names":[],"mappings":"AAAA,CAAC;AAGD;"}`
	if string(data) != want {
		t.Errorf("SourceMap() = %s, want %s", data, want)
	}
}

func TestAppendVLQ(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v    int
		want string
	}{
		{0, "A"},
		{1, "C"},
		{-1, "D"},
		{15, "e"},
		{16, "gB"},
		{-16, "hB"},
		{123, "2H"},
	}

	for _, tt := range tests {
		var sb strings.Builder
		appendVLQ(&sb, tt.v)
		if got := sb.String(); got != tt.want {
			t.Errorf("appendVLQ(%d) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
