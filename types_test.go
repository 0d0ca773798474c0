package jsclean

import (
	"errors"
	"testing"
)

func TestEOLSequence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		style   string
		want    string
		wantErr bool
	}{
		{style: EOLUnix, want: "\n"},
		{style: EOLMac, want: "\r"},
		{style: EOLWindows, want: "\r\n"},
		{style: "dos", wantErr: true},
		{style: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			t.Parallel()

			got, err := EOLSequence(tt.style)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidEOL) {
					t.Errorf("error = %v, want ErrInvalidEOL", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("EOLSequence(%q) error = %v", tt.style, err)
			}
			if got != tt.want {
				t.Errorf("EOLSequence(%q) = %q, want %q", tt.style, got, tt.want)
			}
		})
	}
}

func TestValidateMaxEmptyLines(t *testing.T) {
	t.Parallel()

	for _, n := range []int{KeepAllLines, 0, 1, 100} {
		if err := ValidateMaxEmptyLines(n); err != nil {
			t.Errorf("ValidateMaxEmptyLines(%d) = %v, want nil", n, err)
		}
	}
	if err := ValidateMaxEmptyLines(-2); !errors.Is(err, ErrInvalidMaxEmptyLines) {
		t.Errorf("ValidateMaxEmptyLines(-2) = %v, want ErrInvalidMaxEmptyLines", err)
	}
}

func TestOptionsPanicOnMisuse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		call func()
	}{
		{name: "WithMaxEmptyLines below -1", call: func() { WithMaxEmptyLines(-2) }},
		{name: "WithEOL unknown style", call: func() { WithEOL("dos") }},
		{name: "WithLanguage unknown grammar", call: func() { WithLanguage("not-a-language") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				if recover() == nil {
					t.Error("expected panic, got none")
				}
			}()
			tt.call()
		})
	}
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	c := New()
	if c.cfg.maxEmptyLines != 0 {
		t.Errorf("maxEmptyLines = %d, want 0", c.cfg.maxEmptyLines)
	}
	if c.cfg.eol != "\n" {
		t.Errorf("eol = %q, want %q", c.cfg.eol, "\n")
	}
	if !c.cfg.sourceMap {
		t.Error("sourceMap = false, want true")
	}
	if c.cfg.language != "javascript" {
		t.Errorf("language = %q, want %q", c.cfg.language, "javascript")
	}
	if c.tokenizer == nil {
		t.Error("tokenizer = nil, want default lexer")
	}
}
