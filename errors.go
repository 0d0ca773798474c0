package jsclean

import (
	"errors"

	"github.com/alnah/go-jsclean/internal/jslex"
)

// Sentinel errors for library operations.
var (
	// Comment filter configuration errors.
	ErrUnknownPreset  = errors.New("unknown comment filter preset")
	ErrInvalidPattern = errors.New("invalid comment filter pattern")

	// Cleaner configuration errors.
	ErrInvalidEOL           = errors.New("invalid line-ending style")
	ErrInvalidMaxEmptyLines = errors.New("invalid max empty lines")

	// ErrSyntax is reported when the input cannot be lexed under the
	// configured grammar. No partial result is produced.
	ErrSyntax = jslex.ErrSyntax

	// Buffer invariant violations. These indicate a bug in the edit
	// passes, never a problem with the input.
	ErrOverlappingEdits = errors.New("overlapping edit ranges")
	ErrEditOutOfBounds  = errors.New("edit range out of bounds")
)
