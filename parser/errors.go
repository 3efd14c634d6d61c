package parser

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax            = errors.New("malformed markup")
	ErrMalformed         = errors.New("unbalanced element nesting")
	ErrMissingAttribute  = errors.New("missing required attribute")
	ErrMissingName       = errors.New("missing name")
	ErrInvalidType       = errors.New("invalid type")
	ErrInvalidPointer    = errors.New("invalid pointer type")
	ErrInvalidFeature    = errors.New("invalid feature")
	ErrDuplicateConstant = errors.New("duplicate constant")
)

// Position is a location in the registry document. Zero values mean the
// location is unknown.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	switch {
	case p.Line == 0 && p.File == "":
		return ""
	case p.Line == 0:
		return p.File
	case p.File == "":
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Error is a fault that aborted parsing. Err is one of the sentinel errors
// above, usually wrapped with detail.
type Error struct {
	Pos Position
	Err error
}

func (e *Error) Error() string {
	if pos := e.Pos.String(); pos != "" {
		return pos + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func faultf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
