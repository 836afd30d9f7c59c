package deser

import (
	"errors"
	"fmt"

	"tileman/internal/tiles"
)

// Kind is the closed set of deserialization failures.
type Kind uint8

const (
	RegexMatchFailed Kind = iota + 1
	ContentsNotParsed
	DataConvertFailed
	TypeMismatch
	InvalidValue
	NoCategory
	IOError
	MissingFile
	MissingValue
	Unimplemented
)

func (k Kind) String() string {
	switch k {
	case RegexMatchFailed:
		return "RegexMatchFailed"
	case ContentsNotParsed:
		return "ContentsNotParsed"
	case DataConvertFailed:
		return "DataConvertFailed"
	case TypeMismatch:
		return "TypeMismatch"
	case InvalidValue:
		return "InvalidValue"
	case NoCategory:
		return "NoCategory"
	case IOError:
		return "IOError"
	case MissingFile:
		return "MissingFile"
	case MissingValue:
		return "MissingValue"
	case Unimplemented:
		return "Unimplemented"
	}
	return "Unknown"
}

// Error is a deserialization failure. Fields beyond Kind and Msg are set only
// by the kinds that carry them: Key/Expected/Actual for TypeMismatch, Tile for
// NoCategory.
type Error struct {
	Kind     Kind
	Msg      string
	Key      string
	Expected string
	Actual   string
	Tile     *tiles.TileInfo
}

func (e *Error) Error() string {
	switch e.Kind {
	case TypeMismatch:
		return fmt.Sprintf("type mismatch for %q: expected %s, got %s", e.Key, e.Expected, e.Actual)
	case NoCategory:
		if e.Tile != nil {
			return fmt.Sprintf("tile %q has no category", e.Tile.Name)
		}
	}
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

// Is matches any *Error of the same kind, so errors.Is(err, deser.ErrMissingFile) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Kind sentinels for errors.Is.
var (
	ErrRegexMatchFailed  = &Error{Kind: RegexMatchFailed}
	ErrContentsNotParsed = &Error{Kind: ContentsNotParsed}
	ErrDataConvertFailed = &Error{Kind: DataConvertFailed}
	ErrTypeMismatch      = &Error{Kind: TypeMismatch}
	ErrInvalidValue      = &Error{Kind: InvalidValue}
	ErrNoCategory        = &Error{Kind: NoCategory}
	ErrIO                = &Error{Kind: IOError}
	ErrMissingFile       = &Error{Kind: MissingFile}
	ErrMissingValue      = &Error{Kind: MissingValue}
	ErrUnimplemented     = &Error{Kind: Unimplemented}
)

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func typeMismatch(key, expected, actual string) *Error {
	return &Error{Kind: TypeMismatch, Key: key, Expected: expected, Actual: actual}
}

// IOFailure wraps a collaborator IO failure as a deserialization error.
func IOFailure(path string, err error) *Error {
	return newError(IOError, "%s: %v", path, err)
}

// FileMissing reports a document that the collaborator could not find.
func FileMissing(path string) *Error {
	return newError(MissingFile, "%s", path)
}

// AsError extracts the *Error from err, if any.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// ErroredLine is one entry of the append-only error log.
type ErroredLine struct {
	LineNo int    `json:"line" yaml:"line"` // 1-based; 0 when not tied to a line
	Line   string `json:"text" yaml:"text"`
	Err    *Error `json:"-" yaml:"-"`
}
