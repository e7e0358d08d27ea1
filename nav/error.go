package nav

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrRootNotFound       = NewError("root path not found")
	ErrMenuMissing        = NewError("menu file not found")
	ErrMenuRead           = NewError("menu file could not be read")
	ErrMenuSyntax         = NewError("menu file is not valid JSON")
	ErrMenuNotArray       = NewError("menu file does not contain a JSON array")
	ErrNoMainEntry        = NewError("no main entry (entry without link) in menu file")
	ErrDirCycle           = NewError("directory link leads back into its own path")
	ErrInvalidEntry       = NewError("invalid menu entry")
	ErrMissingName        = NewError("must provide name in at least one language")
	ErrTemplateRead       = NewError("template could not be read")
	ErrTemplateSyntax     = NewError("template is not a valid JSON object")
	ErrTemplateMissingKey = NewError("template does not contain an item_template entry")
	ErrTemplateFilter     = NewError("template item filter failed")
	ErrWriteGroup         = NewError("could not write group file")
	ErrWriteStructure     = NewError("could not write structure file")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// "<msg>: <err>", "<msg>", "<err>", or ""
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an Error with the same message, so that
// values derived from a sentinel with [Error.With] or [Error.Wrap] still
// match it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg != "" && t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// SyntaxError describes a JSON syntax error with its position in the input.
type SyntaxError struct {
	Line    int    // 1-based line of the offending byte
	Column  int    // 1-based column of the offending byte
	Snippet string // offending line with a marker below it
	Err     error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return "line " + strconv.Itoa(e.Line) +
		", column " + strconv.Itoa(e.Column) + ": " + e.Err.Error()
}

// Unwrap returns the underlying decoder error.
func (e *SyntaxError) Unwrap() error { return e.Err }

// positionError annotates a JSON decoding error with line and column when
// the decoder reports an offset. Other errors are returned unchanged.
func positionError(data []byte, err error) error {
	var se *json.SyntaxError
	if !errors.As(err, &se) {
		return err
	}

	offset := int(se.Offset)
	if offset > len(data) {
		offset = len(data)
	}

	// Offset points just past the offending byte.
	if offset > 0 {
		offset--
	}

	start := bytes.LastIndexByte(data[:offset], '\n') + 1
	end := bytes.IndexByte(data[offset:], '\n')

	if end < 0 {
		end = len(data)
	} else {
		end += offset
	}

	line := bytes.Count(data[:start], []byte{'\n'}) + 1
	col := offset - start + 1

	return &SyntaxError{
		Line:   line,
		Column: col,
		Snippet: string(data[start:end]) + "\n" +
			strings.Repeat(" ", col-1) + "^",
		Err: err,
	}
}
