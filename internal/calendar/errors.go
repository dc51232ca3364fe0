package calendar

import "errors"

var (
	// ErrInvalidFormat marks input that could not be parsed as a date or integer.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrInvalidRange marks input that parsed but falls outside the allowed bounds.
	ErrInvalidRange = errors.New("invalid range")
)

// Error describes a rejected window parameter. It matches ErrInvalidFormat or
// ErrInvalidRange under errors.Is.
type Error struct {
	Kind  error
	Field string
	Msg   string
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func formatError(field, msg string) error {
	return &Error{Kind: ErrInvalidFormat, Field: field, Msg: msg}
}

func rangeError(field, msg string) error {
	return &Error{Kind: ErrInvalidRange, Field: field, Msg: msg}
}
