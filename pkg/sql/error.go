package sql

import (
	"errors"
	"fmt"

	"modernc.org/sqlite"
)

// Kind tells at which stage an export failed. A Kind is itself an error so
// that errors.Is(err, KindOpen) works on any *Error.
type Kind int

const (
	KindOpen Kind = iota + 1
	KindQuery
	KindSchema
)

func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindQuery:
		return "query"
	case KindSchema:
		return "schema"
	}
	return "unknown"
}

func (k Kind) Error() string {
	return k.String() + " error"
}

// Error is the error returned by every database operation of this module
type Error struct {
	Kind Kind
	// Code is the SQLite extended result code, 0 when the cause is not an
	// engine error
	// https://www.sqlite.org/rescode.html
	Code int
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// NewError returns an error without an underlying cause
func NewError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func newError(kind Kind, hint string, err error) *Error {
	e := &Error{
		Kind: kind,
		Msg:  fmt.Sprintf("%s, %s", hint, err.Error()),
		Err:  err,
	}

	var sqliteError *sqlite.Error
	if errors.As(err, &sqliteError) {
		e.Code = sqliteError.Code()
	}
	return e
}

// Wrap annotates a database error with the stage it happened at while
// keeping its kind and code, other errors become kind
func Wrap(kind Kind, hint string, err error) *Error {
	var dbErr *Error
	if errors.As(err, &dbErr) {
		return &Error{
			Kind: dbErr.Kind,
			Code: dbErr.Code,
			Msg:  fmt.Sprintf("%s, %s", hint, dbErr.Msg),
			Err:  dbErr.Err,
		}
	}
	return newError(kind, hint, err)
}
