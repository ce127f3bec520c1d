// Package sqlerr defines the error taxonomy surfaced at the library
// boundary: LexError, ParseError, VisitError, and PrintError. Every public
// entry point returns one of these (or nil), each carrying a zero-based
// byte offset into the source text and a short message.
package sqlerr

import (
	"fmt"

	"github.com/juju/errors"
)

// LexError reports a failure to tokenize: unterminated string, unterminated
// block comment, invalid numeric literal, or unrecognized character.
type LexError struct {
	Offset  int
	Reason  string
	cause   error
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at offset %d: %s", e.Offset, e.Reason)
}

func (e *LexError) Unwrap() error { return e.cause }

// NewLexError builds a LexError at offset with reason, annotating the
// causal chain so errors.Trace/errors.Cause still reach the original call
// site for callers that walk the chain with juju/errors.
func NewLexError(offset int, reason string) error {
	e := &LexError{Offset: offset, Reason: reason}
	e.cause = errors.New(e.Error())
	return errors.Trace(e)
}

// ParseError reports a syntax failure: unexpected token, unexpected
// end-of-input, missing keyword, malformed tuple, unknown frame boundary.
type ParseError struct {
	Offset   int
	Expected string
	Found    string
	cause    error
}

func (e *ParseError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("parse error at offset %d: unexpected %s", e.Offset, e.Found)
	}
	return fmt.Sprintf("parse error at offset %d: expected %s, found %s", e.Offset, e.Expected, e.Found)
}

func (e *ParseError) Unwrap() error { return e.cause }

// NewParseError builds a ParseError, annotated for errors.Cause/errors.Trace.
func NewParseError(offset int, expected, found string) error {
	e := &ParseError{Offset: offset, Expected: expected, Found: found}
	e.cause = errors.New(e.Error())
	return errors.Trace(e)
}

// NewParseErrorf builds a ParseError from a free-form message, for call
// sites that don't cleanly decompose into expected/found.
func NewParseErrorf(offset int, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	e := &ParseError{Offset: offset, Found: msg}
	e.cause = errors.New(fmt.Sprintf("parse error at offset %d: %s", offset, msg))
	return errors.Trace(e)
}

// VisitError is reserved for user-extended visitors; no built-in visitor
// raises it.
type VisitError struct {
	Offset int
	Reason string
	cause  error
}

func (e *VisitError) Error() string {
	return fmt.Sprintf("visit error at offset %d: %s", e.Offset, e.Reason)
}

func (e *VisitError) Unwrap() error { return e.cause }

// NewVisitError builds a VisitError for use by custom visitor extensions.
func NewVisitError(offset int, reason string) error {
	e := &VisitError{Offset: offset, Reason: reason}
	e.cause = errors.New(e.Error())
	return errors.Trace(e)
}

// PrintError reports an exhausted container rule in the print-token
// pipeline. It should never occur for a well-formed AST; seeing one at a
// call site indicates an internal bug in a SqlPrintTokenParser container
// handler.
type PrintError struct {
	Offset int
	Reason string
	cause  error
}

func (e *PrintError) Error() string {
	return fmt.Sprintf("print error at offset %d: %s", e.Offset, e.Reason)
}

func (e *PrintError) Unwrap() error { return e.cause }

// NewPrintError builds a PrintError.
func NewPrintError(offset int, reason string) error {
	e := &PrintError{Offset: offset, Reason: reason}
	e.cause = errors.New(e.Error())
	return errors.Trace(e)
}
