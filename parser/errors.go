package parser

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a parse-time error. Never use a catch-all string —
// every failure mode the grammar can hit gets its own tag so callers can
// switch on it.
type ErrorKind int

const (
	ErrorSyntax ErrorKind = iota
	ErrorDuplicateSymbol
	ErrorUndefinedSymbol
	ErrorCircularConstant
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorSyntax:
		return "SyntaxError"
	case ErrorDuplicateSymbol:
		return "DuplicateSymbol"
	case ErrorUndefinedSymbol:
		return "UndefinedSymbol"
	case ErrorCircularConstant:
		return "CircularConstant"
	default:
		return "UnknownError"
	}
}

// Error is one diagnostic raised during tokenizing, parsing or constant
// resolution.
type Error struct {
	Pos     Position
	Kind    ErrorKind
	Message string
	Context string
}

func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s:%d:%d: %s: %s (%s)", e.Pos.Filename, e.Pos.Line, e.Pos.Column, e.Kind, e.Message, e.Context)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename, e.Pos.Line, e.Pos.Column, e.Kind, e.Message)
}

// NewError builds an Error with no extra context.
func NewError(pos Position, kind ErrorKind, message string) *Error {
	return &Error{Pos: pos, Kind: kind, Message: message}
}

// NewErrorWithContext builds an Error carrying the offending source text.
func NewErrorWithContext(pos Position, kind ErrorKind, message, context string) *Error {
	return &Error{Pos: pos, Kind: kind, Message: message, Context: context}
}

// ErrorList accumulates every error seen while processing a source file, so
// a caller can report all of them at once instead of stopping at the first.
type ErrorList struct {
	Errors []*Error
}

func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

func (el *ErrorList) Error() string {
	parts := make([]string, len(el.Errors))
	for i, e := range el.Errors {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "\n")
}
