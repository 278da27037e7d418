package internal

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	ArgumentError ErrorKind = iota
	InputError
	LexicalError
	SyntaxError
	ReservedIdentifierError
	MissingEntryPointError
	UndefinedReferenceError
	ArityError
	// A variable assigned under a name already bound as a parameter. It's a kind of redefinition,
	// but reported with its own exit code.
	CollisionError
	RedefinitionError
	InternalError
)

var errorKindNames = map[ErrorKind]string{
	ArgumentError:           "Argument",
	InputError:              "Input",
	LexicalError:            "Lexical",
	SyntaxError:             "Syntax",
	ReservedIdentifierError: "Syntax",
	MissingEntryPointError:  "Semantic",
	UndefinedReferenceError: "Semantic",
	ArityError:              "Semantic",
	CollisionError:          "Semantic",
	RedefinitionError:       "Semantic",
	InternalError:           "Internal",
}

var errorKindExitCodes = map[ErrorKind]int{
	ArgumentError:           10,
	InputError:              11,
	LexicalError:            21,
	SyntaxError:             22,
	ReservedIdentifierError: 22,
	MissingEntryPointError:  31,
	UndefinedReferenceError: 32,
	ArityError:              33,
	CollisionError:          34,
	RedefinitionError:       35,
	InternalError:           99,
}

func (kind ErrorKind) String() string {
	name, ok := errorKindNames[kind]
	if !ok {
		return "Internal"
	}
	return name
}

// ExitCode is the process status reported for this kind of error.
func (kind ErrorKind) ExitCode() int {
	code, ok := errorKindExitCodes[kind]
	if !ok {
		return errorKindExitCodes[InternalError]
	}
	return code
}

// Error is the single error type produced by every phase. Line is 0 when no source position applies.
type Error struct {
	Kind ErrorKind
	Line int
	Msg  string
}

func (err *Error) Error() string {
	if err.Line > 0 {
		return fmt.Sprintf("%s error (%d): line %d: %s", err.Kind, err.Kind.ExitCode(), err.Line, err.Msg)
	}
	return fmt.Sprintf("%s error (%d): %s", err.Kind, err.Kind.ExitCode(), err.Msg)
}

func newError(kind ErrorKind, line int, format string, msg ...interface{}) error {
	return &Error{Kind: kind, Line: line, Msg: fmt.Sprintf(format, msg...)}
}

// KindOf returns the kind carried by err, if err is (or wraps) an *Error.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return InternalError, false
}

// ExitCode maps err to a process status. nil maps to 0, foreign errors to the internal error code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	kind, _ := KindOf(err)
	return kind.ExitCode()
}
