package interpreter

import (
	"errors"
	"fmt"

	"saltino/pkg/ast"
)

type ErrorKind int

const (
	UndefinedReference ErrorKind = iota
	NotCallable
	ArityMismatch
	TypeMismatch
	DivisionByZero
	ModuloByZero
	EmptyListAccess
	NegativeExponent
	NoEntryPoint
	InternalEngineError
)

var (
	ErrUndefinedReference = errors.New("undefined reference")
	ErrNotCallable        = errors.New("value is not callable")
	ErrArityMismatch      = errors.New("wrong number of arguments")
	ErrTypeMismatch       = errors.New("type mismatch")
	ErrDivisionByZero     = errors.New("division by zero")
	ErrModuloByZero       = errors.New("modulo by zero")
	ErrEmptyListAccess    = errors.New("empty list access")
	ErrNegativeExponent   = errors.New("negative exponent")
	ErrNoEntryPoint       = errors.New("no main function")
	ErrInternal           = errors.New("internal engine error")
	ErrMaxStepsExceeded   = errors.New("maximum steps exceeded")
)

var kindErrors = [...]error{
	UndefinedReference:  ErrUndefinedReference,
	NotCallable:         ErrNotCallable,
	ArityMismatch:       ErrArityMismatch,
	TypeMismatch:        ErrTypeMismatch,
	DivisionByZero:      ErrDivisionByZero,
	ModuloByZero:        ErrModuloByZero,
	EmptyListAccess:     ErrEmptyListAccess,
	NegativeExponent:    ErrNegativeExponent,
	NoEntryPoint:        ErrNoEntryPoint,
	InternalEngineError: ErrInternal,
}

var kindLabels = [...]string{
	UndefinedReference:  "UndefinedReference",
	NotCallable:         "NotCallable",
	ArityMismatch:       "ArityMismatch",
	TypeMismatch:        "TypeMismatch",
	DivisionByZero:      "DivisionByZero",
	ModuloByZero:        "ModuloByZero",
	EmptyListAccess:     "EmptyListAccess",
	NegativeExponent:    "NegativeExponent",
	NoEntryPoint:        "NoEntryPoint",
	InternalEngineError: "InternalEngineError",
}

func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(kindLabels) {
		return kindLabels[k]
	}

	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a runtime failure. Execution stops at the first one; it matches
// its kind's sentinel with errors.Is.
type Error struct {
	Kind    ErrorKind
	Message string
	Pos     ast.Position // zero when no source node applies
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s at %s", e.Message, e.Pos)
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	if e.Kind >= 0 && int(e.Kind) < len(kindErrors) {
		return kindErrors[e.Kind]
	}

	return nil
}

func newError(kind ErrorKind, pos ast.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// typeError reports an operand of the wrong kind for op
func typeError(op string, want string, got Value, pos ast.Position) *Error {
	return newError(TypeMismatch, pos, "'%s' expects %s, got %s", op, want, got.Kind)
}
