package resolver

import (
	"errors"
	"fmt"

	"saltino/pkg/ast"
)

type ErrorKind int

const (
	UndeclaredReference ErrorKind = iota // name not declared in any enclosing scope
	UnboundLocalUse                      // local variable read before its first assignment
)

var (
	ErrUndeclaredReference = errors.New("undeclared reference")
	ErrUnboundLocalUse     = errors.New("local variable used before assignment")
)

// Error is a static analysis failure. It matches its kind's sentinel with
// errors.Is.
type Error struct {
	Kind ErrorKind
	Name string
	Pos  ast.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Message(), e.Pos)
}

// Message describes the error without its position
func (e *Error) Message() string {
	switch e.Kind {
	case UnboundLocalUse:
		return fmt.Sprintf("local variable '%s' referenced before assignment", e.Name)
	default:
		return fmt.Sprintf("name '%s' is not defined", e.Name)
	}
}

func (e *Error) Unwrap() error {
	switch e.Kind {
	case UnboundLocalUse:
		return ErrUnboundLocalUse
	default:
		return ErrUndeclaredReference
	}
}

func (k ErrorKind) String() string {
	switch k {
	case UndeclaredReference:
		return "UndeclaredReference"
	case UnboundLocalUse:
		return "UnboundLocalUse"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}
