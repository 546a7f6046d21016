package ast

import "fmt"

type Op int

const (
	OpInvalid Op = iota

	Add  // +
	Sub  // -
	Mul  // *
	Div  // /
	Mod  // %
	Pow  // ^
	Cons // ::

	Plus // unary +
	Neg  // unary -
	Head // head
	Tail // tail

	And // and
	Or  // or
	Not // !

	Eq // ==
	Ne // !=
	Lt // <
	Le // <=
	Gt // >
	Ge // >=
)

var opNames = [...]string{
	OpInvalid: "invalid",
	Add:       "+",
	Sub:       "-",
	Mul:       "*",
	Div:       "/",
	Mod:       "%",
	Pow:       "^",
	Cons:      "::",
	Plus:      "+",
	Neg:       "-",
	Head:      "head",
	Tail:      "tail",
	And:       "and",
	Or:        "or",
	Not:       "!",
	Eq:        "==",
	Ne:        "!=",
	Lt:        "<",
	Le:        "<=",
	Gt:        ">",
	Ge:        ">=",
}

// String returns the source spelling of the operator
func (o Op) String() string {
	if o >= 0 && int(o) < len(opNames) {
		return opNames[o]
	}

	return fmt.Sprintf("Op(%d)", int(o))
}

// IsComparison reports whether o is a relational operator
func (o Op) IsComparison() bool {
	return o >= Eq && o <= Ge
}
