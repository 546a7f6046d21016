package interpreter

import "saltino/pkg/ast"

type FrameKind int

const (
	FrameCall   FrameKind = iota // one function activation
	FrameBlock                   // statement sequence
	FrameExpr                    // value-producing expression
	FrameCond                    // Boolean-producing condition
	FrameIf                      // if statement
	FrameAssign                  // assignment statement
	FrameReturn                  // return statement
)

var frameNames = [...]string{
	FrameCall:   "call",
	FrameBlock:  "block",
	FrameExpr:   "expression",
	FrameCond:   "condition",
	FrameIf:     "if",
	FrameAssign: "assignment",
	FrameReturn: "return",
}

func (k FrameKind) String() string {
	if k >= 0 && int(k) < len(frameNames) {
		return frameNames[k]
	}
	return "unknown"
}

// Frame is one pending evaluation on the explicit stack. A frame never
// recurses: it pushes a child and waits for the child's result to be
// delivered into Values (or Result, for blocks and activations).
type Frame struct {
	Kind   FrameKind
	Node   ast.Node
	Env    *Environment  // variables of the enclosing activation
	Fn     *ast.Function // FrameCall: function being executed
	Phase  int           // kind-specific progress marker
	Index  int           // FrameBlock: next statement
	Values []Value       // child results received so far
	Result Value
	Done   bool
}

func (f *Frame) complete(v Value) {
	f.Result = v
	f.Done = true
}

// received returns the number of child results delivered
func (f *Frame) received() int {
	return len(f.Values)
}

func (f *Frame) last() Value {
	return f.Values[len(f.Values)-1]
}
