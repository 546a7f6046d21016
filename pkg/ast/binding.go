package ast

import "fmt"

// BindingKind classifies what a name is bound to.
type BindingKind int

const (
	KindVariable BindingKind = iota
	KindParameter
	KindFunction
)

var bindingKindNames = [...]string{
	KindVariable:  "variable",
	KindParameter: "parameter",
	KindFunction:  "function",
}

func (k BindingKind) String() string {
	if k >= 0 && int(k) < len(bindingKindNames) {
		return bindingKindNames[k]
	}

	return fmt.Sprintf("BindingKind(%d)", int(k))
}

// A Binding ties one declaration of a name in one scope to a unique id.
// Bindings are created by the resolver; the interpreter keys activation
// environments by ID.
type Binding struct {
	Kind        BindingKind
	Name        string // declared name
	Unique      string // name_scope_index, for diagnostics
	ID          int    // unique within one resolver run
	Depth       int    // depth of the declaring scope, 0 is global
	Initialized bool
}

func (b *Binding) String() string {
	return fmt.Sprintf("%s %s#%d", b.Kind, b.Unique, b.ID)
}
