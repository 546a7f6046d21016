package resolver

import (
	"fmt"
	"strings"

	"saltino/pkg/ast"
)

// Scope is one node of the lexical scope tree. Scopes are created during
// resolution and never change afterwards.
type Scope struct {
	Name     string // "global", "function f" or "block"
	Index    int    // creation order within one resolver run
	Depth    int    // 0 for the global scope
	Parent   *Scope
	Children []*Scope
	Bindings map[string]*ast.Binding
	order    []string // declaration order of Bindings
}

func newScope(name string, index int, parent *Scope) *Scope {
	s := &Scope{
		Name:     name,
		Index:    index,
		Parent:   parent,
		Bindings: map[string]*ast.Binding{},
	}
	if parent != nil {
		s.Depth = parent.Depth + 1
		parent.Children = append(parent.Children, s)
	}

	return s
}

// LookupLocal returns the binding declared in this scope only
func (s *Scope) LookupLocal(name string) *ast.Binding {
	return s.Bindings[name]
}

// Lookup walks the scope chain outwards and returns the nearest binding
// together with the scope that declares it
func (s *Scope) Lookup(name string) (*ast.Binding, *Scope) {
	for cur := s; cur != nil; cur = cur.Parent {
		if b, ok := cur.Bindings[name]; ok {
			return b, cur
		}
	}

	return nil, nil
}

// Names returns the names declared in this scope in declaration order
func (s *Scope) Names() []string {
	return append([]string(nil), s.order...)
}

func (s *Scope) declare(name string, kind ast.BindingKind, id int, initialized bool) *ast.Binding {
	if b, ok := s.Bindings[name]; ok {
		return b
	}

	b := &ast.Binding{
		Kind:        kind,
		Name:        name,
		Unique:      fmt.Sprintf("%s_%d_%d", name, s.Index, len(s.order)),
		ID:          id,
		Depth:       s.Depth,
		Initialized: initialized,
	}
	s.Bindings[name] = b
	s.order = append(s.order, name)

	return b
}

// Dump renders the scope tree, one scope per line, for debugging output
func (s *Scope) Dump() string {
	var b strings.Builder
	s.dump(&b)
	return b.String()
}

func (s *Scope) dump(b *strings.Builder) {
	fmt.Fprintf(b, "%s%s #%d:", strings.Repeat("  ", s.Depth), s.Name, s.Index)
	for _, name := range s.order {
		fmt.Fprintf(b, " %s", s.Bindings[name])
	}
	b.WriteByte('\n')

	for _, child := range s.Children {
		child.dump(b)
	}
}
