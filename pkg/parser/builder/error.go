package builder

import (
	"fmt"

	"saltino/pkg/ast"
	"saltino/pkg/color"
	"saltino/pkg/lexer"
)

func (b *Builder) addError(msg string, pos lexer.Position) {
	formatted := color.RedText(msg) + " at " + color.YellowText(fmt.Sprintf("Line: %d, Column %d", pos.Line, pos.Column))
	b.errors = append(b.errors, formatted)
}

// addDuplicateFunctionError reports a second definition of a function name
func (b *Builder) addDuplicateFunctionError(name string, pos lexer.Position, prev ast.Position) {
	b.addError(fmt.Sprintf("Function '%s' already defined at %s", name, prev), pos)
}

// addDuplicateParameterError reports a parameter listed twice
func (b *Builder) addDuplicateParameterError(name, function string, pos lexer.Position) {
	b.addError(fmt.Sprintf("Duplicate parameter '%s' in function '%s'", name, function), pos)
}

// addIntegerRangeError reports a literal that does not fit in 64 bits
func (b *Builder) addIntegerRangeError(lexeme string, pos lexer.Position) {
	b.addError(fmt.Sprintf("Integer literal '%s' out of range", lexeme), pos)
}
