package builder

import (
	"slices"
	"strconv"

	"saltino/pkg/ast"
	"saltino/pkg/lexer"

	"github.com/charmbracelet/log"
)

var relOps = map[lexer.TokenType]ast.Op{
	lexer.EQ: ast.Eq,
	lexer.NE: ast.Ne,
	lexer.LT: ast.Lt,
	lexer.LE: ast.Le,
	lexer.GT: ast.Gt,
	lexer.GE: ast.Ge,
}

// markAction remembers the last matched token (a keyword, an operator or an
// assignment target) for an action further right in the production
func (b *Builder) markAction() {
	b.marks.Push(b.currentToken)
}

// funcStartAction opens a function definition named by the current token
func (b *Builder) funcStartAction() {
	def := b.popMark()
	name := b.currentToken.Lexeme

	if prev, exists := b.functions[name]; exists {
		b.addDuplicateFunctionError(name, b.currentToken.Pos, prev)
	} else {
		b.functions[name] = Position(b.currentToken.Pos)
	}

	b.function = &ast.Function{Name: name, Loc: Position(def.Pos)}
}

// paramAction appends the current identifier to the parameter list
func (b *Builder) paramAction() {
	if b.function == nil {
		b.broken = true
		return
	}

	name := b.currentToken.Lexeme
	if slices.Contains(b.function.Params, name) {
		b.addDuplicateParameterError(name, b.function.Name, b.currentToken.Pos)
	}
	b.function.Params = append(b.function.Params, name)
}

// funcEndAction attaches the body and closes the function definition
func (b *Builder) funcEndAction() {
	body := b.popBlock()
	if b.function == nil {
		b.broken = true
		return
	}

	b.function.Body = body
	b.program.Functions = append(b.program.Functions, b.function)
	b.function = nil
}

// blockStartAction pushes a marker below the statements of a block
func (b *Builder) blockStartAction() {
	b.push(blockMarker{pos: Position(b.currentToken.Pos)})
}

// blockEndAction collects every statement above the block marker
func (b *Builder) blockEndAction() {
	var stmts []ast.Stmt
	for {
		n, ok := b.nodes.Pop()
		if !ok {
			b.broken = true
			b.push(&ast.Block{Loc: Position(b.currentToken.Pos)})
			return
		}

		if m, isMarker := n.(blockMarker); isMarker {
			slices.Reverse(stmts)
			b.push(&ast.Block{Stmts: stmts, Loc: m.pos})
			return
		}

		s, isStmt := n.(ast.Stmt)
		if !isStmt {
			b.broken = true
			continue
		}
		stmts = append(stmts, s)
	}
}

// assignAction builds an assignment to the marked identifier
func (b *Builder) assignAction() {
	value := b.popExpr()
	target := b.popMark()
	b.push(&ast.Assignment{Name: target.Lexeme, Value: value, Loc: Position(target.Pos)})
}

// noElseAction stands in for a missing else branch
func (b *Builder) noElseAction() {
	b.push((*ast.Block)(nil))
}

// ifAction builds an if statement from condition, then branch and the
// optional else branch
func (b *Builder) ifAction() {
	elseBlock := b.popOptionalBlock()
	thenBlock := b.popBlock()
	cond := b.popExpr()
	kw := b.popMark()
	b.push(&ast.IfStmt{Cond: cond, Then: thenBlock, Else: elseBlock, Loc: Position(kw.Pos)})
}

// returnAction builds a return statement
func (b *Builder) returnAction() {
	value := b.popExpr()
	kw := b.popMark()
	b.push(&ast.ReturnStmt{Value: value, Loc: Position(kw.Pos)})
}

// binaryOpAction combines the two topmost expressions. The node takes the
// position of its left operand.
func (b *Builder) binaryOpAction(op ast.Op) {
	right := b.popExpr()
	left := b.popExpr()
	b.push(&ast.BinaryExpr{Op: op, Left: left, Right: right, Loc: left.Pos()})
}

// logicalAction combines the two topmost conditions with and/or
func (b *Builder) logicalAction(op ast.Op) {
	right := b.popExpr()
	left := b.popExpr()
	b.push(&ast.BinaryCond{Op: op, Left: left, Right: right, Loc: left.Pos()})
}

// notAction negates the topmost condition
func (b *Builder) notAction() {
	operand := b.popExpr()
	bang := b.popMark()
	b.push(&ast.UnaryCond{Operand: operand, Loc: Position(bang.Pos)})
}

// relAction builds a comparison using the marked relational operator
func (b *Builder) relAction() {
	right := b.popExpr()
	op := b.popMark()
	left := b.popExpr()

	relOp, ok := relOps[op.Type]
	if !ok {
		b.broken = true
		relOp = ast.Eq
	}
	b.push(&ast.Comparison{Op: relOp, Left: left, Right: right, Loc: left.Pos()})
}

// unaryOpAction applies a prefix operator to the topmost expression
func (b *Builder) unaryOpAction(op ast.Op) {
	operand := b.popExpr()
	kw := b.popMark()
	b.push(&ast.UnaryExpr{Op: op, Operand: operand, Loc: Position(kw.Pos)})
}

// callStartAction pushes a marker below the arguments of a call
func (b *Builder) callStartAction() {
	b.push(argsMarker{})
}

// callEndAction collects the arguments above the marker and the callee
// below it
func (b *Builder) callEndAction() {
	var args []ast.Expr
	for {
		n, ok := b.nodes.Pop()
		if !ok {
			b.broken = true
			b.push(&ast.EmptyList{Loc: Position(b.currentToken.Pos)})
			return
		}
		if _, isMarker := n.(argsMarker); isMarker {
			break
		}

		e, isExpr := n.(ast.Expr)
		if !isExpr {
			b.broken = true
			continue
		}
		args = append(args, e)
	}
	slices.Reverse(args)

	callee := b.popExpr()
	b.push(&ast.Call{Callee: callee, Args: args, Loc: callee.Pos()})
}

// intAction pushes an integer literal
func (b *Builder) intAction() {
	value, err := strconv.ParseInt(b.currentToken.Literal, 10, 64)
	if err != nil {
		b.addIntegerRangeError(b.currentToken.Lexeme, b.currentToken.Pos)
	}
	b.push(&ast.IntLit{Value: value, Loc: Position(b.currentToken.Pos)})
}

// identAction pushes an identifier reference
func (b *Builder) identAction() {
	b.push(&ast.Ident{Name: b.currentToken.Lexeme, Loc: Position(b.currentToken.Pos)})
}

// emptyAction pushes the empty list literal
func (b *Builder) emptyAction() {
	b.push(&ast.EmptyList{Loc: Position(b.currentToken.Pos)})
}

// boolAction pushes a boolean literal
func (b *Builder) boolAction(value bool) {
	b.push(&ast.BoolLit{Value: value, Loc: Position(b.currentToken.Pos)})
}

// ExecuteAction executes the semantic action corresponding to the given action name
func (b *Builder) ExecuteAction(actionName string) {
	semanticActions := map[string]func(){
		"@mark":        b.markAction,
		"@func_start":  b.funcStartAction,
		"@param":       b.paramAction,
		"@func_end":    b.funcEndAction,
		"@block_start": b.blockStartAction,
		"@block_end":   b.blockEndAction,
		"@assign":      b.assignAction,
		"@no_else":     b.noElseAction,
		"@if":          b.ifAction,
		"@return":      b.returnAction,
		"@and":         func() { b.logicalAction(ast.And) },
		"@or":          func() { b.logicalAction(ast.Or) },
		"@not":         b.notAction,
		"@rel":         b.relAction,
		"@cons":        func() { b.binaryOpAction(ast.Cons) },
		"@add":         func() { b.binaryOpAction(ast.Add) },
		"@sub":         func() { b.binaryOpAction(ast.Sub) },
		"@mul":         func() { b.binaryOpAction(ast.Mul) },
		"@div":         func() { b.binaryOpAction(ast.Div) },
		"@mod":         func() { b.binaryOpAction(ast.Mod) },
		"@pow":         func() { b.binaryOpAction(ast.Pow) },
		"@neg":         func() { b.unaryOpAction(ast.Neg) },
		"@pos":         func() { b.unaryOpAction(ast.Plus) },
		"@head":        func() { b.unaryOpAction(ast.Head) },
		"@tail":        func() { b.unaryOpAction(ast.Tail) },
		"@call_start":  b.callStartAction,
		"@call_end":    b.callEndAction,
		"@int":         b.intAction,
		"@ident":       b.identAction,
		"@empty":       b.emptyAction,
		"@true":        func() { b.boolAction(true) },
		"@false":       func() { b.boolAction(false) },
	}

	if action, exists := semanticActions[actionName]; exists {
		action()
	} else {
		log.Error("Unknown semantic action", "action", actionName)
	}
}
