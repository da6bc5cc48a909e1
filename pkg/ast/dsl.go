package ast

// Terse builder helpers used by tests and embedding hosts that
// construct programs directly instead of decoding a front-end module.

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Num(value float64) *NumberLiteral {
	return NewNumberLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Nil() *NilLiteral {
	return NewNilLiteral()
}

// Expression helpers.

func Assign(name string, value Expression) *AssignmentExpression {
	return NewAssignmentExpression(name, value)
}

func Bin(operator BinaryOperator, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(operator, left, right)
}

func And(left, right Expression) *LogicalExpression {
	return NewLogicalExpression(OpAnd, left, right)
}

func Or(left, right Expression) *LogicalExpression {
	return NewLogicalExpression(OpOr, left, right)
}

func Neg(operand Expression) *UnaryExpression {
	return NewUnaryExpression(OpNegate, operand)
}

func Not(operand Expression) *UnaryExpression {
	return NewUnaryExpression(OpNot, operand)
}

func Call(callee Expression, arguments ...Expression) *CallExpression {
	return NewCallExpression(callee, arguments)
}

func Get(object Expression, name string) *GetExpression {
	return NewGetExpression(object, name)
}

func Set(object Expression, name string, value Expression) *SetExpression {
	return NewSetExpression(object, name, value)
}

// Statement helpers.

func ExprStmt(expression Expression) *ExpressionStatement {
	return NewExpressionStatement(expression)
}

func Print(expression Expression) *PrintStatement {
	return NewPrintStatement(expression)
}

func Var(name string, initializer Expression) *VarStatement {
	return NewVarStatement(name, initializer)
}

func Block(body ...Statement) *BlockStatement {
	return NewBlockStatement(body)
}

func If(condition Expression, then Statement) *IfStatement {
	return NewIfStatement(condition, then, nil)
}

func IfElse(condition Expression, then, elseBranch Statement) *IfStatement {
	return NewIfStatement(condition, then, elseBranch)
}

func While(condition Expression, body Statement) *WhileStatement {
	return NewWhileStatement(condition, body)
}

func Fn(name string, params []string, body ...Statement) *FunctionDeclaration {
	return NewFunctionDeclaration(name, params, NewBlockStatement(body))
}

func Ret(value Expression) *ReturnStatement {
	return NewReturnStatement(value)
}

func Prog(body ...Statement) *Program {
	return NewProgram(body)
}

// ForSugar desugars a for loop into the equivalent block-and-while
// shape. There is no ForStatement node; the front end performs the same
// rewrite:
//
//	{ init; while (cond) { body…; incr; } }
//
// The initializer's scope is the enclosing block, shared across all
// iterations, so a variable declared there is visible to the condition,
// body, and increment. A nil condition loops forever; a nil initializer
// or increment is simply omitted.
func ForSugar(init Statement, cond Expression, incr Expression, body Statement) *BlockStatement {
	whileBody := make([]Statement, 0, 2)
	if block, ok := body.(*BlockStatement); ok {
		whileBody = append(whileBody, block.Body...)
	} else if body != nil {
		whileBody = append(whileBody, body)
	}
	if incr != nil {
		whileBody = append(whileBody, NewExpressionStatement(incr))
	}
	if cond == nil {
		cond = NewBooleanLiteral(true)
	}
	loop := NewWhileStatement(cond, NewBlockStatement(whileBody))

	outer := make([]Statement, 0, 2)
	if init != nil {
		outer = append(outer, init)
	}
	outer = append(outer, loop)
	return NewBlockStatement(outer)
}
