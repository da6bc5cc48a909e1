package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

// evaluateExpression computes a value from an expression node. Operands
// are evaluated eagerly, left before right, except where the logical
// operators short-circuit.
func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return runtime.NumberValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NilLiteral:
		return runtime.NilValue{}, nil
	case *ast.Identifier:
		return env.Get(n.Name)
	case *ast.AssignmentExpression:
		return i.evaluateAssignment(n, env)
	case *ast.BinaryExpression:
		return i.evaluateBinary(n, env)
	case *ast.LogicalExpression:
		return i.evaluateLogical(n, env)
	case *ast.UnaryExpression:
		return i.evaluateUnary(n, env)
	case *ast.CallExpression:
		return i.evaluateCall(n, env)
	case *ast.GetExpression:
		return i.evaluateGet(n, env)
	case *ast.SetExpression:
		return i.evaluateSet(n, env)
	case *ast.ThisExpression:
		return nil, fmt.Errorf("'this' is not supported")
	case *ast.SuperExpression:
		return nil, fmt.Errorf("'super' is not supported")
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", n.NodeType())
	}
}

// evaluateAssignment mutates the scope that already binds the name;
// assignment is itself a value-producing expression.
func (i *Interpreter) evaluateAssignment(expr *ast.AssignmentExpression, env *runtime.Environment) (runtime.Value, error) {
	value, err := i.evaluateExpression(expr.Value, env)
	if err != nil {
		return nil, err
	}
	if err := env.Assign(expr.Name, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (i *Interpreter) evaluateBinary(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}

	switch expr.Operator {
	case ast.OpAdd, ast.OpSubtract, ast.OpMultiply, ast.OpDivide:
		return evaluateArithmetic(expr.Operator, left, right)
	case ast.OpGreater, ast.OpGreaterEqual, ast.OpLess, ast.OpLessEqual:
		return evaluateComparison(expr.Operator, left, right)
	case ast.OpEqual, ast.OpNotEqual:
		eq := valuesEqual(left, right)
		if expr.Operator == ast.OpNotEqual {
			eq = !eq
		}
		return runtime.BoolValue{Val: eq}, nil
	default:
		return nil, fmt.Errorf("unsupported binary operator %s", expr.Operator)
	}
}

// evaluateLogical short-circuits and returns operand values, not
// coerced booleans: `false and x` is false, `nil or "a"` is "a".
func (i *Interpreter) evaluateLogical(expr *ast.LogicalExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case ast.OpAnd:
		if !runtime.Truthy(left) {
			return left, nil
		}
	case ast.OpOr:
		if runtime.Truthy(left) {
			return left, nil
		}
	default:
		return nil, fmt.Errorf("unsupported logical operator %s", expr.Operator)
	}
	return i.evaluateExpression(expr.Right, env)
}

func (i *Interpreter) evaluateUnary(expr *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case ast.OpNegate:
		num, ok := operand.(runtime.NumberValue)
		if !ok {
			return nil, runtime.TypeError("Operand of unary '-' must be a number, got %s", operand.Kind())
		}
		return runtime.NumberValue{Val: -num.Val}, nil
	case ast.OpNot:
		return runtime.BoolValue{Val: !runtime.Truthy(operand)}, nil
	default:
		return nil, fmt.Errorf("unsupported unary operator %s", expr.Operator)
	}
}

func (i *Interpreter) evaluateGet(expr *ast.GetExpression, env *runtime.Environment) (runtime.Value, error) {
	target, err := i.evaluateExpression(expr.Object, env)
	if err != nil {
		return nil, err
	}
	obj, ok := target.(*runtime.ObjectValue)
	if !ok {
		return nil, runtime.NewError(runtime.ErrAttribute, "Value of kind %s has no attributes", target.Kind())
	}
	return obj.Get(expr.Name)
}

func (i *Interpreter) evaluateSet(expr *ast.SetExpression, env *runtime.Environment) (runtime.Value, error) {
	target, err := i.evaluateExpression(expr.Object, env)
	if err != nil {
		return nil, err
	}
	obj, ok := target.(*runtime.ObjectValue)
	if !ok {
		return nil, runtime.NewError(runtime.ErrAttribute, "Value of kind %s has no attributes", target.Kind())
	}
	value, err := i.evaluateExpression(expr.Value, env)
	if err != nil {
		return nil, err
	}
	obj.Set(expr.Name, value)
	return value, nil
}

// Arithmetic follows IEEE-754 throughout: dividing by zero produces an
// infinity or NaN rather than a runtime condition. `+` doubles as
// string concatenation and comparisons also order strings, matching
// the operator set the front end targets.
func evaluateArithmetic(op ast.BinaryOperator, left, right runtime.Value) (runtime.Value, error) {
	if ln, ok := left.(runtime.NumberValue); ok {
		rn, ok := right.(runtime.NumberValue)
		if !ok {
			return nil, runtime.TypeError("Operands of '%s' must both be numbers, got %s and %s", op, left.Kind(), right.Kind())
		}
		switch op {
		case ast.OpAdd:
			return runtime.NumberValue{Val: ln.Val + rn.Val}, nil
		case ast.OpSubtract:
			return runtime.NumberValue{Val: ln.Val - rn.Val}, nil
		case ast.OpMultiply:
			return runtime.NumberValue{Val: ln.Val * rn.Val}, nil
		case ast.OpDivide:
			return runtime.NumberValue{Val: ln.Val / rn.Val}, nil
		}
	}
	if ls, ok := left.(runtime.StringValue); ok && op == ast.OpAdd {
		rs, ok := right.(runtime.StringValue)
		if !ok {
			return nil, runtime.TypeError("String concatenation requires both operands to be strings, got %s", right.Kind())
		}
		return runtime.StringValue{Val: ls.Val + rs.Val}, nil
	}
	return nil, runtime.TypeError("Operands of '%s' must be numbers, got %s and %s", op, left.Kind(), right.Kind())
}

func evaluateComparison(op ast.BinaryOperator, left, right runtime.Value) (runtime.Value, error) {
	switch lv := left.(type) {
	case runtime.NumberValue:
		rv, ok := right.(runtime.NumberValue)
		if !ok {
			return nil, runtime.TypeError("Operands of '%s' must both be numbers, got %s and %s", op, left.Kind(), right.Kind())
		}
		return runtime.BoolValue{Val: comparisonHolds(op, lv.Val, rv.Val)}, nil
	case runtime.StringValue:
		rv, ok := right.(runtime.StringValue)
		if !ok {
			return nil, runtime.TypeError("Operands of '%s' must both be strings, got %s and %s", op, left.Kind(), right.Kind())
		}
		return runtime.BoolValue{Val: comparisonHolds(op, lv.Val, rv.Val)}, nil
	default:
		return nil, runtime.TypeError("Operands of '%s' must be numbers or strings, got %s", op, left.Kind())
	}
}

func comparisonHolds[T float64 | string](op ast.BinaryOperator, left, right T) bool {
	switch op {
	case ast.OpGreater:
		return left > right
	case ast.OpGreaterEqual:
		return left >= right
	case ast.OpLess:
		return left < right
	case ast.OpLessEqual:
		return left <= right
	default:
		return false
	}
}

// valuesEqual compares by value across all kinds; a cross-kind pair is
// simply unequal, never an error. Functions and host objects compare
// by identity.
func valuesEqual(left, right runtime.Value) bool {
	switch lv := left.(type) {
	case runtime.BoolValue:
		if rv, ok := right.(runtime.BoolValue); ok {
			return lv.Val == rv.Val
		}
	case runtime.NumberValue:
		if rv, ok := right.(runtime.NumberValue); ok {
			return lv.Val == rv.Val
		}
	case runtime.StringValue:
		if rv, ok := right.(runtime.StringValue); ok {
			return lv.Val == rv.Val
		}
	case runtime.NilValue:
		_, ok := right.(runtime.NilValue)
		return ok
	case *runtime.FunctionValue:
		if rv, ok := right.(*runtime.FunctionValue); ok {
			return lv == rv
		}
	case *runtime.ObjectValue:
		if rv, ok := right.(*runtime.ObjectValue); ok {
			return lv == rv
		}
	}
	return false
}
