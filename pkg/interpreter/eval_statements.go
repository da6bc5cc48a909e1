package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

// executeStatement executes a statement for effect against an
// environment. Statements yield a nil value except expression
// statements, which surface their expression's value for embedding
// hosts; the value is otherwise discarded.
func (i *Interpreter) executeStatement(node ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		return i.evaluateExpression(n.Expression, env)
	case *ast.PrintStatement:
		return i.executePrint(n, env)
	case *ast.VarStatement:
		return i.executeVar(n, env)
	case *ast.BlockStatement:
		return i.executeBlock(n, env)
	case *ast.IfStatement:
		return i.executeIf(n, env)
	case *ast.WhileStatement:
		return i.executeWhile(n, env)
	case *ast.FunctionDeclaration:
		return i.executeFunctionDeclaration(n, env)
	case *ast.ReturnStatement:
		return i.executeReturn(n, env)
	case *ast.ClassDeclaration:
		return nil, fmt.Errorf("class declarations are not supported")
	default:
		return nil, fmt.Errorf("unsupported statement type: %s", n.NodeType())
	}
}

func (i *Interpreter) executePrint(stmt *ast.PrintStatement, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluateExpression(stmt.Expression, env)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(i.out, FormatValue(val))
	return runtime.NilValue{}, nil
}

func (i *Interpreter) executeVar(stmt *ast.VarStatement, env *runtime.Environment) (runtime.Value, error) {
	var val runtime.Value = runtime.NilValue{}
	if stmt.Initializer != nil {
		v, err := i.evaluateExpression(stmt.Initializer, env)
		if err != nil {
			return nil, err
		}
		val = v
	}
	env.Define(stmt.Name, val)
	return runtime.NilValue{}, nil
}

// executeBlock runs the block's statements against a fresh child
// scope. The scope is left behind on every exit path, including an
// in-flight return unwind, which is re-raised untouched.
func (i *Interpreter) executeBlock(block *ast.BlockStatement, env *runtime.Environment) (runtime.Value, error) {
	scope := runtime.NewEnvironment(env)
	var result runtime.Value = runtime.NilValue{}
	for _, stmt := range block.Body {
		val, err := i.executeStatement(stmt, scope)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return result, nil
}

func (i *Interpreter) executeIf(stmt *ast.IfStatement, env *runtime.Environment) (runtime.Value, error) {
	cond, err := i.evaluateExpression(stmt.Condition, env)
	if err != nil {
		return nil, err
	}
	if runtime.Truthy(cond) {
		return i.executeStatement(stmt.Then, env)
	}
	if stmt.Else != nil {
		return i.executeStatement(stmt.Else, env)
	}
	return runtime.NilValue{}, nil
}

func (i *Interpreter) executeWhile(stmt *ast.WhileStatement, env *runtime.Environment) (runtime.Value, error) {
	for {
		cond, err := i.evaluateExpression(stmt.Condition, env)
		if err != nil {
			return nil, err
		}
		if !runtime.Truthy(cond) {
			return runtime.NilValue{}, nil
		}
		if _, err := i.executeStatement(stmt.Body, env); err != nil {
			return nil, err
		}
	}
}

// executeFunctionDeclaration reifies the declaration into a function
// value closing over the current environment. The capture includes the
// scope the name is about to be declared into, so the function sees
// its own binding and direct recursion works.
func (i *Interpreter) executeFunctionDeclaration(stmt *ast.FunctionDeclaration, env *runtime.Environment) (runtime.Value, error) {
	fn := &runtime.FunctionValue{
		Name:    stmt.Name,
		Params:  stmt.Params,
		Body:    stmt.Body,
		Closure: env,
	}
	env.Define(stmt.Name, fn)
	return runtime.NilValue{}, nil
}

func (i *Interpreter) executeReturn(stmt *ast.ReturnStatement, env *runtime.Environment) (runtime.Value, error) {
	var result runtime.Value = runtime.NilValue{}
	if stmt.Value != nil {
		val, err := i.evaluateExpression(stmt.Value, env)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return nil, returnSignal{value: result}
}
