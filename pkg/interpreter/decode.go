package interpreter

import (
	"encoding/json"
	"fmt"
	"os"

	"lox/interpreter-go/pkg/ast"
)

// The external front end hands this core a fully built AST serialized
// as JSON: one object per node, tagged with "type". DecodeProgram and
// LoadProgramFile turn that wire form back into ast nodes. Unknown or
// malformed nodes are decode errors, not runtime conditions.

// LoadProgramFile reads and decodes a serialized program.
func LoadProgramFile(path string) (*ast.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeProgramBytes(data)
}

// DecodeProgramBytes decodes a serialized program from raw JSON.
func DecodeProgramBytes(data []byte) (*ast.Program, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse program: %w", err)
	}
	return DecodeProgram(raw)
}

// DecodeProgram decodes an already unmarshalled program object.
func DecodeProgram(node map[string]any) (*ast.Program, error) {
	decoded, err := decodeNode(node)
	if err != nil {
		return nil, err
	}
	program, ok := decoded.(*ast.Program)
	if !ok {
		return nil, fmt.Errorf("expected Program root, got %s", decoded.NodeType())
	}
	return program, nil
}

func decodeNode(node map[string]any) (ast.Node, error) {
	typ, _ := node["type"].(string)
	switch ast.NodeType(typ) {
	case ast.NodeProgram:
		body, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return ast.NewProgram(body), nil
	case ast.NodeIdentifier:
		name, _ := node["name"].(string)
		return ast.NewIdentifier(name), nil
	case ast.NodeNumberLiteral:
		val, _ := node["value"].(float64)
		return ast.NewNumberLiteral(val), nil
	case ast.NodeStringLiteral:
		val, _ := node["value"].(string)
		return ast.NewStringLiteral(val), nil
	case ast.NodeBooleanLiteral:
		val, _ := node["value"].(bool)
		return ast.NewBooleanLiteral(val), nil
	case ast.NodeNilLiteral:
		return ast.NewNilLiteral(), nil
	case ast.NodeAssignmentExpression:
		name, _ := node["name"].(string)
		value, err := decodeExpressionField(node, "value")
		if err != nil {
			return nil, err
		}
		return ast.NewAssignmentExpression(name, value), nil
	case ast.NodeBinaryExpression:
		op, _ := node["operator"].(string)
		left, err := decodeExpressionField(node, "left")
		if err != nil {
			return nil, err
		}
		right, err := decodeExpressionField(node, "right")
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryExpression(ast.BinaryOperator(op), left, right), nil
	case ast.NodeLogicalExpression:
		op, _ := node["operator"].(string)
		left, err := decodeExpressionField(node, "left")
		if err != nil {
			return nil, err
		}
		right, err := decodeExpressionField(node, "right")
		if err != nil {
			return nil, err
		}
		return ast.NewLogicalExpression(ast.LogicalOperator(op), left, right), nil
	case ast.NodeUnaryExpression:
		op, _ := node["operator"].(string)
		operand, err := decodeExpressionField(node, "operand")
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpression(ast.UnaryOperator(op), operand), nil
	case ast.NodeCallExpression:
		callee, err := decodeExpressionField(node, "callee")
		if err != nil {
			return nil, err
		}
		argsVal, _ := node["arguments"].([]any)
		args := make([]ast.Expression, 0, len(argsVal))
		for _, raw := range argsVal {
			arg, err := decodeExpression(raw)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return ast.NewCallExpression(callee, args), nil
	case ast.NodeGetExpression:
		object, err := decodeExpressionField(node, "object")
		if err != nil {
			return nil, err
		}
		name, _ := node["name"].(string)
		return ast.NewGetExpression(object, name), nil
	case ast.NodeSetExpression:
		object, err := decodeExpressionField(node, "object")
		if err != nil {
			return nil, err
		}
		name, _ := node["name"].(string)
		value, err := decodeExpressionField(node, "value")
		if err != nil {
			return nil, err
		}
		return ast.NewSetExpression(object, name, value), nil
	case ast.NodeThisExpression:
		return ast.NewThisExpression(), nil
	case ast.NodeSuperExpression:
		method, _ := node["method"].(string)
		return ast.NewSuperExpression(method), nil
	case ast.NodeExpressionStatement:
		expr, err := decodeExpressionField(node, "expression")
		if err != nil {
			return nil, err
		}
		return ast.NewExpressionStatement(expr), nil
	case ast.NodePrintStatement:
		expr, err := decodeExpressionField(node, "expression")
		if err != nil {
			return nil, err
		}
		return ast.NewPrintStatement(expr), nil
	case ast.NodeVarStatement:
		name, _ := node["name"].(string)
		var init ast.Expression
		if raw, ok := node["initializer"].(map[string]any); ok {
			decoded, err := decodeExpression(raw)
			if err != nil {
				return nil, err
			}
			init = decoded
		}
		return ast.NewVarStatement(name, init), nil
	case ast.NodeBlockStatement:
		body, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return ast.NewBlockStatement(body), nil
	case ast.NodeIfStatement:
		cond, err := decodeExpressionField(node, "condition")
		if err != nil {
			return nil, err
		}
		then, err := decodeStatementField(node, "then")
		if err != nil {
			return nil, err
		}
		var elseBranch ast.Statement
		if raw, ok := node["else"].(map[string]any); ok {
			decoded, err := decodeStatement(raw)
			if err != nil {
				return nil, err
			}
			elseBranch = decoded
		}
		return ast.NewIfStatement(cond, then, elseBranch), nil
	case ast.NodeWhileStatement:
		cond, err := decodeExpressionField(node, "condition")
		if err != nil {
			return nil, err
		}
		body, err := decodeStatementField(node, "body")
		if err != nil {
			return nil, err
		}
		return ast.NewWhileStatement(cond, body), nil
	case ast.NodeFunctionDeclaration:
		return decodeFunctionDeclaration(node)
	case ast.NodeReturnStatement:
		var value ast.Expression
		if raw, ok := node["value"].(map[string]any); ok {
			decoded, err := decodeExpression(raw)
			if err != nil {
				return nil, err
			}
			value = decoded
		}
		return ast.NewReturnStatement(value), nil
	case ast.NodeClassDeclaration:
		name, _ := node["name"].(string)
		var superclass *ast.Identifier
		if raw, ok := node["superclass"].(map[string]any); ok {
			decoded, err := decodeNode(raw)
			if err != nil {
				return nil, err
			}
			ident, ok := decoded.(*ast.Identifier)
			if !ok {
				return nil, fmt.Errorf("class superclass must be an identifier, got %s", decoded.NodeType())
			}
			superclass = ident
		}
		methodsVal, _ := node["methods"].([]any)
		methods := make([]*ast.FunctionDeclaration, 0, len(methodsVal))
		for _, raw := range methodsVal {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("invalid class method entry %T", raw)
			}
			method, err := decodeFunctionDeclaration(child)
			if err != nil {
				return nil, err
			}
			methods = append(methods, method)
		}
		return ast.NewClassDeclaration(name, superclass, methods), nil
	default:
		return nil, fmt.Errorf("unknown node type %q", typ)
	}
}

func decodeFunctionDeclaration(node map[string]any) (*ast.FunctionDeclaration, error) {
	name, _ := node["name"].(string)
	paramsVal, _ := node["params"].([]any)
	params := make([]string, 0, len(paramsVal))
	for _, raw := range paramsVal {
		param, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("invalid function parameter %T", raw)
		}
		params = append(params, param)
	}
	bodyRaw, ok := node["body"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("function %q missing body", name)
	}
	bodyNode, err := decodeNode(bodyRaw)
	if err != nil {
		return nil, err
	}
	body, ok := bodyNode.(*ast.BlockStatement)
	if !ok {
		return nil, fmt.Errorf("function %q body must be a block, got %s", name, bodyNode.NodeType())
	}
	return ast.NewFunctionDeclaration(name, params, body), nil
}

func decodeStatements(raw any) ([]ast.Statement, error) {
	items, _ := raw.([]any)
	stmts := make([]ast.Statement, 0, len(items))
	for _, item := range items {
		stmt, err := decodeStatement(item)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func decodeStatement(raw any) (ast.Statement, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid statement node %T", raw)
	}
	decoded, err := decodeNode(node)
	if err != nil {
		return nil, err
	}
	if stmt, ok := decoded.(ast.Statement); ok {
		return stmt, nil
	}
	if expr, ok := decoded.(ast.Expression); ok {
		// Front ends may emit bare expressions in statement position.
		return ast.NewExpressionStatement(expr), nil
	}
	return nil, fmt.Errorf("node %s is not a statement", decoded.NodeType())
}

func decodeExpression(raw any) (ast.Expression, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid expression node %T", raw)
	}
	decoded, err := decodeNode(node)
	if err != nil {
		return nil, err
	}
	expr, ok := decoded.(ast.Expression)
	if !ok {
		return nil, fmt.Errorf("node %s is not an expression", decoded.NodeType())
	}
	return expr, nil
}

func decodeExpressionField(node map[string]any, field string) (ast.Expression, error) {
	raw, ok := node[field]
	if !ok {
		return nil, fmt.Errorf("%s node missing %q", node["type"], field)
	}
	return decodeExpression(raw)
}

func decodeStatementField(node map[string]any, field string) (ast.Statement, error) {
	raw, ok := node[field]
	if !ok {
		return nil, fmt.Errorf("%s node missing %q", node["type"], field)
	}
	return decodeStatement(raw)
}
