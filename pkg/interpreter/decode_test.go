package interpreter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"lox/interpreter-go/pkg/ast"
)

func decodeAndRun(t *testing.T, source string) string {
	t.Helper()
	program, err := DecodeProgramBytes([]byte(source))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	var out bytes.Buffer
	interp := NewWithOutput(&out)
	if _, err := interp.EvaluateProgram(program); err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	return out.String()
}

func TestDecodeAndEvaluateProgram(t *testing.T) {
	source := `{
		"type": "Program",
		"body": [
			{"type": "VarStatement", "name": "x", "initializer": {"type": "NumberLiteral", "value": 2}},
			{"type": "PrintStatement", "expression": {
				"type": "BinaryExpression", "operator": "*",
				"left": {"type": "Identifier", "name": "x"},
				"right": {"type": "NumberLiteral", "value": 21}
			}}
		]
	}`
	out := decodeAndRun(t, source)
	if out != "42\n" {
		t.Fatalf("expected \"42\\n\", got %q", out)
	}
}

func TestDecodeFunctionAndClosure(t *testing.T) {
	source := `{
		"type": "Program",
		"body": [
			{
				"type": "FunctionDeclaration",
				"name": "adder",
				"params": ["n"],
				"body": {
					"type": "BlockStatement",
					"body": [
						{"type": "FunctionDeclaration", "name": "add", "params": ["m"], "body": {
							"type": "BlockStatement",
							"body": [
								{"type": "ReturnStatement", "value": {
									"type": "BinaryExpression", "operator": "+",
									"left": {"type": "Identifier", "name": "n"},
									"right": {"type": "Identifier", "name": "m"}
								}}
							]
						}},
						{"type": "ReturnStatement", "value": {"type": "Identifier", "name": "add"}}
					]
				}
			},
			{"type": "VarStatement", "name": "addFive", "initializer": {
				"type": "CallExpression",
				"callee": {"type": "Identifier", "name": "adder"},
				"arguments": [{"type": "NumberLiteral", "value": 5}]
			}},
			{"type": "PrintStatement", "expression": {
				"type": "CallExpression",
				"callee": {"type": "Identifier", "name": "addFive"},
				"arguments": [{"type": "NumberLiteral", "value": 3}]
			}}
		]
	}`
	out := decodeAndRun(t, source)
	if out != "8\n" {
		t.Fatalf("expected \"8\\n\", got %q", out)
	}
}

func TestDecodeControlFlow(t *testing.T) {
	source := `{
		"type": "Program",
		"body": [
			{"type": "VarStatement", "name": "i", "initializer": {"type": "NumberLiteral", "value": 0}},
			{"type": "WhileStatement",
				"condition": {
					"type": "BinaryExpression", "operator": "<",
					"left": {"type": "Identifier", "name": "i"},
					"right": {"type": "NumberLiteral", "value": 2}
				},
				"body": {"type": "BlockStatement", "body": [
					{"type": "IfStatement",
						"condition": {
							"type": "BinaryExpression", "operator": "==",
							"left": {"type": "Identifier", "name": "i"},
							"right": {"type": "NumberLiteral", "value": 0}
						},
						"then": {"type": "PrintStatement", "expression": {"type": "StringLiteral", "value": "first"}},
						"else": {"type": "PrintStatement", "expression": {"type": "StringLiteral", "value": "rest"}}
					},
					{"type": "ExpressionStatement", "expression": {
						"type": "AssignmentExpression", "name": "i",
						"value": {
							"type": "BinaryExpression", "operator": "+",
							"left": {"type": "Identifier", "name": "i"},
							"right": {"type": "NumberLiteral", "value": 1}
						}
					}}
				]}
			}
		]
	}`
	out := decodeAndRun(t, source)
	want := []string{"first", "rest"}
	if diff := cmp.Diff(want, outputLines(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeBareExpressionInStatementPosition(t *testing.T) {
	source := `{
		"type": "Program",
		"body": [
			{"type": "NumberLiteral", "value": 7}
		]
	}`
	program, err := DecodeProgramBytes([]byte(source))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(program.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Body))
	}
	stmt, ok := program.Body[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected a wrapped expression statement, got %T", program.Body[0])
	}
	if _, ok := stmt.Expression.(*ast.NumberLiteral); !ok {
		t.Fatalf("expected number literal, got %T", stmt.Expression)
	}
}

func TestDecodeUnknownNodeType(t *testing.T) {
	_, err := DecodeProgramBytes([]byte(`{"type": "Program", "body": [{"type": "Mystery"}]}`))
	if err == nil || !strings.Contains(err.Error(), "unknown node type") {
		t.Fatalf("expected unknown-node error, got %v", err)
	}
}

func TestDecodeRejectsNonProgramRoot(t *testing.T) {
	_, err := DecodeProgramBytes([]byte(`{"type": "NumberLiteral", "value": 1}`))
	if err == nil || !strings.Contains(err.Error(), "expected Program root") {
		t.Fatalf("expected root error, got %v", err)
	}
}

func TestDecodeFunctionMissingBody(t *testing.T) {
	_, err := DecodeProgramBytes([]byte(`{
		"type": "Program",
		"body": [{"type": "FunctionDeclaration", "name": "broken", "params": []}]
	}`))
	if err == nil || !strings.Contains(err.Error(), "missing body") {
		t.Fatalf("expected missing-body error, got %v", err)
	}
}

func TestDecodeInvalidJSON(t *testing.T) {
	if _, err := DecodeProgramBytes([]byte(`{"type":`)); err == nil {
		t.Fatalf("expected parse error")
	}
}
