package interpreter

import (
	"fmt"
	"io"
	"os"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

// Interpreter drives depth-first, single-threaded evaluation of Lox
// AST nodes. The AST is produced by an external front end; this core
// performs no lexing or grammar work.
type Interpreter struct {
	global *runtime.Environment
	out    io.Writer
}

// New returns an interpreter with an empty global environment writing
// print output to stdout.
func New() *Interpreter {
	return NewWithOutput(os.Stdout)
}

// NewWithOutput returns an interpreter whose print statements write to
// the given sink. One line is emitted per print statement.
func NewWithOutput(out io.Writer) *Interpreter {
	return &Interpreter{
		global: runtime.NewEnvironment(nil),
		out:    out,
	}
}

// GlobalEnvironment returns the interpreter's global environment.
// Hosts use it to pre-register native functions and host objects.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// EvaluateProgram executes a program's statements in order against the
// global environment and returns the value of the last expression
// statement (nil value otherwise). Evaluation stops at the first
// runtime condition; a return signal escaping the top level is a
// host-level error.
func (i *Interpreter) EvaluateProgram(program *ast.Program) (runtime.Value, error) {
	var last runtime.Value = runtime.NilValue{}
	for _, stmt := range program.Body {
		val, err := i.executeStatement(stmt, i.global)
		if err != nil {
			if _, ok := err.(returnSignal); ok {
				return nil, fmt.Errorf("return outside function")
			}
			return nil, err
		}
		last = val
	}
	return last, nil
}

// returnSignal is the non-local control transfer implementing return
// statements. It rides the error channel, is re-raised by every
// intermediate block and loop, and is caught exactly at the
// function-call boundary. Runtime conditions (*runtime.Error) travel
// the same channel but are never caught there; the two are disjoint.
type returnSignal struct {
	value runtime.Value
}

func (r returnSignal) Error() string {
	return "return"
}
