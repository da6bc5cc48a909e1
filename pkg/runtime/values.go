package runtime

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindBool Kind = iota
	KindNumber
	KindString
	KindNil
	KindFunction
	KindNativeFunction
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindNil:
		return "nil"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// NumberValue carries every numeric value as an IEEE-754 float64.
// Division by zero yields an infinity or NaN rather than failing.
type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

//-----------------------------------------------------------------------------
// Functions & closures
//-----------------------------------------------------------------------------

// FunctionValue pairs a function declaration with the environment
// captured at its declaration site. The capture is by reference, so the
// closure observes mutations made to enclosing scopes after creation.
type FunctionValue struct {
	Name    string
	Params  []string
	Body    *ast.BlockStatement
	Closure *Environment
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

func (v *FunctionValue) Arity() int { return len(v.Params) }

// NativeFunc is the host-callable hook. Natives are registered by the
// embedding host via Environment.Define and invoked with already
// evaluated arguments.
type NativeFunc func(args []Value) (Value, error)

type NativeFunctionValue struct {
	Name  string
	Arity int
	Impl  NativeFunc
}

func (v NativeFunctionValue) Kind() Kind { return KindNativeFunction }

//-----------------------------------------------------------------------------
// Host objects
//-----------------------------------------------------------------------------

// ObjectValue is the minimal host-level attribute container backing
// attribute read/write expressions. It is an open record, not an
// instance of any class: reads of a missing field fail, writes create
// or overwrite.
type ObjectValue struct {
	Fields map[string]Value
}

func NewObject() *ObjectValue {
	return &ObjectValue{Fields: make(map[string]Value)}
}

func (v *ObjectValue) Kind() Kind { return KindObject }

func (v *ObjectValue) Get(name string) (Value, error) {
	if val, ok := v.Fields[name]; ok {
		return val, nil
	}
	return nil, AttributeError(name)
}

func (v *ObjectValue) Set(name string, val Value) {
	if v.Fields == nil {
		v.Fields = make(map[string]Value)
	}
	v.Fields[name] = val
}

//-----------------------------------------------------------------------------
// Truthiness
//-----------------------------------------------------------------------------

// Truthy maps every value onto the boolean used by conditional
// contexts. Only false and nil are falsy; 0 and "" are truthy.
func Truthy(val Value) bool {
	switch v := val.(type) {
	case BoolValue:
		return v.Val
	case NilValue:
		return false
	default:
		return true
	}
}
