package interpreter

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

// evaluateCall evaluates the callee and each argument left-to-right,
// then dispatches on the callee's kind.
func (i *Interpreter) evaluateCall(call *ast.CallExpression, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(call.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, argExpr := range call.Arguments {
		val, err := i.evaluateExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}

	switch fn := callee.(type) {
	case *runtime.FunctionValue:
		return i.invokeFunction(fn, args)
	case runtime.NativeFunctionValue:
		return invokeNative(fn, args)
	case *runtime.NativeFunctionValue:
		return invokeNative(*fn, args)
	default:
		return nil, runtime.NotCallableError(callee)
	}
}

// invokeFunction implements the call protocol: arity check, a fresh
// scope layered on the function's captured environment (static
// scoping, never the caller's), parameters bound in order, body
// executed. The return signal is caught exactly here; runtime
// conditions pass through. Completing without a return yields nil.
func (i *Interpreter) invokeFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	if len(args) != fn.Arity() {
		return nil, runtime.ArityError(fn.Name, fn.Arity(), len(args))
	}
	local := runtime.NewEnvironment(fn.Closure)
	for idx, param := range fn.Params {
		local.Define(param, args[idx])
	}
	if _, err := i.executeBlock(fn.Body, local); err != nil {
		if ret, ok := err.(returnSignal); ok {
			if ret.value == nil {
				return runtime.NilValue{}, nil
			}
			return ret.value, nil
		}
		return nil, err
	}
	return runtime.NilValue{}, nil
}

func invokeNative(fn runtime.NativeFunctionValue, args []runtime.Value) (runtime.Value, error) {
	if fn.Arity >= 0 && len(args) != fn.Arity {
		return nil, runtime.ArityError(fn.Name, fn.Arity, len(args))
	}
	result, err := fn.Impl(args)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return runtime.NilValue{}, nil
	}
	return result, nil
}
