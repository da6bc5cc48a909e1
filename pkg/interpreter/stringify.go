package interpreter

import (
	"fmt"
	"math"
	"strconv"

	"lox/interpreter-go/pkg/runtime"
)

// FormatValue renders a value the way the print statement emits it:
// booleans as the words true/false, nil as nil, mathematically
// integral numbers without a decimal point (4, not 4.0), other numbers
// in their natural decimal form, strings verbatim without quoting.
func FormatValue(val runtime.Value) string {
	switch v := val.(type) {
	case runtime.BoolValue:
		if v.Val {
			return "true"
		}
		return "false"
	case runtime.NumberValue:
		return formatNumber(v.Val)
	case runtime.StringValue:
		return v.Val
	case runtime.NilValue:
		return "nil"
	case *runtime.FunctionValue:
		return fmt.Sprintf("<fn %s>", v.Name)
	case runtime.NativeFunctionValue:
		return fmt.Sprintf("<native fn %s>", v.Name)
	case *runtime.NativeFunctionValue:
		return fmt.Sprintf("<native fn %s>", v.Name)
	case *runtime.ObjectValue:
		return "<object>"
	default:
		return fmt.Sprintf("[%s]", val.Kind())
	}
}

func formatNumber(v float64) string {
	if math.IsInf(v, 1) {
		return "Infinity"
	}
	if math.IsInf(v, -1) {
		return "-Infinity"
	}
	if math.IsNaN(v) {
		return "NaN"
	}
	// The shortest 'f' rendering drops the fractional part exactly
	// when the value is integral.
	return strconv.FormatFloat(v, 'f', -1, 64)
}
