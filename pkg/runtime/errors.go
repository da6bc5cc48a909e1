package runtime

import "fmt"

// ErrorKind distinguishes the runtime conditions the evaluator can
// signal. These unwind through the evaluation call chain like the
// return signal does, but they are never caught at a function-call
// boundary; only the embedding host decides what to do with them.
type ErrorKind string

const (
	ErrUndefinedName ErrorKind = "undefined_name"
	ErrNotCallable   ErrorKind = "not_callable"
	ErrArity         ErrorKind = "arity"
	ErrAttribute     ErrorKind = "attribute"
	ErrType          ErrorKind = "type"
)

// Error is a runtime condition raised during evaluation. Hosts use
// errors.As to recover the kind.
type Error struct {
	ErrKind ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Kind() ErrorKind { return e.ErrKind }

func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{ErrKind: kind, Message: fmt.Sprintf(format, args...)}
}

func UndefinedNameError(name string) *Error {
	return NewError(ErrUndefinedName, "Undefined variable '%s'", name)
}

func NotCallableError(val Value) *Error {
	return NewError(ErrNotCallable, "Value of kind %s is not callable", val.Kind())
}

// ArityError reports both the expected and the actual argument count.
func ArityError(name string, expected, actual int) *Error {
	return NewError(ErrArity, "Function '%s' expects %d arguments, got %d", name, expected, actual)
}

func AttributeError(name string) *Error {
	return NewError(ErrAttribute, "No attribute named '%s'", name)
}

func TypeError(format string, args ...any) *Error {
	return NewError(ErrType, format, args...)
}
