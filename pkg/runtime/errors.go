package runtime

import "fmt"

// ErrorKind classifies runtime failures.
type ErrorKind string

const (
	UndefinedVariable ErrorKind = "UndefinedVariable"
	TypeError         ErrorKind = "TypeError"
	DivisionByZero    ErrorKind = "DivisionByZero"
	IndexError        ErrorKind = "IndexError"
	NotCallable       ErrorKind = "NotCallable"
	RangeError        ErrorKind = "RangeError"
	AssignmentError   ErrorKind = "AssignmentError"
)

// RuntimeError aborts an execution. It is the only error kind the evaluator
// produces for program faults.
type RuntimeError struct {
	Kind    ErrorKind
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches any RuntimeError of the same kind, so the Err* sentinels work with errors.Is.
func (e *RuntimeError) Is(target error) bool {
	t, ok := target.(*RuntimeError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func Errorf(kind ErrorKind, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

var (
	ErrUndefinedVariable = &RuntimeError{Kind: UndefinedVariable}
	ErrTypeError         = &RuntimeError{Kind: TypeError}
	ErrDivisionByZero    = &RuntimeError{Kind: DivisionByZero}
	ErrIndexError        = &RuntimeError{Kind: IndexError}
	ErrNotCallable       = &RuntimeError{Kind: NotCallable}
	ErrRangeError        = &RuntimeError{Kind: RangeError}
	ErrAssignmentError   = &RuntimeError{Kind: AssignmentError}
)
