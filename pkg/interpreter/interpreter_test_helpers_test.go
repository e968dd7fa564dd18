package interpreter

import (
	"testing"

	"aiscript/interpreter-go/pkg/ast"
	"aiscript/interpreter-go/pkg/parser"
	"aiscript/interpreter-go/pkg/runtime"
)

// recorder collects everything a program prints.
type recorder struct {
	values []runtime.Value
}

func (r *recorder) out(v runtime.Value) {
	r.values = append(r.values, v)
}

func (r *recorder) texts() []string {
	out := make([]string, 0, len(r.values))
	for _, v := range r.values {
		out = append(out, runtime.Inspect(v))
	}
	return out
}

func newRecordingInterpreter(globals map[string]runtime.Value) (*Interpreter, *recorder) {
	rec := &recorder{}
	return New(globals, Options{Out: rec.out}), rec
}

func mustExec(t *testing.T, interp *Interpreter, program *ast.Program) runtime.Value {
	t.Helper()
	val, err := interp.Exec(program)
	if err != nil {
		t.Fatalf("Exec returned error: %v", err)
	}
	return val
}

func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()
	program, err := parser.ParseProgram("<test>", []byte(source))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return program
}

// runSource parses and runs source, returning the printed values.
func runSource(t *testing.T, source string) ([]runtime.Value, error) {
	t.Helper()
	interp, rec := newRecordingInterpreter(nil)
	_, err := interp.Exec(mustParse(t, source))
	return rec.values, err
}

// firstOutput runs source and returns the first printed value.
func firstOutput(t *testing.T, source string) runtime.Value {
	t.Helper()
	out, err := runSource(t, source)
	if err != nil {
		t.Fatalf("execution failed: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("program printed nothing")
	}
	return out[0]
}

func expectInspect(t *testing.T, val runtime.Value, want string) {
	t.Helper()
	if got := runtime.Inspect(val); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
