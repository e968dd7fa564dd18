package interpreter

import (
	"errors"
	"strings"
	"testing"

	"aiscript/interpreter-go/pkg/ast"
	"aiscript/interpreter-go/pkg/runtime"
)

func TestRuntimeErrorKinds(t *testing.T) {
	cases := []struct {
		name string
		body []ast.Statement
		want error
	}{
		{"undefined variable", []ast.Statement{ast.ID("nope")}, runtime.ErrUndefinedVariable},
		{"arithmetic on str", []ast.Statement{ast.Bin("-", ast.Str("a"), ast.Num(1))}, runtime.ErrTypeError},
		{"str plus num", []ast.Statement{ast.Bin("+", ast.Str("a"), ast.Num(1))}, runtime.ErrTypeError},
		{"compare bools", []ast.Statement{ast.Bin("<", ast.Bool(true), ast.Bool(false))}, runtime.ErrTypeError},
		{"and on num", []ast.Statement{ast.Bin("&", ast.Num(1), ast.Bool(true))}, runtime.ErrTypeError},
		{"not on num", []ast.Statement{ast.Not(ast.Num(1))}, runtime.ErrTypeError},
		{"non-bool condition", []ast.Statement{ast.If(ast.Num(1), ast.Num(2))}, runtime.ErrTypeError},
		{"division by zero", []ast.Statement{ast.Bin("/", ast.Num(1), ast.Num(0))}, runtime.ErrDivisionByZero},
		{"modulo by zero", []ast.Statement{ast.Bin("%", ast.Num(1), ast.Num(0))}, runtime.ErrDivisionByZero},
		{"index zero", []ast.Statement{ast.Index(ast.Arr(ast.Num(1)), ast.Num(0))}, runtime.ErrIndexError},
		{"index past end", []ast.Statement{ast.Index(ast.Arr(ast.Num(1)), ast.Num(2))}, runtime.ErrIndexError},
		{"fractional index", []ast.Statement{ast.Index(ast.Arr(ast.Num(1)), ast.Num(1.5))}, runtime.ErrTypeError},
		{"index non-array", []ast.Statement{ast.Index(ast.Str("abc"), ast.Num(1))}, runtime.ErrTypeError},
		{"member of non-object", []ast.Statement{ast.Member(ast.Num(1), "a")}, runtime.ErrTypeError},
		{"call non-function", []ast.Statement{ast.Let("x", ast.Num(1)), ast.CallNamed("x")}, runtime.ErrNotCallable},
		{"negative loop count", []ast.Statement{ast.For("", ast.Num(-1), ast.Num(1))}, runtime.ErrRangeError},
		{"fractional loop count", []ast.Statement{ast.For("i", ast.Num(1.5), ast.Num(1))}, runtime.ErrRangeError},
		{"huge loop count", []ast.Statement{ast.For("", ast.Num(1e19), ast.Num(1))}, runtime.ErrRangeError},
		{"loop count past safe integers", []ast.Statement{ast.For("i", ast.Num(1<<53+2), ast.Num(1))}, runtime.ErrRangeError},
		{"non-number loop count", []ast.Statement{ast.For("i", ast.Str("3"), ast.Num(1))}, runtime.ErrTypeError},
		{"for-of over object", []ast.Statement{ast.Each("x", ast.Obj(), ast.Num(1))}, runtime.ErrTypeError},
		{"assign immutable", []ast.Statement{ast.Let("x", ast.Num(1)), ast.Set("x", ast.Num(2))}, runtime.ErrAssignmentError},
		{"assign undeclared", []ast.Statement{ast.Set("x", ast.Num(2))}, runtime.ErrUndefinedVariable},
		{"assign parameter", []ast.Statement{
			ast.Fn("f", ast.Params("p"), ast.Set("p", ast.Num(1))),
			ast.CallNamed("f", ast.Num(0)),
		}, runtime.ErrAssignmentError},
		{"return in namespace initializer", []ast.Statement{
			ast.Namespace("N", ast.Let("x", ast.Block(ast.Ret(ast.Num(1))))),
		}, runtime.ErrTypeError},
		{"mutable namespace member", []ast.Statement{ast.Namespace("N", ast.Var("x", ast.Num(1)))}, runtime.ErrAssignmentError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			interp, _ := newRecordingInterpreter(nil)
			_, err := interp.Exec(ast.Prog(tc.body...))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			var rtErr *RuntimeError
			if !errors.As(err, &rtErr) {
				t.Fatalf("expected *RuntimeError, got %T", err)
			}
		})
	}
}

func TestErrorAbortsRemainingStatements(t *testing.T) {
	interp, rec := newRecordingInterpreter(nil)
	_, err := interp.Exec(ast.Prog(
		ast.Print(ast.Num(1)),
		ast.Bin("/", ast.Num(0), ast.Num(0)),
		ast.Print(ast.Num(2)),
	))
	if !errors.Is(err, runtime.ErrDivisionByZero) {
		t.Fatalf("expected DivisionByZero, got %v", err)
	}
	if len(rec.values) != 1 {
		t.Fatalf("expected only the first print, got %v", rec.texts())
	}
}

func TestErrorsCrossFunctionsAndNatives(t *testing.T) {
	interp, _ := newRecordingInterpreter(nil)
	_, err := interp.Exec(ast.Prog(
		ast.Call(ast.NS("Arr", "map"), ast.Arr(ast.Num(1)), ast.Lambda(ast.Params("x"), ast.ID("missing"))),
	))
	if !errors.Is(err, runtime.ErrUndefinedVariable) {
		t.Fatalf("expected UndefinedVariable from callback, got %v", err)
	}
	if !strings.Contains(err.Error(), "missing") {
		t.Fatalf("error should name the variable, got %q", err.Error())
	}
}

func TestNotCallableNamesCallee(t *testing.T) {
	interp, _ := newRecordingInterpreter(nil)
	_, err := interp.Exec(ast.Prog(
		ast.Let("obj", ast.Obj(ast.Prop("a", ast.Num(1)))),
		ast.Call(ast.Member(ast.ID("obj"), "a")),
	))
	if !errors.Is(err, runtime.ErrNotCallable) {
		t.Fatalf("expected NotCallable, got %v", err)
	}
	if !strings.Contains(err.Error(), "'a'") {
		t.Fatalf("expected callee name in %q", err.Error())
	}
}

func TestMissingMemberIsNullNotError(t *testing.T) {
	interp, _ := newRecordingInterpreter(nil)
	val := mustExec(t, interp, ast.Prog(ast.Member(ast.Obj(), "constructor")))
	expectInspect(t, val, "_")
}
