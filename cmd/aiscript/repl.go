package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"aiscript/interpreter-go/pkg/ast"
	"aiscript/interpreter-go/pkg/driver"
	"aiscript/interpreter-go/pkg/interpreter"
	"aiscript/interpreter-go/pkg/parser"
	"aiscript/interpreter-go/pkg/runtime"
)

// replSession keeps one interpreter, and so one global frame, across lines.
type replSession struct {
	interp *interpreter.Interpreter
	stdout io.Writer
	stderr io.Writer
	line   int
}

func newREPLSession(globals map[string]runtime.Value, stdout, stderr io.Writer) *replSession {
	return &replSession{
		interp: interpreter.New(globals, interpreter.Options{Out: printer(stdout)}),
		stdout: stdout,
		stderr: stderr,
	}
}

// eval runs one line. Values of non-print statements are echoed.
func (s *replSession) eval(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	s.line++
	program, err := parser.ParseProgram(fmt.Sprintf("<repl:%d>", s.line), []byte(line))
	if err != nil {
		fmt.Fprintf(s.stderr, "%v\n", err)
		return
	}
	val, err := s.interp.Exec(program)
	if err != nil {
		fmt.Fprintf(s.stderr, "runtime error: %v\n", err)
		return
	}
	if len(program.Body) == 0 || val == nil || val.Kind() == runtime.KindNull {
		return
	}
	if _, printed := program.Body[len(program.Body)-1].(*ast.PrintStatement); printed {
		return
	}
	fmt.Fprintln(s.stdout, runtime.Inspect(val))
}

func runREPL(args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "aiscript repl does not take arguments (received %s)\n", strings.Join(args, " "))
		return 1
	}
	cfg, err := loadConfigFrom(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	rlConfig := &readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	}
	if home, err := driver.DefaultCacheRoot(); err == nil {
		if err := os.MkdirAll(home, 0o755); err == nil {
			rlConfig.HistoryFile = filepath.Join(home, "repl_history")
		}
	}
	rl, err := readline.NewEx(rlConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start repl: %v\n", err)
		return 1
	}
	defer rl.Close()

	fmt.Fprintln(rl.Stdout(), cliToolVersion)
	session := newREPLSession(configGlobals(cfg), rl.Stdout(), rl.Stderr())
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			break
		}
		session.eval(line)
	}
	return 0
}
