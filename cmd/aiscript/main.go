package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"aiscript/interpreter-go/pkg/driver"
	"aiscript/interpreter-go/pkg/interpreter"
	"aiscript/interpreter-go/pkg/runtime"
	"aiscript/interpreter-go/pkg/stdlib"
)

const cliToolVersion = "aiscript " + stdlib.Version

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(args[1:])
	case "repl":
		return runREPL(args[1:])
	default:
		return runEntry(args)
	}
}

func runEntry(args []string) int {
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return 1
	}

	start := "."
	if len(args) == 1 {
		if _, err := os.Stat(args[0]); err == nil {
			start = args[0]
		}
	}
	cfg, err := loadConfigFrom(start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	var spec string
	switch {
	case len(args) == 1:
		spec = args[0]
	case cfg != nil && cfg.Entry != "":
		spec = cfg.Entry
		if !strings.HasPrefix(spec, "git+") && !filepath.IsAbs(spec) {
			spec = filepath.Join(filepath.Dir(cfg.Path), spec)
		}
	default:
		fmt.Fprintf(os.Stderr, "aiscript run requires a source file (no entry in %s)\n", driver.ConfigFileName)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	loader := &driver.Loader{Config: cfg}
	resolved, err := loader.Resolve(ctx, spec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve %s: %v\n", spec, err)
		return 1
	}
	program, err := driver.LoadProgram(resolved.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load program: %v\n", err)
		return 1
	}

	interp := interpreter.New(configGlobals(cfg), interpreter.Options{Out: printer(os.Stdout)})
	if _, err := interp.Start(program).Await(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "interrupted")
			return 130
		}
		fmt.Fprintf(os.Stderr, "runtime error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfigFrom returns the nearest aiscript.yml above start, or nil when
// there is none.
func loadConfigFrom(start string) (*driver.Config, error) {
	path, err := driver.FindConfig(start)
	if err != nil || path == "" {
		return nil, err
	}
	return driver.LoadConfig(path)
}

func configGlobals(cfg *driver.Config) map[string]runtime.Value {
	if cfg == nil {
		return nil
	}
	return cfg.Globals
}

// printer writes each printed value on its own line. Strings are written
// raw; everything else uses the inspect form.
func printer(w io.Writer) func(runtime.Value) {
	return func(val runtime.Value) {
		fmt.Fprintln(w, formatRuntimeValue(val))
	}
}

func formatRuntimeValue(val runtime.Value) string {
	if s, ok := val.(runtime.StringValue); ok {
		return s.Val
	}
	return runtime.Inspect(val)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  aiscript run [file.is | tree.json | git+<url>[@<ref>]#<path> | script]")
	fmt.Fprintln(os.Stderr, "  aiscript <file.is>")
	fmt.Fprintln(os.Stderr, "  aiscript repl")
	fmt.Fprintln(os.Stderr, "  aiscript version")
}
