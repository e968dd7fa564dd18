// Package driver locates, fetches and loads AiScript programs for the CLI.
// It never evaluates code; callers hand the loaded program to the interpreter.
package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"aiscript/interpreter-go/pkg/ast"
	"aiscript/interpreter-go/pkg/parser"
)

// Loader resolves script specs relative to an optional config.
type Loader struct {
	Config  *Config
	Fetcher *GitFetcher
}

// Resolved describes where a program came from.
type Resolved struct {
	Path   string
	Commit string
}

// Resolve maps a source string to a local file. It is tried as a git source,
// an existing file, then a script name from the config.
func (l *Loader) Resolve(ctx context.Context, spec string) (Resolved, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Resolved{}, fmt.Errorf("source: empty source")
	}
	if strings.HasPrefix(spec, "git+") {
		src, err := ParseGitSource(spec)
		if err != nil {
			return Resolved{}, err
		}
		fetcher, err := l.fetcher()
		if err != nil {
			return Resolved{}, err
		}
		path, commit, err := fetcher.Fetch(ctx, src)
		if err != nil {
			return Resolved{}, fmt.Errorf("source: fetch %s: %w", spec, err)
		}
		return Resolved{Path: path, Commit: commit}, nil
	}
	if _, err := os.Stat(spec); err == nil {
		abs, err := filepath.Abs(spec)
		if err != nil {
			return Resolved{}, fmt.Errorf("source: resolve %s: %w", spec, err)
		}
		return Resolved{Path: abs}, nil
	}
	if l.Config != nil {
		if script, ok := l.Config.Scripts[spec]; ok {
			if script.Git != "" {
				return l.Resolve(ctx, script.Source())
			}
			return Resolved{Path: filepath.Join(filepath.Dir(l.Config.Path), script.Path)}, nil
		}
	}
	return Resolved{}, fmt.Errorf("source: %s: no such file or script", spec)
}

func (l *Loader) fetcher() (*GitFetcher, error) {
	if l.Fetcher != nil {
		return l.Fetcher, nil
	}
	cache := ""
	if l.Config != nil && l.Config.Cache != "" {
		cache = l.Config.Cache
		if !filepath.IsAbs(cache) {
			cache = filepath.Join(filepath.Dir(l.Config.Path), cache)
		}
	}
	fetcher, err := NewGitFetcher(cache)
	if err != nil {
		return nil, err
	}
	l.Fetcher = fetcher
	return fetcher, nil
}

// LoadProgram reads path as source text, or as a JSON syntax tree when the
// extension is .json.
func LoadProgram(path string) (*ast.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		program, err := ast.DecodeProgram(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("source: %s: %w", path, err)
		}
		return program, nil
	}
	return parser.ParseProgram(path, data)
}
