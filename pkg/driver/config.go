package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"aiscript/interpreter-go/pkg/runtime"
)

// ConfigFileName is looked up next to the entry script and in its parents.
const ConfigFileName = "aiscript.yml"

// Config represents the parsed contents of aiscript.yml.
type Config struct {
	Path  string
	Name  string
	Entry string
	// Cache is where git script sources are checked out. Empty means the
	// default cache root.
	Cache string
	// Globals are predefined host bindings. Keys of the form `Ns:member`
	// become namespace members.
	Globals     map[string]runtime.Value
	GlobalOrder []string
	Scripts     map[string]*ScriptSpec
}

// ScriptSpec names a script the CLI can run by name instead of by path.
type ScriptSpec struct {
	Path   string
	Git    string
	Rev    string
	Tag    string
	Branch string
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadConfig parses aiscript.yml from disk, returning a validated config.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg, err := decodeConfig(file, absPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeConfig(r io.Reader, absPath string) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return &Config{Path: absPath, Globals: map[string]runtime.Value{}, Scripts: map[string]*ScriptSpec{}}, nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	cfg := &Config{
		Path:        absPath,
		Name:        strings.TrimSpace(raw.Name),
		Entry:       strings.TrimSpace(raw.Entry),
		Cache:       strings.TrimSpace(raw.Cache),
		Globals:     raw.Globals.values,
		GlobalOrder: raw.Globals.order,
		Scripts:     make(map[string]*ScriptSpec, len(raw.Scripts)),
	}
	if cfg.Globals == nil {
		cfg.Globals = map[string]runtime.Value{}
	}
	for name, spec := range raw.Scripts {
		if spec == nil {
			continue
		}
		cfg.Scripts[strings.TrimSpace(name)] = &ScriptSpec{
			Path:   strings.TrimSpace(spec.Path),
			Git:    strings.TrimSpace(spec.Git),
			Rev:    strings.TrimSpace(spec.Rev),
			Tag:    strings.TrimSpace(spec.Tag),
			Branch: strings.TrimSpace(spec.Branch),
		}
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs ValidationError
	for _, name := range c.GlobalOrder {
		if strings.HasPrefix(name, ":") || strings.HasSuffix(name, ":") || strings.Contains(name, "::") {
			errs.Issues = append(errs.Issues, fmt.Sprintf("globals.%s: namespace path has an empty segment", name))
		}
	}
	for name, spec := range c.Scripts {
		if name == "" {
			errs.Issues = append(errs.Issues, "scripts must not use empty keys")
			continue
		}
		for _, issue := range spec.validate() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("scripts.%s: %s", name, issue))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

func (s *ScriptSpec) validate() []string {
	var issues []string
	if s.Path == "" {
		issues = append(issues, "path must be provided")
	}
	refs := 0
	for _, ref := range []string{s.Rev, s.Tag, s.Branch} {
		if ref != "" {
			refs++
		}
	}
	if s.Git == "" && refs > 0 {
		issues = append(issues, "rev, tag and branch require a git source")
	}
	if refs > 1 {
		issues = append(issues, "specify only one of rev, tag or branch")
	}
	return issues
}

// Source returns the script as a source string accepted by Loader.Resolve.
func (s *ScriptSpec) Source() string {
	if s.Git == "" {
		return s.Path
	}
	ref := s.Rev
	switch {
	case s.Tag != "":
		ref = "refs/tags/" + s.Tag
	case s.Branch != "":
		ref = "refs/heads/" + s.Branch
	}
	if ref == "" {
		return fmt.Sprintf("git+%s#%s", s.Git, s.Path)
	}
	return fmt.Sprintf("git+%s@%s#%s", s.Git, ref, s.Path)
}

// FindConfig walks up from start looking for aiscript.yml. It returns "" when
// none exists.
func FindConfig(start string) (string, error) {
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("config: resolve %s: %w", start, err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

type configFile struct {
	Name    string                 `yaml:"name"`
	Entry   string                 `yaml:"entry"`
	Cache   string                 `yaml:"cache"`
	Globals globalMap              `yaml:"globals"`
	Scripts map[string]*scriptYAML `yaml:"scripts"`
}

type scriptYAML struct {
	Path   string `yaml:"path"`
	Git    string `yaml:"git"`
	Rev    string `yaml:"rev"`
	Tag    string `yaml:"tag"`
	Branch string `yaml:"branch"`
}

// globalMap keeps the document order of the globals mapping.
type globalMap struct {
	values map[string]runtime.Value
	order  []string
}

func (gm *globalMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("config: globals must be a mapping")
	}
	gm.values = make(map[string]runtime.Value, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		var key string
		if err := value.Content[i].Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("config: globals must not use empty keys")
		}
		val, err := ValueFromYAML(value.Content[i+1])
		if err != nil {
			return fmt.Errorf("config: global %q: %w", key, err)
		}
		if _, seen := gm.values[key]; !seen {
			gm.order = append(gm.order, key)
		}
		gm.values[key] = val
	}
	return nil
}

// ValueFromYAML converts a YAML node into a runtime value. Mappings become
// objects whose key order follows the document.
func ValueFromYAML(node *yaml.Node) (runtime.Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return runtime.Null, nil
		}
		return ValueFromYAML(node.Content[0])
	case yaml.AliasNode:
		return ValueFromYAML(node.Alias)
	case yaml.ScalarNode:
		return scalarFromYAML(node)
	case yaml.SequenceNode:
		out := make([]runtime.Value, 0, len(node.Content))
		for _, item := range node.Content {
			val, err := ValueFromYAML(item)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return runtime.NewArray(out), nil
	case yaml.MappingNode:
		obj := runtime.NewObject()
		for i := 0; i < len(node.Content); i += 2 {
			var key string
			if err := node.Content[i].Decode(&key); err != nil {
				return nil, err
			}
			val, err := ValueFromYAML(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(key, val)
		}
		return obj, nil
	case 0:
		return runtime.Null, nil
	default:
		return nil, fmt.Errorf("unsupported YAML node %s", node.ShortTag())
	}
}

func scalarFromYAML(node *yaml.Node) (runtime.Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return runtime.Null, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, err
		}
		return runtime.Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			// Forms such as 0x1F decode as ints only.
			n, perr := strconv.ParseInt(node.Value, 0, 64)
			if perr != nil {
				return nil, err
			}
			f = float64(n)
		}
		return runtime.Number(f), nil
	default:
		return runtime.String(node.Value), nil
	}
}
