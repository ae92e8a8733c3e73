// Package config loads seek bar scenarios for the seekbar tool.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// FileName is the scenario file looked up in a project directory.
const FileName = "seekbar.yaml"

// Step operations.
const (
	OpProgress    = "progress"
	OpDrag        = "drag"
	OpStart       = "start"
	OpStop        = "stop"
	OpUnsubscribe = "unsubscribe"
	OpSubscribe   = "subscribe"
)

// Scenario represents the optional seekbar.yaml configuration.
type Scenario struct {
	Name        string        `yaml:"name,omitempty"`
	SeekBar     SeekBarConfig `yaml:"seek_bar"`
	EmitInitial bool          `yaml:"emit_initial"`
	Subscribers int           `yaml:"subscribers,omitempty"`
	Steps       []Step        `yaml:"steps"`
}

// SeekBarConfig describes the seek bar under test.
type SeekBarConfig struct {
	Initial int `yaml:"initial"`
	Max     int `yaml:"max,omitempty"`
}

// Step is one scripted interaction.
//
//	progress:    programmatic SetProgress(value)
//	drag:        a user gesture ending at value (start, change, stop)
//	start, stop: bare tracking callbacks
//	subscribe:   add a subscriber (emit_initial applies)
//	unsubscribe: cancel subscriber #subscriber
type Step struct {
	Op         string `yaml:"op"`
	Value      int    `yaml:"value,omitempty"`
	Subscriber int    `yaml:"subscriber,omitempty"`
}

// LoadOptional reads seekbar.yaml from dir if present.
func LoadOptional(dir string) (*Scenario, error) {
	s, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return &Scenario{}, nil
	}
	return s, err
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes scenario YAML. Unknown fields are rejected.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty document decodes to io.EOF and means an empty scenario.
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	return &s, nil
}

// Resolve fills defaults and validates s. dir is the project directory used
// to derive a default name from go.mod; it may be empty.
func Resolve(s *Scenario, dir string) (*Scenario, error) {
	out := *s
	out.Steps = append([]Step(nil), s.Steps...)

	out.Name = strings.TrimSpace(out.Name)
	if out.Name == "" {
		out.Name = defaultName(dir)
	}
	if out.SeekBar.Max <= 0 {
		out.SeekBar.Max = 100
	}
	if out.Subscribers <= 0 {
		out.Subscribers = 1
	}
	if err := validate(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResolveDir loads seekbar.yaml from dir (if present) and resolves it.
func ResolveDir(dir string) (*Scenario, error) {
	s, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return Resolve(s, dir)
}

func validate(s *Scenario) error {
	if s.SeekBar.Initial < 0 || s.SeekBar.Initial > s.SeekBar.Max {
		return fmt.Errorf("seek_bar.initial %d is outside [0, %d]", s.SeekBar.Initial, s.SeekBar.Max)
	}
	subscribers := s.Subscribers
	for i, step := range s.Steps {
		switch step.Op {
		case OpProgress, OpDrag, OpStart, OpStop:
		case OpSubscribe:
			subscribers++
		case OpUnsubscribe:
			if step.Subscriber < 0 || step.Subscriber >= subscribers {
				return fmt.Errorf("steps[%d]: subscriber %d does not exist (have %d)", i, step.Subscriber, subscribers)
			}
		case "":
			return fmt.Errorf("steps[%d]: op is required", i)
		default:
			return fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
		}
	}
	return nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

// defaultName uses the last element of the module path (without a major
// version suffix), then the directory name, then "seekbar".
func defaultName(dir string) string {
	if dir == "" {
		return "seekbar"
	}
	base := filepath.Base(dir)
	if path, err := modulePath(dir); err == nil {
		if prefix, _, ok := module.SplitPathVersion(path); ok {
			parts := strings.Split(prefix, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "seekbar"
	}
	return base
}
