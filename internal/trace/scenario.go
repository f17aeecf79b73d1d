package trace

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Operations understood by the replayer.
const (
	OpPut    = "put"
	OpGet    = "get"
	OpPeek   = "peek"
	OpRemove = "remove"
	OpResize = "resize"
	OpFree   = "free"
	OpCheck  = "check"
)

// Scenario is a named sequence of cache operations.
type Scenario struct {
	Name     string `yaml:"name"`
	Capacity int    `yaml:"capacity"`
	Steps    []Step `yaml:"steps"`
}

// Step is one operation. Key and Value are names; the replayer maps every
// distinct name to a distinct token so the cache sees identity keys.
type Step struct {
	Expect   *Expect `yaml:"expect,omitempty"`
	Op       string  `yaml:"op"`
	Key      string  `yaml:"key,omitempty"`
	Value    string  `yaml:"value,omitempty"`
	Capacity int     `yaml:"capacity,omitempty"`
}

// Expect lists assertions checked after a step. Nil fields are not checked.
// An empty Front or Back name expects an empty cache.
type Expect struct {
	Value   *string   `yaml:"value,omitempty"`
	Found   *bool     `yaml:"found,omitempty"`
	Evicted *int      `yaml:"evicted,omitempty"`
	Size    *int      `yaml:"size,omitempty"`
	Front   *string   `yaml:"front,omitempty"`
	Back    *string   `yaml:"back,omitempty"`
	Keys    *[]string `yaml:"keys,omitempty"`
}

// Load decodes and validates a scenario. Unknown fields are rejected.
func Load(r io.Reader) (Scenario, error) {
	var sc Scenario

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return Scenario{}, errors.Join(ErrDecode, err)
	}

	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// LoadFile reads a scenario from path. A missing name defaults to the path.
func LoadFile(path string) (Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scenario{}, err
	}
	defer f.Close()

	sc, err := Load(f)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = path
	}
	return sc, nil
}

// Validate checks that every step is well formed.
func (sc Scenario) Validate() error {
	if sc.Capacity < 0 {
		return fmt.Errorf("%w: negative capacity %d", ErrInvalidStep, sc.Capacity)
	}

	for i, st := range sc.Steps {
		switch st.Op {
		case OpPut:
			if st.Key == "" || st.Value == "" {
				return fmt.Errorf("%w: step %d: put needs key and value", ErrInvalidStep, i)
			}
		case OpGet, OpPeek, OpRemove:
			if st.Key == "" {
				return fmt.Errorf("%w: step %d: %s needs a key", ErrInvalidStep, i, st.Op)
			}
		case OpResize:
			if st.Capacity < 0 {
				return fmt.Errorf("%w: step %d: negative capacity %d", ErrInvalidStep, i, st.Capacity)
			}
		case OpFree, OpCheck:
		default:
			return fmt.Errorf("%w: step %d: %q", ErrUnknownOp, i, st.Op)
		}
	}
	return nil
}
