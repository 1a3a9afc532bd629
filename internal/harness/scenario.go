package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: one equation system plus
// the outcome it must produce.
type Scenario struct {
	// Name uniquely identifies this scenario. It doubles as the golden
	// file name, so it must be filesystem-safe.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Equations holds the equation texts of the system. Each is either
	// a bare expression implicitly equal to zero or an explicit
	// "Eq(lhs, rhs)" form.
	Equations []string `yaml:"equations"`

	// Unknowns lists the names to solve for.
	Unknowns []string `yaml:"unknowns"`

	// Expect specifies the required outcome.
	Expect Expectation `yaml:"expect"`

	// Token is an optional fixed request token. If empty, a
	// deterministic token is derived from the scenario name.
	Token string `yaml:"token,omitempty"`
}

// Expectation specifies the outcome a scenario must produce.
type Expectation struct {
	// Kind is the required outcome kind, e.g. "solved" or "no_solution".
	Kind string `yaml:"kind"`

	// Candidates lists expected solution candidates as maps from
	// unknown name to the display rendering of its value. Subset match:
	// every listed candidate must appear, at its listed position, with
	// exactly the listed name/value pairs among its entries.
	Candidates []map[string]string `yaml:"candidates,omitempty"`

	// MessageContains requires the outcome message to contain this
	// substring. Only meaningful for non-solved kinds.
	MessageContains string `yaml:"message_contains,omitempty"`
}

// knownKinds are the outcome kinds a scenario may expect.
var knownKinds = map[string]bool{
	"solved":         true,
	"no_solution":    true,
	"indeterminate":  true,
	"unsupported":    true,
	"input_error":    true,
	"internal_error": true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expects:" vs "expect:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadScenarioDir loads every *.yaml scenario under dir, sorted by file
// name so suite runs are deterministic.
func LoadScenarioDir(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list scenario dir: %w", err)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if prev, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate scenario name %q (first used in %s)", path, s.Name, prev)
		}
		seen[s.Name] = path
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Equations) == 0 {
		return fmt.Errorf("equations list is required and must be non-empty")
	}
	if len(s.Unknowns) == 0 {
		return fmt.Errorf("unknowns list is required and must be non-empty")
	}
	if s.Expect.Kind == "" {
		return fmt.Errorf("expect.kind is required")
	}
	if !knownKinds[s.Expect.Kind] {
		return fmt.Errorf("expect.kind: unknown outcome kind %q", s.Expect.Kind)
	}
	if s.Expect.Kind != "solved" && len(s.Expect.Candidates) > 0 {
		return fmt.Errorf("expect.candidates is only valid with kind \"solved\"")
	}
	for i, cand := range s.Expect.Candidates {
		if len(cand) == 0 {
			return fmt.Errorf("expect.candidates[%d]: must not be empty", i)
		}
	}
	return nil
}
