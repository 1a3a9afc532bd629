package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenarioFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validScenarioYAML = `name: sample
description: "A sample scenario."
equations:
  - "x - 1"
unknowns: ["x"]
expect:
  kind: solved
  candidates:
    - { x: "1" }
`

func TestLoadScenario(t *testing.T) {
	path := writeScenarioFile(t, "sample.yaml", validScenarioYAML)

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "sample", s.Name)
	assert.Equal(t, []string{"x - 1"}, s.Equations)
	assert.Equal(t, []string{"x"}, s.Unknowns)
	assert.Equal(t, "solved", s.Expect.Kind)
	require.Len(t, s.Expect.Candidates, 1)
	assert.Equal(t, "1", s.Expect.Candidates[0]["x"])
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenarioRejectsUnknownFields(t *testing.T) {
	path := writeScenarioFile(t, "typo.yaml", `name: typo
description: "Typoed field."
equations: ["x - 1"]
unknowns: ["x"]
expects:
  kind: solved
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenarioValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name: "missing name",
			content: `description: "d"
equations: ["x - 1"]
unknowns: ["x"]
expect: { kind: solved }
`,
			wantMsg: "name is required",
		},
		{
			name: "missing description",
			content: `name: s
equations: ["x - 1"]
unknowns: ["x"]
expect: { kind: solved }
`,
			wantMsg: "description is required",
		},
		{
			name: "missing equations",
			content: `name: s
description: "d"
unknowns: ["x"]
expect: { kind: solved }
`,
			wantMsg: "equations list is required",
		},
		{
			name: "missing unknowns",
			content: `name: s
description: "d"
equations: ["x - 1"]
expect: { kind: solved }
`,
			wantMsg: "unknowns list is required",
		},
		{
			name: "missing expect kind",
			content: `name: s
description: "d"
equations: ["x - 1"]
unknowns: ["x"]
`,
			wantMsg: "expect.kind is required",
		},
		{
			name: "unknown kind",
			content: `name: s
description: "d"
equations: ["x - 1"]
unknowns: ["x"]
expect: { kind: maybe_solved }
`,
			wantMsg: `unknown outcome kind "maybe_solved"`,
		},
		{
			name: "candidates on non-solved kind",
			content: `name: s
description: "d"
equations: ["x - 1"]
unknowns: ["x"]
expect:
  kind: no_solution
  candidates:
    - { x: "1" }
`,
			wantMsg: `only valid with kind "solved"`,
		},
		{
			name: "empty candidate",
			content: `name: s
description: "d"
equations: ["x - 1"]
unknowns: ["x"]
expect:
  kind: solved
  candidates:
    - {}
`,
			wantMsg: "must not be empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenarioFile(t, "scenario.yaml", tt.content)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadScenarioDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(`name: second
description: "d"
equations: ["y - 2"]
unknowns: ["y"]
expect: { kind: solved }
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(`name: first
description: "d"
equations: ["x - 1"]
unknowns: ["x"]
expect: { kind: solved }
`), 0o644))

	scenarios, err := LoadScenarioDir(dir)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)
	assert.Equal(t, "first", scenarios[0].Name)
	assert.Equal(t, "second", scenarios[1].Name)
}

func TestLoadScenarioDirRejectsDuplicateNames(t *testing.T) {
	dir := t.TempDir()
	content := `name: dup
description: "d"
equations: ["x - 1"]
unknowns: ["x"]
expect: { kind: solved }
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(content), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(content), 0o644))

	_, err := LoadScenarioDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate scenario name "dup"`)
}
