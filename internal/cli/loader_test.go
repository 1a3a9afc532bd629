package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSystemFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "system.cue")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSystem(t *testing.T) {
	path := writeSystemFile(t, `system: {
	equations: ["x + y - 5", "x - y - 1"]
	unknowns: ["x", "y"]
}`)

	spec, err := LoadSystem(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"x + y - 5", "x - y - 1"}, spec.Equations)
	assert.Equal(t, []string{"x", "y"}, spec.Unknowns)
}

func TestLoadSystemErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name:    "malformed CUE",
			content: `system: {equations: [`,
			wantMsg: "parsing CUE",
		},
		{
			name:    "missing system field",
			content: `other: 1`,
			wantMsg: `missing required field "system"`,
		},
		{
			name:    "missing unknowns",
			content: `system: {equations: ["x - 1"]}`,
			wantMsg: `missing required field "system.unknowns"`,
		},
		{
			name:    "equations not a list",
			content: `system: {equations: "x - 1", unknowns: ["x"]}`,
			wantMsg: "system.equations must be a list of strings",
		},
		{
			name:    "non-string entry",
			content: `system: {equations: [42], unknowns: ["x"]}`,
			wantMsg: "system.equations entries must be strings",
		},
		{
			name:    "empty equations",
			content: `system: {equations: [], unknowns: ["x"]}`,
			wantMsg: "system.equations must not be empty",
		},
		{
			name:    "empty unknowns",
			content: `system: {equations: ["x - 1"], unknowns: []}`,
			wantMsg: "system.unknowns must not be empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSystemFile(t, tt.content)
			_, err := LoadSystem(path)
			require.Error(t, err)
			var le *LoadError
			require.ErrorAs(t, err, &le)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadSystemMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.cue")
	_, err := LoadSystem(path)
	require.Error(t, err)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, path, le.Path)
	assert.Contains(t, err.Error(), "reading system file")
}
