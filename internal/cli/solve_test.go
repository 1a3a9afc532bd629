package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveTextOutput(t *testing.T) {
	stdout, _, err := execute(t,
		"solve",
		"--eq", "x + y - 5",
		"--eq", "x - y - 1",
		"--unknown", "x",
		"--unknown", "y",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "outcome: solved")
	assert.Contains(t, stdout, "candidate 1: x = 3, y = 2")
}

func TestSolveJSONOutput(t *testing.T) {
	stdout, _, err := execute(t,
		"--format", "json",
		"solve", "--eq", "2*z - 10", "--unknown", "z",
	)
	require.NoError(t, err)

	var out struct {
		Kind       string `json:"kind"`
		Candidates []map[string]struct {
			Kind  string          `json:"kind"`
			Value json.RawMessage `json:"value"`
		} `json:"candidates"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "solved", out.Kind)
	require.Len(t, out.Candidates, 1)
	assert.Equal(t, "int", out.Candidates[0]["z"].Kind)
	assert.Equal(t, "5", string(out.Candidates[0]["z"].Value))
}

func TestSolveDegenerateOutcomeExitCode(t *testing.T) {
	stdout, _, err := execute(t,
		"solve",
		"--eq", "x + y - 1",
		"--eq", "x + y - 2",
		"--unknown", "x",
		"--unknown", "y",
	)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "outcome: no_solution")
}

func TestSolveInputErrorExitCode(t *testing.T) {
	stdout, _, err := execute(t, "solve", "--eq", "x + = 3", "--unknown", "x")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "outcome: input_error")
}

func TestSolveRequiresFlags(t *testing.T) {
	_, _, err := execute(t, "solve")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSolveFromSystemFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sys.cue")
	content := `system: {
	equations: ["x + y - 5", "x - y - 1"]
	unknowns: ["x", "y"]
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	stdout, _, err := execute(t, "solve", "--system", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "candidate 1: x = 3, y = 2")
}

func TestSolveSystemFileExclusiveWithFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sys.cue")
	require.NoError(t, os.WriteFile(path, []byte(`system: {equations: ["x - 1"], unknowns: ["x"]}`), 0o644))

	_, _, err := execute(t, "solve", "--system", path, "--eq", "x - 1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "--system cannot be combined")
}

func TestSolveMissingSystemFile(t *testing.T) {
	_, _, err := execute(t, "solve", "--system", filepath.Join(t.TempDir(), "absent.cue"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSolveRecordsHistory(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")

	_, _, err := execute(t, "solve", "--eq", "2*z - 10", "--unknown", "z", "--db", db)
	require.NoError(t, err)

	stdout, _, err := execute(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, stdout, "solved")
	assert.Contains(t, stdout, "2*z - 10")
}

func TestSolveVerboseLogsToStderr(t *testing.T) {
	_, stderr, err := execute(t, "--verbose", "solve", "--eq", "x - 1", "--unknown", "x")
	require.NoError(t, err)
	assert.Contains(t, stderr, "request")
}
