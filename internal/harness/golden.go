package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/solvium-dev/solvium/pkg/algebra"
)

// OutcomeSnapshot is the serialized form compared against golden files.
// Candidate maps encode with sorted keys, and scenarios run with fixed
// request tokens, so the snapshot is byte-stable across runs.
type OutcomeSnapshot struct {
	ScenarioName string          `json:"scenario_name"`
	Equations    []string        `json:"equations"`
	Unknowns     []string        `json:"unknowns"`
	Outcome      algebra.Outcome `json:"outcome"`
}

// RunWithGolden executes a scenario, fails the test on any expectation
// mismatch, and compares the outcome snapshot against the golden file
// at testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		t.Fatalf("running scenario %s: %v", scenario.Name, err)
	}
	for _, msg := range result.Errors {
		t.Errorf("%s: %s", scenario.Name, msg)
	}

	AssertGolden(t, scenario, result)
}

// AssertGolden compares an already-obtained result against the
// scenario's golden file without re-running it.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) {
	t.Helper()

	snapshot := OutcomeSnapshot{
		ScenarioName: scenario.Name,
		Equations:    scenario.Equations,
		Unknowns:     scenario.Unknowns,
		Outcome:      result.Outcome,
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		t.Fatalf("marshaling snapshot for %s: %v", scenario.Name, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
}
