// Package harness provides conformance testing for the solve pipeline.
//
// The harness loads YAML scenario files, runs each system through the
// public solver API, and validates the resulting outcome against the
// scenario's expectations and a golden snapshot.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: linear_unique
//	description: "A determined linear pair has one integer candidate."
//	equations:
//	  - "x + y - 5"
//	  - "x - y - 1"
//	unknowns: ["x", "y"]
//	expect:
//	  kind: solved
//	  candidates:
//	    - { x: "3", y: "2" }
//
// The expect.candidates list is a subset match: only the listed
// candidates and names are validated, using the display rendering of
// each value. For non-solved kinds, expect.message_contains checks a
// substring of the outcome message.
//
// # Deterministic Testing
//
// Each scenario runs with a fixed request token and a discard logger,
// so the serialized outcome is identical across runs and safe for
// golden file comparison. Solved outcomes with fully numeric
// candidates are additionally verified by substituting each candidate
// back into the compiled equations and checking that every residual
// vanishes within tolerance.
//
// # Usage
//
// Load and run a scenario:
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/linear_unique.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
