package algebra

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueJSON(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want string
	}{
		{"int", IntValue{V: 3}, `{"kind":"int","value":3}`},
		{"negative int", IntValue{V: -2}, `{"kind":"int","value":-2}`},
		{"float", FloatValue{V: 0.5}, `{"kind":"float","value":0.5}`},
		{"expr", ExprValue{V: "-y + 1"}, `{"kind":"expr","value":"-y + 1"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := json.Marshal(tc.v)
			require.NoError(t, err)
			assert.JSONEq(t, tc.want, string(b))
		})
	}
}

func TestCandidateJSONSortsKeys(t *testing.T) {
	c := Candidate{
		"y": IntValue{V: 2},
		"x": IntValue{V: 3},
	}
	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t,
		`{"x":{"kind":"int","value":3},"y":{"kind":"int","value":2}}`,
		string(b))
}

func TestOutcomeJSON(t *testing.T) {
	out := Outcome{
		Kind: KindSolved,
		Candidates: []Candidate{
			{"z": IntValue{V: 5}},
		},
	}
	b, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"kind":"solved","candidates":[{"z":{"kind":"int","value":5}}]}`,
		string(b))

	b, err = json.Marshal(Outcome{Kind: KindNoSolution, Message: "the system has no solution"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"no_solution","message":"the system has no solution"}`, string(b))
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "3", IntValue{V: 3}.String())
	assert.Equal(t, "0.5", FloatValue{V: 0.5}.String())
	assert.Equal(t, "-y + 1", ExprValue{V: "-y + 1"}.String())
}
