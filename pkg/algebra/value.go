package algebra

import (
	"encoding/json"
	"strconv"
)

// Value is a resolved value for one unknown. Only IntValue, FloatValue,
// and ExprValue implement it.
type Value interface {
	// String renders the value for display.
	String() string

	value() // sealed
}

// IntValue is an exactly-integer solution value.
type IntValue struct {
	V int64
}

func (v IntValue) String() string { return strconv.FormatInt(v.V, 10) }
func (IntValue) value()           {}

func (v IntValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string `json:"kind"`
		Value int64  `json:"value"`
	}{"int", v.V})
}

// FloatValue is a finite non-integer numeric solution value.
type FloatValue struct {
	V float64
}

func (v FloatValue) String() string { return strconv.FormatFloat(v.V, 'g', -1, 64) }
func (FloatValue) value()           {}

func (v FloatValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string  `json:"kind"`
		Value float64 `json:"value"`
	}{"float", v.V})
}

// ExprValue is the canonical string form of a value that has no finite
// numeric representation, typically a variable left free by an
// underdetermined system.
type ExprValue struct {
	V string
}

func (v ExprValue) String() string { return v.V }
func (ExprValue) value()           {}

func (v ExprValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string `json:"kind"`
		Value string `json:"value"`
	}{"expr", v.V})
}

// Candidate maps each unknown name to its resolved value. JSON output
// is deterministic: encoding/json emits map keys in sorted order.
type Candidate map[string]Value
