package cli

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/token"
)

// SystemSpec is a solve request loaded from a CUE system file:
//
//	system: {
//		equations: ["x + y - 5", "x - y - 1"]
//		unknowns:  ["x", "y"]
//	}
type SystemSpec struct {
	Equations []string
	Unknowns  []string
}

// LoadError reports a failure to load a system file, with a CUE source
// position when one is available.
type LoadError struct {
	Path    string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// LoadSystem reads and validates a CUE system definition file.
func LoadSystem(path string) (*SystemSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: fmt.Sprintf("reading system file: %v", err)}
	}

	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, &LoadError{Path: path, Message: fmt.Sprintf("parsing CUE: %v", err)}
	}

	sysVal := value.LookupPath(cue.ParsePath("system"))
	if !sysVal.Exists() {
		return nil, &LoadError{Path: path, Message: "missing required field \"system\"", Pos: value.Pos()}
	}

	spec := &SystemSpec{}
	spec.Equations, err = stringList(sysVal, "equations")
	if err != nil {
		return nil, loadErrAt(path, err)
	}
	spec.Unknowns, err = stringList(sysVal, "unknowns")
	if err != nil {
		return nil, loadErrAt(path, err)
	}
	if len(spec.Equations) == 0 {
		return nil, &LoadError{Path: path, Message: "system.equations must not be empty", Pos: sysVal.Pos()}
	}
	if len(spec.Unknowns) == 0 {
		return nil, &LoadError{Path: path, Message: "system.unknowns must not be empty", Pos: sysVal.Pos()}
	}
	return spec, nil
}

func loadErrAt(path string, err error) error {
	if le, ok := err.(*LoadError); ok {
		le.Path = path
		return le
	}
	return &LoadError{Path: path, Message: err.Error()}
}

func stringList(v cue.Value, field string) ([]string, error) {
	fieldVal := v.LookupPath(cue.ParsePath(field))
	if !fieldVal.Exists() {
		return nil, &LoadError{Message: fmt.Sprintf("missing required field \"system.%s\"", field), Pos: v.Pos()}
	}
	iter, err := fieldVal.List()
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("system.%s must be a list of strings", field), Pos: fieldVal.Pos()}
	}
	var out []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, &LoadError{Message: fmt.Sprintf("system.%s entries must be strings", field), Pos: iter.Value().Pos()}
		}
		out = append(out, s)
	}
	return out, nil
}
