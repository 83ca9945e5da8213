package domain

import (
	"fmt"
	"math"
	"sort"
)

// TransformFunc is a scalar transform applied to field values on
// initialization, input, or output.
type TransformFunc func(float64) float64

// TransformTable is a registry of named transform functions shared
// read-only by all field payloads.
type TransformTable struct {
	funcs map[string]TransformFunc
}

// NewTransformTable returns a table populated with the built-in transforms:
// LN, LOG, LOG10, EXP, POW10 and TRUNC_POW10.
func NewTransformTable() *TransformTable {
	t := &TransformTable{funcs: make(map[string]TransformFunc)}
	mustRegister := func(name string, fn TransformFunc) {
		if err := t.Register(name, fn); err != nil {
			panic(err)
		}
	}
	mustRegister("LN", math.Log)
	mustRegister("LOG", math.Log)
	mustRegister("LOG10", math.Log10)
	mustRegister("EXP", math.Exp)
	mustRegister("POW10", func(x float64) float64 { return math.Pow(10, x) })
	mustRegister("TRUNC_POW10", func(x float64) float64 { return math.Max(math.Pow(10, x), 0.001) })
	return t
}

// Register adds a named transform. Registering an existing name fails.
func (t *TransformTable) Register(name string, fn TransformFunc) error {
	if name == "" || fn == nil {
		return fmt.Errorf("transform registration requires a name and a function")
	}
	if _, exists := t.funcs[name]; exists {
		return fmt.Errorf("transform %q already registered", name)
	}
	t.funcs[name] = fn
	return nil
}

// Has reports whether name is registered.
func (t *TransformTable) Has(name string) bool {
	_, ok := t.funcs[name]
	return ok
}

// Lookup returns the transform registered under name.
func (t *TransformTable) Lookup(name string) (TransformFunc, error) {
	fn, ok := t.funcs[name]
	if !ok {
		return nil, UnknownTransformNameError{Name: name}
	}
	return fn, nil
}

// Names returns all registered transform names, sorted.
func (t *TransformTable) Names() []string {
	out := make([]string, 0, len(t.funcs))
	for name := range t.funcs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
