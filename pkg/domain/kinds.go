// Package domain defines the value types shared across the ensemble
// configuration registry: implementation kinds, variable classes, the
// per-kind configuration payloads, and the collaborator interfaces.
package domain

import "fmt"

// ImplementationKind identifies the concrete payload type attached to a
// configuration node. It is immutable after node creation.
type ImplementationKind string

// Supported implementation kinds. The string values double as the config
// keywords used during ingestion and serialization.
const (
	// KindInvalid marks a node without a recognized payload.
	KindInvalid ImplementationKind = "INVALID"
	// KindField is a 3D grid field variable.
	KindField ImplementationKind = "FIELD"
	// KindGenKW is a scalar keyword parameter set substituted into templates.
	KindGenKW ImplementationKind = "GEN_KW"
	// KindGenData is a free-form generated data variable.
	KindGenData ImplementationKind = "GEN_DATA"
	// KindSurface is a 2D surface variable.
	KindSurface ImplementationKind = "SURFACE"
	// KindSummary is a simulator summary time-series variable.
	KindSummary ImplementationKind = "SUMMARY"
	// KindContainer aggregates references to other registered nodes.
	KindContainer ImplementationKind = "CONTAINER"
	// KindStatic marks simulator state discovered at result-load time.
	KindStatic ImplementationKind = "STATIC"
)

// VariableClass tags the broad role of a variable. Classes form a bitmask so
// listings can filter on unions, e.g. ClassParameter|ClassDynamicState.
type VariableClass int

// Variable classes.
const (
	ClassInvalid      VariableClass = 0
	ClassParameter    VariableClass = 1 << 0
	ClassDynamicState VariableClass = 1 << 1
	ClassStaticState  VariableClass = 1 << 2
	ClassIndex        VariableClass = 1 << 3
)

// String returns a diagnostic name for the class.
func (c VariableClass) String() string {
	switch c {
	case ClassParameter:
		return "parameter"
	case ClassDynamicState:
		return "dynamic_state"
	case ClassStaticState:
		return "static_state"
	case ClassIndex:
		return "index"
	case ClassInvalid:
		return "invalid"
	}
	return fmt.Sprintf("class(%d)", int(c))
}

// LoadFailPolicy governs how a missing summary variable is treated when
// simulation results are loaded.
type LoadFailPolicy int

// Load-fail policies, in increasing severity.
const (
	LoadFailSilent LoadFailPolicy = iota
	LoadFailWarn
	LoadFailExit
)

// String returns the policy token used in diagnostics.
func (p LoadFailPolicy) String() string {
	switch p {
	case LoadFailSilent:
		return "SILENT"
	case LoadFailWarn:
		return "WARN"
	case LoadFailExit:
		return "EXIT"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParseLoadFailPolicy maps a policy token back to a LoadFailPolicy.
func ParseLoadFailPolicy(token string) (LoadFailPolicy, error) {
	switch token {
	case "SILENT":
		return LoadFailSilent, nil
	case "WARN":
		return LoadFailWarn, nil
	case "EXIT":
		return LoadFailExit, nil
	}
	return LoadFailSilent, fmt.Errorf("unknown load-fail policy %q", token)
}

// TruncationMode is a bitmask selecting which field value bounds are clamped.
type TruncationMode int

// Truncation modes.
const (
	TruncateNone TruncationMode = 0
	TruncateMin  TruncationMode = 1 << 0
	TruncateMax  TruncationMode = 1 << 1
)
