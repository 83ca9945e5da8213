package domain

import "sort"

// Payload is the kind-specific configuration carried by a ConfigNode. The
// set of implementations is closed: Field, GenKW, GenData, Surface,
// Summary, Container and Static.
type Payload interface {
	Kind() ImplementationKind
	Key() string
	isPayload()
}

// ConfigNode describes one named ensemble variable: its implementation
// kind, variable class, kind-specific payload and cross-cutting metadata.
// Nodes are created with a partial payload by the registry's add
// operations and finalized by a kind-specific update.
type ConfigNode struct {
	key         string
	class       VariableClass
	payload     Payload
	obsKeys     map[string]struct{}
	internalize bool
}

// NewConfigNode wraps a payload in a node with the given variable class.
func NewConfigNode(key string, class VariableClass, payload Payload) *ConfigNode {
	return &ConfigNode{
		key:     key,
		class:   class,
		payload: payload,
		obsKeys: make(map[string]struct{}),
	}
}

// Key returns the unique name of the variable.
func (n *ConfigNode) Key() string { return n.key }

// VariableClass returns the broad role tag of the variable.
func (n *ConfigNode) VariableClass() VariableClass { return n.class }

// ImplementationKind returns the payload kind. Immutable after creation.
func (n *ConfigNode) ImplementationKind() ImplementationKind {
	if n.payload == nil {
		return KindInvalid
	}
	return n.payload.Kind()
}

// Payload returns the kind-specific configuration object.
func (n *ConfigNode) Payload() Payload { return n.payload }

func kindMismatch(n *ConfigNode, want ImplementationKind) error {
	return KindMismatchError{Key: n.key, Want: want, Got: n.ImplementationKind()}
}

// FieldConfig returns the payload as a field configuration.
func (n *ConfigNode) FieldConfig() (*FieldConfig, error) {
	if c, ok := n.payload.(*FieldConfig); ok {
		return c, nil
	}
	return nil, kindMismatch(n, KindField)
}

// GenKWConfig returns the payload as a keyword configuration.
func (n *ConfigNode) GenKWConfig() (*GenKWConfig, error) {
	if c, ok := n.payload.(*GenKWConfig); ok {
		return c, nil
	}
	return nil, kindMismatch(n, KindGenKW)
}

// GenDataConfig returns the payload as a generated-data configuration.
func (n *ConfigNode) GenDataConfig() (*GenDataConfig, error) {
	if c, ok := n.payload.(*GenDataConfig); ok {
		return c, nil
	}
	return nil, kindMismatch(n, KindGenData)
}

// SurfaceConfig returns the payload as a surface configuration.
func (n *ConfigNode) SurfaceConfig() (*SurfaceConfig, error) {
	if c, ok := n.payload.(*SurfaceConfig); ok {
		return c, nil
	}
	return nil, kindMismatch(n, KindSurface)
}

// SummaryConfig returns the payload as a summary configuration.
func (n *ConfigNode) SummaryConfig() (*SummaryConfig, error) {
	if c, ok := n.payload.(*SummaryConfig); ok {
		return c, nil
	}
	return nil, kindMismatch(n, KindSummary)
}

// ContainerConfig returns the payload as a container configuration.
func (n *ConfigNode) ContainerConfig() (*ContainerConfig, error) {
	if c, ok := n.payload.(*ContainerConfig); ok {
		return c, nil
	}
	return nil, kindMismatch(n, KindContainer)
}

// UpdateStateField finalizes a field node as a dynamic state field.
func (n *ConfigNode) UpdateStateField(truncation TruncationMode, minValue, maxValue float64) error {
	field, err := n.FieldConfig()
	if err != nil {
		return err
	}
	if err := field.updateState(truncation, minValue, maxValue); err != nil {
		return err
	}
	n.class = ClassDynamicState
	return nil
}

// UpdateParameterField finalizes a field node as a sampled parameter field.
func (n *ConfigNode) UpdateParameterField(outputFile, initFilePattern, minStdFile string, truncation TruncationMode, minValue, maxValue float64, initTransform, outputTransform string) error {
	field, err := n.FieldConfig()
	if err != nil {
		return err
	}
	if err := field.updateParameter(outputFile, initFilePattern, minStdFile, truncation, minValue, maxValue, initTransform, outputTransform); err != nil {
		return err
	}
	n.class = ClassParameter
	return nil
}

// UpdateGeneralField finalizes a field node as a general in/out field.
func (n *ConfigNode) UpdateGeneralField(outputFile, inputFile, initFilePattern, minStdFile string, truncation TruncationMode, minValue, maxValue float64, initTransform, inputTransform, outputTransform string) error {
	field, err := n.FieldConfig()
	if err != nil {
		return err
	}
	if err := field.updateGeneral(outputFile, inputFile, initFilePattern, minStdFile, truncation, minValue, maxValue, initTransform, inputTransform, outputTransform); err != nil {
		return err
	}
	n.class = ClassParameter
	return nil
}

// UpdateGenKW finalizes a keyword node.
func (n *ConfigNode) UpdateGenKW(templateFile, outputFile, parameterFile, minStdFile, initFilePattern string) error {
	genKW, err := n.GenKWConfig()
	if err != nil {
		return err
	}
	return genKW.Update(templateFile, outputFile, parameterFile, minStdFile, initFilePattern)
}

// UpdateGenData finalizes a generated-data node. Response nodes (result
// file present) are classed as dynamic state, sampled ones as parameters.
func (n *ConfigNode) UpdateGenData(inputFormat, outputFormat GenDataFormat, initFilePattern, templateFile, dataKey, outputFile, resultFile, minStdFile string) error {
	genData, err := n.GenDataConfig()
	if err != nil {
		return err
	}
	if err := genData.Update(inputFormat, outputFormat, initFilePattern, templateFile, dataKey, outputFile, resultFile, minStdFile); err != nil {
		return err
	}
	if genData.IsResponse() {
		n.class = ClassDynamicState
	} else {
		n.class = ClassParameter
	}
	return nil
}

// UpdateSurface finalizes a surface node.
func (n *ConfigNode) UpdateSurface(baseSurfaceFile, initFilePattern, outputFile, minStdFile string) error {
	surface, err := n.SurfaceConfig()
	if err != nil {
		return err
	}
	return surface.Update(baseSurfaceFile, initFilePattern, outputFile, minStdFile)
}

// AppendContainerChild records a reference to an already-registered node.
// The caller is responsible for having resolved childKey through the
// registry first, which fails loudly on unknown keys.
func (n *ConfigNode) AppendContainerChild(childKey string) error {
	container, err := n.ContainerConfig()
	if err != nil {
		return err
	}
	container.appendChild(childKey)
	return nil
}

// AddObservationKey binds an observation identifier to the variable.
// Adding the same identifier twice is a no-op.
func (n *ConfigNode) AddObservationKey(obsKey string) {
	n.obsKeys[obsKey] = struct{}{}
}

// HasObservationKey reports whether the observation is bound to the node.
func (n *ConfigNode) HasObservationKey(obsKey string) bool {
	_, ok := n.obsKeys[obsKey]
	return ok
}

// ObservationKeys returns the bound observation identifiers, sorted.
func (n *ConfigNode) ObservationKeys() []string {
	out := make([]string, 0, len(n.obsKeys))
	for k := range n.obsKeys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ClearObservationKeys removes every bound observation identifier.
func (n *ConfigNode) ClearObservationKeys() {
	n.obsKeys = make(map[string]struct{})
}

// InitInternalization establishes the default persistence policy for the
// variable: parameters and dynamic state are stored after each report
// step, everything else is not.
func (n *ConfigNode) InitInternalization() {
	n.internalize = n.class&(ClassParameter|ClassDynamicState) != 0
}

// SetInternalize overrides the persistence policy.
func (n *ConfigNode) SetInternalize(internalize bool) {
	n.internalize = internalize
}

// ShouldInternalize reports whether the variable is persisted after each
// report step.
func (n *ConfigNode) ShouldInternalize() bool { return n.internalize }
