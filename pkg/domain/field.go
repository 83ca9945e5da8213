package domain

import "fmt"

// FieldUsage distinguishes the three field variants carried by a FIELD node.
type FieldUsage int

// Field usage variants.
const (
	// FieldUndefined is the state between AddField and the first update.
	FieldUndefined FieldUsage = iota
	// FieldState is a dynamic state field restarted from simulator output.
	FieldState
	// FieldParameter is a sampled parameter field written to the simulator.
	FieldParameter
	// FieldGeneral is a field both written to and read back from the
	// forward model.
	FieldGeneral
)

// String returns the config token for the usage.
func (u FieldUsage) String() string {
	switch u {
	case FieldState:
		return "DYNAMIC"
	case FieldParameter:
		return "PARAMETER"
	case FieldGeneral:
		return "GENERAL"
	}
	return "UNDEFINED"
}

// ParseFieldUsage maps a config token back to a FieldUsage.
func ParseFieldUsage(token string) (FieldUsage, error) {
	switch token {
	case "DYNAMIC":
		return FieldState, nil
	case "PARAMETER":
		return FieldParameter, nil
	case "GENERAL":
		return FieldGeneral, nil
	}
	return FieldUndefined, fmt.Errorf("unknown field usage %q", token)
}

// FieldConfig is the payload of a FIELD node: a 3D grid variable with
// optional truncation bounds and named value transforms. The grid handle and
// the transform table are borrowed from the registry, never owned.
type FieldConfig struct {
	key        string
	grid       Grid
	transforms *TransformTable

	usage      FieldUsage
	truncation TruncationMode
	minValue   float64
	maxValue   float64

	outputFile      string
	inputFile       string
	initFilePattern string
	minStdFile      string

	initTransform   string
	inputTransform  string
	outputTransform string
}

// NewFieldConfig returns an uninitialized field payload bound to the grid
// and transform table. A subsequent update call supplies the real
// configuration.
func NewFieldConfig(key string, grid Grid, transforms *TransformTable) *FieldConfig {
	return &FieldConfig{key: key, grid: grid, transforms: transforms}
}

func (c *FieldConfig) isPayload() {}

// Kind returns KindField.
func (c *FieldConfig) Kind() ImplementationKind { return KindField }

// Key returns the node key the payload was created for.
func (c *FieldConfig) Key() string { return c.key }

// Grid returns the borrowed grid handle.
func (c *FieldConfig) Grid() Grid { return c.grid }

// Usage returns the active field variant.
func (c *FieldConfig) Usage() FieldUsage { return c.usage }

// Truncation returns the truncation mode and the min/max bounds. Bounds are
// meaningful only when the corresponding bit is set.
func (c *FieldConfig) Truncation() (TruncationMode, float64, float64) {
	return c.truncation, c.minValue, c.maxValue
}

// OutputFile returns the file written for the forward model.
func (c *FieldConfig) OutputFile() string { return c.outputFile }

// InputFile returns the file loaded back from the forward model.
func (c *FieldConfig) InputFile() string { return c.inputFile }

// InitFilePattern returns the per-member initialization file pattern.
func (c *FieldConfig) InitFilePattern() string { return c.initFilePattern }

// MinStdFile returns the optional minimum standard deviation file.
func (c *FieldConfig) MinStdFile() string { return c.minStdFile }

// Transforms returns the init, input and output transform names. Empty
// names mean no transform is applied.
func (c *FieldConfig) Transforms() (initName, inputName, outputName string) {
	return c.initTransform, c.inputTransform, c.outputTransform
}

func (c *FieldConfig) checkTransform(name string) error {
	if name == "" {
		return nil
	}
	if !c.transforms.Has(name) {
		return UnknownTransformNameError{Name: name}
	}
	return nil
}

func (c *FieldConfig) setTruncation(truncation TruncationMode, minValue, maxValue float64) {
	c.truncation = truncation
	c.minValue = minValue
	c.maxValue = maxValue
}

func (c *FieldConfig) updateState(truncation TruncationMode, minValue, maxValue float64) error {
	c.usage = FieldState
	c.setTruncation(truncation, minValue, maxValue)
	return nil
}

func (c *FieldConfig) updateParameter(outputFile, initFilePattern, minStdFile string, truncation TruncationMode, minValue, maxValue float64, initTransform, outputTransform string) error {
	if err := c.checkTransform(initTransform); err != nil {
		return err
	}
	if err := c.checkTransform(outputTransform); err != nil {
		return err
	}
	c.usage = FieldParameter
	c.outputFile = outputFile
	c.initFilePattern = initFilePattern
	c.minStdFile = minStdFile
	c.initTransform = initTransform
	c.outputTransform = outputTransform
	c.setTruncation(truncation, minValue, maxValue)
	return nil
}

func (c *FieldConfig) updateGeneral(outputFile, inputFile, initFilePattern, minStdFile string, truncation TruncationMode, minValue, maxValue float64, initTransform, inputTransform, outputTransform string) error {
	if err := c.checkTransform(initTransform); err != nil {
		return err
	}
	if err := c.checkTransform(inputTransform); err != nil {
		return err
	}
	if err := c.checkTransform(outputTransform); err != nil {
		return err
	}
	c.usage = FieldGeneral
	c.outputFile = outputFile
	c.inputFile = inputFile
	c.initFilePattern = initFilePattern
	c.minStdFile = minStdFile
	c.initTransform = initTransform
	c.inputTransform = inputTransform
	c.outputTransform = outputTransform
	c.setTruncation(truncation, minValue, maxValue)
	return nil
}
