package domain

// GenDataFormat enumerates the recognized file formats for generated data.
type GenDataFormat int

// Generated-data file formats.
const (
	FormatUndefined GenDataFormat = iota
	FormatASCII
	FormatASCIITemplate
	FormatBinaryFloat
	FormatBinaryDouble
)

// String returns the config token for the format.
func (f GenDataFormat) String() string {
	switch f {
	case FormatASCII:
		return "ASCII"
	case FormatASCIITemplate:
		return "ASCII_TEMPLATE"
	case FormatBinaryFloat:
		return "BINARY_FLOAT"
	case FormatBinaryDouble:
		return "BINARY_DOUBLE"
	}
	return ""
}

// ParseGenDataFormat maps a format token to a GenDataFormat. The empty
// token means undefined; any other unknown token is an error.
func ParseGenDataFormat(token string) (GenDataFormat, error) {
	switch token {
	case "":
		return FormatUndefined, nil
	case "ASCII":
		return FormatASCII, nil
	case "ASCII_TEMPLATE":
		return FormatASCIITemplate, nil
	case "BINARY_FLOAT":
		return FormatBinaryFloat, nil
	case "BINARY_DOUBLE":
		return FormatBinaryDouble, nil
	}
	return FormatUndefined, UnrecognizedFormatTokenError{Token: token}
}

// GenDataConfig is the payload of a GEN_DATA node: free-form data either
// produced by the forward model (result file) or sampled and written to it
// (output file).
type GenDataConfig struct {
	key string

	inputFormat  GenDataFormat
	outputFormat GenDataFormat

	initFilePattern string
	templateFile    string
	dataKey         string
	outputFile      string
	resultFile      string
	minStdFile      string
}

// NewGenDataConfig returns an uninitialized generated-data payload.
func NewGenDataConfig(key string) *GenDataConfig {
	return &GenDataConfig{key: key}
}

func (c *GenDataConfig) isPayload() {}

// Kind returns KindGenData.
func (c *GenDataConfig) Kind() ImplementationKind { return KindGenData }

// Key returns the node key the payload was created for.
func (c *GenDataConfig) Key() string { return c.key }

// Update supplies the full generated-data configuration.
func (c *GenDataConfig) Update(inputFormat, outputFormat GenDataFormat, initFilePattern, templateFile, dataKey, outputFile, resultFile, minStdFile string) error {
	c.inputFormat = inputFormat
	c.outputFormat = outputFormat
	c.initFilePattern = initFilePattern
	c.templateFile = templateFile
	c.dataKey = dataKey
	c.outputFile = outputFile
	c.resultFile = resultFile
	c.minStdFile = minStdFile
	return c.Validate()
}

// Validate checks the payload carries the minimum required fields: either a
// result file to load responses from, or an output file with a defined
// output format to write parameters with.
func (c *GenDataConfig) Validate() error {
	if c.resultFile != "" {
		return nil
	}
	if c.outputFile != "" && c.outputFormat != FormatUndefined {
		return nil
	}
	return InvalidPayloadError{
		Kind:   KindGenData,
		Key:    c.key,
		Reason: "requires either RESULT_FILE or an output file with OUTPUT_FORMAT",
	}
}

// IsResponse reports whether the node loads data produced by the forward
// model, as opposed to a sampled parameter.
func (c *GenDataConfig) IsResponse() bool { return c.resultFile != "" }

// Formats returns the input and output file formats.
func (c *GenDataConfig) Formats() (input, output GenDataFormat) {
	return c.inputFormat, c.outputFormat
}

// InitFilePattern returns the optional per-member initialization pattern.
func (c *GenDataConfig) InitFilePattern() string { return c.initFilePattern }

// TemplateFile returns the optional template file path.
func (c *GenDataConfig) TemplateFile() string { return c.templateFile }

// DataKey returns the optional override key used by downstream consumers.
func (c *GenDataConfig) DataKey() string { return c.dataKey }

// OutputFile returns the file written for the forward model.
func (c *GenDataConfig) OutputFile() string { return c.outputFile }

// ResultFile returns the file pattern loaded back from the forward model.
func (c *GenDataConfig) ResultFile() string { return c.resultFile }

// MinStdFile returns the optional minimum standard deviation file.
func (c *GenDataConfig) MinStdFile() string { return c.minStdFile }
