package domain

import "fmt"

// GenKWConfig is the payload of a GEN_KW node: a set of scalar keyword
// parameters substituted into a template file through tagged markers.
type GenKWConfig struct {
	key       string
	tagFormat string

	templateFile    string
	outputFile      string
	parameterFile   string
	minStdFile      string
	initFilePattern string
}

// NewGenKWConfig returns an uninitialized keyword payload carrying the
// registry's current tag format.
func NewGenKWConfig(key, tagFormat string) *GenKWConfig {
	return &GenKWConfig{key: key, tagFormat: tagFormat}
}

func (c *GenKWConfig) isPayload() {}

// Kind returns KindGenKW.
func (c *GenKWConfig) Kind() ImplementationKind { return KindGenKW }

// Key returns the node key the payload was created for.
func (c *GenKWConfig) Key() string { return c.key }

// Update supplies the full keyword configuration. The template and
// parameter definition files must both be given for the payload to be
// valid; their joint content is resolved downstream.
func (c *GenKWConfig) Update(templateFile, outputFile, parameterFile, minStdFile, initFilePattern string) error {
	if templateFile == "" || parameterFile == "" {
		return InvalidPayloadError{Kind: KindGenKW, Key: c.key, Reason: "template and parameter files are both required"}
	}
	c.templateFile = templateFile
	c.outputFile = outputFile
	c.parameterFile = parameterFile
	c.minStdFile = minStdFile
	c.initFilePattern = initFilePattern
	return nil
}

// UpdateTagFormat replaces the tag format used when generating markers.
// Called by the registry when the process-wide format changes.
func (c *GenKWConfig) UpdateTagFormat(tagFormat string) {
	c.tagFormat = tagFormat
}

// TagFormat returns the active tag format.
func (c *GenKWConfig) TagFormat() string { return c.tagFormat }

// TaggedName materializes the search/replace marker for a parameter name.
// The format string is not validated; a format without a %s placeholder
// surfaces here as a malformed marker.
func (c *GenKWConfig) TaggedName(parameter string) string {
	return fmt.Sprintf(c.tagFormat, parameter)
}

// TemplateFile returns the template file path.
func (c *GenKWConfig) TemplateFile() string { return c.templateFile }

// OutputFile returns the target file written for the forward model.
func (c *GenKWConfig) OutputFile() string { return c.outputFile }

// ParameterFile returns the parameter definition file path.
func (c *GenKWConfig) ParameterFile() string { return c.parameterFile }

// MinStdFile returns the optional minimum standard deviation file.
func (c *GenKWConfig) MinStdFile() string { return c.minStdFile }

// InitFilePattern returns the optional per-member initialization pattern.
func (c *GenKWConfig) InitFilePattern() string { return c.initFilePattern }

// Valid reports whether the payload has been fully configured.
func (c *GenKWConfig) Valid() bool {
	return c.templateFile != "" && c.parameterFile != ""
}
