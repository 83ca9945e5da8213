package domain

// SurfaceConfig is the payload of a SURFACE node: a 2D surface defined
// relative to a base surface file.
type SurfaceConfig struct {
	key string

	baseSurfaceFile string
	initFilePattern string
	outputFile      string
	minStdFile      string
}

// NewSurfaceConfig returns an uninitialized surface payload. Callers
// constructing surfaces programmatically may fill fields through Update and
// defer validation to Validate.
func NewSurfaceConfig(key string) *SurfaceConfig {
	return &SurfaceConfig{key: key}
}

func (c *SurfaceConfig) isPayload() {}

// Kind returns KindSurface.
func (c *SurfaceConfig) Kind() ImplementationKind { return KindSurface }

// Key returns the node key the payload was created for.
func (c *SurfaceConfig) Key() string { return c.key }

// Update supplies the surface configuration. The base surface, the
// init-file pattern and the output file are all required.
func (c *SurfaceConfig) Update(baseSurfaceFile, initFilePattern, outputFile, minStdFile string) error {
	c.baseSurfaceFile = baseSurfaceFile
	c.initFilePattern = initFilePattern
	c.outputFile = outputFile
	c.minStdFile = minStdFile
	return c.Validate()
}

// Validate reports which of the required surface fields are missing.
func (c *SurfaceConfig) Validate() error {
	var missing []string
	if c.initFilePattern == "" {
		missing = append(missing, "INIT_FILES")
	}
	if c.outputFile == "" {
		missing = append(missing, "OUTPUT_FILE")
	}
	if c.baseSurfaceFile == "" {
		missing = append(missing, "BASE_SURFACE")
	}
	if len(missing) > 0 {
		return MissingOptionsError{Keyword: string(KindSurface), Key: c.key, Missing: missing}
	}
	return nil
}

// BaseSurfaceFile returns the base surface file path.
func (c *SurfaceConfig) BaseSurfaceFile() string { return c.baseSurfaceFile }

// InitFilePattern returns the per-member initialization file pattern.
func (c *SurfaceConfig) InitFilePattern() string { return c.initFilePattern }

// OutputFile returns the file written for the forward model.
func (c *SurfaceConfig) OutputFile() string { return c.outputFile }

// MinStdFile returns the optional minimum standard deviation file.
func (c *SurfaceConfig) MinStdFile() string { return c.minStdFile }
