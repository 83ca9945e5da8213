package domain

// Snapshot is a serializable point-in-time copy of the registry's
// definition state, bucketed per implementation kind. Persistence backends
// store and reload it as JSON.
type Snapshot struct {
	TagFormat  string            `json:"tag_format,omitempty"`
	GenKW      []GenKWRecord     `json:"gen_kw,omitempty"`
	Fields     []FieldRecord     `json:"fields,omitempty"`
	GenData    []GenDataRecord   `json:"gen_data,omitempty"`
	Surfaces   []SurfaceRecord   `json:"surfaces,omitempty"`
	Summaries  []SummaryRecord   `json:"summaries,omitempty"`
	Containers []ContainerRecord `json:"containers,omitempty"`
	Statics    []StaticRecord    `json:"statics,omitempty"`
}

// NodeRecord carries the metadata common to every node kind.
type NodeRecord struct {
	Key             string   `json:"key"`
	ObservationKeys []string `json:"observation_keys,omitempty"`
	Internalize     bool     `json:"internalize,omitempty"`
}

// GenKWRecord serializes a GEN_KW node.
type GenKWRecord struct {
	NodeRecord
	TemplateFile    string `json:"template_file"`
	OutputFile      string `json:"output_file,omitempty"`
	ParameterFile   string `json:"parameter_file"`
	MinStdFile      string `json:"min_std_file,omitempty"`
	InitFilePattern string `json:"init_files,omitempty"`
}

// FieldRecord serializes a FIELD node. Transform functions are recorded by
// name and re-resolved against the transform table on import.
type FieldRecord struct {
	NodeRecord
	Usage           string  `json:"usage"`
	Truncation      int     `json:"truncation"`
	MinValue        float64 `json:"min_value,omitempty"`
	MaxValue        float64 `json:"max_value,omitempty"`
	OutputFile      string  `json:"output_file,omitempty"`
	InputFile       string  `json:"input_file,omitempty"`
	InitFilePattern string  `json:"init_files,omitempty"`
	MinStdFile      string  `json:"min_std_file,omitempty"`
	InitTransform   string  `json:"init_transform,omitempty"`
	InputTransform  string  `json:"input_transform,omitempty"`
	OutputTransform string  `json:"output_transform,omitempty"`
}

// GenDataRecord serializes a GEN_DATA node.
type GenDataRecord struct {
	NodeRecord
	InputFormat     string `json:"input_format,omitempty"`
	OutputFormat    string `json:"output_format,omitempty"`
	InitFilePattern string `json:"init_files,omitempty"`
	TemplateFile    string `json:"template_file,omitempty"`
	DataKey         string `json:"data_key,omitempty"`
	OutputFile      string `json:"output_file,omitempty"`
	ResultFile      string `json:"result_file,omitempty"`
	MinStdFile      string `json:"min_std_file,omitempty"`
}

// SurfaceRecord serializes a SURFACE node.
type SurfaceRecord struct {
	NodeRecord
	BaseSurfaceFile string `json:"base_surface"`
	InitFilePattern string `json:"init_files"`
	OutputFile      string `json:"output_file"`
	MinStdFile      string `json:"min_std_file,omitempty"`
}

// SummaryRecord serializes a SUMMARY node.
type SummaryRecord struct {
	NodeRecord
	LoadFailPolicy string `json:"load_fail_policy"`
}

// ContainerRecord serializes a CONTAINER node.
type ContainerRecord struct {
	NodeRecord
	ChildKeys []string `json:"child_keys"`
}

// StaticRecord serializes a STATIC node.
type StaticRecord struct {
	NodeRecord
}
