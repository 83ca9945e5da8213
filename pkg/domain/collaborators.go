package domain

// ReferenceCase is an external summary time-series dataset used to validate
// summary variable names and expand wildcard patterns. Implementations are
// not owned by the registry and may be absent, in which case summary keys
// are accepted unconditionally and wildcard expansion is unavailable.
type ReferenceCase interface {
	// HasVariable reports whether the case contains the named variable.
	HasVariable(name string) bool
	// ExpandWildcard returns every variable name matching the glob pattern.
	ExpandWildcard(pattern string) []string
	// Identifier names the case for diagnostics.
	Identifier() string
}

// Grid is an opaque handle to the simulation grid required by field
// variables. The registry passes it through to field payloads without
// interpreting its contents.
type Grid interface {
	// Name identifies the grid for diagnostics.
	Name() string
	// ActiveCells returns the number of active grid cells.
	ActiveCells() int
}
