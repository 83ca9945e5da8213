package domain

// ContainerConfig is the payload of a CONTAINER node: an ordered sequence
// of references to other registered nodes. Children are stored by key and
// re-resolved through the registry on access, so a removed child surfaces
// as an unknown-key error rather than a dangling reference.
type ContainerConfig struct {
	key       string
	childKeys []string
}

// NewContainerConfig returns an empty container payload.
func NewContainerConfig(key string) *ContainerConfig {
	return &ContainerConfig{key: key}
}

func (c *ContainerConfig) isPayload() {}

// Kind returns KindContainer.
func (c *ContainerConfig) Kind() ImplementationKind { return KindContainer }

// Key returns the node key the payload was created for.
func (c *ContainerConfig) Key() string { return c.key }

// appendChild records a reference to an already-registered node.
func (c *ContainerConfig) appendChild(childKey string) {
	c.childKeys = append(c.childKeys, childKey)
}

// ChildKeys returns the referenced keys in the order they were added.
func (c *ContainerConfig) ChildKeys() []string {
	out := make([]string, len(c.childKeys))
	copy(out, c.childKeys)
	return out
}

// Len returns the number of referenced nodes.
func (c *ContainerConfig) Len() int { return len(c.childKeys) }

// StaticConfig is the marker payload of a STATIC node: a simulator state
// variable discovered at result-load time that the user did not configure.
type StaticConfig struct {
	key string
}

// NewStaticConfig returns the marker payload for a static key.
func NewStaticConfig(key string) *StaticConfig {
	return &StaticConfig{key: key}
}

func (c *StaticConfig) isPayload() {}

// Kind returns KindStatic.
func (c *StaticConfig) Kind() ImplementationKind { return KindStatic }

// Key returns the node key the payload was created for.
func (c *StaticConfig) Key() string { return c.key }
