package core

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sort"
	"strings"
	"sync"
	"time"

	"ensemblecore/pkg/domain"
)

// DefaultTagFormat is the tag format applied to keyword markers until the
// configuration overrides it.
const DefaultTagFormat = "<%s>"

// userKeyJoinString separates the base key from the index part in compound
// user keys such as "PRESSURE:1,4,7".
const userKeyJoinString = ":"

// Registry owns the configuration node for every ensemble variable. One
// mutex guards the node map, the tag format and the reference case; every
// structural mutation takes the write lock so EnsureStaticKey can run from
// worker goroutines while setup code is still mutating the registry.
// Plain lookups take the read lock and rely on the documented phase
// separation: bulk mutation during config ingestion, concurrent reads and
// static-key ensures during simulation.
type Registry struct {
	mu         sync.RWMutex
	nodes      map[string]*ConfigNode
	tagFormat  string
	transforms *TransformTable
	refcase    ReferenceCase

	logger  Logger
	metrics MetricsRecorder
	tracer  Tracer
}

// NewRegistry returns an empty registry with the default tag format, a
// fresh transform table and no reference case.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		nodes:      make(map[string]*ConfigNode),
		tagFormat:  DefaultTagFormat,
		transforms: domain.NewTransformTable(),
		logger:     noopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// begin opens a trace span for op and returns the completion callback that
// records the metrics observation.
func (r *Registry) begin(op string) func(error) {
	start := time.Now()
	var span TraceSpan
	if r.tracer != nil {
		_, span = r.tracer.Start(context.Background(), op)
	}
	return func(err error) {
		if r.metrics != nil {
			r.metrics.Observe(context.Background(), op, err == nil, time.Since(start))
		}
		if span != nil {
			span.End(err)
		}
	}
}

// TransformTable returns the owned table of field transforms.
func (r *Registry) TransformTable() *TransformTable { return r.transforms }

// SetReferenceCase replaces the non-owned reference case. A nil case is
// valid and disables wildcard expansion and summary-key validation.
func (r *Registry) SetReferenceCase(refcase ReferenceCase) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refcase = refcase
}

// ReferenceCase returns the active reference case, or nil.
func (r *Registry) ReferenceCase() ReferenceCase {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.refcase
}

// TagFormat returns the active keyword tag format.
func (r *Registry) TagFormat() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tagFormat
}

// SetTagFormat updates the keyword tag format and propagates it to every
// existing GEN_KW node. Setting the current value again is a no-op and
// performs no propagation. The format is expected to contain a %s
// placeholder; it is not validated, a malformed format surfaces later as
// malformed markers.
func (r *Registry) SetTagFormat(format string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if format == r.tagFormat {
		return
	}
	r.tagFormat = format
	for _, node := range r.nodes {
		genKW, err := node.GenKWConfig()
		if err != nil {
			continue
		}
		done := r.begin("propagate_tag_format")
		genKW.UpdateTagFormat(format)
		done(nil)
	}
}

// HasKey reports whether key is registered.
func (r *Registry) HasKey(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.nodes[key]
	return ok
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nodes)
}

// Node returns the node registered under key.
func (r *Registry) Node(key string) (*ConfigNode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nodeLocked("get_node", key)
}

func (r *Registry) nodeLocked(op, key string) (*ConfigNode, error) {
	node, ok := r.nodes[key]
	if !ok {
		return nil, domain.UnknownKeyError{Op: op, Key: key}
	}
	return node, nil
}

// AddNode inserts a fully-formed node. Inserting a key that is already
// present fails and leaves the existing node untouched.
func (r *Registry) AddNode(node *ConfigNode) error {
	done := r.begin("add_node")
	r.mu.Lock()
	defer r.mu.Unlock()
	err := r.addNodeLocked(node)
	done(err)
	return err
}

func (r *Registry) addNodeLocked(node *ConfigNode) error {
	if _, exists := r.nodes[node.Key()]; exists {
		return domain.DuplicateKeyError{Key: node.Key()}
	}
	r.nodes[node.Key()] = node
	return nil
}

// RemoveNode removes the node registered under key. Removing an absent key
// is a no-op. Callers must release every external reference to the node
// before removal; the registry does not track them.
func (r *Registry) RemoveNode(key string) {
	done := r.begin("remove_node")
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.nodes, key)
	done(nil)
}

// AddField registers an empty field node bound to the grid and the owned
// transform table. A subsequent Update*Field call on the returned node
// supplies the real configuration.
func (r *Registry) AddField(key string, grid Grid) (*ConfigNode, error) {
	done := r.begin("add_field")
	err := func() error {
		if grid == nil {
			return domain.InvalidPayloadError{Kind: KindField, Key: key, Reason: "a grid must be supplied before fields can be configured"}
		}
		return nil
	}()
	if err != nil {
		done(err)
		return nil, err
	}
	node := domain.NewConfigNode(key, ClassInvalid, domain.NewFieldConfig(key, grid, r.transforms))
	r.mu.Lock()
	err = r.addNodeLocked(node)
	r.mu.Unlock()
	done(err)
	if err != nil {
		return nil, err
	}
	return node, nil
}

// AddGenKW registers an empty keyword node carrying the current tag format.
func (r *Registry) AddGenKW(key string) (*ConfigNode, error) {
	done := r.begin("add_gen_kw")
	r.mu.Lock()
	node := domain.NewConfigNode(key, ClassParameter, domain.NewGenKWConfig(key, r.tagFormat))
	err := r.addNodeLocked(node)
	r.mu.Unlock()
	done(err)
	if err != nil {
		return nil, err
	}
	return node, nil
}

// AddGenData registers an empty generated-data node.
func (r *Registry) AddGenData(key string) (*ConfigNode, error) {
	done := r.begin("add_gen_data")
	node := domain.NewConfigNode(key, ClassInvalid, domain.NewGenDataConfig(key))
	r.mu.Lock()
	err := r.addNodeLocked(node)
	r.mu.Unlock()
	done(err)
	if err != nil {
		return nil, err
	}
	return node, nil
}

// AddSurface registers an empty surface node.
func (r *Registry) AddSurface(key string) (*ConfigNode, error) {
	done := r.begin("add_surface")
	node := domain.NewConfigNode(key, ClassParameter, domain.NewSurfaceConfig(key))
	r.mu.Lock()
	err := r.addNodeLocked(node)
	r.mu.Unlock()
	done(err)
	if err != nil {
		return nil, err
	}
	return node, nil
}

// AddContainer registers an empty container node. An empty key generates a
// random one; the generated key is available on the returned node.
func (r *Registry) AddContainer(key string) (*ConfigNode, error) {
	done := r.begin("add_container")
	if key == "" {
		key = randomContainerKey()
	}
	node := domain.NewConfigNode(key, ClassInvalid, domain.NewContainerConfig(key))
	r.mu.Lock()
	err := r.addNodeLocked(node)
	r.mu.Unlock()
	done(err)
	if err != nil {
		return nil, err
	}
	return node, nil
}

func randomContainerKey() string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// AddSummary ensures a summary node for key with the given load-fail
// policy. If the key already holds a summary node the policy is merged
// into it; any other existing kind is a configuration conflict. When a
// reference case is set, keys it does not recognize are skipped with a
// warning and (nil, nil) is returned.
func (r *Registry) AddSummary(key string, loadFail LoadFailPolicy) (*ConfigNode, error) {
	done := r.begin("add_summary")
	r.mu.Lock()
	defer r.mu.Unlock()

	if node, exists := r.nodes[key]; exists {
		summary, err := node.SummaryConfig()
		if err != nil {
			done(err)
			return nil, err
		}
		summary.UpdateLoadFailPolicy(loadFail)
		done(nil)
		return node, nil
	}

	if r.refcase != nil && !r.refcase.HasVariable(key) {
		r.logger.Warn("reference case does not contain summary key, ignoring",
			"refcase", r.refcase.Identifier(), "key", key)
		done(nil)
		return nil, nil
	}

	node := domain.NewConfigNode(key, ClassDynamicState, domain.NewSummaryConfig(key, loadFail))
	err := r.addNodeLocked(node)
	done(err)
	if err != nil {
		return nil, err
	}
	return node, nil
}

// EnsureStaticKey registers a static node for key unless the key already
// exists. Safe for concurrent invocation from result-loading workers: the
// check and the insert run as one critical section, so at most one node is
// ever created per key.
func (r *Registry) EnsureStaticKey(key string) {
	done := r.begin("ensure_static_key")
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.nodes[key]; !exists {
		r.nodes[key] = domain.NewConfigNode(key, ClassStaticState, domain.NewStaticConfig(key))
	}
	done(nil)
}

// ImplementationKind returns the payload kind of the node under key.
func (r *Registry) ImplementationKind(key string) (ImplementationKind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	node, err := r.nodeLocked("implementation_kind", key)
	if err != nil {
		return KindInvalid, err
	}
	return node.ImplementationKind(), nil
}

// VariableClass returns the class tag of the node under key.
func (r *Registry) VariableClass(key string) (VariableClass, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	node, err := r.nodeLocked("variable_class", key)
	if err != nil {
		return ClassInvalid, err
	}
	return node.VariableClass(), nil
}

// Keys returns every registered key, sorted.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.nodes))
	for key := range r.nodes {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// KeysByClass returns the keys whose variable class matches the mask,
// sorted. The mask is a bitwise OR of class flags.
func (r *Registry) KeysByClass(mask VariableClass) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.nodes))
	for key, node := range r.nodes {
		if node.VariableClass()&mask != 0 {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// KeysByKind returns the keys of the given implementation kind, sorted.
func (r *Registry) KeysByKind(kind ImplementationKind) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.nodes))
	for key, node := range r.nodes {
		if node.ImplementationKind() == kind {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// InitInternalization establishes the default persistence policy on every
// node. Order-independent.
func (r *Registry) InitInternalization() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, node := range r.nodes {
		node.InitInternalization()
	}
}

// AddObservationKey binds an observation identifier to the node under key.
func (r *Registry) AddObservationKey(key, obsKey string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	node, err := r.nodeLocked("add_observation_key", key)
	if err != nil {
		return err
	}
	node.AddObservationKey(obsKey)
	return nil
}

// ClearObservationKeys removes every observation binding from every node.
func (r *Registry) ClearObservationKeys() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, node := range r.nodes {
		node.ClearObservationKeys()
	}
}

// LookupUserKey resolves a possibly-compound user key of the form a:b:c by
// trying progressively longer colon-joined prefixes against the registry.
// On a match it returns the node plus the unmatched remainder as the index
// key, e.g. "PRESSURE:1,4,7" resolves to the PRESSURE node with index key
// "1,4,7". Without a match both the node and the index key are empty.
func (r *Registry) LookupUserKey(fullKey string) (*ConfigNode, string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	parts := strings.Split(fullKey, userKeyJoinString)
	for length := 1; length <= len(parts); length++ {
		candidate := strings.Join(parts[:length], userKeyJoinString)
		node, ok := r.nodes[candidate]
		if !ok {
			continue
		}
		if len(candidate) < len(fullKey) {
			return node, fullKey[len(candidate)+len(userKeyJoinString):]
		}
		return node, ""
	}
	return nil, ""
}
