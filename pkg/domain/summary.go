package domain

// SummaryConfig is the payload of a SUMMARY node: one simulator summary
// time-series variable identified by its summary key.
type SummaryConfig struct {
	key      string
	loadFail LoadFailPolicy
}

// NewSummaryConfig returns a summary payload with the given load-fail policy.
func NewSummaryConfig(key string, loadFail LoadFailPolicy) *SummaryConfig {
	return &SummaryConfig{key: key, loadFail: loadFail}
}

func (c *SummaryConfig) isPayload() {}

// Kind returns KindSummary.
func (c *SummaryConfig) Kind() ImplementationKind { return KindSummary }

// Key returns the summary variable name.
func (c *SummaryConfig) Key() string { return c.key }

// LoadFailPolicy returns the policy applied when the variable is missing at
// result-load time.
func (c *SummaryConfig) LoadFailPolicy() LoadFailPolicy { return c.loadFail }

// UpdateLoadFailPolicy raises the policy to the given severity. Repeated
// registrations of the same summary key keep the strictest policy seen.
func (c *SummaryConfig) UpdateLoadFailPolicy(loadFail LoadFailPolicy) {
	if loadFail > c.loadFail {
		c.loadFail = loadFail
	}
}
