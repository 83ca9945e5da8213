package core

import (
	"sort"
	"testing"

	"pgregory.net/rapid"

	"ensemblecore/pkg/domain"
)

// The registry behaves like a plain set of keys under adds, removes and
// membership checks, for any interleaving.
func TestRegistryMatchesKeySetModel(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := NewRegistry()
		model := make(map[string]struct{})
		keyGen := rapid.StringMatching(`[A-Z][A-Z0-9_]{0,7}`)

		steps := rapid.IntRange(1, 64).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			key := keyGen.Draw(rt, "key")
			switch rapid.IntRange(0, 3).Draw(rt, "op") {
			case 0:
				_, err := r.AddGenData(key)
				if _, exists := model[key]; exists {
					if err == nil {
						rt.Fatalf("duplicate add of %q succeeded", key)
					}
				} else {
					if err != nil {
						rt.Fatalf("add of %q failed: %v", key, err)
					}
					model[key] = struct{}{}
				}
			case 1:
				r.RemoveNode(key)
				delete(model, key)
			case 2:
				r.EnsureStaticKey(key)
				model[key] = struct{}{}
			case 3:
				if _, exists := model[key]; r.HasKey(key) != exists {
					rt.Fatalf("membership of %q diverged from model", key)
				}
			}
		}

		if r.Len() != len(model) {
			rt.Fatalf("len = %d, model has %d", r.Len(), len(model))
		}
		keys := r.Keys()
		if !sort.StringsAreSorted(keys) {
			rt.Fatalf("keys not sorted: %v", keys)
		}
		for _, key := range keys {
			if _, exists := model[key]; !exists {
				rt.Fatalf("registry holds %q missing from model", key)
			}
		}
	})
}

// Progressive user-key resolution always returns either the longest
// registered colon-joined prefix of the query, or nothing.
func TestLookupUserKeyResolvesRegisteredPrefix(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := NewRegistry()
		base := rapid.StringMatching(`[A-Z]{1,4}`).Draw(rt, "base")
		if _, err := r.AddSummary(base, domain.LoadFailSilent); err != nil {
			rt.Fatalf("add: %v", err)
		}
		suffix := rapid.StringMatching(`[A-Z0-9,]{1,6}`).Draw(rt, "suffix")

		node, index := r.LookupUserKey(base + ":" + suffix)
		if node == nil || node.Key() != base {
			rt.Fatalf("lookup of %q returned %v", base+":"+suffix, node)
		}
		if index != suffix {
			rt.Fatalf("index key %q, want %q", index, suffix)
		}
	})
}
