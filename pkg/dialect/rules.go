package dialect

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/leapdb/pkg/core"
)

// DecodeFunc attempts one decoding strategy against a raw driver cell.
// A false return falls through to the next step of the chain.
type DecodeFunc func(raw any) (core.Value, bool)

// Chain is an ordered list of decoding strategies. The first step that
// decodes the cell wins.
type Chain []DecodeFunc

// Rule binds a class of column type tags to its fallback chain. Tags match
// exactly; Prefixes match any tag that starts with one of them. Matching is
// case-insensitive.
type Rule struct {
	Tags     []string
	Prefixes []string
	Chain    Chain
}

type prefixRule struct {
	prefix string
	chain  Chain
}

// RuleSet resolves a column type tag to its fallback chain. An exact tag
// match beats any prefix match; among prefix matches the longest prefix
// wins, so TIMESTAMP is not swallowed by a TIME rule.
type RuleSet struct {
	exact    map[string]Chain
	prefixes []prefixRule
	unknown  Chain
}

// NewRuleSet compiles rules into a RuleSet. The unknown chain handles tags
// no rule matches.
func NewRuleSet(rules []Rule, unknown Chain) *RuleSet {
	rs := &RuleSet{
		exact:   make(map[string]Chain),
		unknown: unknown,
	}
	for _, r := range rules {
		for _, tag := range r.Tags {
			rs.exact[strings.ToUpper(tag)] = r.Chain
		}
		for _, p := range r.Prefixes {
			rs.prefixes = append(rs.prefixes, prefixRule{prefix: strings.ToUpper(p), chain: r.Chain})
		}
	}
	// Longest prefix first; ties keep declaration order.
	sort.SliceStable(rs.prefixes, func(i, j int) bool {
		return len(rs.prefixes[i].prefix) > len(rs.prefixes[j].prefix)
	})
	return rs
}

// Normalize resolves the tag's chain and runs it against the raw cell.
// A nil cell is null for every tag; a cell no step decodes is null.
func (rs *RuleSet) Normalize(typeTag string, raw any) core.Value {
	if raw == nil {
		return core.Null()
	}
	for _, step := range rs.chainFor(typeTag) {
		if v, ok := step(raw); ok {
			return v
		}
	}
	return core.Null()
}

func (rs *RuleSet) chainFor(typeTag string) Chain {
	tag := strings.ToUpper(typeTag)
	if chain, ok := rs.exact[tag]; ok {
		return chain
	}
	for _, p := range rs.prefixes {
		if strings.HasPrefix(tag, p.prefix) {
			return p.chain
		}
	}
	return rs.unknown
}
