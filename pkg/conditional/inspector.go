package conditional

import (
	"strings"
	"time"

	"github.com/lintang-b-s/flagencoder/pkg/osmway"
)

// Rule. one "<value> @ <condition>" entry of a conditional tag.
type Rule struct {
	Value     string
	Condition Condition
}

// ParseRules. parses a ":conditional" tag value. entries whose condition cannot be parsed are dropped.
func ParseRules(tagValue string) []Rule {
	entries := splitTopLevel(tagValue, ';')
	rules := make([]Rule, 0, len(entries))
	for _, entry := range entries {
		value, cond, ok := strings.Cut(entry, "@")
		if !ok {
			continue
		}
		c, err := ParseCondition(cond)
		if err != nil {
			continue
		}
		rules = append(rules, Rule{Value: strings.TrimSpace(value), Condition: c})
	}
	return rules
}

// Inspector. evaluates "<restriction>:conditional" tags of a way against its clock.
// it is immutable after construction and safe for concurrent use.
type Inspector struct {
	keys       []string
	restricted osmway.Set
	permitted  osmway.Set
	clock      func() time.Time
}

type InspectorOption func(*Inspector)

// WithClock. sets the evaluation time source.
func WithClock(clock func() time.Time) InspectorOption {
	return func(i *Inspector) {
		i.clock = clock
	}
}

func NewInspector(restrictions []string, restricted, permitted osmway.Set, opts ...InspectorOption) *Inspector {
	keys := make([]string, len(restrictions))
	for i, r := range restrictions {
		keys[i] = r + ":conditional"
	}
	in := &Inspector{
		keys:       keys,
		restricted: restricted,
		permitted:  permitted,
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// IsRestrictedWayConditionallyPermitted. true when some permitted value applies right now.
func (in *Inspector) IsRestrictedWayConditionallyPermitted(way osmway.TagReader) bool {
	return in.applies(way, in.permitted)
}

// IsPermittedWayConditionallyRestricted. true when some restricted value applies right now.
func (in *Inspector) IsPermittedWayConditionallyRestricted(way osmway.TagReader) bool {
	return in.applies(way, in.restricted)
}

func (in *Inspector) applies(way osmway.TagReader, values osmway.Set) bool {
	var now time.Time
	for _, key := range in.keys {
		tag := way.Tag(key)
		if tag == "" {
			continue
		}
		if now.IsZero() {
			now = in.clock()
		}
		for _, rule := range ParseRules(tag) {
			if values.Contains(rule.Value) && rule.Condition.Matches(now) {
				return true
			}
		}
	}
	return false
}
