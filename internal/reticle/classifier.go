package reticle

import (
	"strings"
	"sync/atomic"
)

// matcher reports whether a lowercase-folded text names a reticle variant.
type matcher func(text string) bool

// rule pairs a predicate with the catalog entry it selects. Rules are
// evaluated in declaration order, first match wins, so more specific
// keywords must be listed before the generic substrings they contain
// ("firedot tmr" before "tmr", "firedot" before "duplex").
type rule struct {
	match    matcher
	typeName string
}

func anyOf(subs ...string) matcher {
	return func(text string) bool {
		for _, sub := range subs {
			if strings.Contains(text, sub) {
				return true
			}
		}
		return false
	}
}

func allOf(subs ...string) matcher {
	return func(text string) bool {
		for _, sub := range subs {
			if !strings.Contains(text, sub) {
				return false
			}
		}
		return true
	}
}

// Classifier maps listing text to exactly one catalog descriptor. The title
// rules are applied first; the description rules only run when the title
// matched nothing. When neither matches, the catalog baseline (Duplex) is
// returned, so classification is total: every record ends up renderable,
// at the cost of an occasional misclassification. Those defaults are
// counted for diagnostics.
type Classifier struct {
	catalog    Catalog
	titleRules []rule
	descRules  []rule

	defaulted atomic.Uint64
}

// Classify returns the descriptor for a listing's title and description.
// It never returns an absent reticle.
func (c *Classifier) Classify(title, description string) Descriptor {
	titleLower := strings.ToLower(title)
	descLower := strings.ToLower(description)

	for _, r := range c.titleRules {
		if r.match(titleLower) {
			return c.catalog[r.typeName]
		}
	}
	for _, r := range c.descRules {
		if r.match(descLower) {
			return c.catalog[r.typeName]
		}
	}

	// Last resort. An explicit "duplex" mention is a correct match, anything
	// else is a counted default.
	if !strings.Contains(titleLower, "duplex") && !strings.Contains(descLower, "duplex") {
		c.defaulted.Add(1)
	}
	return c.catalog.Baseline()
}

// DefaultCount reports how many classifications fell through to the baseline
// without any keyword evidence.
func (c *Classifier) DefaultCount() uint64 {
	return c.defaulted.Load()
}

// Catalog returns the catalog this classifier selects from.
func (c *Classifier) Catalog() Catalog {
	return c.catalog
}

// NewLeupoldClassifier builds the classifier for Leupold catalog pages.
func NewLeupoldClassifier() *Classifier {
	titleRules := []rule{
		{allOf("firedot", "tmr"), "FireDot TMR"},
		{allOf("firedot", "bdc"), "FireDot BDC"},
		{anyOf("firedot"), "FireDot Duplex"},
		{anyOf("tmr"), "TMR"},
		{anyOf("pr1-moa", "pr1 moa"), "PR1-MOA"},
		{anyOf("hpr-1", "hpr1"), "HPR-1"},
		{anyOf("mildot", "mil dot"), "MilDot"},
		{anyOf("boone", "b&c"), "Boone and Crockett"},
		{anyOf("pig-plex"), "Pig-Plex"},
		{anyOf("wind-plex"), "Wind-Plex"},
		{anyOf("ultimateslam"), "UltimateSlam"},
		{anyOf("tmoa"), "TMOA"},
		{allOf("tactical", "moa"), "TMOA"},
		{anyOf("moa-ring"), "MOA-Ring"},
		{allOf("moa", "ring"), "MOA-Ring"},
		{anyOf("hunt-plex"), "Hunt-Plex"},
		{anyOf("ar-ballistic"), "AR-Ballistic"},
	}
	// Description text is noisier, so only the unambiguous variants are
	// trusted there.
	descRules := []rule{
		{allOf("firedot", "tmr"), "FireDot TMR"},
		{allOf("firedot", "bdc"), "FireDot BDC"},
		{anyOf("firedot"), "FireDot Duplex"},
		{anyOf("tmr"), "TMR"},
		{anyOf("pr1-moa", "pr1 moa"), "PR1-MOA"},
		{anyOf("hpr-1", "hpr1"), "HPR-1"},
		{anyOf("mildot", "mil dot"), "MilDot"},
	}
	return &Classifier{
		catalog:    LeupoldCatalog,
		titleRules: titleRules,
		descRules:  descRules,
	}
}

// NewBasicClassifier builds the classifier for marketplace listings.
func NewBasicClassifier() *Classifier {
	rules := []rule{
		{anyOf("mil-dot", "mildot"), "Mil-Dot"},
		{anyOf("bdc"), "BDC"},
		{anyOf("illuminated"), "Illuminated"},
	}
	return &Classifier{
		catalog:    BasicCatalog,
		titleRules: rules,
		descRules:  rules,
	}
}
