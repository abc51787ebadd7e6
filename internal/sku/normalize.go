// Package sku turns the identifiers storefronts attach to order lines into
// canonical BRAND-STYLE[-COLOR]-SIZE keys.
package sku

import (
	"strings"
)

// Mismatch describes an identifier whose brand is known but whose token
// count fits none of that brand's layouts.
type Mismatch struct {
	SKU    string
	Brand  string
	Tokens int
}

// Normalizer is immutable after New and safe for concurrent use as long as
// the mismatch hook is.
type Normalizer struct {
	revisions  map[string]string
	registry   Registry
	onMismatch func(Mismatch)
}

type Option func(*Normalizer)

// WithRevisions adds old-to-new identifier corrections on top of the
// compiled-in table. Later entries win.
func WithRevisions(revisions map[string]string) Option {
	return func(n *Normalizer) {
		for from, to := range revisions {
			n.revisions[from] = to
		}
	}
}

func WithRegistry(r Registry) Option {
	return func(n *Normalizer) {
		n.registry = r
	}
}

func WithMismatchHook(fn func(Mismatch)) Option {
	return func(n *Normalizer) {
		n.onMismatch = fn
	}
}

func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		revisions: make(map[string]string, len(defaultRevisions)),
		registry:  DefaultRegistry(),
	}
	for from, to := range defaultRevisions {
		n.revisions[from] = to
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

var defaultNormalizer = New()

// Normalize uses the compiled-in tables and no mismatch hook.
func Normalize(rawSKU *string, description string) string {
	return defaultNormalizer.Normalize(rawSKU, description)
}

// Normalize returns the canonical identifier for an order line. Identifiers of
// unknown brands, and known brands with an unexpected token count, are
// returned after revision and suffix cleanup but otherwise unchanged.
func (n *Normalizer) Normalize(rawSKU *string, description string) string {
	id, fallback := workingIdentifier(rawSKU, description)
	if !fallback {
		id = n.revise(id)
		id = stripDeprecatedSuffix(id)
	}

	d, ok := n.decompose(id)
	if !ok {
		return id
	}
	return d.Style + "-" + canonicalSize(d.Size)
}

// Decompose applies only the brand rules to an identifier.
func (n *Normalizer) Decompose(id string) (Decomposition, bool) {
	return n.decompose(id)
}

func (n *Normalizer) decompose(id string) (Decomposition, bool) {
	tokens := strings.Split(id, "-")
	rule, ok := n.registry.Lookup(tokens[0])
	if !ok {
		return Decomposition{}, false
	}
	d, err := rule(tokens)
	if err != nil {
		if n.onMismatch != nil {
			n.onMismatch(Mismatch{SKU: id, Brand: tokens[0], Tokens: len(tokens)})
		}
		return Decomposition{}, false
	}
	return d, true
}

func (n *Normalizer) revise(id string) string {
	if revised, ok := n.revisions[id]; ok {
		return revised
	}
	return id
}

func workingIdentifier(rawSKU *string, description string) (string, bool) {
	if rawSKU == nil || *rawSKU == "" || strings.HasPrefix(*rawSKU, autoGeneratedPrefix) {
		return description, true
	}
	return *rawSKU, false
}

func stripDeprecatedSuffix(id string) string {
	for _, suffix := range deprecatedSuffixes {
		if strings.HasSuffix(id, suffix) {
			return strings.TrimSuffix(id, suffix)
		}
	}
	return id
}

func canonicalSize(size string) string {
	if alias, ok := sizeAliases[size]; ok {
		return alias
	}
	return size
}
