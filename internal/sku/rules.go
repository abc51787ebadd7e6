package sku

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnrecognized = errors.New("unrecognized sku layout")

// Decomposition is a brand SKU split into the part the pick list groups on
// and the size token.
type Decomposition struct {
	Style string
	Size  string
}

// Rule decomposes the dash-separated tokens of one brand family. It returns
// ErrUnrecognized when the token count matches none of the family's layouts.
type Rule func(tokens []string) (Decomposition, error)

// layout assembles the style part from the tokens of a SKU with a known
// token count. The size is always the last token and is handled by byArity.
type layout func(tokens []string) string

func byArity(layouts map[int]layout) Rule {
	return func(tokens []string) (Decomposition, error) {
		build, ok := layouts[len(tokens)]
		if !ok {
			return Decomposition{}, fmt.Errorf("%w: %d tokens", ErrUnrecognized, len(tokens))
		}
		return Decomposition{Style: build(tokens), Size: tokens[len(tokens)-1]}, nil
	}
}

// Registry maps a brand code, matched case-sensitively, to its rule.
type Registry map[string]Rule

func (r Registry) Register(rule Rule, brands ...string) {
	for _, brand := range brands {
		r[brand] = rule
	}
}

func (r Registry) Lookup(brand string) (Rule, bool) {
	rule, ok := r[brand]
	return rule, ok
}

func (r Registry) Brands() []string {
	out := make([]string, 0, len(r))
	for brand := range r {
		out = append(out, brand)
	}
	return out
}

// DefaultRegistry returns the rules for every brand family stocked in the
// warehouse. Canonical field order is chosen so an alphanumeric sort of the
// pick list keeps each style together.
func DefaultRegistry() Registry {
	r := Registry{}
	r.Register(premierRule(), "PREM")
	r.Register(stexRule(), "STEX", "STX")
	r.Register(shortsRule(), "WICK", "WEAR")
	r.Register(veseRule(), "VESE", "AMDS")
	r.Register(rodeoRule(), "ROD", "RODEO", "ACE", "PLAT")
	r.Register(buckerooRule(), "BUCK")
	r.Register(jeansRule(), "VIC", "VICT", "ENVY", "SOCI")
	r.Register(vassRule(), "VASS", "BENZ")
	return r
}

func join(parts ...string) string {
	return strings.Join(parts, "-")
}

// PREM-646-MED, PREM-631NEW-LRG, PREM-618-RED-MED, PREM-SS-101-LRG
func premierRule() Rule {
	return byArity(map[int]layout{
		3: func(t []string) string {
			style := t[1]
			if len(style) > len(premNewMarker) && strings.HasSuffix(style, premNewMarker) {
				style = strings.TrimSuffix(style, premNewMarker)
			}
			return join(t[0], style)
		},
		4: func(t []string) string { return join(t[0], t[1], t[2]) },
	})
}

// STEX-WHT-LRG becomes STEX6-WHT-LRG.
func stexRule() Rule {
	return byArity(map[int]layout{
		3: func(t []string) string {
			brand := t[0]
			if location, ok := stexLocations[t[1]]; ok {
				brand = location
			}
			return join(brand, t[1])
		},
	})
}

// WICK-BLK-MED
func shortsRule() Rule {
	return byArity(map[int]layout{
		3: func(t []string) string { return join(t[0], t[1]) },
	})
}

// AMDS-RED-01-XL becomes AMDS-01-RED-XL.
func veseRule() Rule {
	return byArity(map[int]layout{
		4: func(t []string) string { return join(t[0], t[2], t[1]) },
	})
}

// RODEO-524-XL, RODEO-BEIG-533-MED, ROD-WOM-506-XL, ACE-WOM-BLU-ES5110-SML
func rodeoRule() Rule {
	return byArity(map[int]layout{
		3: func(t []string) string { return join(t[0], t[1]) },
		4: func(t []string) string {
			return join(t[0], strings.TrimPrefix(t[2], rodeoStylePrefix), t[1])
		},
		5: func(t []string) string { return join(t[0], t[3], t[1], t[2]) },
	})
}

// BUCK-WS6-BEGE/BRWN-LRG
func buckerooRule() Rule {
	return byArity(map[int]layout{
		4: func(t []string) string { return join(t[0], t[1], t[2]) },
	})
}

// VICT-701-XL, VICT-BLACK-01-38x32, SOCI-BLU-950-32x32
func jeansRule() Rule {
	return byArity(map[int]layout{
		3: func(t []string) string { return join(t[0], t[1]) },
		4: func(t []string) string { return join(t[0], t[2], t[1]) },
	})
}

// VASS-LEOP-VS135-SML becomes VASS-VS.135-LEOP-SML.
func vassRule() Rule {
	return byArity(map[int]layout{
		4: func(t []string) string {
			style := t[2]
			if dotted, ok := vassStyles[style]; ok {
				style = dotted
			}
			return join(t[0], style, t[1])
		},
	})
}
