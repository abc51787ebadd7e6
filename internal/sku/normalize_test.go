package sku

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sp(v string) *string { return &v }

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		sku  *string
		desc string
		want string
	}{
		{name: "stex location code", sku: sp("STEX-WHT-LRG"), want: "STEX6-WHT-LRG"},
		{name: "stx alias", sku: sp("STX-NAVY-SML"), want: "STEX1-NAVY-SML"},
		{name: "stex unknown color keeps brand", sku: sp("STEX-PINK-MED"), want: "STEX-PINK-MED"},
		{name: "vass reorder and dotted style", sku: sp("VASS-LEOP-VS135-SML"), want: "VASS-VS.135-LEOP-SML"},
		{name: "vass 2VS134", sku: sp("BENZ-BLK-2VS134-MED"), want: "BENZ-VS.134-BLK-MED"},
		{name: "vass style outside range", sku: sp("VASS-LEOP-VS03-SML"), want: "VASS-VS03-LEOP-SML"},
		{name: "prem three tokens", sku: sp("PREM-646-MED"), want: "PREM-646-MED"},
		{name: "prem new marker", sku: sp("PREM-631NEW-LRG"), want: "PREM-631-LRG"},
		{name: "prem four tokens", sku: sp("PREM-618-RED-MED"), want: "PREM-618-RED-MED"},
		{name: "prem ss", sku: sp("PREM-SS-101-LRG"), want: "PREM-SS-101-LRG"},
		{name: "wick", sku: sp("WICK-BLK-MED"), want: "WICK-BLK-MED"},
		{name: "amds reorder", sku: sp("AMDS-RED-01-XL"), want: "AMDS-01-RED-XL"},
		{name: "vese reorder", sku: sp("VESE-GREEN-11-LRG"), want: "VESE-11-GREEN-LRG"},
		{name: "rodeo three tokens", sku: sp("RODEO-524-XL"), want: "RODEO-524-XL"},
		{name: "rodeo color", sku: sp("RODEO-BEIG-533-MED"), want: "RODEO-533-BEIG-MED"},
		{name: "rodeo ps400 prefix", sku: sp("RODEO-BRWN-PS400461N-MED"), want: "RODEO-461N-BRWN-MED"},
		{name: "rod women", sku: sp("ROD-WOM-506-XL"), want: "ROD-506-WOM-XL"},
		{name: "ace five tokens", sku: sp("ACE-WOM-BLU-ES5110-SML"), want: "ACE-ES5110-WOM-BLU-SML"},
		{name: "buckeroo", sku: sp("BUCK-WS6-BEGE/BRWN-LRG"), want: "BUCK-WS6-BEGE/BRWN-LRG"},
		{name: "vict three tokens", sku: sp("VICT-701-XL"), want: "VICT-701-XL"},
		{name: "vict waist", sku: sp("VICT-BLACK-01-38x32"), want: "VICT-01-BLACK-38x32"},
		{name: "soci waist", sku: sp("SOCI-BLU-950-32x32"), want: "SOCI-950-BLU-32x32"},
		{name: "unknown brand", sku: sp("UNKNOWNBRAND-123-MED"), desc: "desc", want: "UNKNOWNBRAND-123-MED"},
		{name: "single token", sku: sp("GIFTCARD"), want: "GIFTCARD"},
		{name: "brand is case sensitive", sku: sp("prem-646-MED"), want: "prem-646-MED"},
		{name: "nil sku uses description", sku: nil, desc: "Premier Shirt Blue", want: "Premier Shirt Blue"},
		{name: "empty sku uses description", sku: sp(""), desc: "Mystery Box", want: "Mystery Box"},
		{name: "auto generated sku uses description", sku: sp("wi_29384756"), desc: "Rodeo Shirt", want: "Rodeo Shirt"},
		{name: "description with brand layout decomposes", sku: nil, desc: "PREM-646-XXL", want: "PREM-646-2XL"},
		{name: "strip -SL", sku: sp("PREM-646-MED-SL"), want: "PREM-646-MED"},
		{name: "strip -SLL", sku: sp("WICK-BLK-MED-SLL"), want: "WICK-BLK-MED"},
		{name: "strip -D", sku: sp("STEX-RED-XL-D"), want: "STEX8-RED-XL"},
		{name: "revision", sku: sp("STX-WHITE-LRG"), want: "STEX6-WHT-LRG"},
		{name: "revision then alias", sku: sp("RODEO-BRN-533-XL"), want: "RODEO-533-BRWN-XL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.sku, tc.desc))
		})
	}
}

func TestNormalizeSizeAlias(t *testing.T) {
	skus := []string{
		"PREM-646-XXL",
		"PREM-618-RED-XXL",
		"STEX-BLK-XXL",
		"WEAR-GRY-XXL",
		"AMDS-RED-01-XXL",
		"RODEO-524-XXL",
		"RODEO-BEIG-533-XXL",
		"ACE-WOM-BLU-ES5110-XXL",
		"BUCK-WS6-BRWN-XXL",
		"ENVY-5034-XXL",
		"ENVY-WHIT-101-XXL",
		"VASS-LEOP-VS135-XXL",
	}
	for _, raw := range skus {
		t.Run(raw, func(t *testing.T) {
			got := Normalize(sp(raw), "desc")
			assert.True(t, strings.HasSuffix(got, "-2XL"), "got %s", got)
		})
	}
}

func TestNormalizeUnknownBrandKeepsXXL(t *testing.T) {
	assert.Equal(t, "OTHER-1-XXL", Normalize(sp("OTHER-1-XXL"), ""))
}

func TestNormalizeMismatchedArity(t *testing.T) {
	var got []Mismatch
	n := New(WithMismatchHook(func(m Mismatch) { got = append(got, m) }))

	cases := []string{
		"STEX-WHT-LRG-EXTRA",
		"VASS-LEOP-XXL",
		"BUCK-WS6-LRG",
		"VICT-A-B-C-XL",
		"PREM-XL",
	}
	for _, raw := range cases {
		assert.Equal(t, raw, n.Normalize(sp(raw), "desc"))
	}

	require.Len(t, got, len(cases))
	assert.Equal(t, Mismatch{SKU: "STEX-WHT-LRG-EXTRA", Brand: "STEX", Tokens: 4}, got[0])
	assert.Equal(t, Mismatch{SKU: "VASS-LEOP-XXL", Brand: "VASS", Tokens: 3}, got[1])
}

func TestNormalizeUnknownBrandDoesNotReportMismatch(t *testing.T) {
	called := false
	n := New(WithMismatchHook(func(Mismatch) { called = true }))
	n.Normalize(sp("UNKNOWNBRAND-123-MED"), "")
	assert.False(t, called)
}

// Canonical output fed back in is stable for layouts that keep field order.
// Layouts that move fields swap them again, and STEX output carries a brand
// code the registry no longer recognizes.
func TestNormalizeCanonicalFeedback(t *testing.T) {
	cases := []struct {
		raw      string
		again    string
		sameForm bool
	}{
		{raw: "PREM-646-MED", again: "PREM-646-MED", sameForm: true},
		{raw: "PREM-631NEW-LRG", again: "PREM-631-LRG", sameForm: true},
		{raw: "PREM-SS-101-LRG", again: "PREM-SS-101-LRG", sameForm: true},
		{raw: "STEX-WHT-LRG", again: "STEX6-WHT-LRG", sameForm: true},
		{raw: "WICK-BLK-XXL", again: "WICK-BLK-2XL", sameForm: true},
		{raw: "RODEO-524-XL", again: "RODEO-524-XL", sameForm: true},
		{raw: "BUCK-WS6-BRWN-LRG", again: "BUCK-WS6-BRWN-LRG", sameForm: true},
		{raw: "VICT-701-XL", again: "VICT-701-XL", sameForm: true},
		{raw: "AMDS-RED-01-XL", again: "AMDS-RED-01-XL"},
		{raw: "RODEO-BEIG-533-MED", again: "RODEO-BEIG-533-MED"},
		{raw: "VICT-BLACK-01-38x32", again: "VICT-BLACK-01-38x32"},
		{raw: "VASS-LEOP-VS135-SML", again: "VASS-LEOP-VS.135-SML"},
		{raw: "ACE-WOM-BLU-ES5110-SML", again: "ACE-BLU-ES5110-WOM-SML"},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			canonical := Normalize(sp(tc.raw), "")
			again := Normalize(sp(canonical), "")
			assert.Equal(t, tc.again, again)
			assert.Equal(t, tc.sameForm, again == canonical)
		})
	}
}

func TestNormalizeDeterministicConcurrent(t *testing.T) {
	inputs := []string{"STEX-WHT-LRG", "VASS-LEOP-VS135-SML", "PREM-631NEW-XXL", "UNKNOWN-1-2"}
	want := make([]string, len(inputs))
	for i, raw := range inputs {
		want[i] = Normalize(sp(raw), "desc")
	}

	var wg sync.WaitGroup
	results := make([][]string, 16)
	for g := range results {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			out := make([]string, len(inputs))
			for i, raw := range inputs {
				out[i] = Normalize(sp(raw), "desc")
			}
			results[g] = out
		}(g)
	}
	wg.Wait()

	for _, out := range results {
		assert.Equal(t, want, out)
	}
}

func TestWithRevisions(t *testing.T) {
	n := New(WithRevisions(map[string]string{"OLD-CODE": "PREM-646-XXL-SL"}))
	assert.Equal(t, "PREM-646-2XL", n.Normalize(sp("OLD-CODE"), ""))
	assert.Equal(t, "STEX6-WHT-LRG", n.Normalize(sp("STX-WHITE-LRG"), ""), "defaults still apply")
	assert.Equal(t, "OLD-CODE", Normalize(sp("OLD-CODE"), ""), "default normalizer untouched")
}

func TestWithRegistry(t *testing.T) {
	r := Registry{}
	r.Register(byArity(map[int]layout{
		3: func(t []string) string { return join(t[0], t[1]) },
	}), "NEWB")
	n := New(WithRegistry(r))

	assert.Equal(t, "NEWB-9-2XL", n.Normalize(sp("NEWB-9-XXL"), ""))
	assert.Equal(t, "PREM-646-XXL", n.Normalize(sp("PREM-646-XXL"), ""), "default brands replaced")
}

func TestDecompose(t *testing.T) {
	n := New()
	d, ok := n.Decompose("VASS-LEOP-VS135-SML")
	require.True(t, ok)
	assert.Equal(t, Decomposition{Style: "VASS-VS.135-LEOP", Size: "SML"}, d)

	_, ok = n.Decompose("NOPE-1-2")
	assert.False(t, ok)
}
