package picklist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"picklist/internal"
)

func TestBuild(t *testing.T) {
	cases := []struct {
		name  string
		input []internal.SKUQuantity
		want  []string
	}{
		{
			name: "two styles",
			input: []internal.SKUQuantity{
				{SKU: "PREM-001-SM", Quantity: 1},
				{SKU: "PREM-001-ME", Quantity: 3},
				{SKU: "PREM-002-LR", Quantity: 2},
				{SKU: "PREM-002-XL", Quantity: 1},
			},
			want: []string{
				"PREM-001 -> SM, ME (3)\n",
				"PREM-002 -> LR (2), XL\n",
			},
		},
		{
			name: "duplicates fold",
			input: []internal.SKUQuantity{
				{SKU: "PREM-001-SM", Quantity: 1},
				{SKU: "PREM-001-SM", Quantity: 2},
			},
			want: []string{"PREM-001 -> SM (3)\n"},
		},
		{
			name: "unknown size excluded",
			input: []internal.SKUQuantity{
				{SKU: "PROMO-CODE-XYZ", Quantity: 5},
				{SKU: "WICK-BLK-MED", Quantity: 1},
			},
			want: []string{"WICK-BLK -> MED\n"},
		},
		{
			name: "one letter size excluded",
			input: []internal.SKUQuantity{
				{SKU: "PREM-001-S", Quantity: 1},
			},
			want: []string{},
		},
		{
			name: "irregular entries",
			input: []internal.SKUQuantity{
				{SKU: "GIFTCARD", Quantity: 1},
				{SKU: "Mystery Box", Quantity: 4},
			},
			want: []string{"GIFTCARD\n", "Mystery Box (4)\n"},
		},
		{
			name: "full size ranking",
			input: []internal.SKUQuantity{
				{SKU: "STEX6-WHT-8XL", Quantity: 1},
				{SKU: "STEX6-WHT-2XL", Quantity: 2},
				{SKU: "STEX6-WHT-XL", Quantity: 1},
				{SKU: "STEX6-WHT-LRG", Quantity: 1},
				{SKU: "STEX6-WHT-LARG", Quantity: 1},
				{SKU: "STEX6-WHT-MED", Quantity: 1},
				{SKU: "STEX6-WHT-SML", Quantity: 1},
				{SKU: "STEX6-WHT-XSM", Quantity: 1},
				{SKU: "STEX6-WHT-5XL", Quantity: 6},
			},
			want: []string{"STEX6-WHT -> XSM, SML, MED, LARG, LRG, XL, 2XL (2), 5XL (6), 8XL\n"},
		},
		{
			name: "waist sizes after letter sizes",
			input: []internal.SKUQuantity{
				{SKU: "VICT-01-BLACK-54x30", Quantity: 1},
				{SKU: "VICT-01-BLACK-38x32", Quantity: 2},
				{SKU: "VICT-01-BLACK-30x30", Quantity: 1},
				{SKU: "VICT-01-BLACK-XL", Quantity: 1},
			},
			want: []string{"VICT-01-BLACK -> XL, 30x30, 38x32 (2), 54x30\n"},
		},
		{
			name: "style and irregular with same text",
			input: []internal.SKUQuantity{
				{SKU: "SAMPLE", Quantity: 2},
				{SKU: "SAMPLE-XL", Quantity: 1},
			},
			want: []string{"SAMPLE (2)\n", "SAMPLE -> XL\n"},
		},
		{
			name: "lines sorted by rendered text",
			input: []internal.SKUQuantity{
				{SKU: "VASS-VS.135-LEOP-SML", Quantity: 1},
				{SKU: "AMDS-01-RED-XL", Quantity: 1},
				{SKU: "VASS-VS03-LEOP-SML", Quantity: 1},
				{SKU: "VASS-VS15-LEOP-SML", Quantity: 1},
			},
			want: []string{
				"AMDS-01-RED -> XL\n",
				"VASS-VS.135-LEOP -> SML\n",
				"VASS-VS03-LEOP -> SML\n",
				"VASS-VS15-LEOP -> SML\n",
			},
		},
		{
			name:  "empty",
			input: nil,
			want:  []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Build(tc.input))
		})
	}
}

func TestBuildIsOrderIndependent(t *testing.T) {
	a := []internal.SKUQuantity{
		{SKU: "PREM-001-SM", Quantity: 1},
		{SKU: "PREM-002-XL", Quantity: 1},
		{SKU: "PREM-001-ME", Quantity: 3},
		{SKU: "GIFT", Quantity: 1},
	}
	b := []internal.SKUQuantity{a[3], a[2], a[1], a[0]}
	assert.Equal(t, Build(a), Build(b))
}

func TestSizeRank(t *testing.T) {
	small, ok := SizeRank("SML")
	assert.True(t, ok)
	large, ok := SizeRank("LRG")
	assert.True(t, ok)
	waist, ok := SizeRank("32x32")
	assert.True(t, ok)
	assert.Less(t, small, large)
	assert.Less(t, large, waist)

	_, ok = SizeRank("XYZ")
	assert.False(t, ok)
	_, ok = SizeRank("")
	assert.False(t, ok)
	_, ok = SizeRank("31x30")
	assert.False(t, ok)
}

func TestSplitLine(t *testing.T) {
	style, sizes := SplitLine("PREM-001 -> SM, ME (3)\n")
	assert.Equal(t, "PREM-001", style)
	assert.Equal(t, "SM, ME (3)", sizes)

	style, sizes = SplitLine("GIFTCARD (2)\n")
	assert.Equal(t, "GIFTCARD (2)", style)
	assert.Empty(t, sizes)
}
