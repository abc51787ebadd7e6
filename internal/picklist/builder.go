// Package picklist condenses per-SKU quantities into the sorted manifest the
// warehouse picks from.
package picklist

import (
	"sort"
	"strconv"
	"strings"

	"picklist/internal"
)

// Delimiter separates the style from its size summary in a rendered line.
const Delimiter = " -> "

type sizeCount struct {
	size     string
	rank     int
	quantity int
}

// Build renders one newline-terminated line per style, sorted by the
// rendered text. Quantities must be positive.
func Build(aggregates []internal.SKUQuantity) []string {
	totals := map[string]int{}
	for _, a := range aggregates {
		totals[a.SKU] += a.Quantity
	}

	styles := map[string][]sizeCount{}
	irregular := map[string]int{}
	for sku, quantity := range totals {
		idx := strings.LastIndex(sku, "-")
		if idx < 0 {
			irregular[sku] = quantity
			continue
		}

		style, size := sku[:idx], sku[idx+1:]
		rank, ok := SizeRank(size)
		if !ok {
			continue
		}
		styles[style] = append(styles[style], sizeCount{size: size, rank: rank, quantity: quantity})
	}

	lines := make([]string, 0, len(styles)+len(irregular))
	for style, sizes := range styles {
		lines = append(lines, renderStyle(style, sizes))
	}
	for sku, quantity := range irregular {
		lines = append(lines, renderIrregular(sku, quantity))
	}
	sort.Strings(lines)
	return lines
}

func renderStyle(style string, sizes []sizeCount) string {
	sort.SliceStable(sizes, func(i, j int) bool {
		if sizes[i].rank != sizes[j].rank {
			return sizes[i].rank < sizes[j].rank
		}
		return sizes[i].size < sizes[j].size
	})

	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = withCount(s.size, s.quantity)
	}
	return style + Delimiter + strings.Join(parts, ", ") + "\n"
}

func renderIrregular(style string, quantity int) string {
	return withCount(style, quantity) + "\n"
}

func withCount(label string, quantity int) string {
	if quantity == 1 {
		return label
	}
	return label + " (" + strconv.Itoa(quantity) + ")"
}

// SplitLine separates a rendered line into its style and size summary. Lines
// for irregular SKUs have no size summary.
func SplitLine(line string) (style, sizes string) {
	line = strings.TrimSuffix(line, "\n")
	style, sizes, _ = strings.Cut(line, Delimiter)
	return style, sizes
}
