package picklist

// sizeRanks orders size codes by their first two characters. LA covers the
// LARG spelling used by a few brands. Codes missing from the table are not
// garments (coupon codes and the like) and never reach the pick list.
var sizeRanks = map[string]int{
	"XS": 0,
	"SM": 1,
	"ME": 2,
	"LA": 3,
	"LR": 4,
	"XL": 5,
	"2X": 6,
	"3X": 7,
	"4X": 8,
	"5X": 9,
	"6X": 10,
	"7X": 11,
	"8X": 12,
	"30": 13,
	"32": 14,
	"34": 15,
	"36": 16,
	"38": 17,
	"40": 18,
	"42": 19,
	"44": 20,
	"46": 21,
	"48": 22,
	"50": 23,
	"52": 24,
	"54": 25,
}

// SizeRank reports the sort rank of a size code such as MED, 2XL or 38x32.
func SizeRank(size string) (int, bool) {
	if len(size) < 2 {
		return 0, false
	}
	rank, ok := sizeRanks[size[:2]]
	return rank, ok
}
