package sku

// Identifiers that storefronts generate on their own. They carry no brand
// structure, so the line description is used instead.
const autoGeneratedPrefix = "wi_"

// deprecatedSuffixes mark packaging and material variants that are picked
// from the same bin as the base item.
var deprecatedSuffixes = []string{"-SL", "-SLL", "-D"}

// defaultRevisions maps discontinued identifiers to their replacements.
// Deployments extend it through the store catalog file.
var defaultRevisions = map[string]string{
	"PREM-631-XXL":     "PREM-631-2XL",
	"STX-WHITE-LRG":    "STEX-WHT-LRG",
	"STX-WHITE-MED":    "STEX-WHT-MED",
	"STX-BLACK-LRG":    "STEX-BLK-LRG",
	"STX-BLACK-MED":    "STEX-BLK-MED",
	"RODEO-BRN-533-XL": "RODEO-BRWN-533-XL",
}

// stexLocations gives the shelf location of each STEX color so the pick
// list walks the shelves in order instead of alphabetically by color.
var stexLocations = map[string]string{
	"NAVY": "STEX1",
	"BLK":  "STEX2",
	"GREY": "STEX3",
	"CHAR": "STEX4",
	"GRN":  "STEX5",
	"WHT":  "STEX6",
	"BRIT": "STEX7",
	"RED":  "STEX8",
	"KAK":  "STEX9",
}

// vassStyles rewrites VS127..VS136 so they sort after VS03..VS15 instead of
// between them.
var vassStyles = map[string]string{
	"VS127":  "VS.127",
	"VS128":  "VS.128",
	"VS129":  "VS.129",
	"VS130":  "VS.130",
	"VS131":  "VS.131",
	"VS132":  "VS.132",
	"VS133":  "VS.133",
	"VS134":  "VS.134",
	"VS135":  "VS.135",
	"VS136":  "VS.136",
	"2VS134": "VS.134",
}

const (
	premNewMarker    = "NEW"
	rodeoStylePrefix = "PS400"
)

var sizeAliases = map[string]string{
	"XXL": "2XL",
}
