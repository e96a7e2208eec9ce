package scope

import (
	"regexp"
	"strconv"
	"strings"

	"kwestendorf/scopeworker/helpers"
)

// Sentinels for fields that could not be extracted. Records carry these
// instead of being discarded: the magnification gate is the only mandatory
// field.
const (
	PriceNotAvailable = "Price not available"
	DefaultSeries     = "Standard"
	UnknownMaker      = "Unknown"
)

// minPlausiblePrice is the threshold below which a parsed dollar value is
// treated as a parsing artifact (a stray "$5" rating count, a partial price
// node) rather than a real scope price.
const minPlausiblePrice = 20.0

var (
	magPattern    = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)-?(\d+(?:\.\d+)?)?x(\d+)`)
	pricePattern  = regexp.MustCompile(`\$?(\d+(?:\.\d{2})?)`)
	seriesPattern = regexp.MustCompile(`(?i)(VX-\w+|Mark \d+HD)`)
)

// knownManufacturers is the ordered brand list checked against titles.
// First match wins.
var knownManufacturers = []struct {
	keyword string
	name    string
}{
	{"vortex", "Vortex"},
	{"leupold", "Leupold"},
	{"nikon", "Nikon"},
	{"bushnell", "Bushnell"},
	{"athlon", "Athlon"},
	{"primary arms", "Primary Arms"},
	{"sig sauer", "Sig Sauer"},
	{"burris", "Burris"},
	{"trijicon", "Trijicon"},
	{"nightforce", "Nightforce"},
	{"monstrum", "Monstrum"},
	{"cvlife", "CVLIFE"},
	{"barska", "Barska"},
	{"simmons", "Simmons"},
	{"hawke", "Hawke"},
	{"konus", "Konus"},
}

// knownSeries is the ordered product-line list checked against titles after
// the manufacturer-specific series pattern.
var knownSeries = []struct {
	keyword string
	name    string
}{
	{"diamondback", "Diamondback"},
	{"viper", "Viper"},
	{"razor", "Razor"},
	{"vx-freedom", "VX-Freedom"},
	{"mark", "Mark"},
	{"tactical", "Tactical"},
}

// Magnification is the parsed zoom range and objective lens diameter.
type Magnification struct {
	MinZoom       float64
	MaxZoom       float64
	ObjectiveLens int
}

// ExtractMagnification parses the "<min>[-<max>]x<objective>" pattern out of
// a title, e.g. "3-9x40" or "6x24". This is the single mandatory gate: a
// title without it yields no record.
func ExtractMagnification(title string) (Magnification, bool) {
	m := magPattern.FindStringSubmatch(title)
	if m == nil {
		return Magnification{}, false
	}

	minZoom, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Magnification{}, false
	}
	maxZoom := minZoom
	if m[2] != "" {
		maxZoom, err = strconv.ParseFloat(m[2], 64)
		if err != nil {
			return Magnification{}, false
		}
	}
	objective, err := strconv.Atoi(m[3])
	if err != nil {
		return Magnification{}, false
	}
	if minZoom <= 0 || maxZoom < minZoom || objective <= 0 {
		return Magnification{}, false
	}

	return Magnification{MinZoom: minZoom, MaxZoom: maxZoom, ObjectiveLens: objective}, true
}

// ExtractManufacturer infers the brand from a title. Known brands are
// matched case-insensitively in order; with no match the first whitespace
// token of the title is used, and an empty title maps to the Unknown
// sentinel.
func ExtractManufacturer(title string) string {
	titleLower := strings.ToLower(title)
	for _, m := range knownManufacturers {
		if strings.Contains(titleLower, m.keyword) {
			return m.name
		}
	}

	fields := strings.Fields(title)
	if len(fields) > 0 {
		return fields[0]
	}
	return UnknownMaker
}

// ExtractSeries infers the product line from a title: the explicit series
// pattern first (VX-*, Mark <n>HD), then the ordered keyword list, then the
// Standard sentinel.
func ExtractSeries(title string) string {
	if m := seriesPattern.FindString(title); m != "" {
		return m
	}

	titleLower := strings.ToLower(title)
	for _, s := range knownSeries {
		if strings.Contains(titleLower, s.keyword) {
			return s.name
		}
	}
	return DefaultSeries
}

// FormatPrice normalizes a raw price string into "$<amount>" display form.
// Implausibly low values are treated as parsing artifacts and only the price
// is rejected: the caller keeps the record with the not-available sentinel.
func FormatPrice(raw string) string {
	m := pricePattern.FindStringSubmatch(raw)
	if m == nil {
		return PriceNotAvailable
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil || value < minPlausiblePrice {
		return PriceNotAvailable
	}
	return "$" + m[1]
}

// CanonicalURL turns a scraped link into an absolute product URL: relative
// paths gain the source's base origin, query strings are stripped, and
// absent or non-navigable placeholders collapse to the source's fallback
// search URL.
func CanonicalURL(raw, baseURL, fallbackURL string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "javascript:") || raw == "#" {
		return fallbackURL
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSuffix(baseURL, "/") + raw
	}
	path, err := helpers.GetSplitPart(raw, "?", 0)
	if err != nil {
		return raw
	}
	return path
}
