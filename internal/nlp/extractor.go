// Package nlp extracts brand, model and category entities from raw
// manifest titles so lots can be grouped and priced against history.
package nlp

import (
	"regexp"
	"strconv"
	"strings"
)

type ExtractedEntities struct {
	NormalizedTitle string
	Brand           string
	Model           string
	Category        string
}

// Appliance, electronics, furniture and tool brands seen in manifests.
var brands = []string{
	// Appliances
	"Samsung", "LG", "Sony", "Panasonic", "Sharp", "Toshiba",
	"GE", "General Electric", "Whirlpool", "KitchenAid",
	"Frigidaire", "Electrolux", "Bosch", "Miele",
	"Maytag", "Amana", "Jenn-Air", "Thermador", "Dacor",
	"Viking", "Wolf", "Sub-Zero", "Monogram",
	// Electronics
	"Apple", "Dell", "HP", "Hewlett Packard", "Lenovo",
	"Asus", "Acer", "Microsoft", "Canon", "Nikon",
	"Bose", "JBL", "Harman Kardon", "Yamaha", "Denon",
	// Furniture
	"Ashley", "IKEA", "La-Z-Boy", "Ethan Allen",
	"Pottery Barn", "West Elm", "Crate and Barrel",
	// Tools
	"DeWalt", "Milwaukee", "Makita", "Ryobi",
	"Craftsman", "Black & Decker", "Stanley",
}

// Marketing noise that carries no signal for matching.
var stopWords = []string{
	"new", "box", "open", "sealed", "ship", "retail",
	"brand", "factory", "original", "genuine", "authentic",
	"warranty", "refurbished", "renewed", "like", "condition",
	"lot", "pallet", "mixed", "assorted", "various",
}

type categoryRule struct {
	name     string
	keywords []string
}

var categories = []categoryRule{
	{"Appliances", []string{"refrigerator", "fridge", "dishwasher", "washer",
		"dryer", "oven", "range", "stove", "microwave", "freezer", "cooktop"}},
	{"Electronics", []string{"tv", "television", "monitor", "laptop", "computer",
		"tablet", "phone", "camera", "speaker", "headphone",
		"soundbar", "receiver", "blu-ray", "dvd"}},
	{"Furniture", []string{"sofa", "couch", "chair", "table", "desk", "bed",
		"dresser", "cabinet", "shelf", "bookcase", "nightstand"}},
	{"Tools", []string{"drill", "saw", "sander", "grinder", "wrench", "hammer",
		"tool set", "toolbox", "power tool", "hand tool"}},
	{"Home Decor", []string{"lamp", "mirror", "rug", "curtain", "pillow",
		"artwork", "vase", "clock"}},
	{"Kitchen", []string{"blender", "mixer", "toaster", "coffee maker", "pot",
		"pan", "knife set", "cookware"}},
}

var (
	// Samsung: UN65TU8000FXZA, QN55Q80TAFXZA
	samsungModelRe = regexp.MustCompile(`\b([UQ]N\d{2}[A-Z]+\d{2,5}[A-Z]*)\b`)
	// LG: OLED65C1PUB, 65NANO90UPA
	lgModelRe = regexp.MustCompile(`\b(OLED\d{2}[A-Z0-9]+|[\d]{2}[A-Z]{4,}\d{2,}[A-Z]*)\b`)
	// GE: JVM3160RFSS, GNE27JSMSS
	geModelRe = regexp.MustCompile(`\b([A-Z]{3}\d{4}[A-Z]{2,4})\b`)
	// Generic: 2+ letters, 3+ digits, optional suffix
	genericModelRe = regexp.MustCompile(`\b([A-Z]{2,}\d{3,}[A-Z0-9]*)\b`)
	// UPC/EAN codes
	upcRe = regexp.MustCompile(`\b(\d{12,13})\b`)

	screenSizeRe = regexp.MustCompile(`\b(\d{2,3})["'\s]?(inch|in|tv|television|monitor)?\b`)
	capacityRe   = regexp.MustCompile(`(\d+\.?\d*)\s*(cu\.?\s*ft|cubic\s*feet?)`)

	stopWordRe = regexp.MustCompile(`\b(` + strings.Join(stopWords, "|") + `)\b`)
)

type Extractor struct {
	brandRes []*regexp.Regexp
}

func NewExtractor() *Extractor {
	res := make([]*regexp.Regexp, len(brands))
	for i, b := range brands {
		res[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(b)) + `\b`)
	}
	return &Extractor{brandRes: res}
}

// Extract runs the full pipeline on one raw title.
func (e *Extractor) Extract(rawTitle string) ExtractedEntities {
	normalized := e.NormalizeTitle(rawTitle)
	return ExtractedEntities{
		NormalizedTitle: normalized,
		Brand:           e.FindBrand(normalized),
		Model:           e.FindModel(rawTitle), // raw text keeps the model casing
		Category:        e.FindCategory(normalized),
	}
}

// NormalizeTitle lowercases, strips stop words and punctuation, and
// collapses whitespace.
func (e *Extractor) NormalizeTitle(title string) string {
	result := stopWordRe.ReplaceAllString(strings.ToLower(title), "")
	result = strings.Join(strings.Fields(result), " ")

	var b strings.Builder
	for _, r := range result {
		if r == ' ' || ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// FindBrand returns the first known brand present as a whole word, or "".
func (e *Extractor) FindBrand(normalizedTitle string) string {
	lower := strings.ToLower(normalizedTitle)
	for i, re := range e.brandRes {
		if re.MatchString(lower) {
			return brands[i]
		}
	}
	return ""
}

// FindModel tries vendor-specific patterns first, then a generic one,
// then falls back to a UPC code.
func (e *Extractor) FindModel(rawTitle string) string {
	upper := strings.ToUpper(rawTitle)

	for _, re := range []*regexp.Regexp{samsungModelRe, lgModelRe, geModelRe} {
		if m := re.FindStringSubmatch(upper); m != nil {
			return m[1]
		}
	}

	if m := genericModelRe.FindStringSubmatch(upper); m != nil {
		// Filter obvious non-models like NEW2024
		if !strings.HasPrefix(m[1], "NEW") && !strings.HasPrefix(m[1], "BOX") {
			return m[1]
		}
	}

	if m := upcRe.FindStringSubmatch(upper); m != nil {
		return "UPC:" + m[1]
	}

	return ""
}

// FindCategory matches category keywords against the normalized title.
func (e *Extractor) FindCategory(normalizedTitle string) string {
	lower := strings.ToLower(normalizedTitle)
	for _, rule := range categories {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.name
			}
		}
	}
	return ""
}

// ExtractScreenSize pulls a screen diagonal in inches out of a TV or
// monitor title. Sizes outside 15–100 are treated as noise.
func ExtractScreenSize(title string) (int, bool) {
	m := screenSizeRe.FindStringSubmatch(strings.ToLower(title))
	if m == nil {
		return 0, false
	}
	size, err := strconv.Atoi(m[1])
	if err != nil || size < 15 || size > 100 {
		return 0, false
	}
	return size, true
}

// ExtractCapacity pulls a refrigerator capacity in cubic feet.
// Capacities outside 1–30 are treated as noise.
func ExtractCapacity(title string) (float64, bool) {
	m := capacityRe.FindStringSubmatch(strings.ToLower(title))
	if m == nil {
		return 0, false
	}
	capacity, err := strconv.ParseFloat(m[1], 64)
	if err != nil || capacity < 1 || capacity > 30 {
		return 0, false
	}
	return capacity, true
}
