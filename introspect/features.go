package introspect

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// featureNames maps OpenType feature tags to display names.
// See https://learn.microsoft.com/en-us/typography/opentype/spec/featurelist
var featureNames = map[string]string{
	// ligatures
	"liga": "Standard Ligatures",
	"dlig": "Discretionary Ligatures",
	"hlig": "Historical Ligatures",
	"clig": "Contextual Ligatures",
	"rlig": "Required Ligatures",
	// letter case
	"smcp": "Small Capitals",
	"c2sc": "Capitals to Small Capitals",
	"pcap": "Petite Capitals",
	"c2pc": "Capitals to Petite Capitals",
	"unic": "Unicase",
	"case": "Case-Sensitive Forms",
	// figures
	"lnum": "Lining Figures",
	"onum": "Oldstyle Figures",
	"pnum": "Proportional Figures",
	"tnum": "Tabular Figures",
	"frac": "Fractions",
	"afrc": "Alternative Fractions",
	"ordn": "Ordinals",
	"zero": "Slashed Zero",
	// positioning
	"kern": "Kerning",
	"cpsp": "Capital Spacing",
	"mark": "Mark Positioning",
	"mkmk": "Mark to Mark Positioning",
	// alternates
	"salt": "Stylistic Alternates",
	"swsh": "Swash",
	"calt": "Contextual Alternates",
	"hist": "Historical Forms",
	"locl": "Localized Forms",
	"rand": "Randomize",
	// widths
	"fwid": "Full Widths",
	"hwid": "Half Widths",
	"pwid": "Proportional Widths",
	"twid": "Third Widths",
	"qwid": "Quarter Widths",
	// vertical
	"vert": "Vertical Writing",
	"vrt2": "Vertical Alternates and Rotation",
	"vkrn": "Vertical Kerning",
	// other
	"aalt": "Access All Alternates",
	"ccmp": "Glyph Composition/Decomposition",
	"rclt": "Required Contextual Alternates",
	"rvrn": "Required Variation Alternates",
	"curs": "Cursive Positioning",
	"dist": "Distances",
	"size": "Optical Size",
	"subs": "Subscript",
	"sups": "Superscript",
	"sinf": "Scientific Inferiors",
	"titl": "Titling",
}

// FeatureName returns a display name for an OpenType feature tag.
// Unknown tags are displayed upper-cased.
func FeatureName(tag string) string {
	if name, ok := featureNames[tag]; ok {
		return name
	}
	// a Caser is stateful and must not be shared between goroutines
	return cases.Upper(language.Und).String(tag)
}

func features(tags []string) []Feature {
	fs := make([]Feature, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		fs = append(fs, Feature{Tag: tag, Name: FeatureName(tag)})
	}
	return fs
}
