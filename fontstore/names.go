package fontstore

import (
	"regexp"
	"strings"
)

// Extensions is the list of font file extensions we recognize, without dots.
var Extensions = []string{"woff2", "woff", "ttf", "otf"}

var mimeExtensions = map[string]string{
	"font/woff2":             "woff2",
	"font/woff":              "woff",
	"font/ttf":               "ttf",
	"font/otf":               "otf",
	"application/font-woff2": "woff2",
	"application/font-woff":  "woff",
	"application/x-font-ttf": "ttf",
	"application/x-font-otf": "otf",
}

var separators = regexp.MustCompile(`[-_]+`)

// NormalizeName derives a display name from a font file name: a font extension
// is stripped, runs of '-' and '_' become a space.
//
//	NormalizeName("Open_Sans-Bold.woff2") == "Open Sans Bold"
func NormalizeName(fileName string) string {
	name := fileName
	if ext := fontExtension(fileName); ext != "" {
		name = name[:len(name)-len(ext)-1]
	}
	return strings.TrimSpace(separators.ReplaceAllString(name, " "))
}

// ExtensionFromFile determines the font extension of a file, from its name or,
// failing that, from its MIME type. It returns an empty string if neither
// is recognized.
func ExtensionFromFile(fileName, mimeType string) string {
	if ext := fontExtension(fileName); ext != "" {
		return ext
	}
	return mimeExtensions[strings.ToLower(mimeType)]
}

func fontExtension(fileName string) string {
	lower := strings.ToLower(fileName)
	for _, ext := range Extensions {
		if strings.HasSuffix(lower, "."+ext) {
			return ext
		}
	}
	return ""
}
