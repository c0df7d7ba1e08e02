// Package slug builds URL-friendly identifiers from display names, used for
// client-side product page routes.
package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// accents maps common accented Latin characters to ASCII so product names
// like "Café Crème" produce readable slugs.
var accents = strings.NewReplacer(
	"à", "a", "á", "a", "â", "a", "ä", "a", "ã", "a",
	"ç", "c",
	"è", "e", "é", "e", "ê", "e", "ë", "e",
	"ì", "i", "í", "i", "î", "i", "ï", "i", "ı", "i",
	"ò", "o", "ó", "o", "ô", "o", "ö", "o", "õ", "o",
	"ù", "u", "ú", "u", "û", "u", "ü", "u",
	"ğ", "g", "ñ", "n", "ş", "s", "ß", "ss",
)

// Make creates a URL-friendly slug from the given name.
//
// Examples:
//   - "Linen Shirt"   → "linen-shirt"
//   - "Café Crème"    → "cafe-creme"
//   - "Hello  World!" → "hello-world"
func Make(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = accents.Replace(s)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
