package bdata

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// CountryName spells an ISO 3166-1 alpha-2 code in lang, falling back to
// English. Unknown codes give an empty name.
func CountryName(code, lang string) string {
	if code == "" {
		return ""
	}
	region, err := language.ParseRegion(strings.ToUpper(code))
	if err != nil {
		return ""
	}
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	if name := display.Regions(tag).Name(region); name != "" {
		return name
	}
	return display.Regions(language.English).Name(region)
}
