package views

import (
	"strings"
	"unicode"

	"odsearch/internal/domain"
)

var kindGlyphs = map[string]string{
	"type":     "◇",
	"function": "ƒ",
	"object":   "●",
	"morphism": "→",
}

var languageGlyphs = map[string]string{
	"python": "py",
	"r":      "R",
	"julia":  "jl",
}

// KindGlyph returns the indicator for a record kind.
// Unknown kinds fall back to their first letter.
func KindGlyph(kind string) string {
	k := strings.ToLower(strings.TrimSpace(kind))
	if g, ok := kindGlyphs[k]; ok {
		return g
	}
	for _, r := range k {
		return string(unicode.ToUpper(r))
	}
	return "?"
}

// LanguageGlyph returns the short tag for an annotation's language
func LanguageGlyph(language string) string {
	l := strings.ToLower(strings.TrimSpace(language))
	if g, ok := languageGlyphs[l]; ok {
		return g
	}
	if l == "" {
		return "??"
	}
	if r := []rune(l); len(r) > 3 {
		return string(r[:3])
	}
	return l
}

// SchemaGlyph returns the icon shown next to a tab title
func SchemaGlyph(schema domain.Schema) string {
	switch schema {
	case domain.SchemaAnnotation:
		return "✎"
	default:
		return "◆"
	}
}
