package api

import (
	"net/url"
	"strings"
)

// componentUnescaper restores the characters encodeURIComponent leaves alone
// but url.QueryEscape escapes
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent escapes s so that only A-Z a-z 0-9 - _ . ! ~ * ' ( ) remain literal
func EncodeURIComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
