// Package textutil normaliza texto para búsquedas sin distinguir mayúsculas ni tildes.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// Normalize quita tildes, pliega mayúsculas y recorta espacios: "Grúa " -> "grua".
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.TrimSpace(folder.String(out))
}

// Contains indica si query aparece en s tras normalizar ambos. Un query vacío siempre coincide.
func Contains(s, query string) bool {
	q := Normalize(query)
	if q == "" {
		return true
	}
	return strings.Contains(Normalize(s), q)
}

// Title capitaliza cada palabra (usado al importar nombres en mayúsculas).
func Title(s string) string {
	return cases.Title(language.Spanish).String(strings.ToLower(s))
}
