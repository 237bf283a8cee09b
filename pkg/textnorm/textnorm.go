// Package textnorm normaliza términos de búsqueda: minúsculas, espacios
// colapsados y sin tildes, para que "María", "maria " y "MARIA" compartan
// la misma clave de cache y el mismo filtro.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var unaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Term normaliza un término de búsqueda.
func Term(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), " ")
	if out, _, err := transform.String(unaccent, s); err == nil {
		return out
	}
	return s
}
