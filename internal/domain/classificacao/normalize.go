package classificacao

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Remove marcas de acentuação após decompor (NFD) e recompõe (NFC).
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeNatOp reduz o texto livre de natureza de operação à chave canônica
// usada na identidade da alias: minúsculas, sem acentos, espaços colapsados.
// Emitentes variam caixa, acentuação e espaçamento do mesmo texto; a
// normalização faz parte da chave, não é heurística de consulta.
func NormalizeNatOp(natOp string) string {
	s, _, err := transform.String(stripAccents, natOp)
	if err != nil {
		s = natOp
	}
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}
