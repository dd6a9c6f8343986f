package importer

import (
	"strings"

	"github.com/arutourism/arutourism-backend/pkg/util"
)

// Canonical field keys of the standard template.
const (
	KeyCnpj      = "cnpj"
	KeyCategoria = "categoria"
	KeyNome      = "nome"
	KeyBairro    = "bairro"
	KeyEndereco  = "endereco"
	KeyNumero    = "numero"
	KeyCidade    = "cidade"
	KeyCep       = "cep"
	KeyTelefone  = "telefone"
	KeyContato   = "contato"
	KeyDigital   = "digital"
	KeyCadastur  = "cadastur"
	KeyMaps      = "maps"
	KeyApp       = "app"
	KeyDescricao = "descricao"
)

// columnAliases maps each canonical key to the header spellings accepted for
// it. Matching is normalized (case/accent-insensitive) token-subset, so
// "CATEGORIA (RAMO ATIVIDADE)" still resolves to categoria.
var columnAliases = map[string][]string{
	KeyCnpj: {"cnpj"},
	KeyCategoria: {
		"categoria", "ramo atividade", "ramo de atividade", "ramo",
		"categoria (ramo atividade)", "categoria ramo atividade",
	},
	KeyNome:   {"nome", "razão social", "razao social"},
	KeyBairro: {"bairro", "endereço 2", "endereco 2"},
	KeyEndereco: {
		"endereço", "endereco", "logradouro", "rua",
		"endereço completo", "endereco completo",
	},
	KeyNumero:   {"número", "numero", "nº", "nro"},
	KeyCidade:   {"cidade", "municipio", "município"},
	KeyCep:      {"cep", "c.e.p."},
	KeyTelefone: {"telefone", "fone", "whatsapp"},
	KeyContato:  {"contato direto", "contato"},
	KeyDigital: {
		"digital", "site / redes", "site redes", "redes sociais",
		"site", "instagram", "facebook", "digital (site/redes)",
	},
	KeyCadastur:  {"cadastur", "cadas tur", "cadastro tur"},
	KeyMaps:      {"maps", "google maps", "mapa", "link mapa", "maps (link)"},
	KeyApp:       {"app", "aplicativo"},
	KeyDescricao: {"descrição", "descricao", "observacao", "observação", "obs"},
}

// aliasOrder fixes the resolution priority. A header like "ENDEREÇO 2"
// token-matches both bairro and endereco; the first key listed here wins.
var aliasOrder = []string{
	KeyCnpj, KeyCategoria, KeyNome, KeyBairro, KeyEndereco, KeyNumero,
	KeyCidade, KeyCep, KeyTelefone, KeyContato, KeyDigital, KeyCadastur,
	KeyMaps, KeyApp, KeyDescricao,
}

// aliasMatch reports whether the alias matches the normalized header: every
// token of the alias present among the header's tokens, or exact equality.
func aliasMatch(headerNorm, alias string) bool {
	aliasNorm := util.NormalizeKey(alias)
	if headerNorm == aliasNorm {
		return true
	}

	headerTokens := strings.Fields(headerNorm)
	set := make(map[string]bool, len(headerTokens))
	for _, t := range headerTokens {
		set[t] = true
	}

	aliasTokens := strings.Fields(aliasNorm)
	if len(aliasTokens) == 0 {
		return false
	}
	for _, t := range aliasTokens {
		if !set[t] {
			return false
		}
	}
	return true
}

// BuildHeaderMap resolves each column index to a canonical key. Columns
// matching no synonym are dropped silently. When two columns resolve to the
// same key the later one wins at row-assembly time (known ambiguity).
func BuildHeaderMap(headers []string) map[int]string {
	mapping := make(map[int]string)
	for idx, raw := range headers {
		headerNorm := util.NormalizeKey(raw)
		if headerNorm == "" {
			continue
		}
		for _, canon := range aliasOrder {
			matched := false
			for _, alias := range columnAliases[canon] {
				if aliasMatch(headerNorm, alias) {
					matched = true
					break
				}
			}
			if matched {
				mapping[idx] = canon
				break
			}
		}
	}
	return mapping
}

// CanonicalKeys lists every canonical key of the standard template, in
// resolution order.
func CanonicalKeys() []string {
	keys := make([]string, len(aliasOrder))
	copy(keys, aliasOrder)
	return keys
}
