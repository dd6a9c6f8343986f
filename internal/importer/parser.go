package importer

import (
	"errors"
	"sort"
	"strings"

	"github.com/arutourism/arutourism-backend/pkg/util"
)

// ErrMissingNome flags the single required field of any imported row.
var ErrMissingNome = errors.New("NOME é obrigatório")

// Record is a parsed candidate listing, format-independent.
type Record struct {
	Nome          string
	Categorias    []string
	Cnpj          string
	Cadastur      string
	Bairro        string
	Endereco      string
	Numero        string
	Cidade        string
	Cep           string
	Telefone      string
	Email         string
	ContatoDireto string
	Digital       string
	Site          string
	Instagram     string
	Facebook      string
	MapsURL       string
	AppURL        string
	Descricao     string
	Latitude      float64
	Longitude     float64
	HasCoords     bool
}

// assembleRow folds a raw row into canonical key -> value. Columns sharing a
// canonical key are applied in physical order, so the last one wins.
func assembleRow(headerMap map[int]string, row []string) map[string]string {
	data := make(map[string]string, len(columnAliases))
	for _, k := range CanonicalKeys() {
		data[k] = ""
	}

	indexes := make([]int, 0, len(headerMap))
	for idx := range headerMap {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	for _, idx := range indexes {
		if idx < len(row) {
			data[headerMap[idx]] = strings.TrimSpace(row[idx])
		}
	}
	return data
}

// ParseStandardRow turns a standard-template row into a Record. Normalizers
// degrade malformed values to empty rather than failing; only a missing name
// is an error.
func ParseStandardRow(headerMap map[int]string, row []string) (*Record, error) {
	data := assembleRow(headerMap, row)

	nome := util.Squeeze(data[KeyNome])
	if nome == "" {
		return nil, ErrMissingNome
	}

	rec := &Record{
		Nome:          nome,
		Categorias:    splitCategorias(data[KeyCategoria]),
		Cnpj:          util.OnlyDigits(data[KeyCnpj]),
		Cadastur:      util.Squeeze(data[KeyCadastur]),
		Bairro:        util.Squeeze(data[KeyBairro]),
		Endereco:      util.Squeeze(data[KeyEndereco]),
		Numero:        util.Squeeze(data[KeyNumero]),
		Cidade:        util.Squeeze(data[KeyCidade]),
		Cep:           util.OnlyDigits(data[KeyCep]),
		Telefone:      normalizePhone(data[KeyTelefone]),
		ContatoDireto: util.Squeeze(data[KeyContato]),
		MapsURL:       strings.TrimSpace(data[KeyMaps]),
		AppURL:        strings.TrimSpace(data[KeyApp]),
		Descricao:     strings.TrimSpace(data[KeyDescricao]),
	}

	classifyDigital(rec, data[KeyDigital])

	if lat, lng, ok := ExtractLatLng(rec.MapsURL); ok {
		rec.Latitude = lat
		rec.Longitude = lng
		rec.HasCoords = true
	}

	return rec, nil
}

// classifyDigital routes a site/redes value into instagram, facebook or site
// by domain substring; non-URL values stay as free text.
func classifyDigital(rec *Record, raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return
	}
	rec.Digital = raw

	if !LooksLikeURL(raw) {
		return
	}

	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "instagram"):
		rec.Instagram = raw
	case strings.Contains(lower, "facebook") || strings.Contains(lower, "fb.com"):
		rec.Facebook = raw
	default:
		rec.Site = raw
	}
}

func splitCategorias(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := util.Squeeze(p); name != "" {
			out = append(out, name)
		}
	}
	return out
}
